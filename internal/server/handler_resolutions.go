package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/me/langparse/pkg/model"
)

func (s *Server) handleListResolutions(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	opts := model.DefaultListOptions()
	q := r.URL.Query()
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			respondError(w, reqID, http.StatusBadRequest,
				model.NewValidationError("invalid limit", model.FieldError{Field: "limit", Message: "must be an integer"}))
			return
		}
		opts.Limit = n
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			respondError(w, reqID, http.StatusBadRequest,
				model.NewValidationError("invalid offset", model.FieldError{Field: "offset", Message: "must be an integer"}))
			return
		}
		opts.Offset = n
	}
	if v := q.Get("language"); v != "" {
		lang, ok := model.ParseLanguage(v)
		if !ok {
			respondError(w, reqID, http.StatusBadRequest,
				model.NewValidationError("unknown language", model.FieldError{Field: "language", Message: "must be nextflow or wdl"}))
			return
		}
		opts.Language = lang
	}
	opts.Clamp()

	if s.store == nil {
		respondList(w, reqID, []*model.Resolution{}, &model.Pagination{Limit: opts.Limit, Offset: opts.Offset})
		return
	}

	list, total, err := s.store.ListResolutions(r.Context(), opts)
	if err != nil {
		respondError(w, reqID, http.StatusInternalServerError,
			&model.APIError{Code: model.ErrInternal, Message: err.Error()})
		return
	}
	if list == nil {
		list = []*model.Resolution{}
	}

	respondList(w, reqID, list, &model.Pagination{
		Total:   total,
		Limit:   opts.Limit,
		Offset:  opts.Offset,
		HasMore: opts.Offset+opts.Limit < total,
	})
}

func (s *Server) handleGetResolution(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	id := chi.URLParam(r, "id")

	if s.store == nil {
		respondError(w, reqID, http.StatusNotFound, model.NewNotFoundError("resolution", id))
		return
	}
	res, err := s.store.GetResolution(r.Context(), id)
	if err != nil {
		respondError(w, reqID, http.StatusInternalServerError,
			&model.APIError{Code: model.ErrInternal, Message: err.Error()})
		return
	}
	if res == nil {
		respondError(w, reqID, http.StatusNotFound, model.NewNotFoundError("resolution", id))
		return
	}
	respondOK(w, reqID, res)
}
