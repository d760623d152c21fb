package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/me/langparse/internal/langparse"
	"github.com/me/langparse/internal/repo"
	"github.com/me/langparse/pkg/model"
)

// maxRequestBytes bounds a parse request body.
const maxRequestBytes = 1 << 20

// handleParse returns the handler for one language's parse endpoint.
func (s *Server) handleParse(lang model.Language) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reqID := RequestIDFromContext(r.Context())

		var req model.LanguageParsingRequest
		dec := json.NewDecoder(io.LimitReader(r.Body, maxRequestBytes))
		if err := dec.Decode(&req); err != nil {
			msg := "invalid JSON: " + err.Error()
			if errors.Is(err, io.EOF) {
				msg = "request body is required"
			}
			respondError(w, reqID, http.StatusBadRequest, model.NewValidationError(msg))
			return
		}
		if errs := req.Validate(); len(errs) > 0 {
			respondError(w, reqID, http.StatusBadRequest,
				model.NewValidationError("missing required fields", errs...))
			return
		}

		resp, err := s.parser.Parse(r.Context(), lang, &req)
		if err != nil {
			status, apiErr := parseErrorResponse(err)
			s.logger.Warn("parse failed",
				"language", lang,
				"uri", req.URI,
				"branch", req.Branch,
				"error", err,
				"request_id", reqID,
			)
			respondError(w, reqID, status, apiErr)
			return
		}
		respondRaw(w, http.StatusOK, resp)
	}
}

// parseErrorResponse maps a Parse error onto an HTTP status and API error.
func parseErrorResponse(err error) (int, *model.APIError) {
	var cloneErr *repo.CloneError
	switch {
	case errors.As(err, &cloneErr):
		return http.StatusInternalServerError, &model.APIError{Code: model.ErrCloneFailed, Message: err.Error()}
	case errors.Is(err, langparse.ErrPathOutsideRepository):
		return http.StatusBadRequest, model.NewValidationError(err.Error(),
			model.FieldError{Field: "descriptorRelativePathInGit", Message: "must stay inside the repository"})
	default:
		return http.StatusInternalServerError, &model.APIError{Code: model.ErrInternal, Message: err.Error()}
	}
}
