// Package langparse orchestrates a parse request: fetch the repository,
// resolve the descriptor in its language, normalize paths and record the
// outcome.
package langparse

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/me/langparse/internal/nextflow"
	"github.com/me/langparse/internal/repo"
	"github.com/me/langparse/internal/store"
	"github.com/me/langparse/internal/wdl"
	"github.com/me/langparse/pkg/model"
)

// ErrPathOutsideRepository is returned when the descriptor path escapes the
// checkout.
var ErrPathOutsideRepository = errors.New("descriptor path is outside the repository")

// ErrUnsupportedLanguage is returned for languages without a resolver.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// Service handles parse requests for all supported languages.
type Service struct {
	cloner       repo.Cloner
	nextflow     *nextflow.Resolver
	wdl          *wdl.Resolver
	store        store.Store
	cloneTimeout time.Duration
	logger       *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithStore records every completed resolution in st.
func WithStore(st store.Store) Option {
	return func(s *Service) { s.store = st }
}

// WithCloneTimeout bounds repository fetches.
func WithCloneTimeout(d time.Duration) Option {
	return func(s *Service) { s.cloneTimeout = d }
}

// New creates a Service. Either resolver may be nil, in which case requests
// for that language fail with ErrUnsupportedLanguage.
func New(cloner repo.Cloner, nf *nextflow.Resolver, w *wdl.Resolver, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		cloner:   cloner,
		nextflow: nf,
		wdl:      w,
		logger:   logger.With("component", "langparse"),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// outcome is the language-independent result of resolving one descriptor.
type outcome struct {
	validation  *model.VersionTypeValidation
	files       *model.SecondaryFileSet
	authors     []string
	description *string
}

// Parse clones req's repository, resolves the descriptor as lang and returns
// the response. Invalid descriptors produce a response, not an error.
func (s *Service) Parse(ctx context.Context, lang model.Language, req *model.LanguageParsingRequest) (*model.LanguageParsingResponse, error) {
	start := time.Now()

	cloneCtx := ctx
	if s.cloneTimeout > 0 {
		var cancel context.CancelFunc
		cloneCtx, cancel = context.WithTimeout(ctx, s.cloneTimeout)
		defer cancel()
	}
	co, err := s.cloner.Clone(cloneCtx, req.URI, req.Branch)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := co.Remove(); err != nil {
			s.logger.Warn("remove checkout", "root", co.Root, "error", err)
		}
	}()

	path, ok := descriptorPath(co.Root, req.DescriptorRelativePathInGit)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPathOutsideRepository, req.DescriptorRelativePathInGit)
	}

	out, err := s.resolve(ctx, lang, path)
	if err != nil {
		return nil, err
	}

	resp := buildResponse(out, path, co.Root)
	resp.Commit = co.Commit
	resp.LanguageParsingRequest = req

	s.record(ctx, lang, req, resp, time.Since(start))
	s.logger.Info("descriptor parsed",
		"language", lang,
		"uri", req.URI,
		"branch", req.Branch,
		"valid", resp.VersionTypeValidation.Valid,
		"secondary_files", len(resp.SecondaryFilePaths),
		"duration", time.Since(start).String(),
	)
	return resp, nil
}

// ParseLocal resolves a descriptor already on disk. Paths in the response
// are relative to the descriptor's directory.
func (s *Service) ParseLocal(ctx context.Context, lang model.Language, path string) (*model.LanguageParsingResponse, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve path: %w", err)
	}
	out, err := s.resolve(ctx, lang, abs)
	if err != nil {
		return nil, err
	}
	return buildResponse(out, abs, filepath.Dir(abs)), nil
}

func (s *Service) resolve(ctx context.Context, lang model.Language, path string) (*outcome, error) {
	switch {
	case lang == model.LanguageNextflow && s.nextflow != nil:
		res, err := s.nextflow.Resolve(ctx, path)
		if err != nil {
			return nil, err
		}
		return &outcome{
			validation:  res.Validation,
			files:       res.SecondaryFiles,
			authors:     res.Manifest.Authors,
			description: res.Manifest.Description,
		}, nil
	case lang == model.LanguageWDL && s.wdl != nil:
		res, err := s.wdl.Resolve(ctx, path)
		if err != nil {
			return nil, err
		}
		return &outcome{
			validation: res.Validation,
			files:      res.SecondaryFiles,
			authors:    []string{},
		}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedLanguage, lang)
}

func buildResponse(out *outcome, path, root string) *model.LanguageParsingResponse {
	files := model.NewSecondaryFileSet(NormalizePaths(out.files.Sorted(), root)...)
	authors := out.authors
	if authors == nil {
		authors = []string{}
	}
	return &model.LanguageParsingResponse{
		ClonedRepositoryAbsolutePath: path,
		VersionTypeValidation:        out.validation,
		SecondaryFilePaths:           files.Sorted(),
		Author:                       authors,
		Description:                  out.description,
	}
}

func (s *Service) record(ctx context.Context, lang model.Language, req *model.LanguageParsingRequest, resp *model.LanguageParsingResponse, elapsed time.Duration) {
	if s.store == nil {
		return
	}
	r := &model.Resolution{
		ID:             "res_" + uuid.New().String(),
		Language:       lang,
		URI:            req.URI,
		Branch:         req.Branch,
		DescriptorPath: req.DescriptorRelativePathInGit,
		Commit:         resp.Commit,
		Valid:          resp.VersionTypeValidation.Valid,
		SecondaryCount: len(resp.SecondaryFilePaths),
		DurationMS:     elapsed.Milliseconds(),
		CreatedAt:      time.Now().UTC(),
	}
	if !r.Valid {
		r.Messages = resp.VersionTypeValidation.Message
	}
	if err := s.store.CreateResolution(context.WithoutCancel(ctx), r); err != nil {
		s.logger.Warn("record resolution", "id", r.ID, "error", err)
	}
}
