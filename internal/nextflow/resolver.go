package nextflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/me/langparse/internal/descriptor"
	"github.com/me/langparse/internal/evaluator"
	"github.com/me/langparse/pkg/model"
)

// ConfigExtractor evaluates sanitized config text.
// *evaluator.Extractor is the production implementation.
type ConfigExtractor interface {
	Extract(ctx context.Context, text string) (*evaluator.Mapping, error)
}

// Result is the outcome of resolving one descriptor.
type Result struct {
	Validation     *model.VersionTypeValidation
	Manifest       Manifest
	SecondaryFiles *model.SecondaryFileSet // relative to the descriptor directory
}

// Resolver discovers the secondary files and manifest of a Nextflow workflow.
type Resolver struct {
	extractor ConfigExtractor
	logger    *slog.Logger
}

// NewResolver creates a Resolver that evaluates configs with extractor.
func NewResolver(extractor ConfigExtractor, logger *slog.Logger) *Resolver {
	return &Resolver{
		extractor: extractor,
		logger:    logger.With("component", "nextflow-resolver"),
	}
}

// Resolve validates the descriptor at descriptorPath and enumerates the files
// it depends on. A missing descriptor or an evaluator failure is reported in
// the result's validation, not as an error; errors are reserved for
// infrastructure failures.
func (r *Resolver) Resolve(ctx context.Context, descriptorPath string) (*Result, error) {
	res := &Result{
		Validation:     model.NewVersionTypeValidation(),
		Manifest:       ReadManifest(nil),
		SecondaryFiles: model.NewSecondaryFileSet(),
	}

	desc, err := descriptor.Read(descriptorPath)
	if errors.Is(err, descriptor.ErrNotFound) {
		r.logger.Info("descriptor not found", "path", descriptorPath)
		if err := res.Validation.MarkInvalid(descriptorPath, descriptor.MessageFileNotFound); err != nil {
			return nil, err
		}
		return res, nil
	}
	if err != nil {
		return nil, err
	}

	includes := DetectIncludes(desc.Content)

	mapping, err := r.extractor.Extract(ctx, Sanitize(desc.Content))
	var cee *evaluator.ConfigEvaluationError
	switch {
	case err == nil:
		err = res.Validation.MarkValid()
	case errors.As(err, &cee):
		r.logger.Info("config evaluation failed", "path", descriptorPath, "error", cee.Error())
		err = res.Validation.MarkInvalid(descriptorPath, cee.Diagnostics())
	default:
		return nil, fmt.Errorf("extract config: %w", err)
	}
	if err != nil {
		return nil, err
	}

	res.Manifest = ReadManifest(mapping)

	discovered := make([][]string, 0, len(AuxiliaryDirs)+1)
	for _, dir := range AuxiliaryDirs {
		discovered = append(discovered, ScanAuxiliary(descriptorPath, dir))
	}
	discovered = append(discovered, DetectModuleImports(filepath.Dir(descriptorPath), res.Manifest.MainScript))

	res.SecondaryFiles = Aggregate(includes, res.Manifest, discovered...)

	r.logger.Debug("descriptor resolved",
		"path", descriptorPath,
		"valid", res.Validation.Valid,
		"includes", len(includes),
		"secondary_files", res.SecondaryFiles.Len(),
	)
	return res, nil
}
