package wdl

import (
	"context"
	"errors"
	"log/slog"
	"regexp"

	"github.com/me/langparse/internal/descriptor"
	"github.com/me/langparse/pkg/model"
)

const (
	MessageRecursiveImports = "Encountered recursive imports"
	MessageNoCallable       = "Descriptor does not define a workflow or task"
)

// callablePattern finds a top-level workflow or task definition.
var callablePattern = regexp.MustCompile(`(?m)^[ \t]*(workflow|task)[ \t]+[A-Za-z_][A-Za-z0-9_]*[ \t\r\n]*\{`)

// Result is the outcome of resolving one WDL descriptor.
type Result struct {
	Validation     *model.VersionTypeValidation
	SecondaryFiles *model.SecondaryFileSet // absolute paths as reported by the toolkit
}

// Resolver validates WDL descriptors through a Toolkit.
type Resolver struct {
	toolkit Toolkit
	logger  *slog.Logger
}

// NewResolver creates a Resolver backed by toolkit.
func NewResolver(toolkit Toolkit, logger *slog.Logger) *Resolver {
	return &Resolver{
		toolkit: toolkit,
		logger:  logger.With("component", "wdl-resolver"),
	}
}

// HasCallable reports whether text defines a workflow or a task.
func HasCallable(text string) bool {
	return callablePattern.MatchString(text)
}

// Resolve validates the descriptor at descriptorPath. Invalid descriptors and
// recursive imports are reported in the result; errors are reserved for
// infrastructure failures.
func (r *Resolver) Resolve(ctx context.Context, descriptorPath string) (*Result, error) {
	res := &Result{
		Validation:     model.NewVersionTypeValidation(),
		SecondaryFiles: model.NewSecondaryFileSet(),
	}

	desc, err := descriptor.Read(descriptorPath)
	if errors.Is(err, descriptor.ErrNotFound) {
		return res, res.Validation.MarkInvalid(descriptorPath, descriptor.MessageFileNotFound)
	}
	if err != nil {
		return nil, err
	}

	report, err := r.toolkit.Validate(ctx, descriptorPath)
	switch {
	case errors.Is(err, ErrRecursiveImports):
		r.logger.Info("recursive imports", "path", descriptorPath)
		return res, res.Validation.MarkInvalid(descriptorPath, MessageRecursiveImports)
	case err != nil:
		return nil, err
	case !report.Valid:
		return res, res.Validation.MarkInvalid(descriptorPath, report.Message)
	}

	res.SecondaryFiles.Add(report.Dependencies...)
	if !HasCallable(desc.Content) {
		return res, res.Validation.MarkInvalid(descriptorPath, MessageNoCallable)
	}
	return res, res.Validation.MarkValid()
}
