package model

import "strings"

// Language identifies the workflow language of a descriptor.
type Language string

const (
	LanguageNextflow Language = "nextflow"
	LanguageWDL      Language = "wdl"
)

// ParseLanguage converts a user-supplied name to a Language.
func ParseLanguage(s string) (Language, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "nextflow", "nfl":
		return LanguageNextflow, true
	case "wdl":
		return LanguageWDL, true
	}
	return "", false
}

// LanguageParsingRequest asks for one descriptor in a remote repository to be
// validated and have its secondary files enumerated.
type LanguageParsingRequest struct {
	URI                         string `json:"uri"`
	Branch                      string `json:"branch"`
	DescriptorRelativePathInGit string `json:"descriptorRelativePathInGit"`
}

// Validate reports missing required fields.
func (r *LanguageParsingRequest) Validate() []FieldError {
	var errs []FieldError
	if strings.TrimSpace(r.URI) == "" {
		errs = append(errs, FieldError{Field: "uri", Message: "required"})
	}
	if strings.TrimSpace(r.Branch) == "" {
		errs = append(errs, FieldError{Field: "branch", Message: "required"})
	}
	if strings.TrimSpace(r.DescriptorRelativePathInGit) == "" {
		errs = append(errs, FieldError{Field: "descriptorRelativePathInGit", Message: "required"})
	}
	return errs
}

// LanguageParsingResponse is the result of a completed resolution. It is
// returned for valid and invalid descriptors alike.
type LanguageParsingResponse struct {
	ClonedRepositoryAbsolutePath string                  `json:"clonedRepositoryAbsolutePath"`
	Commit                       string                  `json:"commit,omitempty"`
	VersionTypeValidation        *VersionTypeValidation  `json:"versionTypeValidation"`
	SecondaryFilePaths           []string                `json:"secondaryFilePaths"`
	Author                       []string                `json:"author"`
	Description                  *string                 `json:"description"`
	LanguageParsingRequest       *LanguageParsingRequest `json:"languageParsingRequest"`
}

// VersionTypeValidation carries the validity verdict for a descriptor and,
// when invalid, a human-readable message per offending file.
type VersionTypeValidation struct {
	Valid   bool              `json:"valid"`
	Message map[string]string `json:"message"`

	state ValidationState
}

// NewVersionTypeValidation returns an unvalidated outcome with an empty message map.
func NewVersionTypeValidation() *VersionTypeValidation {
	return &VersionTypeValidation{
		Message: map[string]string{},
		state:   ValidationUnvalidated,
	}
}

// State returns the current validation state. Values decoded from JSON
// derive their state from the Valid flag and message map.
func (v *VersionTypeValidation) State() ValidationState {
	if v.state != "" {
		return v.state
	}
	switch {
	case v.Valid:
		return ValidationValid
	case len(v.Message) > 0:
		return ValidationInvalid
	}
	return ValidationUnvalidated
}

// MarkValid moves an unvalidated outcome to Valid.
func (v *VersionTypeValidation) MarkValid() error {
	cur := v.State()
	if cur == ValidationValid {
		return nil
	}
	if !cur.CanTransitionTo(ValidationValid) {
		return &InvalidTransitionError{From: cur, To: ValidationValid}
	}
	v.state = ValidationValid
	v.Valid = true
	return nil
}

// MarkInvalid records msg against path and moves the outcome to Invalid.
// Further messages may be added once Invalid.
func (v *VersionTypeValidation) MarkInvalid(path, msg string) error {
	cur := v.State()
	if cur != ValidationInvalid && !cur.CanTransitionTo(ValidationInvalid) {
		return &InvalidTransitionError{From: cur, To: ValidationInvalid}
	}
	if v.Message == nil {
		v.Message = map[string]string{}
	}
	v.state = ValidationInvalid
	v.Valid = false
	v.Message[path] = msg
	return nil
}
