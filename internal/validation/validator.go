package validation

import (
	"strings"

	"flashgen/internal/domain"
)

// maxContentLength bounds a single generation request. Anything larger
// should be uploaded as a file.
const maxContentLength = 1 << 20

// maxSubjectLength bounds the subject name; unknown subjects are still
// accepted and fall back to the General guide.
const maxSubjectLength = 50

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateGenerateRequest validates a text generation request.
func (v *Validator) ValidateGenerateRequest(content, subject string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(content) == "" {
		errors = append(errors, domain.NewMissingFieldError("content"))
	} else if len(content) > maxContentLength {
		errors = append(errors, domain.NewOutOfRangeError("content", len(content), 1, maxContentLength))
	}

	if len(subject) > maxSubjectLength {
		errors = append(errors, domain.NewOutOfRangeError("subject", len(subject), 0, maxSubjectLength))
	}

	return errors
}

// ValidateExportRequest validates an export request. The format itself
// is checked by the exporter; this guards the flashcard list.
func (v *Validator) ValidateExportRequest(format string, cardCount int) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(format) == "" {
		errors = append(errors, domain.NewMissingFieldError("format"))
	}
	if cardCount == 0 {
		errors = append(errors, domain.NewMissingFieldError("flashcards"))
	}

	return errors
}

// SanitizeFilename rejects path traversal in caller-supplied export
// filenames; an empty result means "use the default".
func (v *Validator) SanitizeFilename(name string) (string, domain.ValidationErrors) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", nil
	}
	if strings.ContainsAny(name, "/\\") || strings.Contains(name, "..") {
		return "", domain.ValidationErrors{domain.NewInvalidFormatError("filename", name)}
	}
	return name, nil
}
