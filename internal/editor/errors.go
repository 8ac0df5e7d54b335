package editor

import (
	"errors"
	"fmt"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

var (
	ErrBackendRequired    = errors.New("editor: backend required")
	ErrTranslatorRequired = errors.New("editor: translator not configured")
	ErrUnknownLocale      = errors.New("editor: locale is not configured")
	ErrUnknownField       = errors.New("editor: unknown field")
	ErrInvalidValue       = errors.New("editor: invalid field value")
	ErrFeatureIndex       = errors.New("editor: feature index out of range")
	ErrNoRecord           = errors.New("editor: record has not been saved yet")
)

const (
	genericLoadMessage      = "Failed to load translations. Please try again."
	genericSaveMessage      = "Failed to save translation. Please try again."
	genericDeleteMessage    = "Failed to delete record. Please try again."
	genericTranslateMessage = "Auto-translation failed. Please try again."
)

// PartialTranslationError reports an auto-translate run where some fields
// kept their source text.
type PartialTranslationError struct {
	Locale    string
	Succeeded int
	Failed    int
}

func (e *PartialTranslationError) Error() string {
	return fmt.Sprintf("editor: translated %d of %d fields to %s", e.Succeeded, e.Succeeded+e.Failed, e.Locale)
}

// UserMessager is implemented by backend errors that carry a message meant
// for the person editing.
type UserMessager interface {
	UserMessage() string
}

// IsValidation reports whether err was raised before any backend call
// because the form input was incomplete.
func IsValidation(err error) bool {
	return goerrors.IsCategory(err, goerrors.CategoryValidation)
}

// IsNetwork reports whether err came from a failed backend or translation call.
func IsNetwork(err error) bool {
	return goerrors.IsCategory(err, goerrors.CategoryExternal)
}

func missingFieldsError(missing []string) error {
	fields := make([]goerrors.FieldError, 0, len(missing))
	for _, field := range missing {
		fields = append(fields, goerrors.FieldError{Field: strings.ToLower(field), Message: "is required"})
	}
	return goerrors.NewValidation("Missing required fields: "+strings.Join(missing, ", "), fields...).
		WithTextCode("MISSING_FIELDS")
}

func validationError(message, field string) error {
	return goerrors.NewValidation(message, goerrors.FieldError{Field: field, Message: message}).
		WithTextCode("EDITOR_VALIDATION")
}

// networkError wraps a backend failure, keeping the server-provided message
// when there is one.
func networkError(err error, fallback string) (string, error) {
	message := fallback
	var messager UserMessager
	if errors.As(err, &messager) {
		if text := strings.TrimSpace(messager.UserMessage()); text != "" {
			message = text
		}
	}
	return message, goerrors.Wrap(err, goerrors.CategoryExternal, message).WithTextCode("BACKEND_REQUEST_FAILED")
}
