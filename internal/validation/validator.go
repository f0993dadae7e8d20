package validation

import (
	"regexp"
	"strings"
	"time"

	"lxp-core/internal/domain"
)

const (
	maxTitleLength       = 200
	maxDescriptionLength = 2000
	maxTopicLength       = 500
)

// ULID is 26 characters, Crockford's Base32.
var validULID = regexp.MustCompile(`^[0-9A-HJKMNP-TV-Z]{26}$`)

// Hex color like #1A2B3C, with an optional short form.
var validColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateID validates a ULID path parameter under the given field name.
func (v *Validator) ValidateID(field, id string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(id) == "" {
		errors = append(errors, domain.NewMissingFieldError(field))
	} else if !IsValidULID(id) {
		errors = append(errors, domain.NewInvalidFormatError(field, id))
	}

	return errors
}

// ValidateCreateEventRequest validates the fields of a calendar event
// creation request.
func (v *Validator) ValidateCreateEventRequest(title, eventType string, startsAt, endsAt time.Time, color string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(title) == "" {
		errors = append(errors, domain.NewMissingFieldError("title"))
	} else if len(title) > maxTitleLength {
		errors = append(errors, domain.NewOutOfRangeError("title", len(title), 1, maxTitleLength))
	}

	if !domain.EventType(eventType).IsValid() {
		errors = append(errors, domain.NewInvalidFormatError("type", eventType))
	}

	if startsAt.IsZero() {
		errors = append(errors, domain.NewMissingFieldError("starts_at"))
	}
	if endsAt.IsZero() {
		errors = append(errors, domain.NewMissingFieldError("ends_at"))
	}

	if color != "" && !validColor.MatchString(color) {
		errors = append(errors, domain.NewInvalidFormatError("color", color))
	}

	return errors
}

// ValidateGenerateDraftRequest validates an AI draft generation request.
func (v *Validator) ValidateGenerateDraftRequest(topic string, numQuestions int) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(topic) == "" {
		errors = append(errors, domain.NewMissingFieldError("topic"))
	} else if len(topic) > maxTopicLength {
		errors = append(errors, domain.NewOutOfRangeError("topic", len(topic), 1, maxTopicLength))
	}

	if numQuestions < 0 || numQuestions > 20 {
		errors = append(errors, domain.NewOutOfRangeError("num_questions", numQuestions, 1, 20))
	}

	return errors
}

// ValidatePagination validates limit/offset query parameters.
func (v *Validator) ValidatePagination(limit, offset int) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if limit < 0 || limit > 100 {
		errors = append(errors, domain.NewOutOfRangeError("limit", limit, 0, 100))
	}
	if offset < 0 {
		errors = append(errors, domain.NewOutOfRangeError("offset", offset, 0, 1<<30))
	}

	return errors
}

// IsValidULID checks if the string is a valid ULID format
func IsValidULID(s string) bool {
	if len(s) != 26 {
		return false
	}
	return validULID.MatchString(s)
}
