package domain

import (
	"errors"
	"strings"
)

var (
	ErrUnknownAnalysisKind  = errors.New("unknown analysis tab")
	ErrProfileRequired      = errors.New("profile is required")
	ErrProfileNotFound      = errors.New("profile not found")
	ErrInvalidChatMessage   = errors.New("invalid chat message")
	ErrNarrativeUnavailable = errors.New("narrative unavailable")
	ErrNarrativeDisabled    = errors.New("narrative generation is disabled")
)

// FieldError describes one invalid profile field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects every problem found in a submitted profile.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "invalid profile"
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "invalid profile: " + strings.Join(parts, "; ")
}
