package note

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	// MaxTitleLen and MaxContentLen bound the trimmed field lengths.
	MaxTitleLen   = 100
	MaxContentLen = 10000
)

// FieldErrors maps a field name ("title", "content") to an ordered list of
// human-readable messages. An empty map means the input passed validation.
type FieldErrors map[string][]string

func (fe FieldErrors) add(field, msg string) {
	fe[field] = append(fe[field], msg)
}

// Has reports whether any field has at least one error recorded.
func (fe FieldErrors) Has() bool {
	return len(fe) > 0
}

// ValidationError carries per-field messages across the service boundary.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	return "invalid note: " + strings.Join(fields, ", ")
}

// Validate checks a title/content pair against the note rules. Inputs must
// already be trimmed of leading/trailing whitespace; trimming is the caller's
// job, not performed here.
//
// Each field is checked by two independent rules: a length bound and a
// whitespace-only rejection. Both may record a message for the same field.
// Lengths are counted in characters (runes), not bytes.
// Pure and safe for concurrent use.
func Validate(title, content string) FieldErrors {
	errs := FieldErrors{}

	if n := utf8.RuneCountInString(title); n < 1 || n > MaxTitleLen {
		errs.add("title", fmt.Sprintf("title must be between 1 and %d characters", MaxTitleLen))
	}
	if strings.TrimSpace(title) == "" {
		errs.add("title", "title cannot be empty or only whitespace")
	}

	if n := utf8.RuneCountInString(content); n < 1 || n > MaxContentLen {
		errs.add("content", fmt.Sprintf("content must be between 1 and %d characters", MaxContentLen))
	}
	if strings.TrimSpace(content) == "" {
		errs.add("content", "content cannot be empty or only whitespace")
	}

	return errs
}
