package application

import (
	"fmt"
	"strings"
	"time"

	"contexere/internal/domain"
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", formatFieldName(fieldName)),
		}
	}
	return nil
}

// formatFieldName converts field names to space-separated words
// for more readable error messages (e.g., "timezone" -> "time zone")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"token":      "token",
		"identifier": "identifier",
		"location":   "location",
		"timezone":   "time zone",
		"provider":   "history provider",
		"ledger":     "ledger",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}
	return fieldName
}

// ValidateTimezone resolves an IANA time zone name. An empty name means UTC.
func ValidateTimezone(fieldName, name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return time.UTC, nil
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("unknown %s %q", formatFieldName(fieldName), name),
		}
	}
	return loc, nil
}

// ValidateIdentifier checks that a string is a complete identifier.
// Returns a ValidationError wrapping the grammar failure.
func ValidateIdentifier(fieldName, value string) (domain.Identifier, error) {
	id, err := domain.ParseIdentifier(strings.TrimSpace(value))
	if err != nil {
		return domain.Identifier{}, &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("expected project letters, a YYMD date token and step letters, got: %s", value),
			Err:     err,
		}
	}
	return id, nil
}
