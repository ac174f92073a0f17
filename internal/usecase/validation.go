package usecase

import (
	"fmt"
	"strings"
)

// FieldIssue names a single invalid input field and what is wrong with it.
type FieldIssue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries the full list of field issues so callers can
// report every problem at once instead of the first one encountered.
type ValidationError struct {
	Issues []FieldIssue
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

type validationCollector struct {
	issues []FieldIssue
}

func (v *validationCollector) add(field, message string) {
	v.issues = append(v.issues, FieldIssue{Field: field, Message: message})
}

func (v *validationCollector) err() error {
	if len(v.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: v.issues}
}
