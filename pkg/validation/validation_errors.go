package validation

import (
	"errors"
	"fmt"
	"strings"

	"go-jobboard-backend/internal/domain"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps struct field names to user-facing labels
var FieldLabels = map[string]string{
	// Job fields
	"CategoryID":      "Category",
	"JobType":         "Job type",
	"ExperienceLevel": "Experience level",
	"SalaryMin":       "Minimum salary",
	"SalaryMax":       "Maximum salary",
	"SalaryCurrency":  "Salary currency",

	// Listing fields
	"Sort":     "Sort",
	"Page":     "Page",
	"PageSize": "Page size",

	// Skill fields
	"Name":   "Skill name",
	"Skills": "Skills",

	// Application fields
	"CoverLetter": "Cover letter",
	"Status":      "Status",
	"Days":        "Days",
}

// FormatValidationErrors converts validator.ValidationErrors to user-friendly messages
func FormatValidationErrors(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		// Not a validation error, return generic message
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, formatSingleError(e))
	}
	return messages
}

// formatSingleError formats a single validation error to a user-friendly message
func formatSingleError(e validator.FieldError) string {
	label := getFieldLabel(e.Field())
	param := e.Param()

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s: is required", label)

	case "min", "gte":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s: must be at least %s characters", label, param)
		}
		return fmt.Sprintf("%s: must be at least %s", label, param)

	case "max", "lte":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s: must be at most %s characters", label, param)
		}
		return fmt.Sprintf("%s: must be at most %s", label, param)

	case "gt":
		return fmt.Sprintf("%s: must be greater than %s", label, param)

	case "len":
		return fmt.Sprintf("%s: must be exactly %s characters", label, param)

	case "oneof":
		return fmt.Sprintf("%s: must be one of: %s", label, strings.Join(strings.Fields(param), ", "))

	case "skill_name":
		return fmt.Sprintf("%s: must not be blank and at most %d characters", label, domain.MaxSkillNameLength)

	case "no_emoji":
		return fmt.Sprintf("%s: must not contain emoji or special symbols", label)

	case "gtefield":
		return fmt.Sprintf("%s: must not be less than %s", label, getFieldLabel(param))

	default:
		// Fallback for unknown tags
		return fmt.Sprintf("%s: failed validation (%s)", label, e.Tag())
	}
}

// getFieldLabel returns the user-friendly label for a field
func getFieldLabel(fieldName string) string {
	if label, ok := FieldLabels[fieldName]; ok {
		return label
	}
	return formatCamelCase(fieldName)
}

// formatCamelCase converts CamelCase to spaced words
func formatCamelCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune(' ')
		}
		result.WriteRune(r)
	}
	return result.String()
}
