package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps struct field names to user-friendly labels
var FieldLabels = map[string]string{
	// Account and personal info
	"DisplayName": "Display name",
	"FullName":    "Full name",
	"JobTitle":    "Job title",
	"Phone":       "Phone number",
	"Email":       "Email",
	"Location":    "Location",
	"Summary":     "Summary",

	// Profile lists
	"Institution":  "Institution",
	"Field":        "Field of study",
	"Company":      "Company",
	"Position":     "Position",
	"StartDate":    "Start date",
	"EndDate":      "End date",
	"Organization": "Issuing organization",
	"IssueDate":    "Issue date",
	"ExpiryDate":   "Expiry date",
	"CredentialID": "Credential ID",

	// Job preferences
	"DesiredJobTitle": "Desired job title",
	"JobType":         "Job type",
	"WorkEnvironment": "Work environment",
	"SalaryMin":       "Minimum salary",
	"SalaryMax":       "Maximum salary",

	// Resume
	"Title":          "Title",
	"ThemeColor":     "Theme color",
	"FirstName":      "First name",
	"LastName":       "Last name",
	"UniversityName": "University",
	"CompanyName":    "Company name",
	"WorkSummary":    "Work summary",
	"ProjectName":    "Project name",
	"TechStack":      "Tech stack",
	"ProjectSummary": "Project summary",
	"Rating":         "Rating",

	// Employer setup
	"CompanySize":  "Company size",
	"ContactName":  "Contact name",
	"ContactEmail": "Contact email",
	"ContactPhone": "Contact phone",

	// Job search
	"Sites":         "Job sites",
	"SearchTerm":    "Search term",
	"ResultsWanted": "Number of results",
	"HoursOld":      "Maximum age (hours)",
}

// FormatValidationErrors converts validator.ValidationErrors to user-friendly messages
func FormatValidationErrors(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, formatSingleError(e))
	}
	return messages
}

func formatSingleError(e validator.FieldError) string {
	label := getFieldLabel(e.Field())
	param := e.Param()

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s: is required", label)
	case "min":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s: must be at least %s characters", label, param)
		}
		return fmt.Sprintf("%s: must be at least %s", label, param)
	case "max":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s: must be at most %s characters", label, param)
		}
		return fmt.Sprintf("%s: must be at most %s", label, param)
	case "oneof":
		return fmt.Sprintf("%s: must be one of: %s", label, strings.Join(strings.Fields(param), ", "))
	case "email":
		return fmt.Sprintf("%s: invalid email format", label)
	case "url":
		return fmt.Sprintf("%s: invalid URL format", label)
	case "valid_name":
		return fmt.Sprintf("%s: only letters, digits, spaces and . ' - / & ( ) , are allowed", label)
	case "valid_phone":
		return fmt.Sprintf("%s: invalid phone number (7-15 digits, optional +)", label)
	case "no_emoji":
		return fmt.Sprintf("%s: must not contain emoji or special symbols", label)
	case "hex_color":
		return fmt.Sprintf("%s: must be a hex color such as #ff6666", label)
	case "date_or_empty":
		return fmt.Sprintf("%s: must be a date (YYYY-MM or YYYY-MM-DD)", label)
	default:
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
