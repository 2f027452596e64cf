package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name       string `validate:"omitempty,valid_name"`
	Phone      string `validate:"valid_phone"`
	ThemeColor string `validate:"omitempty,hex_color"`
	StartDate  string `validate:"date_or_empty"`
	JobTitle   string `validate:"no_emoji"`
	Email      string `validate:"required,email"`
}

func TestCustomValidators(t *testing.T) {
	v := New()
	valid := sample{
		Name:       "Ann O'Brien-Smith",
		Phone:      "+1 (555) 010-2030",
		ThemeColor: "#ff6666",
		StartDate:  "2021-09",
		JobTitle:   "Senior Dev",
		Email:      "ann@example.com",
	}
	require.NoError(t, v.Struct(valid))

	cases := map[string]func(s *sample){
		"name with symbols":  func(s *sample) { s.Name = "Ann <script>" },
		"short phone":        func(s *sample) { s.Phone = "12345" },
		"bad color":          func(s *sample) { s.ThemeColor = "red" },
		"bad date":           func(s *sample) { s.StartDate = "09/2021" },
		"emoji in job title": func(s *sample) { s.JobTitle = "Dev 🚀" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			s := valid
			mutate(&s)
			assert.Error(t, v.Struct(s))
		})
	}

	t.Run("empty optional values pass", func(t *testing.T) {
		s := valid
		s.Phone, s.ThemeColor, s.StartDate, s.Name = "", "", "", ""
		assert.NoError(t, v.Struct(s))
	})
}

func TestFormatValidationErrors(t *testing.T) {
	err := New().Struct(sample{StartDate: "yesterday"})
	require.Error(t, err)

	msgs := FormatValidationErrors(err)
	assert.Contains(t, msgs, "Email: is required")
	assert.Contains(t, msgs, "Start date: must be a date (YYYY-MM or YYYY-MM-DD)")
}
