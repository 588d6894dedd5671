package validate

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSchema = Schema{
	{
		Name:            "name",
		Required:        true,
		MinLen:          1,
		MaxLen:          12,
		RequiredMessage: "name required",
	},
	{
		Name:            "email",
		Required:        true,
		Pattern:         regexp.MustCompile(`^[0-9a-zA-Z]([-_.]?[0-9a-zA-Z])*@[0-9a-zA-Z]([-_.]?[0-9a-zA-Z])*.[a-zA-Z]{2,3}$`),
		RequiredMessage: "email required",
		PatternMessage:  "email invalid",
	},
	{
		Name:            "job",
		Required:        true,
		Disallow:        "notselect",
		RequiredMessage: "job required",
	},
}

func TestSchema_Validate(t *testing.T) {
	tests := []struct {
		name   string
		values map[string]string
		want   []Violation
	}{
		{
			name: "all valid",
			values: map[string]string{
				"name":  "A",
				"email": "a@example.com",
				"job":   "dev",
			},
			want: nil,
		},
		{
			name: "missing required field emits required message",
			values: map[string]string{
				"email": "a@example.com",
				"job":   "dev",
			},
			want: []Violation{{Field: "name", Message: "name required"}},
		},
		{
			name: "pattern violation emits pattern message",
			values: map[string]string{
				"name":  "A",
				"email": "not-an-email",
				"job":   "dev",
			},
			want: []Violation{{Field: "email", Message: "email invalid"}},
		},
		{
			name: "sentinel value rejected with required message",
			values: map[string]string{
				"name":  "A",
				"email": "a@example.com",
				"job":   "notselect",
			},
			want: []Violation{{Field: "job", Message: "job required"}},
		},
		{
			name: "length violation",
			values: map[string]string{
				"name":  "abcdefghijklm", // 13 runes
				"email": "a@example.com",
				"job":   "dev",
			},
			want: []Violation{{Field: "name", Message: "name required"}},
		},
		{
			name:   "violations collected across fields in schema order",
			values: map[string]string{},
			want: []Violation{
				{Field: "name", Message: "name required"},
				{Field: "email", Message: "email required"},
				{Field: "job", Message: "job required"},
			},
		},
		{
			name: "first violation per field wins",
			values: map[string]string{
				// empty and pattern-violating at once is impossible; a
				// present but invalid value must report the pattern message,
				// not the required one
				"name":  "A",
				"email": "@@",
				"job":   "dev",
			},
			want: []Violation{{Field: "email", Message: "email invalid"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := testSchema.Validate(tt.values)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSchema_Validate_OptionalField(t *testing.T) {
	schema := Schema{
		{
			Name:            "nickname",
			Pattern:         regexp.MustCompile(`^[a-z]+$`),
			RequiredMessage: "nickname invalid",
		},
	}

	t.Run("absent optional field passes", func(t *testing.T) {
		assert.Empty(t, schema.Validate(map[string]string{}))
	})

	t.Run("present optional field still pattern-checked", func(t *testing.T) {
		got := schema.Validate(map[string]string{"nickname": "ABC"})
		require.Len(t, got, 1)
		assert.Equal(t, "nickname", got[0].Field)
	})
}

// The email pattern's dot before the TLD is unescaped on purpose; pin the
// loose behavior so it is not "fixed" silently.
func TestEmailPatternStaysLoose(t *testing.T) {
	emailField := testSchema[1]

	t.Run("normal address accepted", func(t *testing.T) {
		assert.True(t, emailField.Pattern.MatchString("user@example.com"))
	})

	t.Run("unescaped dot accepts any separator before the TLD", func(t *testing.T) {
		assert.True(t, emailField.Pattern.MatchString("user@example_com"))
	})

	t.Run("missing local part rejected", func(t *testing.T) {
		assert.False(t, emailField.Pattern.MatchString("@example.com"))
	})
}
