package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestName(t *testing.T) {
	assert.Nil(t, Name("Ada"))
	require.NotNil(t, Name(""))
	require.NotNil(t, Name("   "))
	assert.Equal(t, "name", Name("").Field)
}

func TestEmail(t *testing.T) {
	tests := []struct {
		email string
		ok    bool
	}{
		{"ada@example.com", true},
		{"first.last@sub.example.co", true},
		{"", false},
		{"not-an-email", false},
		{"missing@domain", false},
		{"user@localhost", false},
		{"spaces in@example.com", false},
	}

	for _, tt := range tests {
		err := Email(tt.email)
		if tt.ok {
			assert.Nil(t, err, "expected %q to be valid", tt.email)
		} else {
			assert.NotNil(t, err, "expected %q to be invalid", tt.email)
		}
	}
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "ada@example.com", NormalizeEmail("  Ada@Example.COM "))
}

func TestPassword(t *testing.T) {
	tests := []struct {
		name  string
		plain string
		ok    bool
	}{
		{"valid", "s3cret-long", true},
		{"exactly six", "abcdef", true},
		{"too short", "abc", false},
		{"short after trim", "  abcd  ", false},
		{"contains password", "mypassword1", false},
		{"contains password mixed case", "PaSsWoRd99", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Password(tt.plain)
			if tt.ok {
				assert.Nil(t, err)
			} else {
				require.NotNil(t, err)
				assert.Equal(t, "password", err.Field)
			}
		})
	}
}

func TestAge(t *testing.T) {
	assert.Nil(t, Age(0))
	assert.Nil(t, Age(42))
	require.NotNil(t, Age(-1))
}

func TestTaskDescription(t *testing.T) {
	assert.Nil(t, TaskDescription("buy milk"))
	assert.NotNil(t, TaskDescription(""))
	assert.NotNil(t, TaskDescription("  \t "))
}

func TestFieldErrorMessage(t *testing.T) {
	err := &FieldError{Field: "email", Reason: "is not a valid email address"}
	assert.Equal(t, "email: is not a valid email address", err.Error())
}
