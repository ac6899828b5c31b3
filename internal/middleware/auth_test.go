package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
		ok     bool
	}{
		{"standard", "Bearer abc.def.ghi", "abc.def.ghi", true},
		{"extra spaces", "Bearer   abc.def.ghi", "abc.def.ghi", true},
		{"missing header", "", "", false},
		{"missing prefix", "abc.def.ghi", "", false},
		{"prefix only", "Bearer", "", false},
		{"prefix with spaces only", "Bearer   ", "", false},
		{"wrong scheme", "Basic dXNlcjpwYXNz", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := bearerToken(tt.header)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
