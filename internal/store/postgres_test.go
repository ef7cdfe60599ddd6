package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLikePattern(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"tech", "%tech%"},
		{"100%", `%100\%%`},
		{"snake_case", `%snake\_case%`},
		{`back\slash`, `%back\\slash%`},
		{"", "%%"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, likePattern(tt.query), "query %q", tt.query)
	}
}
