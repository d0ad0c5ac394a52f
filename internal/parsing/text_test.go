package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"trims and collapses", "  hex   bolt\tset ", "hex bolt set"},
		{"newlines collapse too", "unit\nweight", "unit weight"},
		{"empty", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormText(tt.input))
		})
	}
}
