package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercase", "Go", "go"},
		{"spaces to hyphens", "Machine Learning", "machine-learning"},
		{"punctuation collapsed", "C++ & Rust!", "c-rust"},
		{"surrounding whitespace", "  data science  ", "data-science"},
		{"digits kept", "Web 3", "web-3"},
		{"already slug", "deep-learning", "deep-learning"},
		{"trailing punctuation", "news?", "news"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slugify(tt.in))
		})
	}
}
