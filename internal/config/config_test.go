package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocalMediaPath(t *testing.T) {
	cases := []struct {
		baseURL string
		path    string
		local   bool
	}{
		{"/media", "/media", true},
		{"/uploads/images", "/uploads/images", true},
		{"https://cdn.example.com/media", "", false},
		{"http://localhost:9000/bucket", "", false},
		{"media", "", false},
		{"", "", false},
	}

	for _, tc := range cases {
		cfg := &Config{MediaBaseURL: tc.baseURL}
		path, ok := cfg.LocalMediaPath()
		assert.Equal(t, tc.local, ok, "base url %q", tc.baseURL)
		assert.Equal(t, tc.path, path, "base url %q", tc.baseURL)
	}
}
