package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindURLs(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{
			name:     "single url",
			text:     "see https://example.com/a",
			expected: []string{"https://example.com/a"},
		},
		{
			name:     "trailing punctuation stripped",
			text:     "read https://example.com/a. Then (https://example.org/b), ok?",
			expected: []string{"https://example.com/a", "https://example.org/b"},
		},
		{
			name:     "deduplicated in first-seen order",
			text:     "https://b.com https://a.com https://b.com",
			expected: []string{"https://b.com", "https://a.com"},
		},
		{
			name:     "dedup after stripping",
			text:     "https://a.com, and again https://a.com",
			expected: []string{"https://a.com"},
		},
		{
			name:     "query and port kept",
			text:     "api at http://localhost:8080/v1?x=1 now",
			expected: []string{"http://localhost:8080/v1?x=1"},
		},
		{
			name:     "ipv4 host",
			text:     "http://192.168.1.10/status",
			expected: []string{"http://192.168.1.10/status"},
		},
		{
			name:     "chinese text around url",
			text:     "推荐一篇文章 https://arxiv.org/abs/2401.00001 很好",
			expected: []string{"https://arxiv.org/abs/2401.00001"},
		},
		{
			name:     "uppercase scheme",
			text:     "HTTPS://EXAMPLE.COM/X",
			expected: []string{"HTTPS://EXAMPLE.COM/X"},
		},
		{name: "no scheme", text: "example.com/page", expected: nil},
		{name: "ftp ignored", text: "ftp://example.com/file", expected: nil},
		{name: "empty", text: "", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FindURLs(tt.text))
		})
	}
}

func TestFindURLs_Idempotent(t *testing.T) {
	inputs := []string{
		"a https://x.com/1, b https://y.com/2; c https://x.com/1",
		"https://example.com/path_(with)_parens).",
		"see: https://example.com/a?b=c&d=e!",
	}

	for _, in := range inputs {
		first := FindURLs(in)
		again := FindURLs(strings.Join(first, " "))
		assert.Equal(t, first, again, "input %q", in)
		for _, u := range first {
			assert.NotEmpty(t, u)
		}
	}
}

func TestIsURL(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"https://example.com", true},
		{"https://example.com/", true},
		{"http://example.com/path?q=1", true},
		{"https://sub.example.co.uk/a/b", true},
		{"http://localhost:3000", true},
		{"https://example.com extra", false},
		{"look https://example.com", false},
		{"example.com", false},
		{"https://", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsURL(tt.input))
		})
	}
}

func TestHasHTTPScheme(t *testing.T) {
	assert.True(t, HasHTTPScheme("http://x"))
	assert.True(t, HasHTTPScheme("HTTPS://x"))
	assert.False(t, HasHTTPScheme("/home/u/file.pdf"))
	assert.False(t, HasHTTPScheme("file:///tmp/a"))
}
