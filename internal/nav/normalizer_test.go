package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const testTemplate = "https://www.google.com/search?q=%s"

func TestNormalizeSchemePassthrough(t *testing.T) {
	n := New(testTemplate)

	for _, in := range []string{
		"http://example.com",
		"https://example.com/path?a=1",
		"file:///home/user/doc.html",
		"https://has spaces.example/but scheme wins",
	} {
		out, ok := n.Normalize(in)
		assert.True(t, ok)
		assert.Equal(t, in, out)
	}
}

func TestNormalizeBareDomain(t *testing.T) {
	n := New(testTemplate)

	cases := map[string]string{
		"example.com":          "https://example.com",
		"sub.domain.co.uk/x":   "https://sub.domain.co.uk/x",
		"localhost.local:8080": "https://localhost.local:8080",
	}
	for in, want := range cases {
		out, ok := n.Normalize(in)
		assert.True(t, ok)
		assert.Equal(t, want, out)
	}
}

func TestNormalizeSearchQuery(t *testing.T) {
	n := New(testTemplate)

	cases := map[string]string{
		"hello world":  "https://www.google.com/search?q=hello+world",
		"what is go?":  "https://www.google.com/search?q=what+is+go%3F",
		"nodothere":    "https://www.google.com/search?q=nodothere",
		"trailingdot.": "https://www.google.com/search?q=trailingdot.",
		"a.b c.d":      "https://www.google.com/search?q=a.b+c.d",
	}
	for in, want := range cases {
		out, ok := n.Normalize(in)
		assert.True(t, ok)
		assert.Equal(t, want, out)
	}
}

func TestNormalizeEmpty(t *testing.T) {
	n := New(testTemplate)

	for _, in := range []string{"", "   ", "\t\n"} {
		_, ok := n.Normalize(in)
		assert.False(t, ok)
	}
}

func TestNormalizeCustomTemplate(t *testing.T) {
	n := New("https://duckduckgo.com/?q=%s")

	out, ok := n.Normalize("two words")
	assert.True(t, ok)
	assert.Equal(t, "https://duckduckgo.com/?q=two+words", out)
}
