// Package nav turns free-form address-bar text into a navigable URL.
package nav

import (
	"net/url"
	"strings"
)

// schemes the address bar passes through verbatim.
var passthrough = []string{"http://", "https://", "file://"}

// Normalizer classifies address-bar input as a literal URL or a search
// query. It performs no well-formedness validation beyond its rules;
// malformed results are handed to the engine, which reports load failures
// on its own.
type Normalizer struct {
	template string
}

// New creates a Normalizer with the given search template. The template
// must contain a %s verb which receives the escaped query.
func New(template string) *Normalizer {
	return &Normalizer{template: template}
}

// Normalize resolves raw input to a navigable URL. The second return is
// false when the input is empty after trimming and no navigation should
// happen.
//
// Rules, in order: a recognized scheme prefix is used verbatim; text with
// no space, at least one dot and no trailing dot is treated as a bare
// domain and gets https:// prepended; everything else becomes a search
// query.
func (n *Normalizer) Normalize(raw string) (string, bool) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return "", false
	}
	for _, scheme := range passthrough {
		if strings.HasPrefix(text, scheme) {
			return text, true
		}
	}
	if !strings.Contains(text, " ") && strings.Contains(text, ".") && !strings.HasSuffix(text, ".") {
		return "https://" + text, true
	}
	return strings.Replace(n.template, "%s", url.QueryEscape(text), 1), true
}
