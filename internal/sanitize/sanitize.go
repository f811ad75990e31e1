// Package sanitize recovers structured payloads from free-form model output.
package sanitize

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

var (
	fenceOpen  = regexp.MustCompile("```json\\s*")
	fenceClose = regexp.MustCompile("```\\s*")
	// Leading option labels such as "A ", "b) " or "C. ".
	optionLabel = regexp.MustCompile(`^(?i)[A-D][).:]?\s+`)
)

// ExtractJSON slices text from the first '{' to the last '}' inclusive,
// drops fenced code block markers and trims whitespace. The result is not
// guaranteed to be valid JSON.
func ExtractJSON(text string) string {
	if i := strings.IndexByte(text, '{'); i >= 0 {
		text = text[i:]
	}
	if j := strings.LastIndexByte(text, '}'); j >= 0 {
		text = text[:j+1]
	}
	text = fenceOpen.ReplaceAllString(text, "")
	text = fenceClose.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// StripOptionLabel removes a leading multiple-choice label and trims.
func StripOptionLabel(s string) string {
	s = strings.TrimSpace(s)
	return strings.TrimSpace(optionLabel.ReplaceAllString(s, ""))
}

var folder = cases.Fold()

// Normalize prepares an answer for comparison: Unicode NFC, trimmed,
// case folded.
func Normalize(s string) string {
	return folder.String(norm.NFC.String(strings.TrimSpace(s)))
}

// Equivalent reports whether two answers match after normalization.
func Equivalent(a, b string) bool {
	return Normalize(a) == Normalize(b)
}
