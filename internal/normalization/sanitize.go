package normalization

import (
	"regexp"
	"strings"
)

const (
	maxTextLen     = 10000
	maxFileNameLen = 100
)

var (
	jsSchemeRe  = regexp.MustCompile(`(?i)javascript:`)
	onAttrRe    = regexp.MustCompile(`(?i)\bon\w+\s*=`)
	fileCharRe  = regexp.MustCompile(`[^0-9A-Za-z_\-À-ÖØ-öø-ÿ]`)
	underscores = regexp.MustCompile(`_+`)
)

// SanitizeText strips markup-significant characters and script-bearing
// patterns from free text before it reaches a prompt or a rendered document.
// Pure and idempotent; empty input yields empty output.
func SanitizeText(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, "<", "")
	s = strings.ReplaceAll(s, ">", "")
	// Removal can splice a new match together, so run to a fixpoint.
	for jsSchemeRe.MatchString(s) {
		s = jsSchemeRe.ReplaceAllString(s, "")
	}
	for onAttrRe.MatchString(s) {
		s = onAttrRe.ReplaceAllString(s, "")
	}
	s = strings.TrimSpace(s)
	if runes := []rune(s); len(runes) > maxTextLen {
		s = strings.TrimSpace(string(runes[:maxTextLen]))
	}
	return s
}

// SanitizeFileName maps anything outside letters (accented Latin included),
// digits, underscore and hyphen to underscore, collapses runs and trims.
func SanitizeFileName(s string) string {
	if s == "" {
		return ""
	}
	s = fileCharRe.ReplaceAllString(s, "_")
	s = underscores.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if runes := []rune(s); len(runes) > maxFileNameLen {
		s = string(runes[:maxFileNameLen])
	}
	return strings.Trim(s, "_")
}
