package normalization

import (
	"regexp"
	"strings"
	"testing"
)

func TestSanitizeText_StripsMarkupAndSchemes(t *testing.T) {
	in := `<b>hello</b> javascript:alert(1) onclick=doEvil() world`
	out := SanitizeText(in)
	if strings.ContainsAny(out, "<>") {
		t.Fatalf("angle brackets survived: %q", out)
	}
	if strings.Contains(strings.ToLower(out), "javascript:") {
		t.Fatalf("javascript scheme survived: %q", out)
	}
	if strings.Contains(strings.ToLower(out), "onclick=") {
		t.Fatalf("event attribute survived: %q", out)
	}
}

func TestSanitizeText_Idempotent(t *testing.T) {
	cases := []string{
		"",
		"plain text",
		"  padded  ",
		"<script>javascript:alert(1)</script>",
		"javasjavascript:cript:alert(1)",
		"oonclick=nclick=x",
		strings.Repeat("a", 12000),
	}
	for _, c := range cases {
		once := SanitizeText(c)
		twice := SanitizeText(once)
		if once != twice {
			t.Fatalf("not idempotent for %q: %q vs %q", c, once, twice)
		}
	}
}

func TestSanitizeText_TruncatesLongInput(t *testing.T) {
	out := SanitizeText(strings.Repeat("x", 20000))
	if len([]rune(out)) > 10000 {
		t.Fatalf("expected at most 10000 chars, got %d", len([]rune(out)))
	}
}

func TestSanitizeText_EmptyInput(t *testing.T) {
	if got := SanitizeText(""); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}

func TestSanitizeFileName_AllowedCharsOnly(t *testing.T) {
	allowed := regexp.MustCompile(`^[0-9A-Za-z_\-À-ÖØ-öø-ÿ]*$`)
	cases := []string{
		"",
		"María José / summary.pdf",
		"///???***",
		"  spaces and\ttabs  ",
		strings.Repeat("a b", 200),
		"__already__underscored__",
	}
	for _, c := range cases {
		out := SanitizeFileName(c)
		if !allowed.MatchString(out) {
			t.Fatalf("disallowed char in %q (from %q)", out, c)
		}
		if len([]rune(out)) > 100 {
			t.Fatalf("too long: %d chars from %q", len([]rune(out)), c)
		}
		if strings.HasPrefix(out, "_") || strings.HasSuffix(out, "_") {
			t.Fatalf("leading/trailing underscore survived: %q", out)
		}
		if strings.Contains(out, "__") {
			t.Fatalf("underscore run survived: %q", out)
		}
	}
}

func TestSanitizeFileName_OnlyDisallowedInput(t *testing.T) {
	if got := SanitizeFileName("///???"); got != "" {
		t.Fatalf("expected empty result, got %q", got)
	}
}

func TestSanitizeFileName_KeepsAccentedLetters(t *testing.T) {
	out := SanitizeFileName("María José")
	if out != "María_José" {
		t.Fatalf("expected María_José, got %q", out)
	}
}
