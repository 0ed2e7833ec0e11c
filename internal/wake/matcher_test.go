package wake_test

import (
	"testing"

	"github.com/ghostquant/voicequery/internal/wake"
)

func TestMatcher_Matches(t *testing.T) {
	t.Parallel()

	m := wake.NewMatcher(nil)

	tests := []struct {
		in   string
		want bool
	}{
		{"Hey GhostQuant what is this page", true},
		{"hey ghostquant what is this page", true},
		{"ok ghost quant show me whale activity", true},
		{"okay, ghost-quant help", true},
		{"ghostquant take me to alerts", true},
		{"show me the current bitcoin price", false},
		{"", false},
	}
	for _, tc := range tests {
		if got := m.Matches(tc.in); got != tc.want {
			t.Errorf("Matches(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestMatcher_NormalizeRewritesAliases(t *testing.T) {
	t.Parallel()

	m := wake.NewMatcher(nil)

	tests := []struct {
		in   string
		want string
	}{
		{"hey ghostquant what is this", "Hey GhostQuant what is this"},
		{"ok ghost quant help", "Hey GhostQuant help"},
		{"ghost-quant show me the market intelligence page", "Hey GhostQuant show me the market intelligence page"},
	}
	for _, tc := range tests {
		if got := m.Normalize(tc.in); got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestMatcher_NormalizeIdempotent(t *testing.T) {
	t.Parallel()

	m := wake.NewMatcher(nil)

	once := m.Normalize("okay ghost quant where am i")
	twice := m.Normalize(once)
	if once != twice {
		t.Errorf("second pass changed output: %q -> %q", once, twice)
	}
}

func TestMatcher_ExtractQuery(t *testing.T) {
	t.Parallel()

	m := wake.NewMatcher(nil)

	tests := []struct {
		in   string
		want string
	}{
		{"Hey GhostQuant show me whale activity", "show me whale activity"},
		{"Hey GhostQuant, what is this page?", "what is this page?"},
		{"Hey GhostQuant", ""},
		{"no wake phrase here", ""},
	}
	for _, tc := range tests {
		if got := m.ExtractQuery(tc.in); got != tc.want {
			t.Errorf("ExtractQuery(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestMatcher_ExtractQueryFirstOccurrence(t *testing.T) {
	t.Parallel()

	m := wake.NewMatcher(nil)

	got := m.ExtractQuery("Hey GhostQuant tell GhostQuant to open alerts")
	want := "tell GhostQuant to open alerts"
	if got != want {
		t.Errorf("ExtractQuery = %q, want everything after the first wake phrase %q", got, want)
	}
}

func TestMatcher_Confidence(t *testing.T) {
	t.Parallel()

	m := wake.NewMatcher(nil)

	if got := m.Confidence("Hey GhostQuant what is this"); got != 1 {
		t.Errorf("Confidence(canonical) = %f, want 1", got)
	}
	if got := m.Confidence("ghost quant what is this"); got <= 0.5 || got >= 1 {
		t.Errorf("Confidence(spaced alias) = %f, want in (0.5, 1)", got)
	}
	if got := m.Confidence("nothing relevant"); got != 0 {
		t.Errorf("Confidence(no match) = %f, want 0", got)
	}
}

func TestNewMatcher_CustomAliases(t *testing.T) {
	t.Parallel()

	m := wake.NewMatcher([]wake.Alias{{
		Variants:  []string{`(?:hey\s+)?spectre`},
		Canonical: "Hey Spectre",
	}})

	if !m.Matches("hey spectre open alerts") {
		t.Error("Matches(custom alias) = false, want true")
	}
	if got := m.Normalize("spectre open alerts"); got != "Hey Spectre open alerts" {
		t.Errorf("Normalize = %q, want %q", got, "Hey Spectre open alerts")
	}
	if m.Matches("hey ghostquant open alerts") {
		t.Error("custom table should not recognise the default phrase")
	}
}
