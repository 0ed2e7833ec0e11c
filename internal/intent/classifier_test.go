package intent_test

import (
	"testing"

	"github.com/ghostquant/voicequery/internal/intent"
)

func TestClassifier_Kinds(t *testing.T) {
	t.Parallel()

	c := intent.NewClassifier(nil)

	tests := []struct {
		query      string
		want       intent.Kind
		confidence float64
	}{
		{"what is this page", intent.PageInquiry, 0.95},
		{"what's this?", intent.PageInquiry, 0.95},
		{"where am i", intent.PageInquiry, 0.95},
		{"explain this screen", intent.ExplainScreen, 0.90},
		{"describe the dashboard", intent.ExplainScreen, 0.90},
		{"walk me through this view", intent.ExplainScreen, 0.90},
		{"how does this work", intent.Functionality, 0.90},
		{"what is this for", intent.Functionality, 0.90},
		{"help", intent.Help, 0.95},
		{"what can you do", intent.Help, 0.95},
		{"go to the whale intelligence page", intent.Navigation, 0.85},
		{"take me to alerts", intent.Navigation, 0.85},
		{"show me whale activity", intent.DataQuery, 0.80},
		{"price of bitcoin", intent.DataQuery, 0.80},
		{"analyze this wallet", intent.DataQuery, 0.80},
		{"banana banana banana", intent.Unknown, 0.5},
		{"", intent.Unknown, 0.5},
	}
	for _, tc := range tests {
		got := c.Classify(tc.query)
		if got.Kind != tc.want {
			t.Errorf("Classify(%q).Kind = %s, want %s", tc.query, got.Kind, tc.want)
			continue
		}
		if got.Confidence != tc.confidence {
			t.Errorf("Classify(%q).Confidence = %f, want %f", tc.query, got.Confidence, tc.confidence)
		}
	}
}

func TestClassifier_PriorityOrder(t *testing.T) {
	t.Parallel()

	c := intent.NewClassifier(nil)

	// "what does this analyze" matches both a Functionality pattern and the
	// DataQuery analyze pattern; the earlier rule must win.
	got := c.Classify("what does this analyze")
	if got.Kind != intent.Functionality {
		t.Errorf("Classify(%q).Kind = %s, want %s", "what does this analyze", got.Kind, intent.Functionality)
	}

	// "what does this page do" must not fall into PageInquiry.
	got = c.Classify("what does this page do")
	if got.Kind != intent.Functionality {
		t.Errorf("Classify(%q).Kind = %s, want %s", "what does this page do", got.Kind, intent.Functionality)
	}

	// "help me find whale transfers" starts with "help"; Help outranks
	// DataQuery even though the find pattern also matches.
	got = c.Classify("help me find whale transfers")
	if got.Kind != intent.Help {
		t.Errorf("Classify(%q).Kind = %s, want %s", "help me find whale transfers", got.Kind, intent.Help)
	}
}

func TestClassifier_NavigationDestination(t *testing.T) {
	t.Parallel()

	c := intent.NewClassifier(nil)

	tests := []struct {
		query string
		want  string
	}{
		{"go to the whale intelligence page", "whale intelligence page"},
		{"take me to alerts", "alerts"},
		{"open the wallet profiler", "wallet profiler"},
		{"show me the market intelligence dashboard", "market intelligence"},
		{"navigate to trading intelligence.", "trading intelligence"},
	}
	for _, tc := range tests {
		got := c.Classify(tc.query)
		if got.Kind != intent.Navigation {
			t.Errorf("Classify(%q).Kind = %s, want %s", tc.query, got.Kind, intent.Navigation)
			continue
		}
		if got.Params["destination"] != tc.want {
			t.Errorf("Classify(%q).Params[destination] = %q, want %q", tc.query, got.Params["destination"], tc.want)
		}
	}
}

func TestClassifier_DataQuerySubject(t *testing.T) {
	t.Parallel()

	c := intent.NewClassifier(nil)

	got := c.Classify("show me whale activity")
	if got.Kind != intent.DataQuery {
		t.Fatalf("Classify: Kind = %s, want %s", got.Kind, intent.DataQuery)
	}
	if got.Params["subject"] != "whale activity" {
		t.Errorf("Classify: Params[subject] = %q, want %q", got.Params["subject"], "whale activity")
	}

	got = c.Classify("what is the price of ethereum?")
	if got.Kind != intent.DataQuery {
		t.Fatalf("Classify: Kind = %s, want %s", got.Kind, intent.DataQuery)
	}
	if got.Params["subject"] != "ethereum" {
		t.Errorf("Classify: Params[subject] = %q, want %q", got.Params["subject"], "ethereum")
	}
}

func TestClassifier_CaseAndWhitespace(t *testing.T) {
	t.Parallel()

	c := intent.NewClassifier(nil)

	got := c.Classify("  EXPLAIN THIS SCREEN  ")
	if got.Kind != intent.ExplainScreen {
		t.Errorf("Classify: Kind = %s, want %s", got.Kind, intent.ExplainScreen)
	}
}

func TestClassifier_UnknownHasNoParams(t *testing.T) {
	t.Parallel()

	c := intent.NewClassifier(nil)

	got := c.Classify("gibberish input")
	if got.Kind != intent.Unknown || got.Params != nil {
		t.Errorf("Classify = %+v, want Unknown with nil Params", got)
	}
}
