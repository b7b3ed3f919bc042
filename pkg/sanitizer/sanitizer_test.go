package sanitizer

import "testing"

func TestSanitizeDisplayName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain name", input: "Quarterly planning", want: "Quarterly planning"},
		{name: "surrounding whitespace", input: "  Team sync  ", want: "Team sync"},
		{name: "internal whitespace collapsed", input: "Team   sync\tmeeting", want: "Team sync meeting"},
		{name: "control characters removed", input: "Team\x00 sync\x1b", want: "Team sync"},
		{name: "case preserved", input: "QBR with CFO", want: "QBR with CFO"},
		{name: "empty", input: "", want: ""},
		{name: "only whitespace", input: "   ", want: ""},
		{name: "newlines become spaces", input: "Team\nsync", want: "Team sync"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeDisplayName(tt.input); got != tt.want {
				t.Errorf("SanitizeDisplayName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeDescription(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "keeps newlines", input: "Agenda:\n- budget\n- hiring", want: "Agenda:\n- budget\n- hiring"},
		{name: "keeps tabs", input: "item\tdetail", want: "item\tdetail"},
		{name: "strips other control chars", input: "note\x00\x07 here", want: "note here"},
		{name: "trims ends", input: "  multi\nline  ", want: "multi\nline"},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeDescription(tt.input); got != tt.want {
				t.Errorf("SanitizeDescription(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeEmail(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "Joao.Silva@Example.COM", want: "joao.silva@example.com"},
		{input: "  ana@example.com ", want: "ana@example.com"},
		{input: "", want: ""},
	}

	for _, tt := range tests {
		if got := SanitizeEmail(tt.input); got != tt.want {
			t.Errorf("SanitizeEmail(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
