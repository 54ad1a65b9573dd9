package input

import "testing"

var testCommands = []PromptCommand{
	{Name: "/draft", Description: "Draft"},
	{Name: "/goto", Description: "Goto"},
}

func TestPromptMatchingCommands(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{name: "no_slash", input: "draft", want: 0},
		{name: "empty", input: "", want: 0},
		{name: "slash", input: "/", want: 2},
		{name: "full", input: "/draft", want: 1},
		{name: "prefix_case", input: "/G", want: 1},
		{name: "with_space", input: "/draft x", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PromptMatchingCommands(tt.input, testCommands)
			if len(got) != tt.want {
				t.Fatalf("matches = %d, want %d", len(got), tt.want)
			}
		})
	}
}

func TestPromptAutocomplete(t *testing.T) {
	value, ok := PromptAutocomplete("/g", testCommands)
	if !ok {
		t.Fatal("expected autocomplete")
	}
	if value != "/goto " {
		t.Fatalf("value = %q, want %q", value, "/goto ")
	}

	if _, ok := PromptAutocomplete("/x", testCommands); ok {
		t.Fatal("unexpected completion for /x")
	}
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		value    string
		wantName string
		wantArg  string
	}{
		{"/goto  tomorrow ", "/goto", "tomorrow"},
		{"/DRAFT lunch with Ana", "/draft", "lunch with Ana"},
		{"/stats", "/stats", ""},
		{"  lunch at noon", "", "lunch at noon"},
	}
	for _, tt := range tests {
		name, arg := ParseCommand(tt.value)
		if name != tt.wantName || arg != tt.wantArg {
			t.Errorf("ParseCommand(%q) = %q, %q; want %q, %q", tt.value, name, arg, tt.wantName, tt.wantArg)
		}
	}
}
