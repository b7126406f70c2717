package textutil

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "crlf to lf", input: "a\r\nb\r\nc", want: "a\nb\nc"},
		{name: "trims whitespace", input: "  hello  \n", want: "hello"},
		{name: "empty", input: "", want: ""},
		{name: "only whitespace", input: " \r\n \t ", want: ""},
		{name: "bare cr preserved", input: "a\rb", want: "a\rb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNonBlankLines(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{name: "mixed blank", input: "a\n\n  \nb\nc", want: 3},
		{name: "empty string", input: "", want: 0},
		{name: "single line", input: "only", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := len(NonBlankLines(tt.input)); got != tt.want {
				t.Errorf("NonBlankLines(%q) returned %d lines, want %d", tt.input, got, tt.want)
			}
		})
	}
}
