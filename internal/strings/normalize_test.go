package strings

import "testing"

func TestSingleLine(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "empty",
			input: "",
			want:  "",
		},
		{
			name:  "whitespace only",
			input: " \n\t ",
			want:  "",
		},
		{
			name:  "single token",
			input: "milk",
			want:  "milk",
		},
		{
			name:  "keeps inner spacing",
			input: "buy  2   eggs",
			want:  "buy  2   eggs",
		},
		{
			name:  "replaces line breaks",
			input: "walk\r\nthe\rdog\n",
			want:  "walk the dog",
		},
		{
			name:  "trims ends",
			input: "\t milk \n",
			want:  "milk",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := SingleLine(tc.input)
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestIsBlank(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{input: "", want: true},
		{input: "   ", want: true},
		{input: "\n\t", want: true},
		{input: " x ", want: false},
	}

	for _, tc := range cases {
		if got := IsBlank(tc.input); got != tc.want {
			t.Fatalf("IsBlank(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestNormalizeNewlines(t *testing.T) {
	got := NormalizeNewlines("a\r\nb\rc\n")
	if got != "a\nb\nc\n" {
		t.Fatalf("expected LF newlines, got %q", got)
	}
}

func TestTrimTrailingNewlines(t *testing.T) {
	got := TrimTrailingNewlines("done\r\n\n")
	if got != "done" {
		t.Fatalf("expected %q, got %q", "done", got)
	}
}
