package normalize

import "testing"

func TestCanonical(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "simple name",
			input: "Jane Doe",
			want:  "JANE DOE",
		},
		{
			name:  "mixed case with extra whitespace",
			input: "  jane \t DOE ",
			want:  "JANE DOE",
		},
		{
			name:  "emoji chat handle",
			input: "June🔥 Appleseed✨",
			want:  "JUNE APPLESEED",
		},
		{
			name:  "hyphen and apostrophe preserved",
			input: "Mary-Kate O'Brien",
			want:  "MARY-KATE O'BRIEN",
		},
		{
			name:  "punctuation stripped",
			input: "Doe, Jane",
			want:  "DOE JANE",
		},
		{
			name:  "empty",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Canonical(tt.input); got != tt.want {
				t.Errorf("Canonical(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTitle(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"jane", "Jane"},
		{"JANE DOE", "Jane Doe"},
		{"  homeroom   smith ", "Homeroom Smith"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Title(tt.input); got != tt.want {
				t.Errorf("Title(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParts(t *testing.T) {
	got := Parts("  Jane   Q. Doe ")
	want := []string{"JANE", "Q.", "DOE"}
	if len(got) != len(want) {
		t.Fatalf("Parts() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Parts()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestDigits(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"(555) 123-4567", "5551234567"},
		{"+1 555 123 4567", "15551234567"},
		{"none", ""},
	}

	for _, tt := range tests {
		if got := Digits(tt.input); got != tt.want {
			t.Errorf("Digits(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
