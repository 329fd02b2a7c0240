package search

import "testing"

func TestToSearchable(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"lowercases", "Brainstorm", "brainstorm"},
		{"trims whitespace", "  Brainstorm  ", "brainstorm"},
		{"drops bracketed segments", "Forest (Alt Art)", "forest"},
		{"drops square brackets", "Island [Full Art]", "island"},
		{"strips accents", "Séance", "seance"},
		{"strips punctuation", "Ach! Hans, Run!", "ach hans run"},
		{"collapses whitespace", "Fire   //   Ice", "fire ice"},
		{"keeps digits", "Borrowing 100,000 Arrows", "borrowing 100 000 arrows"},
		{"empty", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ToSearchable(tc.in); got != tc.want {
				t.Errorf("ToSearchable(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
