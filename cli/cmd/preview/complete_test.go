package preview

import "testing"

func TestWordBounds(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		cursor    int
		delims    string
		wantWord  string
		wantStart int
		wantEnd   int
	}{
		{"simple", "foo", 3, "", "foo", 0, 3},
		{"second word", "theme mo", 8, "", "mo", 6, 8},
		{"mid word", "foobar", 3, "", "foobar", 0, 6},
		{"at start", "foo", 0, "", "foo", 0, 3},
		{"after space", "theme ", 6, "", "", 6, 6},
		{"after open", "x <er", 5, "<>", "er", 3, 5},
		{"before close", "<err>", 4, "<>", "err", 1, 4},
		{"cursor past end", "ab", 9, "", "ab", 0, 2},
		{"multibyte", "<ñó", 5, "<>", "ñó", 1, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			word, start, end := wordBounds(tt.input, tt.cursor, tt.delims)
			if word != tt.wantWord || start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("wordBounds(%q, %d) = (%q, %d, %d), want (%q, %d, %d)",
					tt.input, tt.cursor, word, start, end,
					tt.wantWord, tt.wantStart, tt.wantEnd)
			}
		})
	}
}
