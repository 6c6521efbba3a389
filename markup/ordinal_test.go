package markup

import "testing"

func TestOrdinal(t *testing.T) {
	tests := map[int]string{
		0:       "a 0th",
		1:       "a 1st",
		2:       "a 2nd",
		3:       "a 3rd",
		5:       "a 5th",
		8:       "an 8th",
		11:      "an 11th",
		12:      "a 12th",
		13:      "a 13th",
		18:      "an 18th",
		21:      "a 21st",
		32:      "a 32nd",
		56:      "a 56th",
		80:      "an 80th",
		111:     "a 111th",
		123:     "a 123rd",
		1001:    "a 1,001st",
		11000:   "an 11,000th",
		8000000: "an 8,000,000th",
	}

	for n, want := range tests {
		if got := Ordinal(n); got != want {
			t.Errorf("Ordinal(%d) = %q, want %q", n, got, want)
		}
	}
}
