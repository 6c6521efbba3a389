package markup

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Argument flag markers.
const (
	markOverride  = '!'
	markIncrement = '+'
)

// arguments is a parsed argument sequence.
type arguments struct {
	indices   []int
	override  bool
	increment bool
}

// parseArguments parses the interior of an argument sequence:
//
//	argbody := index (',' index)* flags? | flags? index (',' index)* | flags
//	index   := ['-'] digit+
//	flags   := '!' | '+' | '!+' | '+!'
//
// Whitespace anywhere in body is ignored.
func parseArguments(body string) (arguments, bool) {
	body = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}

		return r
	}, body)

	var a arguments

	lead := flagPrefix(body)
	body = body[len(lead):]
	trail := flagSuffix(body)
	body = body[:len(body)-len(trail)]

	switch {
	case lead != "" && trail != "":
		return a, false
	case !a.setFlags(lead + trail):
		return a, false
	case body == "":
		return a, lead+trail != ""
	}

	for part := range strings.SplitSeq(body, ",") {
		i, ok := parseIndex(part)
		if !ok {
			return arguments{}, false
		}

		a.indices = append(a.indices, i)
	}

	return a, true
}

func isFlag(b byte) bool { return b == markOverride || b == markIncrement }

func flagPrefix(s string) string {
	n := 0
	for n < len(s) && n < 2 && isFlag(s[n]) {
		n++
	}

	return s[:n]
}

func flagSuffix(s string) string {
	n := 0
	for n < len(s) && n < 2 && isFlag(s[len(s)-1-n]) {
		n++
	}

	return s[len(s)-n:]
}

// setFlags applies a flag group, rejecting a repeated marker.
func (a *arguments) setFlags(flags string) bool {
	for i := range len(flags) {
		switch flags[i] {
		case markOverride:
			if a.override {
				return false
			}

			a.override = true

		case markIncrement:
			if a.increment {
				return false
			}

			a.increment = true
		}
	}

	return true
}

func parseIndex(s string) (int, bool) {
	digits := strings.TrimPrefix(s, "-")
	if digits == "" {
		return 0, false
	}

	for i := range len(digits) {
		if digits[i] < '0' || digits[i] > '9' {
			return 0, false
		}
	}

	i, err := strconv.Atoi(s)
	if errors.Is(err, strconv.ErrRange) {
		// Too large for any catalog; resolution reports it out of range.
		if s[0] == '-' {
			return math.MinInt, true
		}

		return math.MaxInt, true
	}

	return i, err == nil
}
