package markup

import (
	"strconv"
	"strings"
)

// Ordinal spells n as an English ordinal with its indefinite article,
// grouping digits by thousands: "a 1st", "an 8th", "an 11th", "a 123rd",
// "an 11,000th".
func Ordinal(n int) string {
	m := n
	if m < 0 {
		m = -m
	}

	digits := strconv.Itoa(m)

	lead := len(digits) % 3
	if lead == 0 {
		lead = min(3, len(digits))
	}

	article := "a "

	switch head := digits[:lead]; {
	case head[0] == '8', head == "11", head == "18":
		article = "an "
	}

	suffix := "th"

	if tens := m % 100; tens < 11 || tens > 13 {
		switch m % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}

	var sb strings.Builder

	sb.WriteString(article)

	if n < 0 {
		sb.WriteByte('-')
	}

	sb.WriteString(digits[:lead])

	for i := lead; i < len(digits); i += 3 {
		sb.WriteByte(',')
		sb.WriteString(digits[i : i+3])
	}

	sb.WriteString(suffix)

	return sb.String()
}
