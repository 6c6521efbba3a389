package preview

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/ecstasy/theme"
)

// ctrlCommands are the available command-mode commands.
var ctrlCommands = []string{"help", "theme", "styles", "clear", "quit"}

// wordBounds returns the word around cursor and its byte boundaries within
// input. Words end at whitespace and at any rune in delims.
func wordBounds(input string, cursor int, delims string) (word string, start, end int) {
	cursor = min(max(cursor, 0), len(input))

	boundary := func(r rune) bool {
		return unicode.IsSpace(r) || strings.ContainsRune(delims, r)
	}

	start = cursor

	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if boundary(r) {
			break
		}

		start -= size
	}

	end = cursor

	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if boundary(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// candidates returns the completion candidates for the word starting at
// wordStart, or nil if the word is not completable.
//
// In command mode the first word completes to a command name and the word
// after "theme" completes to a theme name. In markup mode a word directly
// after the open delimiter completes to a catalog name.
func (m model) candidates(input string, wordStart int) []string {
	if m.mode == modeCtrl {
		fields := strings.Fields(input[:wordStart])

		switch {
		case len(fields) == 0:
			return ctrlCommands

		case len(fields) == 1 && fields[0] == "theme":
			var names []string
			for _, info := range theme.List(m.dirs...) {
				names = append(names, info.Name)
			}

			return names
		}

		return nil
	}

	r, _ := utf8.DecodeLastRuneInString(input[:wordStart])
	if wordStart == 0 || r != m.open {
		return nil
	}

	return m.catalog.Names()
}

// computeMatches fuzzy-matches the word under the cursor against the
// candidates for the current mode.
func (m model) computeMatches() (fuzzy.Matches, int, int) {
	input := m.input.Value()

	delims := ""
	if m.mode == modeMarkup {
		delims = string([]rune{m.open, m.close})
	}

	word, start, end := wordBounds(input, m.input.Position(), delims)

	if word == "" {
		return nil, start, end
	}

	cands := m.candidates(input, start)
	if len(cands) == 0 {
		return nil, start, end
	}

	matches := fuzzy.Find(word, cands)

	// An exact, complete match needs no completion.
	if len(matches) == 1 && matches[0].Str == word {
		return nil, start, end
	}

	return matches, start, end
}

// renderCandidateBar renders matches on one line, highlighting the selected
// one and truncating to width.
func renderCandidateBar(matches fuzzy.Matches, selected, width int) string {
	var b strings.Builder

	used := 0

	for i, match := range matches {
		item := " " + match.Str + " "

		if used+lipgloss.Width(item) > width-1 {
			b.WriteString(hintStyle.Render("…"))

			break
		}

		used += lipgloss.Width(item)

		if i == selected {
			b.WriteString(selectedStyle.Render(item))
		} else {
			b.WriteString(suggestionStyle.Render(item))
		}
	}

	return b.String()
}
