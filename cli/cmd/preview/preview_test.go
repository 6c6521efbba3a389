package preview

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/ecstasy/markup"
	"github.com/ardnew/ecstasy/style"
)

func testModel(t *testing.T) model {
	t.Helper()

	cat := markup.MustCatalog(
		markup.Styles(style.Bold, style.Underline),
		markup.Named(map[string]style.Combination{"error": style.FgRed}),
	)

	return newModel(t.Context(), Config{Catalog: cat, Theme: "test"}, NewHistory(""))
}

func typeText(m model, s string) model {
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})

	return next.(model)
}

func press(m model, k tea.KeyType) model {
	next, _ := m.Update(tea.KeyMsg{Type: k})

	return next.(model)
}

func TestLivePreview(t *testing.T) {
	m := typeText(testModel(t), "<hi> <there>")

	view := m.View()

	for _, want := range []string{
		"\033[1mhi\033[0;m",
		"\033[4mthere\033[0;m",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("View() = %q, want it to contain %q", view, want)
		}
	}
}

func TestPreviewError(t *testing.T) {
	m := typeText(testModel(t), "<a <b")

	if view := m.View(); !strings.Contains(view, markup.ErrUnterminated.Error()) {
		t.Errorf("View() = %q, want unterminated error", view)
	}
}

func TestNameCompletion(t *testing.T) {
	m := typeText(testModel(t), "<err")

	if len(m.matches) != 1 || m.matches[0].Str != "error" {
		t.Fatalf("matches = %v, want [error]", m.matches)
	}

	m = press(m, tea.KeyTab)

	if got := m.input.Value(); got != "<error" {
		t.Errorf("input after Tab = %q, want %q", got, "<error")
	}
}

func TestCommandMode(t *testing.T) {
	m := typeText(testModel(t), "<kept>")
	m = press(m, tea.KeyEsc)

	if m.mode != modeCtrl {
		t.Fatalf("mode after Esc = %v, want command mode", m.mode)
	}

	if m.input.Value() != "" {
		t.Errorf("command input = %q, want empty", m.input.Value())
	}

	m = typeText(m, "th")
	m = press(m, tea.KeyTab)

	if got := m.input.Value(); got != "theme" {
		t.Fatalf("input after Tab = %q, want %q", got, "theme")
	}

	m = typeText(m, " mono")
	m = press(m, tea.KeyEnter)

	if m.theme != "mono" {
		t.Errorf("theme = %q, want %q", m.theme, "mono")
	}

	if got, _ := m.catalog.Positional(0); got != style.Bold {
		t.Errorf("Positional(0) = %v, want %v", got, style.Bold)
	}

	m = press(m, tea.KeyEsc)

	if got := m.input.Value(); m.mode != modeMarkup || got != "<kept>" {
		t.Errorf("after returning to markup mode: mode %v, input %q", m.mode, got)
	}
}

func TestHistoryNavigation(t *testing.T) {
	m := testModel(t)

	m = typeText(m, "<one>")
	m = press(m, tea.KeyEnter)
	m = press(m, tea.KeyEsc)
	m = typeText(m, "styles")
	m = press(m, tea.KeyEnter)

	m = press(m, tea.KeyUp)
	if got := m.input.Value(); got != "styles" || m.mode != modeCtrl {
		t.Errorf("first Up = %q in mode %v", got, m.mode)
	}

	m = press(m, tea.KeyUp)
	if got := m.input.Value(); got != "<one>" || m.mode != modeMarkup {
		t.Errorf("second Up = %q in mode %v", got, m.mode)
	}

	m = press(m, tea.KeyDown)
	m = press(m, tea.KeyDown)

	if got := m.input.Value(); got != "" || m.historyIdx != m.history.Len() {
		t.Errorf("after Down past end: input %q, index %d", got, m.historyIdx)
	}
}

func TestQuit(t *testing.T) {
	for _, k := range []tea.KeyType{tea.KeyCtrlC, tea.KeyCtrlD} {
		next, cmd := testModel(t).Update(tea.KeyMsg{Type: k})

		if !next.(model).quitting || cmd == nil {
			t.Errorf("key %v did not quit", k)
		}

		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("key %v returned %T, want tea.QuitMsg", k, cmd())
		}
	}
}

func TestStylesListing(t *testing.T) {
	out := testModel(t).styles()

	for _, want := range []string{"0  \033[1mbold\033[0m", "error  \033[91mfg.red\033[0m"} {
		if !strings.Contains(out, want) {
			t.Errorf("styles() = %q, want it to contain %q", out, want)
		}
	}
}
