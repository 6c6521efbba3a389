// Package preview implements an interactive terminal for trying out markup.
//
// Each keystroke re-renders the typed markup with the current catalog.
// Pressing Esc toggles command mode, where the catalog can be inspected or
// replaced by another theme.
package preview

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/ecstasy/log"
	"github.com/ardnew/ecstasy/markup"
	"github.com/ardnew/ecstasy/style"
	"github.com/ardnew/ecstasy/theme"
)

const (
	markupPrompt = "➜ "
	ctrlPrompt   = " :"
)

func helpMessage() string {
	return `
: Commands (press Esc to toggle mode):

  help         Print this message
  theme [NAME] Show or switch the active theme
  styles       List the styles of the active theme
  clear        Clear screen
  quit         Exit preview

Usage:
  Type markup to see it rendered as you type
  Press Enter to print the rendered line above the prompt
  Press Tab / Shift-Tab to cycle through completions
  Press Esc to toggle between markup and command modes
  Use Up/Down arrows for history navigation
  Press Ctrl+C on empty line or Ctrl+D to exit
`
}

// inputMode represents the current input mode.
type inputMode int

const (
	modeMarkup inputMode = iota
	modeCtrl
)

// Styles.
var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	ctrlPromptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("5")).
			Bold(true)
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	selectedStyle   = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
)

// Config holds the initial state of a preview session.
type Config struct {
	// Catalog styles the typed markup.
	Catalog *markup.Catalog
	// Theme names the theme Catalog was built from.
	Theme string
	// ThemeDirs are searched by the theme command.
	ThemeDirs []string
	// Open and Close are the phrase delimiters used for completion. Zero
	// values select the defaults.
	Open, Close rune
	// Options configure the scanner.
	Options []markup.Option
	// CacheDir holds the history file. Empty disables persistence.
	CacheDir string
	Logger   log.Logger
}

// model is the Bubble Tea model for the preview.
type model struct {
	ctxFunc      func() context.Context
	input        textinput.Model
	catalog      *markup.Catalog
	theme        string
	dirs         []string
	open, close  rune
	opts         []markup.Option
	logger       log.Logger
	history      *History
	historyIdx   int
	matches      fuzzy.Matches // current fuzzy match results
	wordStart    int           // byte offset of current word start
	wordEnd      int           // byte offset of current word end
	suggIdx      int           // selected candidate index
	tabActive    bool          // whether user is tab-cycling
	preTabText   string        // input text before tab-cycling began
	preTabCursor int           // cursor position before tab-cycling began
	width        int           // terminal width for truncation
	quitting     bool
	mode         inputMode
	markupText   string
	markupCursor int
	ctrlText     string
	ctrlCursor   int
}

// Run starts an interactive preview session.
func Run(ctx context.Context, cfg Config) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	if cfg.Catalog == nil {
		return ErrNoCatalog
	}

	if cfg.Logger.Logger == nil {
		cfg.Logger = log.Discard()
	}

	cfg.Logger.TraceContext(ctx, "preview start",
		slog.String("cache_dir", cfg.CacheDir),
		slog.String("theme", cfg.Theme),
	)

	var path string
	if cfg.CacheDir != "" {
		path = filepath.Join(cfg.CacheDir, baseHistory)
	}

	history := NewHistory(path)
	if err := history.Load(); err != nil {
		cfg.Logger.WarnContext(ctx, "could not load history",
			slog.String("path", path),
			slog.Any("error", err),
		)
	}

	p := tea.NewProgram(newModel(ctx, cfg, history), tea.WithContext(ctx))
	_, err = p.Run()

	return err
}

const defaultWidth = 80

func newModel(ctx context.Context, cfg Config, history *History) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(markupPrompt)
	ti.Focus()
	ti.CharLimit = 1024
	ti.Width = defaultWidth

	if cfg.Logger.Logger == nil {
		cfg.Logger = log.Discard()
	}

	if cfg.Open == 0 {
		cfg.Open = markup.DefaultOpen
	}

	if cfg.Close == 0 {
		cfg.Close = markup.DefaultClose
	}

	return model{
		ctxFunc:    func() context.Context { return ctx },
		input:      ti,
		catalog:    cfg.Catalog,
		theme:      cfg.Theme,
		dirs:       cfg.ThemeDirs,
		open:       cfg.Open,
		close:      cfg.Close,
		opts:       cfg.Options,
		logger:     cfg.Logger,
		history:    history,
		historyIdx: history.Len(),
		suggIdx:    -1,
		width:      defaultWidth,
		mode:       modeMarkup,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - len(markupPrompt) - 2

		return m, nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

// render beautifies text with the current catalog.
func (m model) render(text string) (markup.Result, error) {
	return markup.Beautify(m.ctxFunc(), text, m.catalog, m.opts...)
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n")

	input := m.input.Value()

	switch {
	case m.historyIdx < m.history.Len():
		hint := fmt.Sprintf("%s/%d",
			lipgloss.NewStyle().Bold(true).Render(strconv.Itoa(m.historyIdx+1)),
			m.history.Len())
		b.WriteString(hintStyle.Render(hint))

	case len(m.matches) > 0:
		b.WriteString(renderCandidateBar(m.matches, m.suggIdx, m.width))

	case strings.TrimSpace(input) == "":
		if m.mode == modeMarkup {
			b.WriteString(hintStyle.Render("Type markup or press Esc for commands"))
		} else {
			b.WriteString(hintStyle.Render(
				"Type: " + strings.Join(ctrlCommands, ", ") + " (press Esc to return)"))
		}

	case m.mode == modeMarkup:
		b.WriteString(m.preview(input))
	}

	b.WriteString("\n")

	return b.String()
}

// preview renders input for display below the prompt.
func (m model) preview(input string) string {
	res, err := m.render(input)
	if err != nil {
		return errorStyle.Render(err.Error())
	}

	if n := len(res.Diagnostics); n > 0 {
		return res.Text + hintStyle.Render(fmt.Sprintf("  (%d warning%s: %s)",
			n, plural(n), res.Diagnostics[0]))
	}

	return res.Text
}

func plural(n int) string {
	if n == 1 {
		return ""
	}

	return "s"
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.input.SetValue("")
		m.tabActive = false
		m.historyIdx = m.history.Len()
		refreshMatches(&m)

		return m, nil

	case tea.KeyCtrlD:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		return m, nil

	case tea.KeyEnter:
		if m.tabActive && len(m.matches) > 0 {
			// Lock in the current candidate without executing.
			m.tabActive = false
			refreshMatches(&m)

			return m, nil
		}

		return m.executeInput()

	case tea.KeyTab:
		return m.cycle(1), nil

	case tea.KeyShiftTab:
		return m.cycle(-1), nil

	case tea.KeyUp:
		return m.historyStep(-1), nil

	case tea.KeyDown:
		return m.historyStep(1), nil

	case tea.KeyEsc:
		if m.tabActive {
			m.tabActive = false
			m.input.SetValue(m.preTabText)
			m.input.SetCursor(m.preTabCursor)
			refreshMatches(&m)

			return m, nil
		}

		return m.toggleMode(), nil
	}

	var cmd tea.Cmd

	m.tabActive = false
	m.historyIdx = m.history.Len()
	m.input, cmd = m.input.Update(msg)
	refreshMatches(&m)

	return m, cmd
}

// cycle moves the selected candidate by step and substitutes it into the
// input. A single candidate is accepted immediately.
func (m model) cycle(step int) model {
	n := len(m.matches)
	if n == 0 {
		return m
	}

	if n == 1 {
		replaceCurrentWord(&m, m.matches[0].Str)
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil

		return m
	}

	if m.tabActive {
		m.suggIdx = (m.suggIdx + step + n) % n
	} else {
		m.tabActive = true
		m.preTabText = m.input.Value()
		m.preTabCursor = m.input.Position()

		m.suggIdx = 0
		if step < 0 {
			m.suggIdx = n - 1
		}
	}

	replaceCurrentWord(&m, m.matches[m.suggIdx].Str)

	return m
}

// replaceCurrentWord replaces the current word in the input with
// replacement and moves the cursor after it.
func replaceCurrentWord(m *model, replacement string) {
	input := m.input.Value()
	cursor := m.wordStart + len(replacement)

	m.input.SetValue(input[:m.wordStart] + replacement + input[m.wordEnd:])
	m.input.SetCursor(cursor)

	m.wordEnd = cursor
}

// refreshMatches recomputes fuzzy matches for the current input state.
func refreshMatches(m *model) {
	m.matches, m.wordStart, m.wordEnd = m.computeMatches()

	if !m.tabActive {
		m.suggIdx = -1
	}
}

func (m model) executeInput() (model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	if input == "" {
		return m, nil
	}

	_ = m.history.Write(input, m.mode)
	m.historyIdx = m.history.Len()
	m.input.SetValue("")
	refreshMatches(&m)

	if m.mode == modeCtrl {
		return m.executeCommand(input)
	}

	m.logger.TraceContext(m.ctxFunc(), "preview render", slog.String("input", input))

	res, err := m.render(input)
	if err != nil {
		return m, tea.Println(errorStyle.Render("error: " + err.Error()))
	}

	cmds := []tea.Cmd{tea.Println(res.Text)}
	for _, d := range res.Diagnostics {
		cmds = append(cmds, tea.Println(hintStyle.Render("  warning: "+d.String())))
	}

	return m, tea.Sequence(cmds...)
}

func (m model) executeCommand(input string) (model, tea.Cmd) {
	parts := strings.Fields(input)

	echo := tea.Println(ctrlPromptStyle.Render(ctrlPrompt) + input)

	m.logger.TraceContext(m.ctxFunc(), "preview command",
		slog.String("command", parts[0]),
		slog.Any("args", parts[1:]),
	)

	switch parts[0] {
	case "q", "quit", "exit":
		m.quitting = true

		return m, tea.Sequence(echo, tea.Quit)

	case "h", "help":
		return m, tea.Sequence(echo, tea.Println(helpMessage()))

	case "s", "styles":
		return m, tea.Sequence(echo, tea.Println(m.styles()))

	case "t", "theme":
		if len(parts) < 2 {
			return m, tea.Sequence(echo, tea.Println("  "+m.theme))
		}

		cat, err := loadCatalog(parts[1], m.dirs)
		if err != nil {
			return m, tea.Sequence(echo, tea.Println(errorStyle.Render("error: "+err.Error())))
		}

		m.catalog, m.theme = cat, parts[1]

		return m, tea.Sequence(echo, tea.Println(hintStyle.Render("  theme: "+m.theme)))

	case "c", "clear":
		return m, tea.ClearScreen
	}

	return m, tea.Println(
		errorStyle.Render("Unknown command: " + parts[0] + " (try 'help')"),
	)
}

func loadCatalog(name string, dirs []string) (*markup.Catalog, error) {
	t, err := theme.Find(name, dirs...)
	if err != nil {
		return nil, err
	}

	return t.Catalog()
}

// styles lists the catalog with a sample of each style.
func (m model) styles() string {
	var b strings.Builder

	sample := func(c style.Combination) string {
		codes, err := style.Encode(c)
		if err != nil {
			return errorStyle.Render(err.Error())
		}

		return "\033[" + codes + "m" + c.String() + "\033[0m"
	}

	for i := range m.catalog.Len() {
		c, _ := m.catalog.Positional(i)
		fmt.Fprintf(&b, "  %3d  %s\n", i, sample(c))
	}

	for _, name := range m.catalog.Names() {
		c, _ := m.catalog.Named(name)
		fmt.Fprintf(&b, "  %s  %s\n", name, sample(c))
	}

	return strings.TrimSuffix(b.String(), "\n")
}

// historyStep moves through history by step, switching mode to match the
// recalled entry. Stepping past the newest entry clears the input.
func (m model) historyStep(step int) model {
	i := m.historyIdx + step

	if i < 0 {
		return m
	}

	if i >= m.history.Len() {
		if m.historyIdx < m.history.Len() {
			m.historyIdx = m.history.Len()
			m.input.SetValue("")
			refreshMatches(&m)
		}

		return m
	}

	entry, err := m.history.Entry(i)
	if err != nil {
		return m
	}

	m.historyIdx = i

	if m.mode != entry.Mode {
		m = m.switchToMode(entry.Mode)
	}

	m.input.SetValue(entry.Line)
	m.input.SetCursor(len(entry.Line))
	refreshMatches(&m)

	return m
}

// toggleMode switches between markup and command modes.
func (m model) toggleMode() model {
	if m.mode == modeMarkup {
		return m.switchToMode(modeCtrl)
	}

	return m.switchToMode(modeMarkup)
}

// switchToMode switches to mode, saving and restoring each mode's input.
func (m model) switchToMode(mode inputMode) model {
	if m.mode == modeMarkup {
		m.markupText, m.markupCursor = m.input.Value(), m.input.Position()
	} else {
		m.ctrlText, m.ctrlCursor = m.input.Value(), m.input.Position()
	}

	m.mode = mode

	if mode == modeMarkup {
		m.input.Prompt = promptStyle.Render(markupPrompt)
		m.input.SetValue(m.markupText)
		m.input.SetCursor(m.markupCursor)
	} else {
		m.input.Prompt = ctrlPromptStyle.Render(ctrlPrompt)
		m.input.SetValue(m.ctrlText)
		m.input.SetCursor(m.ctrlCursor)
	}

	refreshMatches(&m)

	return m
}
