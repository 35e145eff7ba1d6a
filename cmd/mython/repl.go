package main

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mython-lang/mython/mython"
)

var (
	accentColor    = lipgloss.Color("#3B82F6")
	successColor   = lipgloss.Color("#10B981")
	errorColor     = lipgloss.Color("#EF4444")
	mutedColor     = lipgloss.Color("#6B7280")
	highlightColor = lipgloss.Color("#F59E0B")

	promptStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	outputStyle = lipgloss.NewStyle().
			Foreground(successColor)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	mutedStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	headerStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true).
			Padding(0, 1)

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(highlightColor)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	borderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentColor).
			Padding(0, 1)
)

type historyEntry struct {
	input  string
	output string
	isErr  bool
}

// replSession replays the accumulated program after each accepted input and
// shows only the output the new statements produced. Inputs that fail to
// compile or run are reported and discarded, leaving the session intact.
type replSession struct {
	engine  *mython.Engine
	lines   []string
	printed int
}

func newREPLSession() *replSession {
	return &replSession{engine: mython.MustNewEngine(mython.Config{})}
}

func (s *replSession) reset() {
	s.lines = nil
	s.printed = 0
}

func (s *replSession) eval(block []string) (string, bool) {
	candidate := append(append([]string(nil), s.lines...), block...)
	source := strings.Join(candidate, "\n") + "\n"
	script, err := s.engine.Compile(source)
	if err != nil {
		return err.Error(), true
	}
	var buf bytes.Buffer
	if err := script.RunWithOutput(context.Background(), &buf); err != nil {
		return err.Error(), true
	}
	s.lines = candidate
	fresh := buf.String()[s.printed:]
	s.printed = buf.Len()
	return strings.TrimSuffix(fresh, "\n"), false
}

type replModel struct {
	textInput   textinput.Model
	session     *replSession
	pending     []string
	history     []historyEntry
	cmdHistory  []string
	historyIdx  int
	width       int
	height      int
	showHelp    bool
	quitting    bool
	initialized bool
}

type keyMap struct {
	Up    key.Binding
	Down  key.Binding
	Enter key.Binding
	CtrlC key.Binding
	CtrlD key.Binding
	CtrlL key.Binding
	Tab   key.Binding
	CtrlH key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "previous command"),
	),
	Down: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "next command"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "execute"),
	),
	CtrlC: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
	CtrlD: key.NewBinding(
		key.WithKeys("ctrl+d"),
		key.WithHelp("ctrl+d", "quit"),
	),
	CtrlL: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("ctrl+l", "clear"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "autocomplete"),
	),
	CtrlH: key.NewBinding(
		key.WithKeys("ctrl+k"),
		key.WithHelp("ctrl+k", "toggle help"),
	),
}

func newREPLModel() replModel {
	ti := textinput.New()
	ti.Placeholder = "type a statement..."
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60
	ti.PromptStyle = promptStyle
	ti.Prompt = ">>> "

	return replModel{
		textInput:  ti,
		session:    newREPLSession(),
		history:    make([]historyEntry, 0),
		cmdHistory: make([]string, 0),
		historyIdx: -1,
	}
}

func (m replModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tea.EnterAltScreen)
}

func (m replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.textInput.Width = msg.Width - 10
		m.initialized = true
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.CtrlC), key.Matches(msg, keys.CtrlD):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, keys.CtrlL):
			m.history = make([]historyEntry, 0)
			return m, nil

		case key.Matches(msg, keys.CtrlH):
			m.showHelp = !m.showHelp
			return m, nil

		case key.Matches(msg, keys.Up):
			if len(m.cmdHistory) > 0 {
				if m.historyIdx == -1 {
					m.historyIdx = len(m.cmdHistory) - 1
				} else if m.historyIdx > 0 {
					m.historyIdx--
				}
				m.textInput.SetValue(m.cmdHistory[m.historyIdx])
				m.textInput.CursorEnd()
			}
			return m, nil

		case key.Matches(msg, keys.Down):
			if m.historyIdx != -1 {
				if m.historyIdx < len(m.cmdHistory)-1 {
					m.historyIdx++
					m.textInput.SetValue(m.cmdHistory[m.historyIdx])
				} else {
					m.historyIdx = -1
					m.textInput.SetValue("")
				}
				m.textInput.CursorEnd()
			}
			return m, nil

		case key.Matches(msg, keys.Tab):
			m = m.handleAutocomplete()
			return m, nil

		case key.Matches(msg, keys.Enter):
			return m.handleEnter()
		}
	}

	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m replModel) handleEnter() (replModel, tea.Cmd) {
	raw := m.textInput.Value()
	input := strings.TrimRight(raw, " ")

	if len(m.pending) > 0 {
		// Block mode: an empty line submits the buffered block, anything
		// else extends it.
		if strings.TrimSpace(input) == "" {
			block := m.pending
			m.pending = nil
			m.textInput.Prompt = ">>> "
			m.submit(strings.Join(block, "\n"), block)
		} else {
			m.pending = append(m.pending, input)
			m.cmdHistory = append(m.cmdHistory, input)
			m.textInput.SetValue("")
		}
		m.historyIdx = -1
		return m, nil
	}

	if strings.TrimSpace(input) == "" {
		return m, nil
	}

	if strings.HasPrefix(input, ":") {
		var cmd tea.Cmd
		m, cmd = m.handleCommand(input)
		m.textInput.SetValue("")
		m.historyIdx = -1
		return m, cmd
	}

	if strings.HasSuffix(input, ":") {
		m.pending = []string{input}
		m.cmdHistory = append(m.cmdHistory, input)
		m.textInput.Prompt = "... "
		m.textInput.SetValue("")
		m.historyIdx = -1
		return m, nil
	}

	m.submit(input, []string{input})
	m.historyIdx = -1
	return m, nil
}

func (m *replModel) submit(label string, block []string) {
	output, isErr := m.session.eval(block)
	m.history = append(m.history, historyEntry{input: label, output: output, isErr: isErr})
	if len(block) == 1 {
		m.cmdHistory = append(m.cmdHistory, block[0])
	}
	m.textInput.SetValue("")
}

func (m replModel) handleCommand(input string) (replModel, tea.Cmd) {
	switch strings.Fields(input)[0] {
	case ":help", ":h":
		m.showHelp = !m.showHelp
	case ":clear", ":c":
		m.history = make([]historyEntry, 0)
	case ":reset", ":r":
		m.session.reset()
		m.history = append(m.history, historyEntry{
			input:  input,
			output: "Session reset",
		})
	case ":quit", ":q":
		m.quitting = true
		return m, tea.Quit
	default:
		m.history = append(m.history, historyEntry{
			input:  input,
			output: fmt.Sprintf("Unknown command: %s", input),
			isErr:  true,
		})
	}
	return m, nil
}

var replKeywords = []string{
	"class", "def", "return", "if", "else", "print",
	"and", "or", "not", "None", "True", "False", "self", "str",
}

func (m replModel) handleAutocomplete() replModel {
	input := m.textInput.Value()
	words := strings.Fields(input)
	if len(words) == 0 {
		return m
	}
	lastWord := words[len(words)-1]

	var completions []string
	for _, k := range replKeywords {
		if strings.HasPrefix(k, lastWord) {
			completions = append(completions, k)
		}
	}

	if len(completions) == 1 {
		prefix := strings.TrimSuffix(input, lastWord)
		m.textInput.SetValue(prefix + completions[0])
		m.textInput.CursorEnd()
	} else if len(completions) > 1 {
		m.history = append(m.history, historyEntry{
			output: "Completions: " + strings.Join(completions, ", "),
		})
	}
	return m
}

func (m replModel) View() string {
	if !m.initialized {
		return "Loading..."
	}

	if m.quitting {
		return mutedStyle.Render("Goodbye!\n")
	}

	var b strings.Builder

	header := headerStyle.Render("Mython REPL")
	version := mutedStyle.Render("v0.1.0")
	b.WriteString(header + " " + version + "\n")
	b.WriteString(mutedStyle.Render(strings.Repeat("─", min(m.width-2, 60))) + "\n\n")

	reservedLines := 8
	if m.showHelp {
		reservedLines += 10
	}
	availableHeight := m.height - reservedLines

	historyStart := 0
	if len(m.history) > availableHeight {
		historyStart = len(m.history) - availableHeight
	}

	for i := historyStart; i < len(m.history); i++ {
		entry := m.history[i]
		if entry.input != "" {
			for _, line := range strings.Split(entry.input, "\n") {
				b.WriteString(mutedStyle.Render("  › ") + line + "\n")
			}
		}
		if entry.isErr {
			b.WriteString("  " + errorStyle.Render("✗ "+entry.output) + "\n")
		} else if entry.output != "" {
			for _, line := range strings.Split(entry.output, "\n") {
				b.WriteString("  " + outputStyle.Render(line) + "\n")
			}
		}
		b.WriteString("\n")
	}

	if m.showHelp {
		b.WriteString(renderHelpPanel())
		b.WriteString("\n")
	}

	b.WriteString(m.textInput.View() + "\n\n")

	footer := helpKeyStyle.Render("ctrl+k") + helpDescStyle.Render(" help  ") +
		helpKeyStyle.Render("ctrl+l") + helpDescStyle.Render(" clear  ") +
		helpKeyStyle.Render("ctrl+c") + helpDescStyle.Render(" quit")
	b.WriteString(footer)

	return b.String()
}

func renderHelpPanel() string {
	help := []struct {
		key  string
		desc string
	}{
		{"↑/↓", "Navigate command history"},
		{"Tab", "Autocomplete keywords"},
		{"Enter", "Execute statement"},
		{"line:", "Start an indented block; empty line runs it"},
		{":help", "Toggle this help"},
		{":clear", "Clear history"},
		{":reset", "Reset the session"},
		{":quit", "Exit REPL"},
	}

	var lines []string
	lines = append(lines, lipgloss.NewStyle().Bold(true).Foreground(accentColor).Render("Help"))
	for _, h := range help {
		line := fmt.Sprintf("  %s  %s",
			helpKeyStyle.Render(fmt.Sprintf("%-8s", h.key)),
			helpDescStyle.Render(h.desc))
		lines = append(lines, line)
	}

	return borderStyle.Render(strings.Join(lines, "\n"))
}

func runREPL() error {
	p := tea.NewProgram(newREPLModel(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
