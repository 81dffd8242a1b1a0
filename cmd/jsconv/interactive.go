package main

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/wippyai/jsbridge/convert"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	exprStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

const maxHistory = 8

var outputModes = []string{OutputText, OutputJSON, OutputDump}

type modelState int

const (
	stateEditExpr modelState = iota
	stateEditType
)

type entry struct {
	err     error
	expr    string
	typ     string
	result  string
	console string
}

type interactiveModel struct {
	err     error
	sess    *session
	console *bytes.Buffer
	input   textinput.Model
	history []entry
	state   modelState
}

func newInteractiveModel(sess *session, console *bytes.Buffer) *interactiveModel {
	ti := textinput.New()
	ti.Placeholder = "expression"
	ti.Prompt = "js> "
	ti.Width = 60
	ti.Focus()

	return &interactiveModel{
		sess:    sess,
		console: console,
		input:   ti,
		state:   stateEditExpr,
	}
}

func (m *interactiveModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "esc":
			if m.state == stateEditType {
				m.editExpr()
				return m, nil
			}
			return m, tea.Quit

		case "ctrl+t":
			m.state = stateEditType
			m.input.Prompt = "type> "
			m.input.Placeholder = strings.Join(convert.TypeNames(), " ")
			m.input.SetValue(m.sess.cfg.Type)
			return m, nil

		case "ctrl+s":
			m.sess.cfg.Strict = !m.sess.cfg.Strict
			return m, nil

		case "ctrl+b":
			m.sess.cfg.Behavior = (m.sess.cfg.Behavior + 1) % (convert.Clamp + 1)
			return m, nil

		case "tab":
			m.sess.cfg.Output = nextMode(m.sess.cfg.Output)
			return m, nil

		case "enter":
			m.submit()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit runs on the update goroutine; the runtime is single-threaded.
func (m *interactiveModel) submit() {
	value := strings.TrimSpace(m.input.Value())
	if value == "" {
		return
	}

	if m.state == stateEditType {
		if err := m.sess.SetType(value); err != nil {
			m.err = err
			return
		}
		m.err = nil
		m.editExpr()
		return
	}

	e := entry{expr: value, typ: m.sess.cfg.Type}
	m.console.Reset()
	v, err := m.sess.Evaluate(value)
	if err == nil {
		e.result, err = m.sess.Format(v)
	}
	e.err = err
	e.console = strings.TrimRight(m.console.String(), "\n")

	m.history = append(m.history, e)
	if len(m.history) > maxHistory {
		m.history = m.history[len(m.history)-maxHistory:]
	}
	m.input.SetValue("")
}

func (m *interactiveModel) editExpr() {
	m.state = stateEditExpr
	m.input.Prompt = "js> "
	m.input.Placeholder = "expression"
	m.input.SetValue("")
}

func nextMode(mode string) string {
	for i, om := range outputModes {
		if om == mode {
			return outputModes[(i+1)%len(outputModes)]
		}
	}
	return OutputText
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	cfg := m.sess.cfg
	b.WriteString(titleStyle.Render("jsconv"))
	b.WriteString(" ")
	b.WriteString(typeStyle.Render(cfg.Type))
	b.WriteString(fmt.Sprintf("  strict=%t  behavior=%s  output=%s\n\n", cfg.Strict, cfg.Behavior, cfg.Output))

	for _, e := range m.history {
		b.WriteString(exprStyle.Render(e.expr))
		b.WriteString(" ")
		b.WriteString(helpStyle.Render("as " + e.typ))
		b.WriteString("\n")
		if e.console != "" {
			b.WriteString(helpStyle.Render(e.console))
			b.WriteString("\n")
		}
		if e.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", e.err)))
		} else {
			b.WriteString(resultStyle.Render(e.result))
		}
		b.WriteString("\n\n")
	}

	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	}
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("enter eval • ctrl+t type • ctrl+s strict • ctrl+b behavior • tab output • esc quit"))

	return b.String()
}

func runInteractive(cfg Config, log *zap.Logger) error {
	console := &bytes.Buffer{}
	sess, err := newSession(cfg, log, console)
	if err != nil {
		return err
	}
	defer sess.Close()

	p := tea.NewProgram(newInteractiveModel(sess, console), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
