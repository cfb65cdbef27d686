package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/moltblox/game-sandbox/config"
	"github.com/moltblox/game-sandbox/sandbox"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	funcStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type modelState int

const (
	stateSelectFunc modelState = iota
	stateInputArgs
	stateShowResult
)

type interactiveModel struct {
	err      error
	cfg      *config.Config
	log      *zap.Logger
	data     []byte
	gameType string

	sb       *sandbox.Sandbox
	instance *sandbox.Instance
	exports  []string

	argInput textinput.Model
	selected int
	result   string
	state    modelState
}

type loadedMsg struct {
	err      error
	sb       *sandbox.Sandbox
	instance *sandbox.Instance
	exports  []string
}

type callResultMsg struct {
	err    error
	result string
}

func newInteractiveModel(data []byte, gameType string, cfg *config.Config, log *zap.Logger) *interactiveModel {
	return &interactiveModel{
		cfg:      cfg,
		log:      log,
		data:     data,
		gameType: gameType,
		state:    stateSelectFunc,
	}
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.loadGame
}

func (m *interactiveModel) loadGame() tea.Msg {
	ctx := context.Background()

	scfg := m.cfg.SandboxConfig()
	scfg.Logger = m.log
	sb, err := sandbox.New(ctx, scfg)
	if err != nil {
		return loadedMsg{err: err}
	}

	inst, err := sb.LoadGame(ctx, m.data, m.gameType)
	if err != nil {
		_ = sb.Close(ctx)
		return loadedMsg{err: err}
	}

	return loadedMsg{sb: sb, instance: inst, exports: inst.Exports()}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.state == stateInputArgs && msg.String() == "q" {
				break // let the input field consume it
			}
			ctx := context.Background()
			if m.sb != nil {
				_ = m.sb.Close(ctx)
			}
			return m, tea.Quit

		case "up", "k":
			if m.state == stateSelectFunc && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateSelectFunc && m.selected < len(m.exports)-1 {
				m.selected++
			}

		case "enter":
			switch m.state {
			case stateSelectFunc:
				m.argInput = textinput.New()
				m.argInput.Placeholder = "args (space-separated integers, empty for none)"
				m.argInput.Width = 48
				m.argInput.Focus()
				m.state = stateInputArgs

			case stateInputArgs:
				return m, m.callFunction

			case stateShowResult:
				m.state = stateSelectFunc
				m.result = ""
				m.err = nil
			}

		case "esc":
			switch m.state {
			case stateInputArgs, stateShowResult:
				m.state = stateSelectFunc
				m.result = ""
				m.err = nil
			}
		}

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.sb = msg.sb
		m.instance = msg.instance
		m.exports = msg.exports

	case callResultMsg:
		m.result = msg.result
		m.err = msg.err
		m.state = stateShowResult
	}

	if m.state == stateInputArgs {
		var cmd tea.Cmd
		m.argInput, cmd = m.argInput.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *interactiveModel) callFunction() tea.Msg {
	ctx := context.Background()

	args, err := parseArgs(m.argInput.Value())
	if err != nil {
		return callResultMsg{err: err}
	}

	results, err := m.instance.Call(ctx, m.exports[m.selected], args...)
	if err != nil {
		return callResultMsg{err: err}
	}
	if len(results) == 0 {
		return callResultMsg{result: "ok (no results)"}
	}
	return callResultMsg{result: fmt.Sprintf("%v", results)}
}

func parseArgs(s string) ([]uint64, error) {
	fields := strings.Fields(s)
	args := make([]uint64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseUint(f, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("argument %q: %w", f, err)
		}
		args = append(args, v)
	}
	return args, nil
}

func (m *interactiveModel) View() string {
	if m.err != nil && m.state != stateShowResult {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}

	if m.instance == nil {
		return "Loading game..."
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Game Sandbox"))
	b.WriteString(" ")
	b.WriteString(fmt.Sprintf("%s (seed=%d)", m.instance.ID, m.instance.Seed))
	b.WriteString("\n\n")

	switch m.state {
	case stateSelectFunc:
		b.WriteString("Select an export to call:\n\n")
		for i, name := range m.exports {
			cursor := "  "
			if i == m.selected {
				cursor = "> "
				b.WriteString(selectedStyle.Render(cursor + name))
			} else {
				b.WriteString(cursor + funcStyle.Render(name))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter call • q quit"))

	case stateInputArgs:
		b.WriteString(fmt.Sprintf("Calling %s\n\n", funcStyle.Render(m.exports[m.selected])))
		b.WriteString(m.argInput.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter call • esc back"))

	case stateShowResult:
		b.WriteString(fmt.Sprintf("Result of %s:\n\n", funcStyle.Render(m.exports[m.selected])))
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			b.WriteString(resultStyle.Render(m.result))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter continue • q quit"))
	}

	return b.String()
}

func runInteractive(data []byte, gameType string, cfg *config.Config, log *zap.Logger) error {
	p := tea.NewProgram(newInteractiveModel(data, gameType, cfg, log), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
