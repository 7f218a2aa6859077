// Package quiz renders a practice session in the terminal.
package quiz

import (
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"quizform/internal/practice"
	"quizform/internal/question"
)

// Options configures the practice UI.
type Options struct {
	NoColor      bool
	TickInterval time.Duration
	Now          func() time.Time
}

// Model is the Bubble Tea model for one practice session.
type Model struct {
	session      *practice.Session
	questions    []question.Question
	current      int
	cursors      []int
	inputs       []textinput.Model
	bar          progress.Model
	remaining    time.Duration
	tickInterval time.Duration
	now          func() time.Time
	noColor      bool
	width        int
	quit         bool
}

// NewModel builds a model around an Active session.
func NewModel(session *practice.Session, opts Options) Model {
	tickInterval := opts.TickInterval
	if tickInterval <= 0 {
		tickInterval = time.Second
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	set := session.Set()
	model := Model{
		session:      session,
		questions:    set.Questions,
		cursors:      make([]int, set.Len()),
		inputs:       make([]textinput.Model, set.Len()),
		bar:          newBar(opts.NoColor),
		remaining:    session.Budget(),
		tickInterval: tickInterval,
		now:          now,
		noColor:      opts.NoColor,
	}
	for i, q := range set.Questions {
		model.cursors[i] = -1
		if q.IsChoice() {
			continue
		}
		input := textinput.New()
		input.Placeholder = "type your answer"
		input.CharLimit = 200
		input.Width = 50
		model.inputs[i] = input
	}
	model.remaining, _ = session.Poll(now())
	model = model.focus(0)
	return model
}

func newBar(noColor bool) progress.Model {
	if noColor {
		return progress.New(progress.WithoutPercentage(), progress.WithWidth(30), progress.WithFillCharacters('#', '.'), progress.WithSolidFill(""))
	}
	return progress.New(progress.WithoutPercentage(), progress.WithWidth(30), progress.WithDefaultGradient())
}

// Init starts the countdown.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tick(m.tickInterval), textinput.Blink)
}

// Update handles key presses and timer ticks.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = typed.Width
		return m, nil
	case tickMsg:
		return m.poll()
	case tea.KeyMsg:
		return m.handleKey(typed)
	}
	return m.updateInput(msg)
}

// View renders the current question and the countdown.
func (m Model) View() string {
	if result, ended := m.session.Result(); ended {
		return renderResult(result, m.questions, m.noColor) + "\n"
	}
	if m.quit {
		return ""
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		renderHeader(m.current, len(m.questions), m.remaining, m.noColor),
		m.bar.ViewAs(m.fraction()),
		"",
		m.renderQuestion(),
		"",
		renderHelp(m.questions[m.current].IsChoice(), m.noColor),
	) + "\n"
}

// Ended reports whether the session reached Ended while the UI ran.
func (m Model) Ended() bool {
	return m.session.State() == practice.Ended
}

// Quit reports whether the user left without submitting.
func (m Model) Quit() bool {
	return m.quit
}

// tickMsg carries a clock tick for the countdown.
type tickMsg time.Time

// tick emits a periodic tick message.
func tick(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) poll() (tea.Model, tea.Cmd) {
	remaining, ended := m.session.Poll(m.now())
	m.remaining = remaining
	if ended {
		return m, tea.Quit
	}
	return m, tick(m.tickInterval)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+c":
		m.quit = true
		return m, tea.Quit
	case "ctrl+s":
		m.session.Submit(m.now())
		return m, tea.Quit
	case "tab":
		return m.move(1)
	case "shift+tab":
		return m.move(-1)
	}
	if m.questions[m.current].IsChoice() {
		return m.handleChoiceKey(msg)
	}
	if msg.Type == tea.KeyEnter {
		return m.move(1)
	}
	return m.updateInput(msg)
}

func (m Model) handleChoiceKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	options := m.questions[m.current].Options
	cursor := m.cursors[m.current]
	switch msg.String() {
	case "up", "k":
		if cursor <= 0 {
			cursor = len(options) - 1
		} else {
			cursor--
		}
	case "down", "j":
		cursor = (cursor + 1) % len(options)
	case "enter":
		return m.move(1)
	default:
		return m, nil
	}
	m.cursors[m.current] = cursor
	return m.record(options[cursor])
}

func (m Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.questions[m.current].IsChoice() {
		return m, nil
	}
	var cmd tea.Cmd
	before := m.inputs[m.current].Value()
	m.inputs[m.current], cmd = m.inputs[m.current].Update(msg)
	if after := m.inputs[m.current].Value(); after != before {
		next, recordCmd := m.record(after)
		return next, tea.Batch(cmd, recordCmd)
	}
	return m, cmd
}

func (m Model) record(value string) (tea.Model, tea.Cmd) {
	if err := m.session.Answer(m.current, value, m.now()); err != nil {
		m.remaining = 0
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) move(delta int) (tea.Model, tea.Cmd) {
	next := m.current + delta
	if next < 0 || next >= len(m.questions) {
		return m, nil
	}
	if _, err := m.session.Present(next, m.now()); err != nil {
		m.remaining = 0
		return m, tea.Quit
	}
	return m.focus(next), nil
}

func (m Model) focus(index int) Model {
	if !m.questions[m.current].IsChoice() {
		m.inputs[m.current].Blur()
	}
	m.current = index
	if !m.questions[index].IsChoice() {
		m.inputs[index].Focus()
	}
	return m
}

func (m Model) fraction() float64 {
	budget := m.session.Budget()
	if budget <= 0 {
		return 0
	}
	return float64(m.remaining) / float64(budget)
}

func (m Model) renderQuestion() string {
	q := m.questions[m.current]
	title := stylize(q.DisplayTitle(m.current), m.noColor, lipgloss.Color("33"))
	if !q.IsChoice() {
		return lipgloss.JoinVertical(lipgloss.Left, title, m.inputs[m.current].View())
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, renderOptions(q.Options, m.cursors[m.current], m.noColor))
}
