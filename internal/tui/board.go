// Package tui implements the interactive event board: a terminal dashboard
// for browsing events, watching their status, and joining or leaving them.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ksoares/evreg/internal/registry"
	"github.com/ksoares/evreg/internal/style"
)

// mode is the board's input state.
type mode int

const (
	modeBrowse mode = iota
	modePrompt
)

// action is what the email prompt commits to.
type action int

const (
	actionJoin action = iota
	actionLeave
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true)
	helpStyle   = style.Dim
)

// Model is the bubbletea model for the event board.
type Model struct {
	reg      *registry.Registry
	duration time.Duration
	now      func() time.Time

	cursor  int
	mode    mode
	pending action
	input   textinput.Model
	notice  string
	dirty   bool
}

// New builds a board over the registry. defaultEmail prefills the join and
// leave prompts; pass "" when no current user is set.
func New(reg *registry.Registry, duration time.Duration, defaultEmail string) Model {
	ti := textinput.New()
	ti.Placeholder = "email"
	ti.CharLimit = 120
	ti.SetValue(defaultEmail)
	return Model{
		reg:      reg,
		duration: duration,
		now:      time.Now,
		input:    ti,
	}
}

// Dirty reports whether any mutation happened, so the caller knows to save.
func (m Model) Dirty() bool {
	return m.dirty
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.mode == modePrompt {
		return m.updatePrompt(key)
	}
	return m.updateBrowse(key)
}

func (m Model) updateBrowse(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	events := m.reg.Events()

	switch key.String() {
	case "q", "esc", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down":
		if m.cursor < len(events)-1 {
			m.cursor++
		}
	case "s":
		m.reg.SortEventsByDate()
		m.dirty = true
		m.notice = "sorted by date"
	case "j", "l":
		if len(events) == 0 {
			m.notice = "no events to act on"
			break
		}
		if key.String() == "j" {
			m.pending = actionJoin
		} else {
			m.pending = actionLeave
		}
		m.mode = modePrompt
		m.input.CursorEnd()
		m.input.Focus()
		return m, textinput.Blink
	}
	return m, nil
}

func (m Model) updatePrompt(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "esc", "ctrl+c":
		m.mode = modeBrowse
		m.input.Blur()
		return m, nil
	case "enter":
		m.mode = modeBrowse
		m.input.Blur()
		m.commit(strings.TrimSpace(m.input.Value()))
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(key)
	return m, cmd
}

// commit applies the pending action for the given email against the event
// under the cursor.
func (m *Model) commit(email string) {
	if email == "" {
		m.notice = "no email given"
		return
	}
	events := m.reg.Events()
	if m.cursor >= len(events) {
		return
	}
	e := events[m.cursor]

	switch m.pending {
	case actionJoin:
		if m.reg.JoinEvent(email, e.ID) {
			m.dirty = true
			m.notice = fmt.Sprintf("joined %s", e.Name)
		} else {
			m.notice = fmt.Sprintf("already in %s", e.Name)
		}
	case actionLeave:
		if m.reg.LeaveEvent(email, e.ID) {
			m.dirty = true
			m.notice = fmt.Sprintf("left %s", e.Name)
		} else {
			m.notice = fmt.Sprintf("not in %s", e.Name)
		}
	}
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("Events"))
	b.WriteString("\n\n")

	events := m.reg.Events()
	if len(events) == 0 {
		b.WriteString(style.Dim.Render("No events registered yet."))
		b.WriteString("\n")
	}

	now := m.now()
	for i, e := range events {
		marker := "  "
		line := fmt.Sprintf("%-3s %-30s %s  %-8s %d going",
			e.ID, e.Name, e.StartsAt.Format(registry.DateTimeLayout),
			style.StatusBadge(e.StatusWithin(now, m.duration)), e.ParticipantCount())
		if i == m.cursor {
			marker = cursorStyle.Render("> ")
		}
		b.WriteString(marker + line + "\n")
	}

	if m.mode == modePrompt {
		verb := "join as"
		if m.pending == actionLeave {
			verb = "leave as"
		}
		b.WriteString("\n" + verb + ": " + m.input.View() + "\n")
	} else {
		if m.notice != "" {
			b.WriteString("\n" + style.Info.Render(m.notice) + "\n")
		}
		b.WriteString("\n" + helpStyle.Render("↑/↓ move · j join · l leave · s sort by date · q quit") + "\n")
	}

	return b.String()
}
