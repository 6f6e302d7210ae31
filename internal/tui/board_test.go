package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ksoares/evreg/internal/registry"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func testRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	reg := registry.New()
	when, err := time.Parse(registry.DateTimeLayout, "2025-06-02 19:00")
	if err != nil {
		t.Fatalf("parse time: %v", err)
	}
	reg.CreateEvent("Late Show", "", "show", when, "")
	reg.CreateEvent("Early Match", "", "sport", when.Add(-24*time.Hour), "")
	return reg
}

func TestBoard_CursorMoves(t *testing.T) {
	m := New(testRegistry(t), registry.DefaultEventDuration, "")

	next, _ := m.Update(keyMsg("down"))
	m = next.(Model)
	if m.cursor != 1 {
		t.Errorf("cursor = %d, want 1", m.cursor)
	}

	// Cannot move past the last event.
	next, _ = m.Update(keyMsg("down"))
	m = next.(Model)
	if m.cursor != 1 {
		t.Errorf("cursor = %d, want 1", m.cursor)
	}

	next, _ = m.Update(keyMsg("up"))
	m = next.(Model)
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want 0", m.cursor)
	}
}

func TestBoard_SortMarksDirty(t *testing.T) {
	reg := testRegistry(t)
	m := New(reg, registry.DefaultEventDuration, "")

	next, _ := m.Update(keyMsg("s"))
	m = next.(Model)

	if !m.Dirty() {
		t.Error("sort should mark the board dirty")
	}
	if reg.Events()[0].Name != "Early Match" {
		t.Errorf("first event = %q, want Early Match", reg.Events()[0].Name)
	}
}

func TestBoard_JoinThroughPrompt(t *testing.T) {
	reg := testRegistry(t)
	m := New(reg, registry.DefaultEventDuration, "alice@example.com")

	// Open the join prompt; the default email is prefilled, enter commits.
	next, _ := m.Update(keyMsg("j"))
	m = next.(Model)
	next, _ = m.Update(keyMsg("enter"))
	m = next.(Model)

	if !m.Dirty() {
		t.Error("join should mark the board dirty")
	}
	e := reg.Events()[0]
	if !e.HasParticipant("alice@example.com") {
		t.Errorf("participants = %v, want alice", e.Participants)
	}

	// Joining again is a no-op and leaves the board state consistent.
	next, _ = m.Update(keyMsg("j"))
	m = next.(Model)
	next, _ = m.Update(keyMsg("enter"))
	m = next.(Model)
	if e.ParticipantCount() != 1 {
		t.Errorf("participants = %d, want 1", e.ParticipantCount())
	}
}

func TestBoard_PromptEscCancels(t *testing.T) {
	reg := testRegistry(t)
	m := New(reg, registry.DefaultEventDuration, "alice@example.com")

	next, _ := m.Update(keyMsg("l"))
	m = next.(Model)
	next, _ = m.Update(keyMsg("esc"))
	m = next.(Model)

	if m.Dirty() {
		t.Error("cancelled prompt should not mark the board dirty")
	}
}

func TestBoard_View(t *testing.T) {
	m := New(testRegistry(t), registry.DefaultEventDuration, "")
	m.now = func() time.Time {
		ts, _ := time.Parse(registry.DateTimeLayout, "2025-06-02 19:30")
		return ts
	}

	out := m.View()
	if !strings.Contains(out, "Late Show") || !strings.Contains(out, "Early Match") {
		t.Errorf("view missing events:\n%s", out)
	}
	if !strings.Contains(out, "ongoing") {
		t.Errorf("view should show the ongoing badge at 19:30:\n%s", out)
	}
	if !strings.Contains(out, "past") {
		t.Errorf("view should show the past badge for yesterday's match:\n%s", out)
	}
}
