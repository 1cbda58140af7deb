// Package ui renders short-lived status notes below the TUI screens.
package ui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tonneli-cli/tonneli/style"
)

// Lifetime is how long a note stays visible.
const Lifetime = 3 * time.Second

// NoteMsg shows Text until a newer note replaces it or its lifetime ends.
type NoteMsg struct {
	Text string
}

// expireMsg clears the note with the same id. Older expiries are ignored.
type expireMsg struct {
	id int
}

// Notify returns a command emitting a note.
func Notify(text string) tea.Cmd {
	return func() tea.Msg {
		return NoteMsg{Text: text}
	}
}

// Model holds the current note.
type Model struct {
	note string
	id   int
}

// Note returns the visible note, empty when none is shown.
func (m *Model) Note() string {
	return m.note
}

// Update handles notes and their expiry. It returns nil for every other message.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case NoteMsg:
		m.id++
		m.note = msg.Text
		id := m.id
		return tea.Tick(Lifetime, func(time.Time) tea.Msg {
			return expireMsg{id: id}
		})
	case expireMsg:
		if msg.id == m.id {
			m.note = ""
		}
	}
	return nil
}

// View appends the note to the last line of content.
func (m *Model) View(content string) string {
	if m.note == "" {
		return content
	}

	lines := strings.Split(content, "\n")
	lines[len(lines)-1] += "  " + style.Faint(m.note)
	return strings.Join(lines, "\n")
}
