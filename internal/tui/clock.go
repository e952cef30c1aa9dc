package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// clockTickMsg carries the generation that scheduled it. Ticks from an older
// generation belong to a wizard that has since closed and are dropped.
type clockTickMsg struct {
	gen int
	at  time.Time
}

func clockTick(gen int) tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return clockTickMsg{gen: gen, at: t}
	})
}
