package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Quit       key.Binding
	NewCard    key.Binding
	Settings   key.Binding
	Reexport   key.Binding
	Clear      key.Binding
	UpDown     key.Binding
	Next       key.Binding
	Back       key.Binding
	FocusNext  key.Binding
	FocusPrev  key.Binding
	Cycle      key.Binding
	Today      key.Binding
	Close      key.Binding
	Save       key.Binding
	Another    key.Binding
	SaveConfig key.Binding
	Dismiss    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		NewCard:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new card")),
		Settings:   key.NewBinding(key.WithKeys("p", "ctrl+s"), key.WithHelp("p", "settings")),
		Reexport:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "re-export")),
		Clear:      key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "clear history")),
		UpDown:     key.NewBinding(key.WithKeys("up", "down", "k", "j"), key.WithHelp("↑/↓", "select")),
		Next:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next step")),
		Back:       key.NewBinding(key.WithKeys("ctrl+b"), key.WithHelp("ctrl+b", "previous")),
		FocusNext:  key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
		FocusPrev:  key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "prev field")),
		Cycle:      key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←/→", "choose")),
		Today:      key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "today")),
		Close:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Save:       key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save png")),
		Another:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new card")),
		SaveConfig: key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "settings")),
		Dismiss:    key.NewBinding(key.WithKeys("esc", "enter", "n"), key.WithHelp("esc", "dismiss")),
	}
}

func (k keyMap) homeHelp() []key.Binding {
	return []key.Binding{k.NewCard, k.Settings, k.UpDown, k.Reexport, k.Clear, k.Quit}
}

func (k keyMap) wizardHelp(onDetails, onDateTime bool) []key.Binding {
	next := k.Next
	if onDetails {
		next = key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "generate card"))
	}
	out := []key.Binding{next, k.FocusNext, k.Back}
	if onDateTime {
		out = append(out, k.Today)
	}
	return append(out, k.Cycle, k.SaveConfig, k.Close)
}

func (k keyMap) successHelp() []key.Binding {
	return []key.Binding{k.Save, k.Another, k.Close}
}

func (k keyMap) settingsHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		k.Close,
	}
}

func renderHelp(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		help := binding.Help()
		if help.Key == "" && help.Desc == "" {
			continue
		}
		parts = append(parts, boldKey(help.Key)+" "+help.Desc)
	}
	return strings.Join(parts, "  ")
}

func boldKey(text string) string {
	if text == "" {
		return ""
	}
	return "\x1b[1m" + text + "\x1b[22m"
}
