package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/qslcard/internal/settings"
)

const (
	settingsCallsign = iota
	settingsCQZone
	settingsITUZone
)

var settingsLabels = [...]string{"Callsign", "CQ Zone", "ITU Zone"}

// settingsForm edits the operator settings. Nothing is persisted until save.
type settingsForm struct {
	inputs []textinput.Model
	focus  int
	notice string
	err    string
	saving bool
}

func newSettingsForm(op settings.OperatorSettings, notice string) settingsForm {
	f := settingsForm{notice: notice}
	for i, v := range []string{op.Callsign, op.CQZone, op.ITUZone} {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Width = 12
		switch i {
		case settingsCallsign:
			ti.CharLimit = 10
			ti.Placeholder = "e.g. HS0ZZZ"
		case settingsCQZone:
			ti.CharLimit = 2
			ti.Placeholder = "1-40"
		case settingsITUZone:
			ti.CharLimit = 2
			ti.Placeholder = "1-90"
		}
		ti.SetValue(v)
		f.inputs = append(f.inputs, ti)
	}
	f.inputs[0].Focus()
	return f
}

func (f *settingsForm) setFocus(i int) {
	i = (i + len(f.inputs)) % len(f.inputs)
	for j := range f.inputs {
		f.inputs[j].Blur()
	}
	f.focus = i
	f.inputs[i].Focus()
}

func (f *settingsForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	if f.focus == settingsCallsign {
		v := f.inputs[settingsCallsign].Value()
		if up := strings.ToUpper(v); up != v {
			f.inputs[settingsCallsign].SetValue(up)
		}
	}
	return cmd
}

func (f settingsForm) value() settings.OperatorSettings {
	return settings.OperatorSettings{
		Callsign: f.inputs[settingsCallsign].Value(),
		CQZone:   f.inputs[settingsCQZone].Value(),
		ITUZone:  f.inputs[settingsITUZone].Value(),
	}
}

func (f settingsForm) view(help string) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Operator Settings") + "\n\n")
	if f.notice != "" {
		b.WriteString(warnStyle.Render(f.notice) + "\n\n")
	}
	for i, in := range f.inputs {
		label := labelStyle.Render(padRight(settingsLabels[i], 10))
		if i == f.focus {
			label = focusStyle.Render(padRight(settingsLabels[i], 10))
		}
		b.WriteString(label + " " + in.View() + "\n")
	}
	if f.err != "" {
		b.WriteString("\n" + errorStyle.Render(f.err) + "\n")
	}
	if f.saving {
		b.WriteString("\n" + mutedStyle.Render("Saving...") + "\n")
	}
	b.WriteString("\n" + mutedStyle.Render(help))
	return modalStyle.Render(b.String())
}
