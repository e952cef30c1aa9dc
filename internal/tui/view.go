package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/qslcard/internal/card"
	"github.com/jask/qslcard/internal/qso"
)

func (a *App) View() string {
	var body, help string
	switch {
	case a.state == stateWizard && a.machine.Done():
		body = a.successView()
		help = renderHelp(a.keys.successHelp())
	case a.state == stateWizard:
		body = a.wizardView()
		_, onDetails := a.machine.Step().(qso.DetailsStep)
		_, onDateTime := a.machine.Step().(qso.DateTimeStep)
		help = renderHelp(a.keys.wizardHelp(onDetails, onDateTime))
	default:
		body = a.homeView()
		help = renderHelp(a.keys.homeHelp())
	}

	status := statusBarStyle.Render(a.status)
	if a.statusErr {
		status = statusErrStyle.Render(a.status)
	}
	out := lipgloss.JoinVertical(lipgloss.Left, body, "", status, footerStyle.Render(help))

	switch a.modal {
	case modalSettings:
		out = centerOverlay(out, a.settings.view(renderHelp(a.keys.settingsHelp())), a.width, a.height)
	case modalNotice:
		box := modalStyle.Render(errorStyle.Render(a.notice) + "\n\n" + mutedStyle.Render(renderHelp([]key.Binding{a.keys.Dismiss})))
		out = centerOverlay(out, box, a.width, a.height)
	case modalConfirm:
		box := modalStyle.Render(warnStyle.Render("Delete all issued-card history?") + "\n\n" +
			mutedStyle.Render("Exported files are kept.  y confirm  any other key cancels"))
		out = centerOverlay(out, box, a.width, a.height)
	}
	return out
}

func (a *App) homeView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("QSL Card Generator") + "\n")
	b.WriteString(labelStyle.Render("Operator ") + valueStyle.Render(operatorLine(a.op)) + "\n\n")

	if len(a.recent) == 0 {
		b.WriteString(mutedStyle.Render("No cards issued yet. Press n to create one."))
		return b.String()
	}
	b.WriteString(labelStyle.Render("Recent cards") + "\n")
	for i, c := range a.recent {
		line := fmt.Sprintf("%-10s %s %s %s  %s  %s  %s MHz",
			c.Callsign, c.Day, c.Month, c.Year, c.UTC, c.Mode, c.MHz)
		if i == a.cursor {
			b.WriteString(focusStyle.Render("> "+line) + "\n")
			continue
		}
		b.WriteString("  " + line + "\n")
	}
	return sectionStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func (a *App) wizardView() string {
	step := a.machine.Step()
	errs := a.machine.Errors()

	var b strings.Builder
	b.WriteString(titleStyle.Render("New QSL Card") + "   " + zuluStyle.Render("UTC "+a.zulu) + "\n")
	b.WriteString(stepIndicator(step) + "\n\n")
	b.WriteString(labelStyle.Render(fmt.Sprintf("Step %d of %d: ", step.Number(), len(qso.InputSteps()))) +
		valueStyle.Render(step.Title()) + "\n\n")

	if !a.op.Complete() {
		b.WriteString(warnStyle.Render(settingsWarning) + "\n")
		if a.form.locked {
			b.WriteString(warnStyle.Render(lockedHint) + "\n")
		}
		b.WriteString("\n")
	}

	if rows := completedRows(step, a.machine.Record()); len(rows) > 0 {
		b.WriteString(strings.Join(rows, "\n") + "\n\n")
	}

	for i, f := range a.form.fields {
		label := labelStyle.Render(padRight(f.Label(), 14))
		if i == a.form.focus {
			label = focusStyle.Render(padRight(f.Label(), 14))
		}
		b.WriteString(label + " " + a.form.inputs[i].View() + "\n")
		if _, isDate := step.(qso.DateTimeStep); isDate && isDateField(f) {
			continue
		}
		if msg, ok := errs[f]; ok {
			b.WriteString(strings.Repeat(" ", 15) + errorStyle.Render(msg) + "\n")
		}
	}
	if _, isDate := step.(qso.DateTimeStep); isDate {
		if msg := errs.DateMessage(); msg != "" {
			b.WriteString("\n" + errorStyle.Render(msg) + "\n")
		}
		if msg, ok := errs[qso.FieldUTC]; ok {
			b.WriteString(errorStyle.Render(msg) + "\n")
		}
	}
	return sectionStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func (a *App) successView() string {
	c := card.Layout(a.machine.Record(), a.op, a.deps.Theme)
	var b strings.Builder
	b.WriteString(successStyle.Render("QSL card ready") + "   " + zuluStyle.Render("UTC "+a.zulu) + "\n\n")
	b.WriteString(cardStyle.Render(c.Text()) + "\n")
	switch {
	case a.exporting:
		b.WriteString("\n" + mutedStyle.Render("Saving image..."))
	case a.lastPath != "":
		b.WriteString("\n" + labelStyle.Render("Saved to ") + valueStyle.Render(a.lastPath))
	}
	return b.String()
}

func stepIndicator(current qso.Step) string {
	parts := make([]string, 0, len(qso.InputSteps()))
	for _, s := range qso.InputSteps() {
		label := fmt.Sprintf("%d %s", s.Number(), s.Title())
		switch {
		case s.Number() == current.Number():
			parts = append(parts, focusStyle.Render(label))
		case s.Number() < current.Number():
			parts = append(parts, successStyle.Render(label))
		default:
			parts = append(parts, mutedStyle.Render(label))
		}
	}
	return strings.Join(parts, mutedStyle.Render(" > "))
}

// completedRows summarises the steps already passed, one read-only row each.
func completedRows(step qso.Step, rec qso.Record) []string {
	row := func(label, value string) string {
		return labelStyle.Render(padRight(label, 14)) + " " + valueStyle.Render(value) + " " + successStyle.Render("✓")
	}
	var rows []string
	switch step.(type) {
	case qso.DateTimeStep:
		rows = append(rows, row("Call Sign", rec.Callsign))
	case qso.DetailsStep:
		rows = append(rows, row("Call Sign", rec.Callsign), row("Date & Time", rec.DateLine()))
	}
	return rows
}

// isDateField reports whether f shares the combined date error line.
func isDateField(f qso.Field) bool {
	return f == qso.FieldDay || f == qso.FieldMonth || f == qso.FieldYear
}
