// Package tui is the Bubble Tea front end: a home screen with issued-card
// history, the QSO wizard, and the operator settings editor.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jask/qslcard/internal/card"
	"github.com/jask/qslcard/internal/database/repository"
	"github.com/jask/qslcard/internal/qso"
	"github.com/jask/qslcard/internal/service"
	"github.com/jask/qslcard/internal/settings"
)

const (
	recentLimit     = 20
	settingsNotice  = "Please set your callsign, CQ Zone, and ITU Zone in Settings before creating a QSL card."
	settingsWarning = "Please set your callsign, CQ Zone, and ITU Zone in Settings before proceeding."
)

type appState string

const (
	stateHome   appState = "home"
	stateWizard appState = "wizard"
)

type modalState string

const (
	modalNone     modalState = ""
	modalSettings modalState = "settings"
	modalNotice   modalState = "notice"
	modalConfirm  modalState = "confirm_clear"
)

// Deps are the services the UI drives.
type Deps struct {
	Settings    *settings.Store
	Issuer      *service.Issuer
	Maintenance *service.MaintenanceService
	Theme       card.Theme
	Logger      *zap.Logger
	Now         func() time.Time
	// Backup, when set, receives every successfully saved settings value.
	Backup func(settings.OperatorSettings) error
}

type (
	settingsLoadedMsg struct {
		op  settings.OperatorSettings
		err error
	}
	settingsSavedMsg struct {
		op  settings.OperatorSettings
		err error
	}
	recentMsg struct {
		cards []repository.Card
		err   error
	}
	exportDoneMsg struct {
		res service.IssueResult
		err error
	}
	historyClearedMsg struct{ err error }
)

// App is the root Bubble Tea model.
type App struct {
	ctx  context.Context
	deps Deps
	log  *zap.Logger
	keys keyMap

	state  appState
	modal  modalState
	width  int
	height int

	op       settings.OperatorSettings
	machine  *qso.Machine
	form     wizardForm
	settings settingsForm
	notice   string

	clockGen int
	zulu     string

	recent []repository.Card
	cursor int

	exporting bool
	lastPath  string

	status    string
	statusErr bool
}

func New(ctx context.Context, deps Deps) *App {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Theme.Width == 0 {
		deps.Theme = card.DefaultTheme()
	}
	return &App{
		ctx:     ctx,
		deps:    deps,
		log:     log,
		keys:    newKeyMap(),
		state:   stateHome,
		machine: qso.NewMachine(),
	}
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.loadSettingsCmd(), a.loadRecentCmd())
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		return a, nil
	case settingsLoadedMsg:
		if msg.err != nil {
			a.setError(msg.err)
			return a, nil
		}
		a.op = msg.op
		a.refreshLock()
		return a, nil
	case settingsSavedMsg:
		return a.onSettingsSaved(msg)
	case recentMsg:
		if msg.err != nil {
			a.setError(msg.err)
			return a, nil
		}
		a.recent = msg.cards
		if a.cursor >= len(a.recent) {
			a.cursor = max(len(a.recent)-1, 0)
		}
		return a, nil
	case exportDoneMsg:
		return a.onExportDone(msg)
	case historyClearedMsg:
		if msg.err != nil {
			a.setError(msg.err)
			return a, nil
		}
		a.setStatus("History cleared")
		return a, a.loadRecentCmd()
	case clockTickMsg:
		if msg.gen != a.clockGen || a.state != stateWizard {
			return a, nil
		}
		a.zulu = qso.ZuluTime(msg.at)
		return a, clockTick(a.clockGen)
	case tea.KeyMsg:
		return a.handleKey(msg)
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}
	switch a.modal {
	case modalSettings:
		return a.updateSettings(msg)
	case modalNotice:
		if msg.String() == "esc" || msg.String() == "enter" || msg.String() == "n" {
			a.modal = modalNone
			a.notice = ""
		}
		return a, nil
	case modalConfirm:
		a.modal = modalNone
		if msg.String() == "y" {
			return a, a.clearHistoryCmd()
		}
		a.setStatus("Clear cancelled")
		return a, nil
	}
	if a.state == stateWizard {
		return a.updateWizard(msg)
	}
	return a.updateHome(msg)
}

func (a *App) updateHome(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "n":
		return a, a.openWizard()
	case "p", "ctrl+s":
		a.openSettings("")
		return a, nil
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < len(a.recent)-1 {
			a.cursor++
		}
	case "r":
		if len(a.recent) == 0 || a.exporting {
			return a, nil
		}
		if !a.op.Complete() {
			a.openSettings(settingsNotice)
			return a, nil
		}
		a.exporting = true
		a.setStatus("Exporting...")
		return a, a.reissueCmd(a.recent[a.cursor].ID)
	case "x":
		if a.deps.Maintenance == nil {
			return a, nil
		}
		a.modal = modalConfirm
	}
	return a, nil
}

func (a *App) updateWizard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.machine.Done() {
		switch msg.String() {
		case "s":
			if a.exporting {
				return a, nil
			}
			a.exporting = true
			a.setStatus("Exporting...")
			return a, a.issueCmd(a.machine.Record())
		case "n":
			return a, a.openWizard()
		case "esc":
			return a, a.closeWizard()
		}
		return a, nil
	}

	switch msg.String() {
	case "esc":
		return a, a.closeWizard()
	case "ctrl+s":
		a.commitFocused()
		a.openSettings("")
		return a, nil
	case "tab", "down":
		a.commitFocused()
		a.form.setFocus(a.form.focus + 1)
		return a, nil
	case "shift+tab", "up":
		a.commitFocused()
		a.form.setFocus(a.form.focus - 1)
		return a, nil
	case "left", "right":
		if f, ok := a.form.focused(); ok && qso.Options(f) != nil && !a.form.locked {
			delta := 1
			if msg.String() == "left" {
				delta = -1
			}
			if v, ok := cycleOption(f, a.form.value(a.form.focus), delta); ok {
				a.form.setValue(a.form.focus, v)
				a.machine.SetField(f, v)
			}
			return a, nil
		}
	case "ctrl+b":
		a.commitFocused()
		a.machine.Retreat()
		a.rebuildForm()
		return a, nil
	case "ctrl+t":
		if a.form.locked {
			return a, nil
		}
		if err := a.machine.ApplyCurrentDateTime(a.deps.Now()); err != nil {
			return a, nil
		}
		a.rebuildForm()
		return a, nil
	case "enter":
		a.commitFocused()
		return a, a.advance()
	}

	cmd := a.form.update(msg)
	if f, ok := a.form.focused(); ok && liveField(f) && !a.form.locked {
		a.machine.SetField(f, a.form.value(a.form.focus))
		if v := a.machine.Record().Get(f); v != a.form.value(a.form.focus) {
			a.form.setValue(a.form.focus, v)
		}
	}
	return a, cmd
}

// advance moves the wizard forward, submitting on the details step.
func (a *App) advance() tea.Cmd {
	if _, ok := a.machine.Step().(qso.DetailsStep); !ok {
		if a.machine.Advance() {
			a.rebuildForm()
		} else {
			a.focusFirstError()
		}
		return nil
	}

	rec, err := a.machine.Submit(a.op)
	switch {
	case errors.Is(err, qso.ErrSettingsIncomplete):
		a.openSettings(settingsNotice)
		return nil
	case err != nil:
		var verr *qso.ValidationError
		if !errors.As(err, &verr) {
			a.setError(err)
		}
		a.focusFirstError()
		return nil
	}
	a.log.Info("qso submitted", zap.String("callsign", rec.Callsign), zap.String("mode", rec.Mode))
	a.lastPath = ""
	a.rebuildForm()
	return nil
}

// commitFocused pushes the focused input into the machine, resolving select
// fields and suffixing bare UTC times.
func (a *App) commitFocused() {
	f, ok := a.form.focused()
	if !ok || a.form.locked {
		return
	}
	raw := a.form.value(a.form.focus)
	if qso.Options(f) != nil {
		v, ok := qso.NormalizeOption(f, raw)
		if !ok {
			v = ""
		}
		raw = v
	}
	a.machine.SetField(f, raw)
	a.form.setValue(a.form.focus, a.machine.Record().Get(f))
}

func (a *App) focusFirstError() {
	errs := a.machine.Errors()
	for i, f := range a.form.fields {
		if errs.Has(f) {
			a.form.setFocus(i)
			return
		}
	}
}

func (a *App) rebuildForm() {
	step := a.machine.Step()
	a.form = newWizardForm(step, a.machine.Record(), lockedStep(step, a.op.Callsign))
}

// refreshLock re-evaluates the locked state after settings change, keeping
// the current focus.
func (a *App) refreshLock() {
	if a.state != stateWizard {
		return
	}
	focus := a.form.focus
	a.rebuildForm()
	if focus < len(a.form.inputs) {
		a.form.setFocus(focus)
	}
}

// openWizard starts a fresh wizard, rereads settings and starts the clock.
func (a *App) openWizard() tea.Cmd {
	a.machine.Reset()
	a.state = stateWizard
	a.lastPath = ""
	a.clockGen++
	a.zulu = qso.ZuluTime(a.deps.Now())
	a.rebuildForm()
	return tea.Batch(a.loadSettingsCmd(), clockTick(a.clockGen))
}

// closeWizard returns home. Bumping the generation stops the clock.
func (a *App) closeWizard() tea.Cmd {
	a.state = stateHome
	a.clockGen++
	a.machine.Reset()
	return a.loadRecentCmd()
}

func (a *App) openSettings(notice string) {
	a.settings = newSettingsForm(a.op, notice)
	a.modal = modalSettings
}

func (a *App) updateSettings(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.settings.saving {
		return a, nil
	}
	switch msg.String() {
	case "esc":
		a.modal = modalNone
		return a, nil
	case "tab", "down":
		a.settings.setFocus(a.settings.focus + 1)
		return a, nil
	case "shift+tab", "up":
		a.settings.setFocus(a.settings.focus - 1)
		return a, nil
	case "enter":
		a.settings.saving = true
		a.settings.err = ""
		return a, a.saveSettingsCmd(a.settings.value())
	}
	return a, a.settings.update(msg)
}

func (a *App) onSettingsSaved(msg settingsSavedMsg) (tea.Model, tea.Cmd) {
	a.settings.saving = false
	if msg.err != nil {
		var verr *settings.ValidationError
		if errors.As(msg.err, &verr) {
			a.settings.err = verr.Message
			switch verr.Field {
			case "cqZone":
				a.settings.setFocus(settingsCQZone)
			case "ituZone":
				a.settings.setFocus(settingsITUZone)
			}
			return a, nil
		}
		a.settings.err = msg.err.Error()
		a.log.Error("save settings", zap.Error(msg.err))
		return a, nil
	}
	a.op = msg.op
	a.modal = modalNone
	a.refreshLock()
	a.setStatus("Settings saved")
	return a, nil
}

func (a *App) onExportDone(msg exportDoneMsg) (tea.Model, tea.Cmd) {
	a.exporting = false
	if msg.res.Export.ImagePath != "" {
		a.lastPath = msg.res.Export.ImagePath
	}
	if msg.err != nil {
		if errors.Is(msg.err, qso.ErrSettingsIncomplete) {
			a.openSettings(settingsNotice)
			return a, nil
		}
		a.log.Error("export card", zap.Error(msg.err))
		a.notice = "Failed to save image: " + msg.err.Error()
		a.modal = modalNotice
		a.statusErr = true
		a.status = "Export failed"
		return a, a.loadRecentCmd()
	}
	a.setStatus("Saved " + msg.res.Export.ImagePath)
	return a, a.loadRecentCmd()
}

func (a *App) setStatus(s string) {
	a.status = s
	a.statusErr = false
}

func (a *App) setError(err error) {
	if err == nil {
		return
	}
	a.log.Error("ui error", zap.Error(err))
	a.status = err.Error()
	a.statusErr = true
}

// Commands

func (a *App) loadSettingsCmd() tea.Cmd {
	return func() tea.Msg {
		if a.deps.Settings == nil {
			return settingsLoadedMsg{}
		}
		op, err := a.deps.Settings.Load(a.ctx)
		return settingsLoadedMsg{op: op, err: err}
	}
}

func (a *App) saveSettingsCmd(op settings.OperatorSettings) tea.Cmd {
	return func() tea.Msg {
		if a.deps.Settings == nil {
			return settingsSavedMsg{err: fmt.Errorf("settings store not configured")}
		}
		saved, err := a.deps.Settings.Save(a.ctx, op)
		if err == nil && a.deps.Backup != nil {
			if berr := a.deps.Backup(saved); berr != nil {
				a.log.Warn("settings backup failed", zap.Error(berr))
			}
		}
		return settingsSavedMsg{op: saved, err: err}
	}
}

func (a *App) loadRecentCmd() tea.Cmd {
	return func() tea.Msg {
		if a.deps.Issuer == nil {
			return recentMsg{}
		}
		cards, err := a.deps.Issuer.Recent(a.ctx, recentLimit)
		return recentMsg{cards: cards, err: err}
	}
}

func (a *App) issueCmd(rec qso.Record) tea.Cmd {
	op := a.op
	return func() tea.Msg {
		if a.deps.Issuer == nil {
			return exportDoneMsg{err: fmt.Errorf("exporter not configured")}
		}
		res, err := a.deps.Issuer.Issue(a.ctx, rec, op)
		return exportDoneMsg{res: res, err: err}
	}
}

func (a *App) reissueCmd(id string) tea.Cmd {
	op := a.op
	return func() tea.Msg {
		res, err := a.deps.Issuer.Reissue(a.ctx, id, op)
		return exportDoneMsg{res: res, err: err}
	}
}

func (a *App) clearHistoryCmd() tea.Cmd {
	return func() tea.Msg {
		return historyClearedMsg{err: a.deps.Maintenance.ClearHistory(a.ctx)}
	}
}

// operatorLine summarises the configured station for headers.
func operatorLine(op settings.OperatorSettings) string {
	call := strings.TrimSpace(op.Callsign)
	if call == "" {
		call = "not set"
	}
	cq, itu := op.CQZone, op.ITUZone
	if cq == "" {
		cq = "-"
	}
	if itu == "" {
		itu = "-"
	}
	return fmt.Sprintf("%s  CQ %s  ITU %s", call, cq, itu)
}
