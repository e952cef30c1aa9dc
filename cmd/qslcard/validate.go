package main

import (
	"context"
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jask/qslcard/internal/card"
	"github.com/jask/qslcard/internal/config"
	"github.com/jask/qslcard/internal/database"
	"github.com/jask/qslcard/internal/database/repository"
	"github.com/jask/qslcard/internal/export"
	"github.com/jask/qslcard/internal/qso"
	"github.com/jask/qslcard/internal/service"
	"github.com/jask/qslcard/internal/settings"
)

// runValidation drives one card through the wizard, export and history using
// a temporary database and output directory.
func runValidation(w io.Writer) error {
	ctx := context.Background()
	dir, err := os.MkdirTemp("", "qslcard-validate-")
	if err != nil {
		return fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	db, err := database.OpenMigrated(filepath.Join(dir, "validate.db"))
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	store := settings.NewStore(repository.NewSettingsRepo(db))
	op, err := store.Save(ctx, settings.OperatorSettings{Callsign: "hs0zzz", CQZone: "26", ITUZone: "49"})
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	if op, err = store.Load(ctx); err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	if op.Callsign != "HS0ZZZ" {
		return fmt.Errorf("stored callsign = %q, want HS0ZZZ", op.Callsign)
	}

	m := qso.NewMachine()
	m.SetField(qso.FieldCallsign, "w1aw")
	if !m.Advance() {
		return fmt.Errorf("call sign step rejected: %v", m.Errors())
	}
	if err := m.ApplyCurrentDateTime(time.Date(2024, time.March, 16, 14, 5, 0, 0, time.UTC)); err != nil {
		return fmt.Errorf("apply date: %w", err)
	}
	if !m.Advance() {
		return fmt.Errorf("date step rejected: %v", m.Errors())
	}
	m.SetField(qso.FieldMHz, "145.500")
	m.SetField(qso.FieldRST, "59")
	m.SetField(qso.FieldMode, "FM")
	m.SetField(qso.FieldQSL, "TNX")
	rec, err := m.Submit(op)
	if err != nil {
		return fmt.Errorf("submit: %w", err)
	}

	cards := repository.NewCardRepo(db)
	issuer := &service.Issuer{
		Cards: cards,
		Exporter: &export.Exporter{
			Dir:       filepath.Join(dir, "out"),
			Scale:     1,
			Theme:     card.DefaultTheme(),
			WriteADIF: true,
		},
	}
	res, err := issuer.Issue(ctx, rec, op)
	if err != nil {
		return fmt.Errorf("issue: %w", err)
	}
	if got := filepath.Base(res.Export.ImagePath); got != "QSL_W1AW_2024.png" {
		return fmt.Errorf("image name = %s", got)
	}
	f, err := os.Open(res.Export.ImagePath)
	if err != nil {
		return fmt.Errorf("open png: %w", err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		return fmt.Errorf("decode png: %w", err)
	}
	theme := card.DefaultTheme()
	if cfg.Width != theme.Width || cfg.Height != theme.Height {
		return fmt.Errorf("png size = %dx%d, want %dx%d", cfg.Width, cfg.Height, theme.Width, theme.Height)
	}

	adif, err := os.ReadFile(res.Export.ADIFPath)
	if err != nil {
		return fmt.Errorf("read adif: %w", err)
	}
	if !strings.Contains(string(adif), "<CALL:4>W1AW") {
		return fmt.Errorf("adif missing call:\n%s", adif)
	}

	n, err := cards.Count(ctx)
	if err != nil {
		return fmt.Errorf("count cards: %w", err)
	}
	if n != 1 {
		return fmt.Errorf("history rows = %d, want 1", n)
	}
	fmt.Fprintf(w, "card=%s size=%dx%d history=%d\n", filepath.Base(res.Export.ImagePath), cfg.Width, cfg.Height, n)
	return nil
}

// runStartupHarness loads configuration the way the TUI does and reports what
// it resolved. It fails when the configured theme cannot be used.
func runStartupHarness(w io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(w, "startup_status_err=true\nconfig: %v\n", err)
		return err
	}
	fmt.Fprintf(w, "db=%s\n", cfg.Database.Path)
	fmt.Fprintf(w, "export_dir=%s scale=%d adif=%t\n", cfg.Export.Dir, cfg.Export.Scale, cfg.Export.WriteADIF)

	theme, err := card.LoadTheme(cfg.Card.Theme)
	if err != nil {
		fmt.Fprintf(w, "startup_status_err=true\ntheme: %v\n", err)
		return err
	}
	fmt.Fprintf(w, "theme=%s %dx%d\n", theme.Country, theme.Width, theme.Height)

	if cfg.Card.Background != "" {
		if _, err := export.LoadBackground(context.Background(), cfg.Card.Background, cfg.Export.ImageTimeout); err != nil {
			fmt.Fprintf(w, "background=skipped (%v)\n", err)
		} else {
			fmt.Fprintf(w, "background=%s\n", cfg.Card.Background)
		}
	}
	fmt.Fprintln(w, "startup_status_err=false")
	return nil
}
