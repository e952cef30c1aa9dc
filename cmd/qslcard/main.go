package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jask/qslcard/internal/card"
	"github.com/jask/qslcard/internal/config"
	"github.com/jask/qslcard/internal/database"
	"github.com/jask/qslcard/internal/database/repository"
	"github.com/jask/qslcard/internal/export"
	"github.com/jask/qslcard/internal/logging"
	"github.com/jask/qslcard/internal/prefs"
	"github.com/jask/qslcard/internal/service"
	"github.com/jask/qslcard/internal/settings"
	"github.com/jask/qslcard/internal/testdata"
	"github.com/jask/qslcard/internal/tui"
)

func main() {
	validate := flag.Bool("validate", false, "run non-TUI validation")
	startupCheck := flag.Bool("startup-check", false, "print resolved configuration and exit")
	seed := flag.Int("seed", 0, "insert N sample cards into the history and exit")
	initConfig := flag.Bool("init-config", false, "write the resolved configuration file and exit")
	flag.Parse()
	if *validate && *startupCheck {
		fmt.Fprintln(os.Stderr, "cannot use -validate and -startup-check together")
		os.Exit(2)
	}
	if *startupCheck {
		if err := runStartupHarness(os.Stdout); err != nil {
			os.Exit(1)
		}
		return
	}
	if *validate {
		if err := runValidation(os.Stdout); err != nil {
			fmt.Fprintln(os.Stderr, "validation failed:", err)
			os.Exit(1)
		}
		fmt.Println("validation ok")
		return
	}

	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *initConfig {
		if err := config.Save(cfg); err != nil {
			log.Fatalf("write config: %v", err)
		}
		fmt.Println("config written")
		return
	}

	logger, err := logging.New(cfg.Log.Path, cfg.Log.Level)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		log.Fatalf("mkdir db dir: %v", err)
	}
	db, err := database.OpenMigrated(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	theme, err := card.LoadTheme(cfg.Card.Theme)
	if err != nil {
		logger.Warn("using default card theme", zap.String("path", cfg.Card.Theme), zap.Error(err))
	}

	// repositories
	settingsRepo := repository.NewSettingsRepo(db)
	cardRepo := repository.NewCardRepo(db)
	store := settings.NewStore(settingsRepo)

	// restore operator settings from the prefs copy if the database lost them
	if err := restoreOperator(ctx, store); err != nil {
		logger.Warn("restore operator settings", zap.Error(err))
	}

	if *seed > 0 {
		if err := seedHistory(ctx, store, cardRepo, *seed, time.Now().UnixNano()); err != nil {
			log.Fatalf("seed: %v", err)
		}
		fmt.Printf("seeded %d cards\n", *seed)
		return
	}

	exporter := &export.Exporter{
		Dir:          cfg.Export.Dir,
		Scale:        cfg.Export.Scale,
		Theme:        theme,
		Background:   cfg.Card.Background,
		ImageTimeout: cfg.Export.ImageTimeout,
		WriteADIF:    cfg.Export.WriteADIF,
		Logger:       logger.Named("export"),
	}

	logger.Info("starting", zap.String("db", cfg.Database.Path), zap.String("export_dir", cfg.Export.Dir))

	p := tea.NewProgram(tui.New(ctx, tui.Deps{
		Settings:    store,
		Issuer:      &service.Issuer{Cards: cardRepo, Exporter: exporter, Logger: logger.Named("issuer")},
		Maintenance: &service.MaintenanceService{DB: db},
		Theme:       theme,
		Logger:      logger.Named("tui"),
		Backup:      prefs.SaveOperator,
	}), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}

// seedHistory inserts n sample cards issued by the stored operator.
func seedHistory(ctx context.Context, store *settings.Store, cards *repository.CardRepo, n int, seed int64) error {
	op, err := store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	return testdata.Seed(ctx, cards, op.Callsign, n, seed)
}

// restoreOperator copies the prefs backup into the store when the store has no
// complete settings but the backup does.
func restoreOperator(ctx context.Context, store *settings.Store) error {
	current, err := store.Load(ctx)
	if err != nil {
		return err
	}
	if current.Complete() {
		return nil
	}
	saved, err := prefs.LoadOperator()
	if err != nil {
		return err
	}
	if !saved.Complete() {
		return nil
	}
	_, err = store.Save(ctx, saved)
	return err
}
