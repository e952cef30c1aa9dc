package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jask/qslcard/internal/database/repository"
	"github.com/jask/qslcard/internal/export"
	"github.com/jask/qslcard/internal/qso"
	"github.com/jask/qslcard/internal/settings"
)

// CardExporter is satisfied by *export.Exporter.
type CardExporter interface {
	Export(ctx context.Context, rec qso.Record, op settings.OperatorSettings) (export.Result, error)
}

// Issuer exports finalized records and keeps a history of issued cards.
type Issuer struct {
	Cards    *repository.CardRepo
	Exporter CardExporter
	Logger   *zap.Logger
}

type IssueResult struct {
	ID     string
	Export export.Result
}

// Issue writes the card files and records the card. When the files were
// written but the history insert failed, the result is returned together
// with the error.
func (s *Issuer) Issue(ctx context.Context, rec qso.Record, op settings.OperatorSettings) (IssueResult, error) {
	if s.Exporter == nil {
		return IssueResult{}, fmt.Errorf("issuer: exporter not configured")
	}
	if !op.Complete() {
		return IssueResult{}, qso.ErrSettingsIncomplete
	}
	out, err := s.Exporter.Export(ctx, rec, op)
	if err != nil {
		s.logger().Error("export failed", zap.String("callsign", rec.Callsign), zap.Error(err))
		return IssueResult{}, fmt.Errorf("export card: %w", err)
	}
	res := IssueResult{ID: uuid.NewString(), Export: out}
	if s.Cards == nil {
		return res, nil
	}
	if err := s.Cards.Insert(ctx, repository.Card{
		ID:               res.ID,
		OperatorCallsign: op.Callsign,
		Callsign:         rec.Callsign,
		Day:              rec.Day,
		Month:            rec.Month,
		Year:             rec.Year,
		UTC:              rec.UTC,
		MHz:              rec.MHz,
		RST:              rec.RST,
		Mode:             rec.Mode,
		QSL:              rec.QSL,
		ImagePath:        out.ImagePath,
	}); err != nil {
		s.logger().Error("record card history", zap.String("id", res.ID), zap.Error(err))
		return res, fmt.Errorf("card saved to %s but history not recorded: %w", out.ImagePath, err)
	}
	return res, nil
}

// Recent lists the latest issued cards, newest first.
func (s *Issuer) Recent(ctx context.Context, limit int) ([]repository.Card, error) {
	if s.Cards == nil {
		return nil, nil
	}
	return s.Cards.List(ctx, limit)
}

// Reissue rebuilds the record of a stored card so it can be exported again.
func (s *Issuer) Reissue(ctx context.Context, id string, op settings.OperatorSettings) (IssueResult, error) {
	if s.Cards == nil {
		return IssueResult{}, fmt.Errorf("issuer: history not configured")
	}
	c, err := s.Cards.Get(ctx, id)
	if err != nil {
		return IssueResult{}, fmt.Errorf("load card %s: %w", id, err)
	}
	if c == nil {
		return IssueResult{}, fmt.Errorf("card %s not found", id)
	}
	return s.Issue(ctx, RecordFromCard(*c), op)
}

// RecordFromCard converts a history row back into a QSO record.
func RecordFromCard(c repository.Card) qso.Record {
	return qso.Record{
		Callsign: c.Callsign, Day: c.Day, Month: c.Month, Year: c.Year, UTC: c.UTC,
		MHz: c.MHz, RST: c.RST, Mode: c.Mode, QSL: c.QSL,
	}
}

func (s *Issuer) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}
