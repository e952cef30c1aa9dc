// Package settings persists the operator's own station details: callsign,
// CQ zone and ITU zone. The wizard reads them on every open and refuses to
// issue a card until all three are set.
package settings

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Storage keys. They match the keys the browser version kept in local storage.
const (
	KeyCallsign = "customCallsign"
	KeyCQZone   = "customCqZone"
	KeyITUZone  = "customItuZone"
)

// OperatorSettings are the station details printed on every card.
type OperatorSettings struct {
	Callsign string
	CQZone   string
	ITUZone  string
}

// Complete reports whether all three fields are non-empty after trimming.
func (s OperatorSettings) Complete() bool {
	return strings.TrimSpace(s.Callsign) != "" &&
		strings.TrimSpace(s.CQZone) != "" &&
		strings.TrimSpace(s.ITUZone) != ""
}

// Normalize trims every field and uppercases the callsign.
func (s OperatorSettings) Normalize() OperatorSettings {
	return OperatorSettings{
		Callsign: strings.ToUpper(strings.TrimSpace(s.Callsign)),
		CQZone:   strings.TrimSpace(s.CQZone),
		ITUZone:  strings.TrimSpace(s.ITUZone),
	}
}

// ValidationError names the first field that failed a save.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks a normalized value for saving.
func (s OperatorSettings) Validate() error {
	if !s.Complete() {
		return &ValidationError{Field: "settings", Message: "Please fill in all fields: Callsign, CQ Zone, and ITU Zone"}
	}
	if err := checkZone("cqZone", "CQ Zone", s.CQZone, 40); err != nil {
		return err
	}
	return checkZone("ituZone", "ITU Zone", s.ITUZone, 90)
}

func checkZone(field, label, raw string, max int) error {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 || n > max {
		return &ValidationError{Field: field, Message: fmt.Sprintf("%s must be a number between 1 and %d", label, max)}
	}
	return nil
}

// KV is the key-value backend. repository.SettingsRepo satisfies it.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	SetMany(ctx context.Context, kv map[string]string) error
}

// Store loads and saves OperatorSettings through a KV.
type Store struct {
	kv KV
}

func NewStore(kv KV) *Store { return &Store{kv: kv} }

// Load returns whatever is stored; missing keys come back empty.
func (s *Store) Load(ctx context.Context) (OperatorSettings, error) {
	var out OperatorSettings
	for _, f := range []struct {
		key string
		dst *string
	}{
		{KeyCallsign, &out.Callsign},
		{KeyCQZone, &out.CQZone},
		{KeyITUZone, &out.ITUZone},
	} {
		v, _, err := s.kv.Get(ctx, f.key)
		if err != nil {
			return OperatorSettings{}, fmt.Errorf("load %s: %w", f.key, err)
		}
		*f.dst = v
	}
	return out, nil
}

// Save normalizes and validates op, then writes all three keys. It returns the
// normalized value that was stored.
func (s *Store) Save(ctx context.Context, op OperatorSettings) (OperatorSettings, error) {
	op = op.Normalize()
	if err := op.Validate(); err != nil {
		return OperatorSettings{}, err
	}
	if err := s.kv.SetMany(ctx, map[string]string{
		KeyCallsign: op.Callsign,
		KeyCQZone:   op.CQZone,
		KeyITUZone:  op.ITUZone,
	}); err != nil {
		return OperatorSettings{}, fmt.Errorf("save settings: %w", err)
	}
	return op, nil
}
