// Package prefs keeps a copy of the operator settings outside the database so
// they survive the database being deleted or recreated.
package prefs

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/jask/qslcard/internal/settings"
)

const operatorFile = "operator.json"

func operatorPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	dir = filepath.Join(dir, "qslcard")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(dir, operatorFile), nil
}

func SaveOperator(op settings.OperatorSettings) error {
	path, err := operatorPath()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(map[string]string{
		settings.KeyCallsign: op.Callsign,
		settings.KeyCQZone:   op.CQZone,
		settings.KeyITUZone:  op.ITUZone,
	}, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// LoadOperator returns the saved copy. A missing file yields empty settings.
func LoadOperator() (settings.OperatorSettings, error) {
	path, err := operatorPath()
	if err != nil {
		return settings.OperatorSettings{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return settings.OperatorSettings{}, nil
		}
		return settings.OperatorSettings{}, err
	}
	var kv map[string]string
	if err := json.Unmarshal(data, &kv); err != nil {
		return settings.OperatorSettings{}, err
	}
	return settings.OperatorSettings{
		Callsign: kv[settings.KeyCallsign],
		CQZone:   kv[settings.KeyCQZone],
		ITUZone:  kv[settings.KeyITUZone],
	}, nil
}
