package quant

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/modelfit/modelfit/pkg/logging"
)

// ConfigError describes a multiplier file that could not be used.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("multiplier config %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError.
func NewConfigError(path string, err error) error {
	return &ConfigError{Path: path, Err: err}
}

// LoadTable builds the multiplier table for a run. An empty path returns the
// built-in defaults. A missing or undecodable file degrades to the defaults
// with a warning; individually malformed entries are skipped with a warning
// naming the label. Config trouble never fails a run.
func LoadTable(path string, log logging.Logger) *Table {
	if path == "" {
		return DefaultTable()
	}

	entries, err := parseFile(path)
	if err != nil {
		log.Warnf("%v; using built-in defaults", NewConfigError(path, err))
		return DefaultTable()
	}

	merged := make(map[string]float64, len(defaultEntries)+len(entries))
	for label, m := range defaultEntries {
		merged[label] = m
	}
	for label, v := range entries {
		m, ok := coerceMultiplier(v)
		if !ok || !validMultiplier(m) {
			log.Warnf("multiplier config %s: skipping %q: multiplier must be a positive finite number, got %v", path, label, v)
			continue
		}
		merged[normalizeLabel(label)] = m
	}
	return NewTable(merged)
}

type unmarshalFunc func([]byte, interface{}) error

func unmarshalerFor(path string) (unmarshalFunc, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return yaml.Unmarshal, nil
	case ".json":
		return json.Unmarshal, nil
	case ".toml":
		return toml.Unmarshal, nil
	default:
		return nil, fmt.Errorf("unsupported config extension %q", ext)
	}
}

func parseFile(path string) (map[string]interface{}, error) {
	unmarshal, err := unmarshalerFor(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc tableDoc
	if err := unmarshal(data, &doc); err == nil && doc.Multipliers != nil {
		return doc.Multipliers, nil
	}

	// Flat label → multiplier files are accepted too.
	var flat map[string]interface{}
	if err := unmarshal(data, &flat); err != nil {
		return nil, err
	}
	if len(flat) == 0 {
		return nil, errors.New("no multiplier entries found")
	}
	return flat, nil
}

func coerceMultiplier(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}

func validMultiplier(m float64) bool {
	return m > 0 && !math.IsNaN(m) && !math.IsInf(m, 0)
}
