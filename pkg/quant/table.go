package quant

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultMultiplier is applied when a label has no table entry.
const DefaultMultiplier = 1.0

//go:embed defaults.yaml
var defaultsYAML []byte

var defaultEntries map[string]float64

func init() {
	var doc tableDoc
	if err := yaml.Unmarshal(defaultsYAML, &doc); err != nil {
		panic(fmt.Sprintf("embedded multiplier table is invalid: %v", err))
	}
	defaultEntries = make(map[string]float64, len(doc.Multipliers))
	for label, v := range doc.Multipliers {
		m, ok := coerceMultiplier(v)
		if !ok {
			panic(fmt.Sprintf("embedded multiplier table entry %q is not a number", label))
		}
		defaultEntries[normalizeLabel(label)] = m
	}
}

// tableDoc is the on-disk shape of a multiplier table in any of the
// supported formats.
type tableDoc struct {
	Multipliers map[string]interface{} `yaml:"multipliers" json:"multipliers" toml:"multipliers"`
}

// Table maps quantization labels to disk-to-resident memory multipliers.
// Immutable once constructed.
type Table struct {
	multipliers map[string]float64
}

// NewTable builds a Table from label → multiplier entries. Keys are
// normalized, so "q4-k-m" and "Q4_K_M" address the same entry.
func NewTable(entries map[string]float64) *Table {
	m := make(map[string]float64, len(entries))
	for label, v := range entries {
		m[normalizeLabel(label)] = v
	}
	return &Table{multipliers: m}
}

// DefaultTable returns the built-in multiplier table.
func DefaultTable() *Table {
	return NewTable(defaultEntries)
}

// Resolve returns the multiplier for a label. Unknown labels resolve to
// DefaultMultiplier with resolved=false so callers can record the fallback.
func (t *Table) Resolve(label string) (m float64, resolved bool) {
	if v, ok := t.multipliers[normalizeLabel(label)]; ok {
		return v, true
	}
	return DefaultMultiplier, false
}

// Labels returns the known labels in sorted order.
func (t *Table) Labels() []string {
	labels := make([]string, 0, len(t.multipliers))
	for label := range t.multipliers {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// normalizeLabel canonicalizes a label for lookups: upper-case with
// separator variants mapped to underscores.
func normalizeLabel(label string) string {
	s := strings.ToUpper(strings.TrimSpace(label))
	return strings.NewReplacer("-", "_", ".", "_", " ", "_").Replace(s)
}
