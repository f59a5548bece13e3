package quant

import (
	"path"
	"regexp"
	"strings"
)

const (
	// LabelNone marks unquantized weight files (.safetensors / .bin).
	LabelNone = "none"

	// LabelUnknown marks GGUF files whose names carry no recognizable
	// quantization token.
	LabelUnknown = "unknown"
)

// LabelParser extracts a quantization label from a file name. The token
// convention is pluggable so repositories with bespoke naming schemes can
// swap in their own rules.
type LabelParser interface {
	// Parse returns the canonical quantization label of the file, or
	// ok=false when the name carries none.
	Parse(filename string) (label string, ok bool)
}

var (
	// labelPattern matches the conventional quantization tokens in GGUF
	// file names: Q4_K_M, IQ2_XS, Q8_0, F16, BF16, ...
	labelPattern = regexp.MustCompile(`(?i)(IQ[1-4]_(?:XXS|XS|S|M|NL)|Q[2-8]_[01]|Q[2-8]_K(?:_(?:XXS|XS|S|M|L|XL))?|F(?:16|32)|BF16)`)

	// shardSuffix matches multi-part numbering such as "-00001-of-00009".
	shardSuffix = regexp.MustCompile(`-\d{5}-of-\d{5}$`)
)

type conventionParser struct{}

// NewConventionParser returns the default LabelParser for the naming
// convention used across hub GGUF repositories.
func NewConventionParser() LabelParser {
	return &conventionParser{}
}

// Parse implements LabelParser.
func (p *conventionParser) Parse(filename string) (string, bool) {
	base := path.Base(filename)
	if ext := path.Ext(base); strings.EqualFold(ext, ".gguf") {
		base = strings.TrimSuffix(base, ext)
	}
	base = shardSuffix.ReplaceAllString(base, "")
	matches := labelPattern.FindAllString(base, -1)
	if len(matches) == 0 {
		return "", false
	}
	// The label is conventionally the trailing token, so the last match
	// wins when the model name itself resembles one.
	return normalizeLabel(matches[len(matches)-1]), true
}
