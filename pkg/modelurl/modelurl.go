package modelurl

import (
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"
)

// ErrInvalidURL indicates that an identifier does not name a Hugging Face
// model repository in any recognized shape.
var ErrInvalidURL = errors.New("invalid model URL")

// Kind describes the shape of a model reference.
type Kind int

const (
	// KindRawWeights is a repository of unquantized weight shards
	// (.safetensors or .bin files).
	KindRawWeights Kind = iota
	// KindQuantizedFamily is a repository publishing multiple GGUF
	// quantization variants of a single model.
	KindQuantizedFamily
	// KindQuantizedFile is a direct reference to one .gguf file inside a
	// repository.
	KindQuantizedFile
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindRawWeights:
		return "raw weights"
	case KindQuantizedFamily:
		return "GGUF family"
	case KindQuantizedFile:
		return "GGUF file"
	default:
		return "unknown"
	}
}

// Request is the parsed form of a model identifier.
type Request struct {
	// Raw is the identifier exactly as supplied.
	Raw string
	// Kind is the reference shape the identifier resolved to.
	Kind Kind
	// Repository is the "owner/name" repository path.
	Repository string
	// Subfolder restricts aggregation to one repository directory. It is
	// set from /tree/<rev>/<dir> references and empty otherwise.
	Subfolder string
	// FilePath is the repository-relative path of the referenced file.
	// Set for KindQuantizedFile only.
	FilePath string
}

// familyMarker flags repositories that publish quantization variants. The
// Hugging Face convention is a "GGUF" keyword or suffix in the repo name.
const familyMarker = "gguf"

var acceptedHosts = map[string]bool{
	"huggingface.co":     true,
	"www.huggingface.co": true,
	"hf.co":              true,
}

// reservedNamespaces are top-level huggingface.co path roots that never name
// a model owner.
var reservedNamespaces = map[string]bool{
	"api":           true,
	"blog":          true,
	"collections":   true,
	"datasets":      true,
	"docs":          true,
	"models":        true,
	"organizations": true,
	"posts":         true,
	"settings":      true,
	"spaces":        true,
	"tasks":         true,
}

// Classify parses a model identifier into a Request. It accepts absolute
// huggingface.co URLs (scheme optional) and bare "owner/name" identifiers,
// optionally extended with /tree/<rev>/<dir> or /blob/<rev>/<file>. It is a
// pure function: no network access, and equal inputs yield equal Requests.
func Classify(raw string) (Request, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Request{}, invalidf("empty identifier")
	}

	segs, err := pathSegments(s)
	if err != nil {
		return Request{}, err
	}
	if reservedNamespaces[strings.ToLower(segs[0])] {
		return Request{}, invalidf("%q: %q is not a model namespace", s, segs[0])
	}
	if len(segs) < 2 {
		return Request{}, invalidf("%q: expected an owner/name repository path", s)
	}

	req := Request{
		Raw:        raw,
		Repository: segs[0] + "/" + segs[1],
	}
	rest := segs[2:]
	if len(rest) == 0 {
		req.Kind = classifyRepository(req.Repository)
		return req, nil
	}

	switch rest[0] {
	case "blob", "resolve":
		if len(rest) < 3 {
			return Request{}, invalidf("%q: file link is missing a file path", s)
		}
		file := strings.Join(rest[2:], "/")
		if !strings.EqualFold(path.Ext(file), ".gguf") {
			return Request{}, invalidf("%q: only .gguf file links are supported", s)
		}
		req.Kind = KindQuantizedFile
		req.FilePath = file
		return req, nil
	case "tree":
		if len(rest) < 2 {
			return Request{}, invalidf("%q: tree link is missing a revision", s)
		}
		req.Subfolder = strings.Join(rest[2:], "/")
		req.Kind = classifyRepository(req.Repository)
		return req, nil
	default:
		return Request{}, invalidf("%q: unrecognized repository sub-path %q", s, rest[0])
	}
}

// pathSegments extracts the non-empty repository path segments from an
// identifier, validating the host when one is present.
func pathSegments(s string) ([]string, error) {
	var p string
	if strings.Contains(s, "://") {
		u, err := url.Parse(s)
		if err != nil {
			return nil, invalidf("%q: %v", s, err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return nil, invalidf("%q: unsupported scheme %q", s, u.Scheme)
		}
		if !acceptedHosts[strings.ToLower(u.Host)] {
			return nil, invalidf("%q: host %q is not huggingface.co", s, u.Host)
		}
		p = u.Path
	} else {
		// Scheme-less URLs ("huggingface.co/owner/name") and bare
		// identifiers ("owner/name") both land here.
		head, rest, _ := strings.Cut(s, "/")
		if acceptedHosts[strings.ToLower(head)] {
			p = rest
		} else {
			p = s
		}
		if i := strings.IndexAny(p, "?#"); i >= 0 {
			p = p[:i]
		}
	}

	var segs []string
	for _, seg := range strings.Split(p, "/") {
		if seg != "" {
			segs = append(segs, seg)
		}
	}
	if len(segs) == 0 {
		return nil, invalidf("%q: no repository path", s)
	}
	return segs, nil
}

// classifyRepository decides between a raw-weight repo and a GGUF family
// based on the repository name alone. Owners with "gguf" in their handle
// must not flip every repo they publish.
func classifyRepository(repository string) Kind {
	_, name, _ := strings.Cut(repository, "/")
	if strings.Contains(strings.ToLower(name), familyMarker) {
		return KindQuantizedFamily
	}
	return KindRawWeights
}

func invalidf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidURL, fmt.Sprintf(format, args...))
}
