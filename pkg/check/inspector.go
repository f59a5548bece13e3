package check

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/modelfit/modelfit/pkg/huggingface"
	"github.com/modelfit/modelfit/pkg/modelurl"
	"github.com/modelfit/modelfit/pkg/quant"
)

// RemoteFile is one weight file included in the feasibility question.
type RemoteFile struct {
	// Name is the repository-relative file path.
	Name string
	// Size is the file size in bytes.
	Size int64
	// Label is the canonical quantization label, quant.LabelNone for raw
	// weights, or quant.LabelUnknown for GGUF files whose names defy the
	// convention.
	Label string
}

// Lister is the repository listing capability consumed by the pipeline.
// *huggingface.Client implements it.
type Lister interface {
	ListFiles(ctx context.Context, repoID string) ([]huggingface.File, error)
}

// rawWeightExts are the checkpoint extensions counted for raw-weight repos.
var rawWeightExts = map[string]bool{
	".safetensors": true,
	".bin":         true,
}

// inspect lists the repository once and returns the weight files relevant
// to the request, labeled per the naming convention. Shard completeness is
// whatever the listing reports; individual files are never probed.
func (c *Checker) inspect(ctx context.Context, req modelurl.Request) ([]RemoteFile, error) {
	entries, err := c.lister.ListFiles(ctx, req.Repository)
	if err != nil {
		return nil, fmt.Errorf("inspecting %q: %w", req.Repository, err)
	}

	var files []RemoteFile
	switch req.Kind {
	case modelurl.KindQuantizedFile:
		for _, entry := range entries {
			if !entry.IsFile() || entry.Path != req.FilePath {
				continue
			}
			files = append(files, RemoteFile{
				Name:  entry.Path,
				Size:  entry.Bytes(),
				Label: c.labelFor(entry.Path),
			})
		}
		if len(files) == 0 {
			return nil, fmt.Errorf("%q has no file %q: %w", req.Repository, req.FilePath, ErrNoMatchingFiles)
		}
	case modelurl.KindQuantizedFamily:
		for _, entry := range entries {
			if !entry.IsFile() || !hasExt(entry.Path, ".gguf") || !inSubfolder(entry.Path, req.Subfolder) {
				continue
			}
			files = append(files, RemoteFile{
				Name:  entry.Path,
				Size:  entry.Bytes(),
				Label: c.labelFor(entry.Path),
			})
		}
		if len(files) == 0 {
			return nil, fmt.Errorf("%q has no .gguf files: %w", req.Repository, ErrNoMatchingFiles)
		}
	default:
		for _, entry := range entries {
			if !entry.IsFile() || !rawWeightExts[strings.ToLower(path.Ext(entry.Path))] || !inSubfolder(entry.Path, req.Subfolder) {
				continue
			}
			files = append(files, RemoteFile{
				Name:  entry.Path,
				Size:  entry.Bytes(),
				Label: quant.LabelNone,
			})
		}
		if len(files) == 0 {
			return nil, fmt.Errorf("%q has no .safetensors or .bin weights: %w", req.Repository, ErrNoMatchingFiles)
		}
	}
	return files, nil
}

// labelFor parses a GGUF file name, falling back to the unknown label so
// unconventionally named files still count toward memory.
func (c *Checker) labelFor(filename string) string {
	if label, ok := c.parser.Parse(filename); ok {
		return label
	}
	return quant.LabelUnknown
}

func hasExt(p, ext string) bool {
	return strings.EqualFold(path.Ext(p), ext)
}

// inSubfolder reports whether p sits under dir. An empty dir means the
// whole repository.
func inSubfolder(p, dir string) bool {
	if dir == "" {
		return true
	}
	return strings.HasPrefix(p, strings.TrimSuffix(dir, "/")+"/")
}
