package check

// Candidate is one runnable variant of the requested model: every remote
// file sharing a quantization label, shards included.
type Candidate struct {
	// Label is the candidate's quantization label.
	Label string
	// TotalSize is the sum of the candidate's file sizes in bytes.
	TotalSize int64
	// Files are the contributing file names in listing order.
	Files []string
	// Multiplier is the disk-to-resident factor applied by Estimate.
	Multiplier float64
	// FallbackMultiplier records that the label had no table entry and
	// the default multiplier was applied instead.
	FallbackMultiplier bool
	// Estimated is TotalSize × Multiplier in bytes, unrounded.
	Estimated float64
}

// Aggregate groups files into per-label candidates. Candidate order follows
// each label's first appearance in the listing, keeping re-runs
// deterministic. Every candidate holds at least one file and labels are
// unique across candidates.
func Aggregate(files []RemoteFile) ([]Candidate, error) {
	if len(files) == 0 {
		return nil, ErrEmptyFileSet
	}
	index := make(map[string]int, len(files))
	var cands []Candidate
	for _, f := range files {
		i, ok := index[f.Label]
		if !ok {
			i = len(cands)
			index[f.Label] = i
			cands = append(cands, Candidate{Label: f.Label})
		}
		cands[i].TotalSize += f.Size
		cands[i].Files = append(cands[i].Files, f.Name)
	}
	return cands, nil
}
