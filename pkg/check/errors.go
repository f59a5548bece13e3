package check

import "errors"

var (
	// ErrNoMatchingFiles indicates the repository exists but holds no
	// files of the kind the request asked about.
	ErrNoMatchingFiles = errors.New("no matching weight files")

	// ErrEmptyFileSet guards aggregation against an empty input.
	ErrEmptyFileSet = errors.New("empty file set")
)
