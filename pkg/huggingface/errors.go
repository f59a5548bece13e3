package huggingface

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrRepositoryNotFound indicates that a repository does not exist or is not
// publicly readable. The hub reports gated and missing repositories the same
// way, so both map here.
var ErrRepositoryNotFound = errors.New("repository not found or not public")

// Error represents a failed hub API call.
type Error struct {
	RepoID     string
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("hub request for %q failed: %d %s", e.RepoID, e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("hub request for %q failed: %v", e.RepoID, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is implements error matching for Error.
func (e *Error) Is(target error) bool {
	if target == ErrRepositoryNotFound {
		switch e.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
			return true
		}
	}
	return false
}

// NewListError creates a new Error for a failed listing.
func NewListError(repoID string, statusCode int, err error) error {
	return &Error{
		RepoID:     repoID,
		StatusCode: statusCode,
		Err:        err,
	}
}
