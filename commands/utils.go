package commands

import (
	"errors"
	"fmt"

	"github.com/modelfit/modelfit/pkg/check"
	"github.com/modelfit/modelfit/pkg/huggingface"
	"github.com/modelfit/modelfit/pkg/modelurl"
)

const invalidURLHint = `Accepted identifiers:
  owner/name
  https://huggingface.co/owner/name
  https://huggingface.co/owner/name/tree/main/subfolder
  https://huggingface.co/owner/name/blob/main/file.gguf`

const notFoundHint = "The model you're looking for does not exist or it's not public. " +
	"For gated repositories, set HF_TOKEN to a token that can read them."

const noMatchHint = "If the publisher ships GGUF builds in a separate repository, point at the " +
	"-GGUF variant, or link a single .gguf file directly with /blob/main/."

// guidance appends a next-step hint to the pipeline errors a user can act
// on. The original error stays unwrappable for errors.Is.
func guidance(err error) error {
	switch {
	case errors.Is(err, modelurl.ErrInvalidURL):
		return fmt.Errorf("%w\n%s", err, invalidURLHint)
	case errors.Is(err, huggingface.ErrRepositoryNotFound):
		return fmt.Errorf("%w\n%s", err, notFoundHint)
	case errors.Is(err, check.ErrNoMatchingFiles):
		return fmt.Errorf("%w\n%s", err, noMatchHint)
	default:
		return err
	}
}
