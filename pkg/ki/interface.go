package ki

import (
	"context"
	"io/fs"

	"emperror.dev/errors"
)

// ErrNoCompletion is returned by drivers when the provider answers without any text.
var ErrNoCompletion = errors.New("no completion")

type Interface interface {
	// QueryWithImage sends input together with the image at path and returns the text of the
	// first answer plus provider specific token counters.
	QueryWithImage(ctx context.Context, input string, fsys fs.FS, path string) (string, map[string]int64, error)
	// GetTokenFields lists the token counter names QueryWithImage reports.
	GetTokenFields() []string
	GetModel() string
	GetName() string
}
