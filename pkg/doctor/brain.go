package doctor

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"emperror.dev/errors"
	"github.com/apex/log"
	"github.com/je4/kidoctor/pkg/ki"
)

// Brain answers questions about an image with a vision-language model.
type Brain struct {
	driver ki.Interface
}

func NewBrain(driver ki.Interface) *Brain {
	return &Brain{driver: driver}
}

// Close releases the driver if it holds a client.
func (b *Brain) Close() error {
	if c, ok := b.driver.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Analyze sends query and the image at imagePath to the model and returns its answer.
func (b *Brain) Analyze(ctx context.Context, imagePath, query string) (string, error) {
	abs, err := filepath.Abs(imagePath)
	if err != nil {
		return "", errors.Wrapf(err, "cannot resolve %s", imagePath)
	}
	fsys := os.DirFS(filepath.Dir(abs))
	logger := log.WithFields(log.Fields{
		"component": "brain",
		"driver":    b.driver.GetName(),
		"model":     b.driver.GetModel(),
		"image":     imagePath,
	})
	logger.Debug("querying model")

	answer, usage, err := b.driver.QueryWithImage(ctx, query, fsys, filepath.Base(abs))
	if err != nil {
		return "", errors.Wrapf(err, "%s query failed", b.driver.GetName())
	}
	logger.WithFields(usageFields(b.driver.GetTokenFields(), usage)).Info("answer received")
	return answer, nil
}

// usageFields keeps the counters the driver declares. Missing counters are skipped.
func usageFields(declared []string, usage map[string]int64) log.Fields {
	fields := log.Fields{}
	for _, name := range declared {
		if v, ok := usage[name]; ok {
			fields[name] = v
		}
	}
	return fields
}
