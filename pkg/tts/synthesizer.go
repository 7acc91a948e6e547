package tts

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"emperror.dev/errors"
)

// ErrEmptyText is returned when there is nothing to speak.
var ErrEmptyText = errors.New("no text to speak")

// Synthesizer converts text to MP3 audio stored at outputPath.
// An existing file at outputPath is replaced.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, outputPath string) error
	GetName() string
}

// writeFile streams r into a temp file next to path and renames it into place,
// so a failed download never leaves a truncated file behind.
func writeFile(path string, r io.Reader) (int64, error) {
	tmpFile, err := os.CreateTemp(filepath.Dir(path), ".kidoctor-tts-*")
	if err != nil {
		return 0, errors.Wrapf(err, "cannot create temp file for %s", path)
	}
	written, err := io.Copy(tmpFile, r)
	if err != nil {
		tmpFile.Close()
		os.Remove(tmpFile.Name())
		return 0, errors.Wrapf(err, "cannot write audio to %s", tmpFile.Name())
	}
	// CreateTemp creates the file with mode 0600
	if err := tmpFile.Chmod(0o644); err != nil {
		tmpFile.Close()
		os.Remove(tmpFile.Name())
		return 0, errors.Wrapf(err, "cannot chmod %s", tmpFile.Name())
	}
	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpFile.Name())
		return 0, errors.Wrapf(err, "cannot close %s", tmpFile.Name())
	}
	if err := os.Rename(tmpFile.Name(), path); err != nil {
		os.Remove(tmpFile.Name())
		return 0, errors.Wrapf(err, "cannot move audio to %s", path)
	}
	return written, nil
}
