package audio

import (
	"context"

	"emperror.dev/errors"
	"github.com/apex/log"
)

const DefaultFFmpeg = "ffmpeg"

// Transcoder converts audio files with ffmpeg. The target format follows the
// extension of the destination file.
type Transcoder struct {
	binary string
	run    RunFunc
}

func NewTranscoder(binary string) *Transcoder {
	return NewTranscoderWith(binary, nil)
}

func NewTranscoderWith(binary string, run RunFunc) *Transcoder {
	if binary == "" {
		binary = DefaultFFmpeg
	}
	if run == nil {
		run = execRun
	}
	return &Transcoder{
		binary: binary,
		run:    run,
	}
}

func (t *Transcoder) Transcode(ctx context.Context, src, dst string) error {
	log.WithFields(log.Fields{
		"component": "audio",
		"src":       src,
		"dst":       dst,
	}).Debug("transcoding")
	if err := t.run(ctx, t.binary, "-y", "-loglevel", "error", "-i", src, dst); err != nil {
		return errors.Wrapf(err, "cannot transcode %s to %s", src, dst)
	}
	return nil
}
