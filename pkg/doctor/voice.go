package doctor

import (
	"context"
	"os"
	"path/filepath"

	"github.com/apex/log"
	"github.com/google/uuid"
	"github.com/je4/kidoctor/pkg/tts"
)

type Transcoder interface {
	Transcode(ctx context.Context, src, dst string) error
}

type Player interface {
	Play(ctx context.Context, path string) error
}

// Voice speaks text: synthesis, conversion to wav and playback.
type Voice struct {
	synth      tts.Synthesizer
	transcoder Transcoder
	player     Player
	tempDir    string
}

// NewVoice creates the speech pipeline. A nil player disables playback.
func NewVoice(synth tts.Synthesizer, transcoder Transcoder, player Player, tempDir string) *Voice {
	if tempDir == "" {
		tempDir = os.TempDir()
	}
	return &Voice{
		synth:      synth,
		transcoder: transcoder,
		player:     player,
		tempDir:    tempDir,
	}
}

// Speak writes the spoken text to outputPath and plays it.
// Synthesis and conversion errors are returned. Playback errors are only logged.
func (v *Voice) Speak(ctx context.Context, text, outputPath string) error {
	if err := v.synth.Synthesize(ctx, text, outputPath); err != nil {
		return err
	}
	if v.player == nil {
		return nil
	}

	// unique per call, concurrent calls must not share the intermediate file
	wavPath := filepath.Join(v.tempDir, "kidoctor-"+uuid.New().String()+".wav")
	if err := v.transcoder.Transcode(ctx, outputPath, wavPath); err != nil {
		os.Remove(wavPath)
		return err
	}
	defer os.Remove(wavPath)

	if err := v.player.Play(ctx, wavPath); err != nil {
		log.WithFields(log.Fields{
			"component": "voice",
			"path":      outputPath,
		}).WithError(err).Warn("an error occurred while trying to play the audio")
	}
	return nil
}
