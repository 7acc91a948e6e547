package internal

import (
	"fmt"
	"os"
	"runtime"

	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
	"github.com/je4/kidoctor/pkg/audio"
	"github.com/je4/kidoctor/pkg/config"
	"github.com/je4/kidoctor/pkg/doctor"
)

var (
	version   = "dev"
	gitCommit string
	buildTime string
)

// GlobalOptions holds the persistent flags of the root command.
type GlobalOptions struct {
	ConfigPath string
	Debug      bool
}

// Setup configures logging and loads the configuration.
func (o *GlobalOptions) Setup() (*config.Config, error) {
	log.SetHandler(cli.New(os.Stderr))
	if o.Debug {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}
	return config.LoadConfig(o.ConfigPath)
}

// NewVoice assembles the speech pipeline. Without play the audio is only written.
func NewVoice(cfg *config.Config, play bool) (*doctor.Voice, error) {
	synth, err := doctor.NewSynthesizer(cfg)
	if err != nil {
		return nil, err
	}
	var player doctor.Player
	if play {
		player = audio.NewPlayer()
	}
	return doctor.NewVoice(synth, audio.NewTranscoder(cfg.Audio.FFmpeg), player, cfg.Audio.TempDir), nil
}

// FormatVersion returns the version string with optional git commit
func FormatVersion() string {
	v := version
	if gitCommit != "" {
		v += fmt.Sprintf(" (git: %s)", gitCommit)
	}
	return v
}

func FormatBuildInfo() (string, string) {
	return buildTime, runtime.Version()
}
