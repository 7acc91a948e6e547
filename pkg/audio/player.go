package audio

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"emperror.dev/errors"
	"github.com/apex/log"
)

var ErrUnsupportedOS = errors.New("unsupported operating system")

// PlayerCommand returns the native command line player for goos.
func PlayerCommand(goos, path string) (string, []string, error) {
	switch goos {
	case "darwin":
		return "afplay", []string{path}, nil
	case "windows":
		return "powershell", []string{"-c", fmt.Sprintf(`(New-Object Media.SoundPlayer "%s").PlaySync();`, path)}, nil
	case "linux":
		return "aplay", []string{path}, nil
	default:
		return "", nil, errors.Wrapf(ErrUnsupportedOS, "%s", goos)
	}
}

// RunFunc executes a command and waits for it.
type RunFunc func(ctx context.Context, name string, args ...string) error

func execRun(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return errors.Wrapf(err, "%s: %s", name, msg)
		}
		return errors.Wrapf(err, "%s", name)
	}
	return nil
}

type Player struct {
	goos string
	run  RunFunc
}

// NewPlayer creates a player for the host system.
func NewPlayer() *Player {
	return NewPlayerFor(runtime.GOOS, nil)
}

// NewPlayerFor creates a player for goos. A nil run executes the real binary.
func NewPlayerFor(goos string, run RunFunc) *Player {
	if run == nil {
		run = execRun
	}
	return &Player{
		goos: goos,
		run:  run,
	}
}

// Play blocks until the player binary exits.
func (p *Player) Play(ctx context.Context, path string) error {
	name, args, err := PlayerCommand(p.goos, path)
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"component": "audio",
		"player":    name,
		"path":      path,
	}).Debug("playing audio")
	if err := p.run(ctx, name, args...); err != nil {
		return errors.Wrap(err, "cannot play audio")
	}
	return nil
}
