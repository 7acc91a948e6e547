package doctor

import (
	"testing"

	"emperror.dev/errors"
	"github.com/je4/kidoctor/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDriver(t *testing.T) {
	tests := []struct {
		driver string
		name   string
		model  string
	}{
		{"", "openai", "meta-llama/llama-4-scout-17b-16e-instruct"},
		{"groq", "openai", "meta-llama/llama-4-scout-17b-16e-instruct"},
		{"openai", "openai", "meta-llama/llama-4-scout-17b-16e-instruct"},
		{"anthropic", "anthropic", "claude-3-5-sonnet-latest"},
		{"gemini", "google", "gemini-1.5-flash"},
	}
	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			// keys are only checked when the first query is sent
			cfg := config.DefaultConfig()
			cfg.Vision.Driver = tt.driver
			d, err := NewDriver(cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.name, d.GetName())
			assert.Equal(t, tt.model, d.GetModel())
		})
	}
}

func TestNewDriver_Unknown(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Vision.Driver = "llava"
	_, err := NewDriver(cfg)
	assert.True(t, errors.Is(err, ErrUnknownProvider))
}

func TestNewSynthesizer(t *testing.T) {
	cfg := config.DefaultConfig()

	s, err := NewSynthesizer(cfg)
	require.NoError(t, err)
	assert.Equal(t, "gtts", s.GetName())

	cfg.Speech.Provider = "elevenlabs"
	s, err = NewSynthesizer(cfg)
	require.NoError(t, err)
	assert.Equal(t, "elevenlabs", s.GetName())

	cfg.Speech.Provider = "festival"
	_, err = NewSynthesizer(cfg)
	assert.True(t, errors.Is(err, ErrUnknownProvider))
}
