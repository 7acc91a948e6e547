package doctor

import (
	"emperror.dev/errors"
	"github.com/je4/kidoctor/pkg/claude"
	"github.com/je4/kidoctor/pkg/config"
	"github.com/je4/kidoctor/pkg/gemini"
	"github.com/je4/kidoctor/pkg/ki"
	"github.com/je4/kidoctor/pkg/openai"
	"github.com/je4/kidoctor/pkg/tts"
)

var ErrUnknownProvider = errors.New("unknown provider")

func NewDriver(cfg *config.Config) (ki.Interface, error) {
	vc := cfg.Vision
	switch vc.Driver {
	case "", "groq":
		baseURL := vc.BaseURL
		if baseURL == "" {
			baseURL = openai.GroqBaseURL
		}
		d, err := openai.NewDriver(vc.Model, cfg.GroqAPIKey, baseURL)
		if err != nil {
			return nil, err
		}
		return d, nil
	case "openai":
		d, err := openai.NewDriver(vc.Model, cfg.OpenAIAPIKey, vc.BaseURL)
		if err != nil {
			return nil, err
		}
		return d, nil
	case "anthropic":
		d, err := claude.NewDriver(vc.Model, cfg.AnthropicAPIKey, vc.BaseURL)
		if err != nil {
			return nil, err
		}
		return d, nil
	case "gemini":
		d, err := gemini.NewDriver(vc.Model, cfg.GeminiAPIKey, vc.BaseURL)
		if err != nil {
			return nil, err
		}
		return d, nil
	default:
		return nil, errors.Wrapf(ErrUnknownProvider, "vision driver %q", vc.Driver)
	}
}

func NewSynthesizer(cfg *config.Config) (tts.Synthesizer, error) {
	sc := cfg.Speech
	switch sc.Provider {
	case "", tts.GTTSName:
		return tts.NewGTTS(sc.Language, sc.TLD, sc.BaseURL, sc.Slow), nil
	case tts.ElevenLabsName:
		return tts.NewElevenLabs(cfg.ElevenLabsAPIKey, sc.BaseURL, sc.Voice, sc.Model, sc.OutputFormat), nil
	default:
		return nil, errors.Wrapf(ErrUnknownProvider, "speech provider %q", sc.Provider)
	}
}
