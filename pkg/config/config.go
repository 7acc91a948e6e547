package config

import (
	"encoding/json"
	"io/fs"
	"os"

	"emperror.dev/errors"
	"github.com/caarlos0/env/v11"
	"github.com/je4/kidoctor/pkg/tts"
	"github.com/joho/godotenv"
)

const DefaultQuery = "Is something wrong with my face?"

// API keys keep the variable names of the .env files the tool has always used.
type Config struct {
	GroqAPIKey       string `json:"groq_api_key" env:"GROQ_API_KEY"`
	OpenAIAPIKey     string `json:"openai_api_key" env:"OPENAI_API_KEY"`
	AnthropicAPIKey  string `json:"anthropic_api_key" env:"ANTHROPIC_API_KEY"`
	GeminiAPIKey     string `json:"gemini_api_key" env:"GEMINI_API_KEY"`
	ElevenLabsAPIKey string `json:"elevenlabs_api_key" env:"ELABS_API_KEY"`

	Vision VisionConfig `json:"vision"`
	Speech SpeechConfig `json:"speech"`
	Audio  AudioConfig  `json:"audio"`
}

type VisionConfig struct {
	Driver  string `json:"driver" env:"KIDOCTOR_VISION_DRIVER"` // groq, openai, anthropic, gemini
	Model   string `json:"model" env:"KIDOCTOR_VISION_MODEL"`   // empty selects the driver default
	BaseURL string `json:"base_url" env:"KIDOCTOR_VISION_BASE_URL"`
	Query   string `json:"query" env:"KIDOCTOR_VISION_QUERY"`
}

type SpeechConfig struct {
	Provider     string `json:"provider" env:"KIDOCTOR_SPEECH_PROVIDER"` // gtts, elevenlabs
	Language     string `json:"language" env:"KIDOCTOR_SPEECH_LANGUAGE"`
	TLD          string `json:"tld" env:"KIDOCTOR_SPEECH_TLD"`
	Slow         bool   `json:"slow" env:"KIDOCTOR_SPEECH_SLOW"`
	Voice        string `json:"voice" env:"KIDOCTOR_SPEECH_VOICE"`
	Model        string `json:"model" env:"KIDOCTOR_SPEECH_MODEL"`
	OutputFormat string `json:"output_format" env:"KIDOCTOR_SPEECH_OUTPUT_FORMAT"`
	BaseURL      string `json:"base_url" env:"KIDOCTOR_SPEECH_BASE_URL"`
	Output       string `json:"output" env:"KIDOCTOR_SPEECH_OUTPUT"`
}

type AudioConfig struct {
	Play    bool   `json:"play" env:"KIDOCTOR_AUDIO_PLAY"`
	FFmpeg  string `json:"ffmpeg" env:"KIDOCTOR_AUDIO_FFMPEG"`
	TempDir string `json:"temp_dir" env:"KIDOCTOR_AUDIO_TEMP_DIR"`
}

func DefaultConfig() *Config {
	return &Config{
		Vision: VisionConfig{
			Driver: "groq",
			Query:  DefaultQuery,
		},
		Speech: SpeechConfig{
			Provider:     tts.GTTSName,
			Language:     tts.GTTSDefaultLanguage,
			TLD:          tts.GTTSDefaultTLD,
			Voice:        tts.ElevenLabsDefaultVoice,
			Model:        tts.ElevenLabsDefaultModel,
			OutputFormat: tts.ElevenLabsDefaultFormat,
			Output:       "final.mp3",
		},
		Audio: AudioConfig{
			Play:    true,
			FFmpeg:  "ffmpeg",
			TempDir: os.TempDir(),
		},
	}
}

// LoadConfig builds the configuration from defaults, the optional json file at path,
// the dotenv files (".env" if none given) and finally the process environment.
// Missing files are skipped. API keys are not validated.
func LoadConfig(path string, dotenv ...string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, errors.Wrapf(err, "cannot read config file %s", path)
		default:
			if err := json.Unmarshal(data, cfg); err != nil {
				return nil, errors.Wrapf(err, "cannot parse config file %s", path)
			}
		}
	}

	if len(dotenv) == 0 {
		dotenv = []string{".env"}
	}
	for _, f := range dotenv {
		// existing variables win over the file
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrapf(err, "cannot load %s", f)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, errors.Wrap(err, "cannot parse environment")
	}
	return cfg, nil
}
