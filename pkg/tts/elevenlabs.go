package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"emperror.dev/errors"
	"github.com/apex/log"
)

const (
	ElevenLabsName          = "elevenlabs"
	ElevenLabsBaseURL       = "https://api.elevenlabs.io"
	ElevenLabsDefaultVoice  = "2EiwWnXFnvU5JabPnv8n"
	ElevenLabsDefaultModel  = "eleven_turbo_v2"
	ElevenLabsDefaultFormat = "mp3_22050_32"
)

// ElevenLabs uses the hosted text-to-speech API of ElevenLabs.
type ElevenLabs struct {
	apiKey       string
	baseURL      string
	voice        string
	model        string
	outputFormat string
	httpClient   *http.Client
}

type elevenLabsRequest struct {
	Text    string `json:"text"`
	ModelID string `json:"model_id"`
}

// NewElevenLabs creates a client. Empty arguments fall back to the defaults.
// The api key is not validated, an empty key fails on the first request.
func NewElevenLabs(apiKey, baseURL, voice, model, outputFormat string) *ElevenLabs {
	if baseURL == "" {
		baseURL = ElevenLabsBaseURL
	}
	if voice == "" {
		voice = ElevenLabsDefaultVoice
	}
	if model == "" {
		model = ElevenLabsDefaultModel
	}
	if outputFormat == "" {
		outputFormat = ElevenLabsDefaultFormat
	}
	return &ElevenLabs{
		apiKey:       apiKey,
		baseURL:      baseURL,
		voice:        voice,
		model:        model,
		outputFormat: outputFormat,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

func (e *ElevenLabs) GetName() string {
	return ElevenLabsName
}

func (e *ElevenLabs) Synthesize(ctx context.Context, text, outputPath string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyText
	}
	log.WithFields(log.Fields{
		"component":   "tts",
		"provider":    ElevenLabsName,
		"voice":       e.voice,
		"model":       e.model,
		"text_length": len(text),
	}).Debug("synthesizing speech")

	bodyBytes, err := json.Marshal(elevenLabsRequest{
		Text:    text,
		ModelID: e.model,
	})
	if err != nil {
		return errors.Wrap(err, "cannot marshal tts request")
	}

	u := fmt.Sprintf("%s/v1/text-to-speech/%s?output_format=%s",
		e.baseURL, url.PathEscape(e.voice), url.QueryEscape(e.outputFormat))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(bodyBytes))
	if err != nil {
		return errors.Wrap(err, "cannot create tts request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")
	req.Header.Set("xi-api-key", e.apiKey)

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "tts request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return errors.Errorf("elevenlabs tts error (status %d): %s", resp.StatusCode, string(body))
	}

	written, err := writeFile(outputPath, resp.Body)
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"component":  "tts",
		"provider":   ElevenLabsName,
		"path":       outputPath,
		"size_bytes": written,
	}).Info("speech synthesized")
	return nil
}

var _ Synthesizer = &ElevenLabs{}
