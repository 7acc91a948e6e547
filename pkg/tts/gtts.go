package tts

import (
	"bufio"
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"emperror.dev/errors"
	"github.com/apex/log"
)

const (
	GTTSName            = "gtts"
	GTTSDefaultLanguage = "en"
	GTTSDefaultTLD      = "com"

	// Google Translate rejects longer requests.
	gttsMaxChunkLength = 100
	gttsRPCID          = "jQ1olc"
)

var gttsAudioRegexp = regexp.MustCompile(`jQ1olc","\[\\"(.*)\\"]`)

// GTTS speaks through the undocumented text-to-speech endpoint of Google Translate.
// No api key is needed.
type GTTS struct {
	lang       string
	slow       bool
	endpoint   string
	httpClient *http.Client
}

// NewGTTS creates a client. baseURL overrides the translate host derived from tld.
func NewGTTS(lang, tld, baseURL string, slow bool) *GTTS {
	if lang == "" {
		lang = GTTSDefaultLanguage
	}
	if tld == "" {
		tld = GTTSDefaultTLD
	}
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://translate.google.%s", tld)
	}
	return &GTTS{
		lang:     lang,
		slow:     slow,
		endpoint: strings.TrimSuffix(baseURL, "/") + "/_/TranslateWebserverUi/data/batchexecute",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (g *GTTS) GetName() string {
	return GTTSName
}

func (g *GTTS) Synthesize(ctx context.Context, text, outputPath string) error {
	chunks := Tokenize(text, gttsMaxChunkLength)
	if len(chunks) == 0 {
		return ErrEmptyText
	}
	log.WithFields(log.Fields{
		"component":   "tts",
		"provider":    GTTSName,
		"lang":        g.lang,
		"text_length": len(text),
		"chunks":      len(chunks),
	}).Debug("synthesizing speech")

	var audio bytes.Buffer
	for i, chunk := range chunks {
		if err := g.fetchChunk(ctx, chunk, &audio); err != nil {
			return errors.Wrapf(err, "chunk %d of %d", i+1, len(chunks))
		}
	}

	written, err := writeFile(outputPath, &audio)
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"component":  "tts",
		"provider":   GTTSName,
		"path":       outputPath,
		"size_bytes": written,
	}).Info("speech synthesized")
	return nil
}

func (g *GTTS) packageRPC(text string) (string, error) {
	var speed any
	if g.slow {
		speed = true
	}
	param, err := json.Marshal([]any{text, g.lang, speed, "null"})
	if err != nil {
		return "", errors.Wrap(err, "cannot marshal rpc parameter")
	}
	rpc, err := json.Marshal([]any{[]any{[]any{gttsRPCID, string(param), nil, "generic"}}})
	if err != nil {
		return "", errors.Wrap(err, "cannot marshal rpc")
	}
	return "f.req=" + url.QueryEscape(string(rpc)) + "&", nil
}

func (g *GTTS) fetchChunk(ctx context.Context, chunk string, w io.Writer) error {
	body, err := g.packageRPC(chunk)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, strings.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "cannot create tts request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded;charset=utf-8")
	req.Header.Set("Referer", "http://translate.google.com/")
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; WOW64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/47.0.2526.106 Safari/537.36")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "tts request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return errors.Errorf("google tts error (status %d): %s", resp.StatusCode, string(data))
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	found := false
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.Contains(line, gttsRPCID) {
			continue
		}
		match := gttsAudioRegexp.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		data, err := base64.StdEncoding.DecodeString(match[1])
		if err != nil {
			return errors.Wrap(err, "cannot decode audio stream")
		}
		if _, err := w.Write(data); err != nil {
			return errors.Wrap(err, "cannot buffer audio stream")
		}
		found = true
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrap(err, "cannot read tts response")
	}
	if !found {
		return errors.Errorf("no audio stream in response, unsupported language %q?", g.lang)
	}
	return nil
}

var _ Synthesizer = &GTTS{}
