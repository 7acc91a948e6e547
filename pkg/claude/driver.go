package claude

import (
	"context"
	"emperror.dev/errors"
	"github.com/je4/kidoctor/pkg/ki"
	"github.com/liushuangls/go-anthropic/v2"
	"io/fs"
)

var TokenFields = []string{
	"InputTokens",
	"OutputTokens",
	"CacheCreationInputTokens",
	"CacheReadInputTokens",
}

var DriverName = "anthropic"

const DefaultModel = "claude-3-5-sonnet-latest"

func NewDriver(model, apikey, baseURL string) (*Driver, error) {
	if model == "" {
		model = DefaultModel
	}
	var opts []anthropic.ClientOption
	if baseURL != "" {
		opts = append(opts, anthropic.WithBaseURL(baseURL))
	}
	client := anthropic.NewClient(apikey, opts...)
	return &Driver{
		client: client,
		model:  model,
	}, nil
}

type Driver struct {
	client *anthropic.Client
	model  string
}

func (d *Driver) GetTokenFields() []string {
	return TokenFields
}

func (d *Driver) GetModel() string {
	return d.model
}

func (d *Driver) GetName() string {
	return DriverName
}

func (d *Driver) QueryWithImage(ctx context.Context, input string, fsys fs.FS, path string) (string, map[string]int64, error) {
	img, err := ki.EncodeImage(fsys, path)
	if err != nil {
		return "", nil, err
	}
	resp, err := d.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model: anthropic.Model(d.model),
		Messages: []anthropic.Message{
			{
				Role: anthropic.RoleUser,
				Content: []anthropic.MessageContent{
					anthropic.NewImageMessageContent(anthropic.MessageContentSource{
						Type:      "base64",
						MediaType: img.ContentType,
						Data:      img.Data,
					}),
					anthropic.NewTextMessageContent(input),
				},
			},
		},
		MaxTokens: 5000,
	})
	if err != nil {
		var e *anthropic.APIError
		if errors.As(err, &e) {
			return "", nil, errors.Errorf("Messages error, type: %s, message: %s", e.Type, e.Message)
		}
		return "", nil, errors.Wrap(err, "cannot generate content")
	}
	var text string
	for _, part := range resp.Content {
		if part.Text != nil && *part.Text != "" {
			text = *part.Text
			break
		}
	}
	if text == "" {
		return "", nil, ki.ErrNoCompletion
	}
	return text, map[string]int64{
		"InputTokens":              int64(resp.Usage.InputTokens),
		"OutputTokens":             int64(resp.Usage.OutputTokens),
		"CacheCreationInputTokens": int64(resp.Usage.CacheCreationInputTokens),
		"CacheReadInputTokens":     int64(resp.Usage.CacheReadInputTokens),
	}, nil
}

var _ ki.Interface = &Driver{}
