package openai

import (
	"context"
	"emperror.dev/errors"
	"github.com/je4/kidoctor/pkg/ki"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"io/fs"
	"strings"
)

var TokenFields = []string{
	"CompletionTokens",
	"PromptTokens",
	"TotalTokens",
}

var DriverName = "openai"

// GroqBaseURL is the OpenAI compatible endpoint of Groq.
const GroqBaseURL = "https://api.groq.com/openai/v1/"

const DefaultModel = "meta-llama/llama-4-scout-17b-16e-instruct"

// NewDriver creates a chat completion driver. An empty baseURL keeps the client default.
// A missing apikey is not checked here, the provider rejects the first request.
func NewDriver(model, apikey, baseURL string) (*Driver, error) {
	if model == "" {
		model = DefaultModel
	}
	opts := []option.RequestOption{
		option.WithAPIKey(apikey), // defaults to os.LookupEnv("OPENAI_API_KEY")
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	client := openai.NewClient(opts...)
	return &Driver{
		client: &client,
		model:  model,
	}, nil
}

type Driver struct {
	client *openai.Client
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
	content := []openai.ChatCompletionContentPartUnionParam{
		{
			OfText: &openai.ChatCompletionContentPartTextParam{
				Text: input,
			},
		},
		{
			OfImageURL: &openai.ChatCompletionContentPartImageParam{
				ImageURL: openai.ChatCompletionContentPartImageImageURLParam{
					URL: img.DataURI(),
				},
			},
		},
	}
	param := openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(content),
		},
		Model: d.model,
	}
	completion, err := d.client.Chat.Completions.New(ctx, param)
	if err != nil {
		return "", nil, errors.Wrap(err, "cannot generate content")
	}
	if len(completion.Choices) == 0 {
		return "", nil, ki.ErrNoCompletion
	}
	msg := completion.Choices[0].Message
	text := msg.Content
	if text == "" {
		text = msg.Refusal
	}
	if text == "" {
		return "", nil, ki.ErrNoCompletion
	}
	return text, map[string]int64{
		"CompletionTokens": completion.Usage.CompletionTokens,
		"PromptTokens":     completion.Usage.PromptTokens,
		"TotalTokens":      completion.Usage.TotalTokens,
	}, nil
}

var _ ki.Interface = &Driver{}
