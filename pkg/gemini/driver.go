package gemini

import (
	"context"
	"emperror.dev/errors"
	"github.com/google/generative-ai-go/genai"
	"github.com/google/uuid"
	"github.com/je4/kidoctor/pkg/ki"
	"google.golang.org/api/option"
	"io"
	"io/fs"
	"strings"
	"sync"
)

var TokenFields = []string{
	"PromptTokenCount",
	"CandidatesTokenCount",
	"CachedContentTokenCount",
	"TotalTokenCount",
}

var DriverName = "google"

const DefaultModel = "gemini-1.5-flash"

// backend is the part of the genai client the driver uses.
type backend interface {
	UploadFile(ctx context.Context, name string, r io.Reader, opts *genai.UploadFileOptions) (*genai.File, error)
	DeleteFile(ctx context.Context, name string) error
	GenerateContent(ctx context.Context, model string, parts ...genai.Part) (*genai.GenerateContentResponse, error)
	Close() error
}

type genaiBackend struct {
	client *genai.Client
}

func (b *genaiBackend) UploadFile(ctx context.Context, name string, r io.Reader, opts *genai.UploadFileOptions) (*genai.File, error) {
	return b.client.UploadFile(ctx, name, r, opts)
}

func (b *genaiBackend) DeleteFile(ctx context.Context, name string) error {
	return b.client.DeleteFile(ctx, name)
}

func (b *genaiBackend) GenerateContent(ctx context.Context, model string, parts ...genai.Part) (*genai.GenerateContentResponse, error) {
	return b.client.GenerativeModel(model).GenerateContent(ctx, parts...)
}

func (b *genaiBackend) Close() error {
	return b.client.Close()
}

// NewDriver prepares the driver. The genai client is created on the first query,
// so a missing apikey only fails there. An empty endpoint keeps the client default.
func NewDriver(model, apikey, endpoint string) (*Driver, error) {
	if model == "" {
		model = DefaultModel
	}
	opts := []option.ClientOption{option.WithAPIKey(apikey)}
	if endpoint != "" {
		opts = append(opts, option.WithEndpoint(endpoint))
	}
	return &Driver{
		model: model,
		opts:  opts,
	}, nil
}

type Driver struct {
	model string
	opts  []option.ClientOption

	mu      sync.Mutex
	backend backend
}

func (d *Driver) getBackend(ctx context.Context) (backend, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.backend != nil {
		return d.backend, nil
	}
	client, err := genai.NewClient(ctx, d.opts...)
	if err != nil {
		return nil, errors.Wrap(err, "cannot create genai client")
	}
	d.backend = &genaiBackend{client: client}
	return d.backend, nil
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

// Close releases the genai client if one was created.
func (d *Driver) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.backend == nil {
		return nil
	}
	err := d.backend.Close()
	d.backend = nil
	return err
}

// QueryWithImage uploads the image through the file API instead of inlining it
// and removes the upload afterwards.
func (d *Driver) QueryWithImage(ctx context.Context, input string, fsys fs.FS, path string) (string, map[string]int64, error) {
	fp, err := fsys.Open(path)
	if err != nil {
		return "", nil, errors.Wrapf(err, "cannot open file %s", path)
	}
	defer fp.Close()
	b, err := d.getBackend(ctx)
	if err != nil {
		return "", nil, err
	}
	file, err := b.UploadFile(ctx, uuid.New().String(), fp, nil)
	if err != nil {
		return "", nil, errors.Wrap(err, "cannot upload file")
	}
	defer b.DeleteFile(ctx, file.Name)

	resp, err := b.GenerateContent(ctx, d.model,
		genai.FileData{URI: file.URI},
		genai.Text(input))
	if err != nil {
		return "", nil, errors.Wrap(err, "cannot generate content")
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", nil, ki.ErrNoCompletion
	}
	var parts []string
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			parts = append(parts, string(txt))
		}
	}
	if len(parts) == 0 {
		return "", nil, ki.ErrNoCompletion
	}
	usage := map[string]int64{}
	if resp.UsageMetadata != nil {
		usage["PromptTokenCount"] = int64(resp.UsageMetadata.PromptTokenCount)
		usage["CandidatesTokenCount"] = int64(resp.UsageMetadata.CandidatesTokenCount)
		usage["CachedContentTokenCount"] = int64(resp.UsageMetadata.CachedContentTokenCount)
		usage["TotalTokenCount"] = int64(resp.UsageMetadata.TotalTokenCount)
	}
	return strings.Join(parts, ""), usage, nil
}

var _ ki.Interface = &Driver{}
var _ io.Closer = &Driver{}
