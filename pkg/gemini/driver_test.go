package gemini

import (
	"context"
	"io"
	"testing"
	"testing/fstest"

	"emperror.dev/errors"
	"github.com/google/generative-ai-go/genai"
	"github.com/je4/kidoctor/pkg/ki"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testImages = fstest.MapFS{
	"mole.jpg": &fstest.MapFile{Data: []byte("\xff\xd8\xff\xe0 fake jpeg")},
}

type fakeBackend struct {
	resp *genai.GenerateContentResponse
	err  error

	uploadedName string
	uploadedData []byte
	deleted      []string
	model        string
	parts        []genai.Part
	closed       int
}

func (f *fakeBackend) UploadFile(_ context.Context, name string, r io.Reader, _ *genai.UploadFileOptions) (*genai.File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	f.uploadedName = name
	f.uploadedData = data
	return &genai.File{Name: "files/" + name, URI: "https://example.com/files/" + name}, nil
}

func (f *fakeBackend) DeleteFile(_ context.Context, name string) error {
	f.deleted = append(f.deleted, name)
	return nil
}

func (f *fakeBackend) GenerateContent(_ context.Context, model string, parts ...genai.Part) (*genai.GenerateContentResponse, error) {
	f.model = model
	f.parts = parts
	return f.resp, f.err
}

func (f *fakeBackend) Close() error {
	f.closed++
	return nil
}

func newTestDriver(t *testing.T, b *fakeBackend) *Driver {
	t.Helper()
	d, err := NewDriver("", "test-key", "")
	require.NoError(t, err)
	d.backend = b
	return d
}

func textResponse(parts ...genai.Part) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Role: "model", Parts: parts}},
			{Content: &genai.Content{Role: "model", Parts: []genai.Part{genai.Text("second candidate")}}},
		},
	}
}

func TestQueryWithImage(t *testing.T) {
	b := &fakeBackend{resp: textResponse(genai.Text("Looks like "), genai.Blob{MIMEType: "image/png"}, genai.Text("a benign mole."))}
	b.resp.UsageMetadata = &genai.UsageMetadata{
		PromptTokenCount:     258,
		CandidatesTokenCount: 6,
		TotalTokenCount:      264,
	}
	d := newTestDriver(t, b)

	text, usage, err := d.QueryWithImage(context.Background(), "What is this?", testImages, "mole.jpg")
	require.NoError(t, err)

	assert.Equal(t, "Looks like a benign mole.", text)
	assert.Equal(t, int64(258), usage["PromptTokenCount"])
	assert.Equal(t, int64(6), usage["CandidatesTokenCount"])
	assert.Equal(t, int64(0), usage["CachedContentTokenCount"])
	assert.Equal(t, int64(264), usage["TotalTokenCount"])

	assert.Equal(t, DefaultModel, b.model)
	assert.Equal(t, testImages["mole.jpg"].Data, b.uploadedData)
	assert.NotEmpty(t, b.uploadedName)
	assert.Equal(t, []string{"files/" + b.uploadedName}, b.deleted)

	require.Len(t, b.parts, 2)
	assert.Equal(t, genai.FileData{URI: "https://example.com/files/" + b.uploadedName}, b.parts[0])
	assert.Equal(t, genai.Text("What is this?"), b.parts[1])
}

func TestQueryWithImage_NoUsage(t *testing.T) {
	d := newTestDriver(t, &fakeBackend{resp: textResponse(genai.Text("ok"))})

	text, usage, err := d.QueryWithImage(context.Background(), "q", testImages, "mole.jpg")
	require.NoError(t, err)
	assert.Equal(t, "ok", text)
	assert.Empty(t, usage)
}

func TestQueryWithImage_NoCompletion(t *testing.T) {
	tests := []struct {
		name string
		resp *genai.GenerateContentResponse
	}{
		{"no candidates", &genai.GenerateContentResponse{}},
		{"nil content", &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}}},
		{"no text parts", textResponse(genai.Blob{MIMEType: "image/png", Data: []byte{1}})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &fakeBackend{resp: tt.resp}
			d := newTestDriver(t, b)

			_, _, err := d.QueryWithImage(context.Background(), "q", testImages, "mole.jpg")
			assert.True(t, errors.Is(err, ki.ErrNoCompletion))
			assert.Len(t, b.deleted, 1, "upload must be removed")
		})
	}
}

func TestQueryWithImage_GenerateError(t *testing.T) {
	b := &fakeBackend{err: errors.New("quota exceeded")}
	d := newTestDriver(t, b)

	_, _, err := d.QueryWithImage(context.Background(), "q", testImages, "mole.jpg")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot generate content")
	assert.Len(t, b.deleted, 1)
}

func TestQueryWithImage_MissingFile(t *testing.T) {
	b := &fakeBackend{}
	d := newTestDriver(t, b)

	_, _, err := d.QueryWithImage(context.Background(), "q", testImages, "missing.jpg")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot open file missing.jpg")
	assert.Empty(t, b.uploadedName)
}

func TestNewDriver_MissingKeyFailsOnQuery(t *testing.T) {
	d, err := NewDriver("", "", "")
	require.NoError(t, err)
	assert.Equal(t, DefaultModel, d.GetModel())
	assert.Equal(t, "google", d.GetName())
	assert.Equal(t, TokenFields, d.GetTokenFields())

	_, _, err = d.QueryWithImage(context.Background(), "q", testImages, "mole.jpg")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot create genai client")
	assert.NoError(t, d.Close())
}

func TestDriver_Close(t *testing.T) {
	b := &fakeBackend{}
	d := newTestDriver(t, b)

	require.NoError(t, d.Close())
	assert.Equal(t, 1, b.closed)

	// second close is a no-op
	require.NoError(t, d.Close())
	assert.Equal(t, 1, b.closed)
}
