package ki

import (
	"encoding/base64"
	"fmt"
	"io/fs"
	"mime"
	"net/http"

	"emperror.dev/errors"
)

type Image struct {
	ContentType string
	Data        []byte
}

// EncodeImage reads the file and sniffs its media type. No format validation is done.
func EncodeImage(fsys fs.FS, path string) (*Image, error) {
	imgData, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read file %s", path)
	}
	contentType, _, err := mime.ParseMediaType(http.DetectContentType(imgData))
	if err != nil {
		return nil, errors.Wrapf(err, "cannot parse content type of %s", path)
	}
	return &Image{
		ContentType: contentType,
		Data:        imgData,
	}, nil
}

func (img *Image) Base64() string {
	return base64.StdEncoding.EncodeToString(img.Data)
}

func (img *Image) DataURI() string {
	return fmt.Sprintf("data:%s;base64,%s", img.ContentType, img.Base64())
}
