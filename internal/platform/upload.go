package platform

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"

	"github.com/crossorg/hrconsole/internal/errors"
)

// UploadFieldName is the multipart field every upload endpoint reads.
const UploadFieldName = "files"

// upload posts files as multipart form data and returns the stored URLs.
func (c *Client) upload(ctx context.Context, path string, files []UploadFile) ([]string, error) {
	if len(files) == 0 {
		return nil, errors.New(errors.ErrCodeAPIRequest, "no files to upload")
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, f := range files {
		part, err := w.CreateFormFile(UploadFieldName, f.Name)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeAPIRequest, "failed to build upload", err)
		}
		if _, err := part.Write(f.Content); err != nil {
			return nil, errors.Wrap(errors.ErrCodeAPIRequest, "failed to build upload", err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeAPIRequest, "failed to build upload", err)
	}

	var urls []string
	err := c.do(ctx, request{
		method:      http.MethodPost,
		path:        path,
		body:        &buf,
		contentType: w.FormDataContentType(),
	}, &urls)
	return urls, err
}
