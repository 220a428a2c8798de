package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Uploader pushes product images to the external image host. The host is a
// third party with its own endpoint and no bearer auth; uploads are
// authorized by an unsigned preset instead.
type Uploader struct {
	uploadURL string
	preset    string
	httpc     *http.Client
}

func NewUploader(uploadURL, preset string) *Uploader {
	return &Uploader{
		uploadURL: uploadURL,
		preset:    preset,
		httpc: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	URL       string `json:"url"`
}

// Upload sends one image and returns its hosted URL.
func (u *Uploader) Upload(ctx context.Context, filename string, r io.Reader) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("upload: build form: %w", err)
	}
	if _, err = io.Copy(fw, r); err != nil {
		return "", fmt.Errorf("upload: read image: %w", err)
	}
	if u.preset != "" {
		if err = mw.WriteField("upload_preset", u.preset); err != nil {
			return "", fmt.Errorf("upload: build form: %w", err)
		}
	}
	if err = mw.Close(); err != nil {
		return "", fmt.Errorf("upload: build form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", u.uploadURL, &buf)
	if err != nil {
		return "", fmt.Errorf("upload: build request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := u.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", decodeError(resp)
	}

	var out uploadResponse
	if err = json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("upload: decode response: %w", err)
	}
	if out.SecureURL != "" {
		return out.SecureURL, nil
	}
	return out.URL, nil
}
