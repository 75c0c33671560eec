// Package app is the client application: it captures frames, queries the
// inference server, and drives narration through gestures and auto-repeat.
package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/sightline/go-sightline/internal/httpc"
	"github.com/sightline/go-sightline/pkg/server"
)

// Modes accepted by the inference server.
const (
	ModeDetect = "detect"
	ModeDetail = "vi"
)

// Client calls the inference server's HTTP API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates an API client for the given server base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    httpc.NewClient(60 * time.Second),
	}
}

// Infer uploads one JPEG frame and returns the decoded response.
func (c *Client) Infer(ctx context.Context, mode string, debug bool, image []byte) (*server.InferResponse, error) {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("image", "frame.jpg")
	if err != nil {
		return nil, fmt.Errorf("build upload: %w", err)
	}
	if _, err := part.Write(image); err != nil {
		return nil, fmt.Errorf("build upload: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("build upload: %w", err)
	}

	url := fmt.Sprintf("%s/api/infer?mode=%s", c.baseURL, mode)
	if debug {
		url += "&debug=1"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("infer request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr server.ErrorResponse
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error != "" {
			return nil, fmt.Errorf("infer failed: %s", apiErr.Error)
		}
		return nil, fmt.Errorf("infer failed: status %d", resp.StatusCode)
	}

	var result server.InferResponse
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &result, nil
}
