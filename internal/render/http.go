package render

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"pixcheck/internal/domain"
)

// maxErrorBody caps how much of a failed response ends up in the error
const maxErrorBody = 512

// HTTPRenderer posts the mock JSON of a test case to an image server
type HTTPRenderer struct {
	url    string
	client *http.Client
}

// NewHTTPRenderer creates an HTTPRenderer; timeout bounds each request
func NewHTTPRenderer(url string, timeout time.Duration) *HTTPRenderer {
	return &HTTPRenderer{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// Render sends the figure and returns the response body as the image
func (r *HTTPRenderer) Render(ctx context.Context, tc domain.TestCase) ([]byte, error) {
	figure, err := os.ReadFile(tc.MockPath)
	if err != nil {
		return nil, fmt.Errorf("read mock %s: %w", tc.MockPath, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(figure))
	if err != nil {
		return nil, fmt.Errorf("build render request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("render request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read render response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		return nil, fmt.Errorf("render server returned %s: %s", resp.Status, bytes.TrimSpace(body))
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("render server returned an empty image")
	}
	return body, nil
}
