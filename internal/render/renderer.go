// Package render obtains candidate images for test cases from an external renderer.
package render

import (
	"context"
	"errors"
	"time"

	"pixcheck/internal/config"
	"pixcheck/internal/domain"
)

// ErrNoRenderer is returned when neither a render URL nor a render command is configured
var ErrNoRenderer = errors.New("no renderer configured: set render.url or render.command")

// Renderer produces the candidate image bytes for a test case
type Renderer interface {
	Render(ctx context.Context, tc domain.TestCase) ([]byte, error)
}

// New returns the renderer selected by the configuration; the URL wins over the command
func New(cfg *config.Config) (Renderer, error) {
	timeout := time.Duration(cfg.RenderTimeoutSeconds) * time.Second
	switch {
	case cfg.RenderURL != "":
		return NewHTTPRenderer(cfg.RenderURL, timeout), nil
	case cfg.RenderCommand != "":
		r, err := NewCommandRenderer(cfg.RenderCommand, cfg.ProjectPath, timeout)
		if err != nil {
			return nil, err
		}
		return r, nil
	default:
		return nil, ErrNoRenderer
	}
}
