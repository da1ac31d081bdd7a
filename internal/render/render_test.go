package render

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"pixcheck/internal/config"
	"pixcheck/internal/domain"
)

func writeMock(t *testing.T, content string) domain.TestCase {
	t.Helper()
	dir := t.TempDir()
	mock := filepath.Join(dir, "bar_basic.json")
	if err := os.WriteFile(mock, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write mock: %v", err)
	}
	return domain.TestCase{Name: "bar_basic", MockPath: mock}
}

func TestHTTPRenderer_Render(t *testing.T) {
	tc := writeMock(t, `{"data":[]}`)

	t.Run("returns body on success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				t.Errorf("expected POST, got %s", r.Method)
			}
			body, _ := io.ReadAll(r.Body)
			if string(body) != `{"data":[]}` {
				t.Errorf("unexpected request body %q", body)
			}
			w.Write([]byte("PNGDATA"))
		}))
		defer server.Close()

		img, err := NewHTTPRenderer(server.URL, time.Second).Render(context.Background(), tc)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(img) != "PNGDATA" {
			t.Errorf("expected PNGDATA, got %q", img)
		}
	})

	t.Run("non-2xx status is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		defer server.Close()

		_, err := NewHTTPRenderer(server.URL, time.Second).Render(context.Background(), tc)
		if err == nil || !strings.Contains(err.Error(), "500") {
			t.Errorf("expected status error, got %v", err)
		}
	})

	t.Run("empty body is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		defer server.Close()

		if _, err := NewHTTPRenderer(server.URL, time.Second).Render(context.Background(), tc); err == nil {
			t.Error("expected error for empty image")
		}
	})

	t.Run("missing mock", func(t *testing.T) {
		_, err := NewHTTPRenderer("http://127.0.0.1:0", time.Second).Render(context.Background(), domain.TestCase{MockPath: "/non/existent.json"})
		if err == nil {
			t.Error("expected error for missing mock")
		}
	})
}

func TestCommandRenderer_Render(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses POSIX utilities")
	}
	tc := writeMock(t, "IMAGE")

	t.Run("stdout is the image", func(t *testing.T) {
		r, err := NewCommandRenderer("cat {mock}", "", time.Second)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		img, err := r.Render(context.Background(), tc)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(img) != "IMAGE" {
			t.Errorf("expected IMAGE, got %q", img)
		}
	})

	t.Run("failing command", func(t *testing.T) {
		r, _ := NewCommandRenderer("false", "", time.Second)
		if _, err := r.Render(context.Background(), tc); err == nil {
			t.Error("expected error for failing command")
		}
	})

	t.Run("empty output", func(t *testing.T) {
		r, _ := NewCommandRenderer("true", "", time.Second)
		if _, err := r.Render(context.Background(), tc); err == nil {
			t.Error("expected error for empty output")
		}
	})
}

func TestNew(t *testing.T) {
	cfg := config.New()
	if _, err := New(cfg); !errors.Is(err, ErrNoRenderer) {
		t.Errorf("expected ErrNoRenderer, got %v", err)
	}

	cfg.RenderCommand = "render {name}"
	r, err := New(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := r.(*CommandRenderer); !ok {
		t.Errorf("expected CommandRenderer, got %T", r)
	}

	cfg.RenderURL = "http://localhost:9010"
	r, _ = New(cfg)
	if _, ok := r.(*HTTPRenderer); !ok {
		t.Errorf("expected HTTPRenderer, got %T", r)
	}

	if _, err := NewCommandRenderer("   ", "", 0); err == nil {
		t.Error("expected error for empty command")
	}
}
