package config

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.ProjectPath != DefaultProjectPath {
		t.Errorf("expected ProjectPath %s, got %s", DefaultProjectPath, cfg.ProjectPath)
	}

	if cfg.Threshold != DefaultThreshold {
		t.Errorf("expected Threshold %v, got %v", DefaultThreshold, cfg.Threshold)
	}

	if cfg.ParallelLimit != DefaultParallelLimit {
		t.Errorf("expected ParallelLimit %d, got %d", DefaultParallelLimit, cfg.ParallelLimit)
	}

	if len(cfg.PathsToIgnore) != len(DefaultPathsToIgnore) {
		t.Errorf("expected %d paths to ignore, got %d", len(DefaultPathsToIgnore), len(cfg.PathsToIgnore))
	}
}

func TestConfig_CasePaths(t *testing.T) {
	cfg := New()
	cfg.ProjectPath = "/project"

	tc := cfg.CasePaths("bar_basic")

	tests := []struct {
		name     string
		got      string
		expected string
	}{
		{"mock", tc.MockPath, "/project/test/image/mocks/bar_basic.json"},
		{"baseline", tc.BaselinePath, "/project/test/image/baselines/bar_basic.png"},
		{"candidate", tc.TestPath, "/project/build/test_images/bar_basic.png"},
		{"diff", tc.DiffPath, "/project/build/test_images_diff/diff-bar_basic.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != filepath.FromSlash(tt.expected) {
				t.Errorf("expected %s, got %s", tt.expected, tt.got)
			}
		})
	}

	if tc.Name != "bar_basic" {
		t.Errorf("expected name bar_basic, got %s", tc.Name)
	}
}

func float(v float64) *float64 { return &v }

func integer(v int) *int { return &v }

func TestConfig_ApplyFlags(t *testing.T) {
	cfg := New()
	cfg.ApplyFlags(Flags{Threshold: float(0.5), ParallelLimit: integer(8), Queue: true})

	if cfg.Threshold != 0.5 {
		t.Errorf("expected threshold 0.5, got %v", cfg.Threshold)
	}
	if cfg.ParallelLimit != 8 {
		t.Errorf("expected parallel limit 8, got %d", cfg.ParallelLimit)
	}
	if !cfg.Flags.Queue {
		t.Error("expected queue flag to be stored")
	}

	t.Run("unset flags keep defaults", func(t *testing.T) {
		cfg := New()
		cfg.ApplyFlags(Flags{})
		if cfg.Threshold != DefaultThreshold || cfg.ParallelLimit != DefaultParallelLimit {
			t.Errorf("defaults overridden: threshold=%v parallel=%d", cfg.Threshold, cfg.ParallelLimit)
		}
	})

	t.Run("zero threshold is applied", func(t *testing.T) {
		cfg := New()
		cfg.ApplyFlags(Flags{Threshold: float(0)})
		if cfg.Threshold != 0 {
			t.Errorf("expected threshold 0, got %v", cfg.Threshold)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("zero threshold should be valid: %v", err)
		}
	})

	t.Run("negative values reach validation", func(t *testing.T) {
		cfg := New()
		cfg.ApplyFlags(Flags{Threshold: float(-1), ParallelLimit: integer(-3)})
		if cfg.Threshold != -1 || cfg.ParallelLimit != -3 {
			t.Errorf("flags not applied as given: threshold=%v parallel=%d", cfg.Threshold, cfg.ParallelLimit)
		}
		if err := cfg.Validate(); err == nil {
			t.Error("expected validation error")
		}
	})
}

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "pixcheck.yaml")
	content := `compare:
  threshold: 0.5
run:
  parallel_limit: 2
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	tests := []struct {
		name      string
		flags     Flags
		threshold float64
		parallel  int
		wantErr   bool
	}{
		{"file values without flags", Flags{}, 0.5, 2, false},
		{"flags override file", Flags{Threshold: float(0.2), ParallelLimit: integer(6)}, 0.2, 6, false},
		{"zero threshold flag", Flags{Threshold: float(0)}, 0, 2, false},
		{"negative threshold flag", Flags{Threshold: float(-1)}, -1, 2, true},
		{"negative parallel limit flag", Flags{ParallelLimit: integer(-3)}, 0.5, -3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.flags.ConfigFile = path
			cfg, err := Load(tt.flags)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cfg.Threshold != tt.threshold || cfg.ParallelLimit != tt.parallel {
				t.Errorf("expected threshold=%v parallel=%d, got threshold=%v parallel=%d",
					tt.threshold, tt.parallel, cfg.Threshold, cfg.ParallelLimit)
			}
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("expected validation error=%v, got %v", tt.wantErr, err)
			}
		})
	}

	t.Run("explicit zero in file", func(t *testing.T) {
		zeroPath := filepath.Join(tmpDir, "zero.yaml")
		if err := os.WriteFile(zeroPath, []byte("compare:\n  threshold: 0\n"), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}
		cfg, err := Load(Flags{ConfigFile: zeroPath})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Threshold != 0 {
			t.Errorf("expected threshold 0 from file, got %v", cfg.Threshold)
		}
	})

	t.Run("invalid parallel limit in file", func(t *testing.T) {
		badPath := filepath.Join(tmpDir, "bad-limit.yaml")
		if err := os.WriteFile(badPath, []byte("run:\n  parallel_limit: 0\n"), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}
		cfg, err := Load(Flags{ConfigFile: badPath})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := cfg.Validate(); err == nil {
			t.Error("expected validation error for parallel_limit 0")
		}
	})
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"zero threshold", func(c *Config) { c.Threshold = 0 }, false},
		{"negative threshold", func(c *Config) { c.Threshold = -1 }, true},
		{"zero parallel limit", func(c *Config) { c.ParallelLimit = 0 }, true},
		{"sensitivity out of range", func(c *Config) { c.ColorSensitivity = 2 }, true},
		{"no mocks dir", func(c *Config) { c.MocksDir = " " }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("expected error=%v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestConfig_LoadFile(t *testing.T) {
	tmpDir := t.TempDir()

	t.Run("missing file allowed", func(t *testing.T) {
		cfg := New()
		if err := cfg.LoadFile(filepath.Join(tmpDir, "nope.yaml"), true); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("missing file required", func(t *testing.T) {
		cfg := New()
		if err := cfg.LoadFile(filepath.Join(tmpDir, "nope.yaml"), false); err == nil {
			t.Error("expected error for missing explicit config file")
		}
	})

	t.Run("overrides", func(t *testing.T) {
		path := filepath.Join(tmpDir, "pixcheck.yaml")
		content := `paths:
  mocks: mocks
  baselines: baselines
render:
  url: http://localhost:9010
compare:
  threshold: 0.01
  highlight: "#ff00ff"
run:
  parallel_limit: 2
`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		cfg := New()
		if err := cfg.LoadFile(path, false); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.MocksDir != "mocks" || cfg.BaselinesDir != "baselines" {
			t.Errorf("paths not applied: %s %s", cfg.MocksDir, cfg.BaselinesDir)
		}
		if cfg.TestImagesDir != DefaultTestImagesDir {
			t.Errorf("unset path changed: %s", cfg.TestImagesDir)
		}
		if cfg.RenderURL != "http://localhost:9010" {
			t.Errorf("render url not applied: %s", cfg.RenderURL)
		}
		if cfg.Threshold != 0.01 || cfg.ParallelLimit != 2 {
			t.Errorf("run settings not applied: %v %d", cfg.Threshold, cfg.ParallelLimit)
		}
		if cfg.Highlight != (color.RGBA{R: 255, B: 255, A: 255}) {
			t.Errorf("highlight not applied: %v", cfg.Highlight)
		}
	})

	t.Run("malformed file", func(t *testing.T) {
		path := filepath.Join(tmpDir, "bad.yaml")
		if err := os.WriteFile(path, []byte("paths: [unclosed"), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}
		if err := New().LoadFile(path, true); err == nil {
			t.Error("expected parse error")
		}
	})
}

func TestConfig_LoadEnv(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmpDir, ".env"), []byte("PIXCHECK_RENDER_CMD=render {name}\n"), 0644); err != nil {
		t.Fatalf("failed to write .env: %v", err)
	}
	t.Setenv("PIXCHECK_RENDER_URL", "http://render:9010")
	t.Setenv("PIXCHECK_RENDER_CMD", "")
	os.Unsetenv("PIXCHECK_RENDER_CMD")

	cfg := New()
	cfg.ProjectPath = tmpDir
	cfg.LoadEnv()

	if cfg.RenderURL != "http://render:9010" {
		t.Errorf("expected render url from env, got %q", cfg.RenderURL)
	}
	if cfg.RenderCommand != "render {name}" {
		t.Errorf("expected render command from .env, got %q", cfg.RenderCommand)
	}
}

func TestParseHexColor(t *testing.T) {
	got, err := ParseHexColor("#800080")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != DefaultHighlight {
		t.Errorf("expected %v, got %v", DefaultHighlight, got)
	}

	for _, bad := range []string{"", "#fff", "zzzzzz"} {
		if _, err := ParseHexColor(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}
