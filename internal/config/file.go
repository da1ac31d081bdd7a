package config

import (
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
)

// FileConfig mirrors the optional .pixcheck.yaml project file
type FileConfig struct {
	Paths   PathsSection   `yaml:"paths"`
	Render  RenderSection  `yaml:"render"`
	Compare CompareSection `yaml:"compare"`
	Run     RunSection     `yaml:"run"`
	History HistorySection `yaml:"history"`
}

type PathsSection struct {
	Mocks      string   `yaml:"mocks"`
	Baselines  string   `yaml:"baselines"`
	TestImages string   `yaml:"test_images"`
	DiffImages string   `yaml:"diff_images"`
	Results    string   `yaml:"results"`
	Ignore     []string `yaml:"ignore"`
}

type RenderSection struct {
	URL            string `yaml:"url"`
	Command        string `yaml:"command"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Numeric settings are pointers so an explicit 0 is told apart from an absent key
type CompareSection struct {
	Threshold        *float64 `yaml:"threshold"`
	ColorSensitivity *float64 `yaml:"color_sensitivity"`
	Highlight        string   `yaml:"highlight"`
}

type RunSection struct {
	ParallelLimit *int `yaml:"parallel_limit"`
}

type HistorySection struct {
	DSN string `yaml:"dsn"`
}

// LoadFile applies the project file at path. A missing file is ignored when allowMissing is set.
func (c *Config) LoadFile(path string, allowMissing bool) error {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && allowMissing {
			return nil
		}
		return fmt.Errorf("read project config: %w", err)
	}
	if len(strings.TrimSpace(string(content))) == 0 {
		return nil
	}

	var fc FileConfig
	if err := yaml.Unmarshal(content, &fc); err != nil {
		return fmt.Errorf("parse project config: %w", err)
	}
	return c.applyFile(fc)
}

func (c *Config) applyFile(fc FileConfig) error {
	setString(&c.MocksDir, fc.Paths.Mocks)
	setString(&c.BaselinesDir, fc.Paths.Baselines)
	setString(&c.TestImagesDir, fc.Paths.TestImages)
	setString(&c.DiffImagesDir, fc.Paths.DiffImages)
	setString(&c.OutputJSONDir, fc.Paths.Results)
	if len(fc.Paths.Ignore) > 0 {
		c.PathsToIgnore = append([]string(nil), fc.Paths.Ignore...)
	}

	setString(&c.RenderURL, fc.Render.URL)
	setString(&c.RenderCommand, fc.Render.Command)
	if fc.Render.TimeoutSeconds > 0 {
		c.RenderTimeoutSeconds = fc.Render.TimeoutSeconds
	}

	if fc.Compare.Threshold != nil {
		c.Threshold = *fc.Compare.Threshold
	}
	if fc.Compare.ColorSensitivity != nil {
		c.ColorSensitivity = *fc.Compare.ColorSensitivity
	}
	if fc.Compare.Highlight != "" {
		hl, err := ParseHexColor(fc.Compare.Highlight)
		if err != nil {
			return fmt.Errorf("parse project config: compare.highlight: %w", err)
		}
		c.Highlight = hl
	}

	if fc.Run.ParallelLimit != nil {
		c.ParallelLimit = *fc.Run.ParallelLimit
	}
	setString(&c.HistoryDSN, fc.History.DSN)
	return nil
}

// LoadEnv reads <project>/.env (if present) and applies PIXCHECK_* overrides
func (c *Config) LoadEnv() {
	// .env file might not exist, that's okay - use environment variables
	_ = godotenv.Load(c.resolve(".env"))

	setString(&c.RenderURL, os.Getenv("PIXCHECK_RENDER_URL"))
	setString(&c.RenderCommand, os.Getenv("PIXCHECK_RENDER_CMD"))
	setString(&c.HistoryDSN, os.Getenv("PIXCHECK_HISTORY_DSN"))
}

// ParseHexColor parses "#rrggbb" or "rrggbb" into an opaque color
func ParseHexColor(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}

func setString(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}
