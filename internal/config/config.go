package config

import (
	"fmt"
	"image/color"
	"path/filepath"
	"strings"

	"pixcheck/internal/domain"
)

// Config holds all configuration for the application
type Config struct {
	// Project settings
	ProjectPath string
	ConfigFile  string

	// Image locations
	MocksDir      string
	BaselinesDir  string
	TestImagesDir string
	DiffImagesDir string

	// Output settings
	OutputJSONFile string
	OutputJSONDir  string

	// Comparison settings
	Threshold        float64
	ColorSensitivity float64
	Highlight        color.RGBA

	// Execution settings
	ParallelLimit int

	// Renderer settings, one of them must be set for a run
	RenderURL            string
	RenderCommand        string
	RenderTimeoutSeconds int

	// Optional MySQL DSN for run history
	HistoryDSN string

	// Paths to ignore when scanning
	PathsToIgnore []string

	// Command flags
	Flags Flags
}

// Flags holds command-line flags.
// Threshold and ParallelLimit are nil unless given on the command line.
type Flags struct {
	Patterns      []string
	Queue         bool
	Threshold     *float64
	ParallelLimit *int
	OnlyFailed    bool
	JUnitPath     string
	OpenFailures  bool
	HistoryDSN    string
	ConfigFile    string
}

// New creates a new Config with defaults
func New() *Config {
	cfg := &Config{
		ProjectPath:          DefaultProjectPath,
		ConfigFile:           DefaultConfigFile,
		MocksDir:             DefaultMocksDir,
		BaselinesDir:         DefaultBaselinesDir,
		TestImagesDir:        DefaultTestImagesDir,
		DiffImagesDir:        DefaultDiffImagesDir,
		OutputJSONFile:       DefaultOutputJSONFile,
		OutputJSONDir:        DefaultOutputJSONDir,
		Threshold:            DefaultThreshold,
		ColorSensitivity:     DefaultColorSensitivity,
		Highlight:            DefaultHighlight,
		ParallelLimit:        DefaultParallelLimit,
		RenderTimeoutSeconds: DefaultRenderTimeoutSeconds,
	}
	// Copy default paths to ignore
	cfg.PathsToIgnore = make([]string, len(DefaultPathsToIgnore))
	copy(cfg.PathsToIgnore, DefaultPathsToIgnore)
	return cfg
}

// Load builds a config from defaults, the project file, the environment and the flags, in that order.
func Load(flags Flags) (*Config, error) {
	cfg := New()
	if flags.ConfigFile != "" {
		cfg.ConfigFile = flags.ConfigFile
	}
	if err := cfg.LoadFile(cfg.resolve(cfg.ConfigFile), flags.ConfigFile == ""); err != nil {
		return nil, err
	}
	cfg.LoadEnv()
	cfg.ApplyFlags(flags)
	return cfg, nil
}

// ApplyFlags stores the flags and applies their overrides.
// Values are taken as given; Validate rejects the ones a run cannot use.
func (c *Config) ApplyFlags(flags Flags) {
	c.Flags = flags
	if flags.Threshold != nil {
		c.Threshold = *flags.Threshold
	}
	if flags.ParallelLimit != nil {
		c.ParallelLimit = *flags.ParallelLimit
	}
	if flags.HistoryDSN != "" {
		c.HistoryDSN = flags.HistoryDSN
	}
}

// resolve makes p relative to the project path unless it is absolute
func (c *Config) resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.ProjectPath, p)
}

// GetMocksPath returns the directory scanned for the catalog
func (c *Config) GetMocksPath() string {
	return c.resolve(c.MocksDir)
}

// CasePaths resolves the mock, baseline, candidate and diff paths of a test case
func (c *Config) CasePaths(name string) domain.TestCase {
	return domain.TestCase{
		Name:         name,
		MockPath:     filepath.Join(c.resolve(c.MocksDir), name+".json"),
		BaselinePath: filepath.Join(c.resolve(c.BaselinesDir), name+".png"),
		TestPath:     filepath.Join(c.resolve(c.TestImagesDir), name+".png"),
		DiffPath:     filepath.Join(c.resolve(c.DiffImagesDir), "diff-"+name+".png"),
	}
}

// GetOutputPath returns the full path to the results JSON file.
// Resolves to an absolute path so run, list and failures always use the same file regardless of cwd.
func (c *Config) GetOutputPath() string {
	p := filepath.Join(c.resolve(c.OutputJSONDir), c.OutputJSONFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// Validate checks the settings a run depends on
func (c *Config) Validate() error {
	if c.Threshold < 0 {
		return fmt.Errorf("threshold must not be negative, got %v", c.Threshold)
	}
	if c.ParallelLimit < 1 {
		return fmt.Errorf("parallel limit must be at least 1, got %d", c.ParallelLimit)
	}
	if c.ColorSensitivity < 0 || c.ColorSensitivity > 1 {
		return fmt.Errorf("color sensitivity must be within [0, 1], got %v", c.ColorSensitivity)
	}
	if strings.TrimSpace(c.MocksDir) == "" {
		return fmt.Errorf("mocks directory is required")
	}
	return nil
}
