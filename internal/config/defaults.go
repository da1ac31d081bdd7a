package config

import "image/color"

const (
	// DefaultProjectPath is the default project path
	DefaultProjectPath = "."
	// DefaultConfigFile is the optional project config file, relative to the project path
	DefaultConfigFile = ".pixcheck.yaml"
	// DefaultMocksDir holds the figure descriptions, one <name>.json per test case
	DefaultMocksDir = "test/image/mocks"
	// DefaultBaselinesDir holds the accepted reference images
	DefaultBaselinesDir = "test/image/baselines"
	// DefaultTestImagesDir receives the candidate images of a run
	DefaultTestImagesDir = "build/test_images"
	// DefaultDiffImagesDir receives the diff artifacts of a run
	DefaultDiffImagesDir = "build/test_images_diff"
	// DefaultOutputJSONFile is the default results file name
	DefaultOutputJSONFile = "image-test-results.json"
	// DefaultOutputJSONDir is the default results directory
	DefaultOutputJSONDir = "build"
	// DefaultThreshold is the tolerated fraction of mismatched pixels
	DefaultThreshold = 0.0001
	// DefaultParallelLimit is the number of concurrent cases in batch mode
	DefaultParallelLimit = 4
	// DefaultColorSensitivity is the per-pixel color distance above which a pixel counts as different
	DefaultColorSensitivity = 0.1
	// DefaultRenderTimeoutSeconds bounds a single render request
	DefaultRenderTimeoutSeconds = 60
)

// DefaultHighlight is the color used for mismatched pixels in diff images (purple)
var DefaultHighlight = color.RGBA{R: 128, G: 0, B: 128, A: 255}

// DefaultPathsToIgnore are directory names skipped when scanning for mocks
var DefaultPathsToIgnore = []string{
	"node_modules",
	"build",
}
