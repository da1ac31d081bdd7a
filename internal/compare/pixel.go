package compare

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"

	"github.com/orisano/pixelmatch"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"pixcheck/internal/domain"
	"pixcheck/internal/fsx"
)

// ErrSizeMismatch is returned when the candidate and baseline dimensions differ
var ErrSizeMismatch = errors.New("image sizes do not match")

// pixelmatch paints mismatched pixels with this color
var mismatchColor = color.RGBA{R: 255, A: 255}

// PixelComparator compares images pixel by pixel with pixelmatch.
// The difference measure is the fraction of mismatched pixels.
type PixelComparator struct {
	sensitivity float64
}

// NewPixelComparator creates a comparator; sensitivity is pixelmatch's per-pixel color threshold
func NewPixelComparator(sensitivity float64) *PixelComparator {
	return &PixelComparator{sensitivity: sensitivity}
}

// Compare decodes both images, counts mismatched pixels and always writes the diff image
func (c *PixelComparator) Compare(ctx context.Context, req domain.ComparisonRequest) (domain.ComparisonResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.ComparisonResult{}, err
	}

	candidate, err := openImage(req.TestPath)
	if err != nil {
		return domain.ComparisonResult{}, fmt.Errorf("failed to open candidate(path=%v): %w", req.TestPath, err)
	}
	baseline, err := openImage(req.BaselinePath)
	if err != nil {
		return domain.ComparisonResult{}, fmt.Errorf("failed to open baseline(path=%v): %w", req.BaselinePath, err)
	}

	// pixelmatch compares absolute bounds; align both images at the origin
	candidate = toOrigin(candidate)
	baseline = toOrigin(baseline)
	if candidate.Bounds().Size() != baseline.Bounds().Size() {
		return domain.ComparisonResult{}, fmt.Errorf("%w: candidate %v, baseline %v",
			ErrSizeMismatch, candidate.Bounds().Size(), baseline.Bounds().Size())
	}

	var out image.Image
	diff, err := pixelmatch.MatchPixel(candidate, baseline,
		pixelmatch.Threshold(c.sensitivity),
		pixelmatch.WriteTo(&out),
	)
	if err != nil {
		return domain.ComparisonResult{}, fmt.Errorf("failed to match pixel: %w", err)
	}

	total := candidate.Bounds().Dx() * candidate.Bounds().Dy()
	measure := 0.0
	if total > 0 {
		measure = float64(diff) / float64(total)
	}

	if req.DiffPath != "" && out != nil {
		if err := writeDiff(req.DiffPath, out, req.Highlight); err != nil {
			return domain.ComparisonResult{}, err
		}
	}

	return domain.ComparisonResult{
		Equal:      measure <= req.Threshold,
		Difference: measure,
	}, nil
}

func openImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

func toOrigin(img image.Image) image.Image {
	b := img.Bounds()
	if b.Min == (image.Point{}) {
		return img
	}
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

// writeDiff encodes the pixelmatch output with mismatches painted in the highlight color
func writeDiff(path string, out image.Image, highlight color.RGBA) error {
	if rgba, ok := out.(*image.RGBA); ok && highlight.A != 0 && highlight != mismatchColor {
		b := rgba.Bounds()
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				if rgba.RGBAAt(x, y) == mismatchColor {
					rgba.SetRGBA(x, y, highlight)
				}
			}
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create diff dir: %w", err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err != nil {
		return fmt.Errorf("failed to encode diff: %w", err)
	}
	if err := fsx.WriteFileAtomic(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write diff: %w", err)
	}
	return nil
}
