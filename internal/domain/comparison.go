package domain

import "image/color"

// ComparisonRequest describes one candidate/baseline comparison
type ComparisonRequest struct {
	TestPath     string
	BaselinePath string
	DiffPath     string
	Highlight    color.RGBA
	Threshold    float64
}

// ComparisonResult is the verdict of a comparison
type ComparisonResult struct {
	Equal      bool
	Difference float64 // Fraction of mismatched pixels, >= 0
}
