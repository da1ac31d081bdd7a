package ui

import "pixcheck/internal/domain"

// Viewer displays the failures of a stored run
type Viewer interface {
	View(results *domain.RunOutput) error
}
