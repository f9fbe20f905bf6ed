package ui

import "ctf/internal/domain"

// Viewer displays a saved classify run interactively
type Viewer interface {
	View(summary *domain.RunSummary) error
}
