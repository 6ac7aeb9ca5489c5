package interfaces

import (
	"context"

	"github.com/bobmcallan/rentfolio/internal/models"
)

// AnalysisService produces investment projections for listings.
type AnalysisService interface {
	// Analyze is a pure function of its inputs: no I/O, no shared state,
	// bit-identical output for identical inputs.
	Analyze(listing models.Listing, params models.AnalysisParams) *models.AnalysisResult

	// AnalyzeBatch analyzes every listing against one shared parameter set,
	// resolving the fallback rent ratio once for the whole batch, and
	// persists one snapshot per result.
	AnalyzeBatch(ctx context.Context, listings []models.Listing, params models.AnalysisParams) (*models.BatchResult, error)
}
