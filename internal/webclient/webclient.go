package webclient

import (
	"context"

	"github.com/raysh454/repopulse/internal/analysis"
)

// Client talks to the remote analysis service.
//
// Errors returned by Analyze are always *analysis.Error so callers can
// branch on the kind with errors.Is.
type Client interface {
	// Analyze issues exactly one GET /api/analyze/{owner}/{repo}. No retries.
	Analyze(ctx context.Context, req analysis.AnalysisRequest) (*analysis.AnalysisResult, error)

	// Health pings the service and returns its reply.
	Health(ctx context.Context) (string, error)

	Close() error
}
