// Package analysis holds the data exchanged with the remote analysis service
// and the error taxonomy used when talking to it.
package analysis

// CommitRecord is one commit as reported by the analysis service.
type CommitRecord struct {
	// Date is an ISO-8601 timestamp. It is kept as the raw string so a bad
	// value can still be displayed instead of failing the whole result.
	Date      string `json:"date" example:"2024-01-02T00:00:00Z"`
	Additions int    `json:"additions" example:"10"`
	Deletions int    `json:"deletions" example:"2"`
	Author    string `json:"author" example:"octocat"`
}

// Churn is the number of lines touched by the commit.
func (c CommitRecord) Churn() int {
	return c.Additions + c.Deletions
}

// AnalysisResult is the canonical response of GET /api/analyze/{owner}/{repo}.
//
// History arrives newest-first. Nothing in this package reorders it; the
// series package produces chronological copies for display.
type AnalysisResult struct {
	ProjectID     int64          `json:"project_id" example:"1"`
	HealthScore   float64        `json:"health_score" example:"87"`
	CommitsStored int            `json:"commits_stored" example:"30"`
	History       []CommitRecord `json:"history"`
}
