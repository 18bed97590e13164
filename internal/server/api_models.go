package server

import (
	"github.com/raysh454/repopulse/internal/series"
)

// AnalyzeRequest is the payload accepted by POST /analyze.
type AnalyzeRequest struct {
	Input string `json:"input" example:"tiangolo/fastapi"`
}

// AnalyzeAcceptedResponse reports the generation taken by a background analyze.
type AnalyzeAcceptedResponse struct {
	Generation uint64 `json:"generation" example:"3"`
}

// SeriesResponse carries the chart-ready views of the current result.
type SeriesResponse struct {
	Points []series.ChartPoint  `json:"points"`
	Churn  []series.ChurnPoint  `json:"churn"`
	Impact []series.ImpactPoint `json:"impact"`
}

// SummaryResponse is the headline view of the current result.
type SummaryResponse struct {
	Repo          string           `json:"repo" example:"tiangolo/fastapi"`
	HealthScore   float64          `json:"health_score" example:"85.5"`
	Band          series.ScoreBand `json:"band" example:"good"`
	CommitsStored int              `json:"commits_stored" example:"2"`
	series.Summary
}

// Upstream reachability values reported by GET /healthz.
const (
	UpstreamReachable   = "reachable"
	UpstreamUnreachable = "unreachable"
)

// HealthResponse is returned by GET /healthz. Status is "degraded" when the
// analysis service cannot be reached.
type HealthResponse struct {
	Status        string `json:"status" example:"ok" enums:"ok,degraded"`
	Upstream      string `json:"upstream" example:"reachable" enums:"reachable,unreachable"`
	UpstreamReply string `json:"upstream_reply,omitempty" example:"pong"`
	UpstreamError string `json:"upstream_error,omitempty"`
}

// ErrorResponse is a uniform error payload returned by the API.
type ErrorResponse struct {
	Error string `json:"error" example:"no analysis result"`
}
