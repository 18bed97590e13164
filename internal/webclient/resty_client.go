package webclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/raysh454/repopulse/internal/analysis"
	"github.com/raysh454/repopulse/internal/logging"
)

const (
	analyzePath = "/api/analyze/{owner}/{repo}"
	pingPath    = "/ping"

	malformedMessage = "Unexpected response from analysis service"
)

// RestyClient is the resty backed implementation of Client.
type RestyClient struct {
	client *resty.Client
	logger logging.Logger
}

var _ Client = (*RestyClient)(nil)

// NewRestyClient builds a client for cfg. httpClient is optional; when nil
// resty's default transport is used.
func NewRestyClient(cfg Config, logger logging.Logger, httpClient *http.Client) (*RestyClient, error) {
	baseURL, err := NormalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.Nop{}
	}
	componentLogger := logger.With(logging.Field{Key: "component", Value: "webclient"})

	var rc *resty.Client
	if httpClient != nil {
		rc = resty.NewWithClient(httpClient)
	} else {
		rc = resty.New()
	}
	rc.SetBaseURL(baseURL).
		SetRetryCount(0).
		SetHeader("Accept", "application/json")
	if cfg.Timeout > 0 {
		rc.SetTimeout(cfg.Timeout)
	}
	if cfg.UserAgent != "" {
		rc.SetHeader("User-Agent", cfg.UserAgent)
	}
	if cfg.Debug {
		rc.SetDebug(true)
	}

	componentLogger.Info("created analysis webclient",
		logging.Field{Key: "base_url", Value: baseURL},
		logging.Field{Key: "timeout", Value: cfg.Timeout.String()})

	return &RestyClient{client: rc, logger: componentLogger}, nil
}

// wireResult mirrors analysis.AnalysisResult with pointers so missing
// required fields can be told apart from zero values.
type wireResult struct {
	ProjectID     *int64                  `json:"project_id"`
	HealthScore   *float64                `json:"health_score"`
	CommitsStored *int                    `json:"commits_stored"`
	History       []analysis.CommitRecord `json:"history"`
}

// Analyze implements Client.
func (c *RestyClient) Analyze(ctx context.Context, req analysis.AnalysisRequest) (*analysis.AnalysisResult, error) {
	if req.Owner == "" || req.Repo == "" {
		return nil, &analysis.Error{Kind: analysis.InvalidFormat, Message: analysis.InvalidFormatMessage}
	}

	c.logger.Debug("requesting analysis", logging.Field{Key: "repo", Value: req.Slug()})

	resp, err := c.client.R().
		SetContext(ctx).
		SetPathParams(map[string]string{"owner": req.Owner, "repo": req.Repo}).
		Get(analyzePath)
	if err != nil {
		c.logger.Warn("analysis request failed",
			logging.Field{Key: "repo", Value: req.Slug()},
			logging.Field{Key: "error", Value: err.Error()})
		return nil, &analysis.Error{Kind: analysis.TransportError, Message: err.Error(), Cause: err}
	}

	status := resp.StatusCode()
	if status < 200 || status > 299 {
		msg := remoteMessage(resp.Body(), status)
		c.logger.Warn("analysis service returned error",
			logging.Field{Key: "repo", Value: req.Slug()},
			logging.Field{Key: "status", Value: status},
			logging.Field{Key: "detail", Value: msg})
		return nil, &analysis.Error{Kind: analysis.RemoteError, Message: msg, Status: status}
	}

	result, err := decodeResult(resp.Body())
	if err != nil {
		c.logger.Warn("malformed analysis response",
			logging.Field{Key: "repo", Value: req.Slug()},
			logging.Field{Key: "error", Value: err.Error()})
		return nil, &analysis.Error{Kind: analysis.MalformedResponse, Message: malformedMessage, Status: status, Cause: err}
	}

	c.logger.Info("analysis received",
		logging.Field{Key: "repo", Value: req.Slug()},
		logging.Field{Key: "project_id", Value: result.ProjectID},
		logging.Field{Key: "commits", Value: len(result.History)})
	return result, nil
}

// Health implements Client.
func (c *RestyClient) Health(ctx context.Context) (string, error) {
	resp, err := c.client.R().SetContext(ctx).Get(pingPath)
	if err != nil {
		return "", fmt.Errorf("ping analysis service: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("ping analysis service: %s", resp.Status())
	}

	var reply string
	if err := json.Unmarshal(resp.Body(), &reply); err != nil {
		reply = strings.TrimSpace(resp.String())
	}
	return reply, nil
}

func (c *RestyClient) Close() error {
	c.logger.Info("closing analysis webclient")
	return nil
}

// remoteMessage prefers the service's {"detail": "..."} and falls back to a
// status based message.
func remoteMessage(body []byte, status int) string {
	var payload struct {
		Detail any `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if s, ok := payload.Detail.(string); ok && strings.TrimSpace(s) != "" {
			return s
		}
	}
	return fmt.Sprintf("Request failed with status code %d", status)
}

func decodeResult(body []byte) (*analysis.AnalysisResult, error) {
	var w wireResult
	if err := json.Unmarshal(body, &w); err != nil {
		return nil, fmt.Errorf("decode analysis result: %w", err)
	}

	var missing []string
	if w.ProjectID == nil {
		missing = append(missing, "project_id")
	}
	if w.HealthScore == nil {
		missing = append(missing, "health_score")
	}
	if w.CommitsStored == nil {
		missing = append(missing, "commits_stored")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("analysis result missing fields: %s", strings.Join(missing, ", "))
	}
	if *w.CommitsStored < 0 {
		return nil, fmt.Errorf("analysis result has negative commits_stored %d", *w.CommitsStored)
	}

	history := w.History
	if history == nil {
		history = []analysis.CommitRecord{}
	}
	return &analysis.AnalysisResult{
		ProjectID:     *w.ProjectID,
		HealthScore:   *w.HealthScore,
		CommitsStored: *w.CommitsStored,
		History:       history,
	}, nil
}
