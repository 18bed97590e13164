// Package testutil provides shared test doubles for use across package tests.
// All dummies implement the corresponding interfaces from the production code,
// allowing injection into components under test without real I/O or side effects.
package testutil

import (
	"context"
	"sync"

	"github.com/raysh454/repopulse/internal/analysis"
	"github.com/raysh454/repopulse/internal/logging"
)

// ─── Logger ────────────────────────────────────────────────────────────

// DummyLogger implements logging.Logger with in-memory recording.
type DummyLogger struct {
	mu     sync.Mutex
	Errors []string
	Infos  []string
	Debugs []string
	Warns  []string
}

func (l *DummyLogger) Debug(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Debugs = append(l.Debugs, msg)
}

func (l *DummyLogger) Info(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Infos = append(l.Infos, msg)
}

func (l *DummyLogger) Warn(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Warns = append(l.Warns, msg)
}

func (l *DummyLogger) Error(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Errors = append(l.Errors, msg)
}

func (l *DummyLogger) With(_ ...logging.Field) logging.Logger { return l }

// DebugMessages returns a copy of the recorded debug lines.
func (l *DummyLogger) DebugMessages() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.Debugs...)
}

// ─── Analysis client ───────────────────────────────────────────────────

// Reply is a canned outcome for one repository slug.
type Reply struct {
	Result *analysis.AnalysisResult
	Err    error

	// Gate, when non-nil, holds the reply until it is closed or receives.
	Gate chan struct{}
}

// DummyClient implements webclient.Client from a table of replies keyed by
// "owner/repo". Unknown slugs answer with a RemoteError 404.
type DummyClient struct {
	mu      sync.Mutex
	Replies map[string]Reply
	Calls   []analysis.AnalysisRequest

	// Started receives the slug of every call as it begins, if non-nil.
	Started chan string

	// HealthErr, when set, is returned by Health instead of "pong".
	HealthErr error
}

// NewDummyClient returns a client with an empty reply table.
func NewDummyClient() *DummyClient {
	return &DummyClient{Replies: map[string]Reply{}}
}

// Set registers the reply for slug.
func (d *DummyClient) Set(slug string, r Reply) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Replies[slug] = r
}

func (d *DummyClient) Analyze(ctx context.Context, req analysis.AnalysisRequest) (*analysis.AnalysisResult, error) {
	slug := req.Slug()

	d.mu.Lock()
	d.Calls = append(d.Calls, req)
	r, ok := d.Replies[slug]
	started := d.Started
	d.mu.Unlock()

	if started != nil {
		started <- slug
	}

	if r.Gate != nil {
		select {
		case <-r.Gate:
		case <-ctx.Done():
			return nil, &analysis.Error{Kind: analysis.TransportError, Message: ctx.Err().Error(), Cause: ctx.Err()}
		}
	}

	if !ok {
		return nil, &analysis.Error{Kind: analysis.RemoteError, Message: "repository not found", Status: 404}
	}
	return r.Result, r.Err
}

func (d *DummyClient) Health(context.Context) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.HealthErr != nil {
		return "", d.HealthErr
	}
	return "pong", nil
}

func (d *DummyClient) Close() error { return nil }

// CallCount returns how many Analyze calls were made.
func (d *DummyClient) CallCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.Calls)
}
