package webclient_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/raysh454/repopulse/internal/analysis"
	"github.com/raysh454/repopulse/internal/logging"
	"github.com/raysh454/repopulse/internal/webclient"
)

const reactBody = `{"project_id":1,"health_score":87,"commits_stored":30,"history":[
{"date":"2024-01-02T00:00:00Z","additions":10,"deletions":2,"author":"x"},
{"date":"2024-01-01T00:00:00Z","additions":5,"deletions":1,"author":"y"}]}`

func newClient(t *testing.T, ts *httptest.Server) *webclient.RestyClient {
	t.Helper()
	cfg := webclient.DefaultConfig()
	cfg.BaseURL = ts.URL
	c, err := webclient.NewRestyClient(cfg, logging.Nop{}, ts.Client())
	if err != nil {
		t.Fatalf("NewRestyClient: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func analysisErr(t *testing.T, err error) *analysis.Error {
	t.Helper()
	var ae *analysis.Error
	if !errors.As(err, &ae) {
		t.Fatalf("expected *analysis.Error, got %T: %v", err, err)
	}
	return ae
}

// ─── Construction ──────────────────────────────────────────────────────

func TestNewRestyClient_RequiresBaseURL(t *testing.T) {
	t.Parallel()
	_, err := webclient.NewRestyClient(webclient.Config{}, nil, nil)
	if err == nil {
		t.Fatal("expected error for empty base URL")
	}
}

// ─── Analyze: success ──────────────────────────────────────────────────

func TestRestyClient_Analyze_DecodesResult(t *testing.T) {
	t.Parallel()
	var gotPath, gotMethod string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, reactBody)
	}))
	defer ts.Close()

	c := newClient(t, ts)
	res, err := c.Analyze(context.Background(), analysis.AnalysisRequest{Owner: "facebook", Repo: "react"})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if gotMethod != http.MethodGet {
		t.Errorf("expected GET, got %s", gotMethod)
	}
	if gotPath != "/api/analyze/facebook/react" {
		t.Errorf("unexpected path %q", gotPath)
	}
	if res.ProjectID != 1 || res.HealthScore != 87 || res.CommitsStored != 30 {
		t.Errorf("unexpected result header: %+v", res)
	}
	if len(res.History) != 2 || res.History[0].Author != "x" {
		t.Errorf("history not preserved as delivered: %+v", res.History)
	}
}

func TestRestyClient_Analyze_MissingHistoryIsEmpty(t *testing.T) {
	t.Parallel()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"project_id":3,"health_score":12.5,"commits_stored":0}`)
	}))
	defer ts.Close()

	res, err := newClient(t, ts).Analyze(context.Background(), analysis.AnalysisRequest{Owner: "a", Repo: "b"})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if res.History == nil || len(res.History) != 0 {
		t.Errorf("expected empty non-nil history, got %#v", res.History)
	}
}

func TestRestyClient_Analyze_EscapesPathSegments(t *testing.T) {
	t.Parallel()
	var rawPath string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawPath = r.URL.EscapedPath()
		_, _ = io.WriteString(w, reactBody)
	}))
	defer ts.Close()

	_, err := newClient(t, ts).Analyze(context.Background(), analysis.AnalysisRequest{Owner: "my org", Repo: "re?po"})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if rawPath != "/api/analyze/my%20org/re%3Fpo" {
		t.Errorf("unexpected escaped path %q", rawPath)
	}
}

// ─── Analyze: failures ─────────────────────────────────────────────────

func TestRestyClient_Analyze_RemoteErrorUsesDetail(t *testing.T) {
	t.Parallel()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"detail":"repository not found"}`)
	}))
	defer ts.Close()

	_, err := newClient(t, ts).Analyze(context.Background(), analysis.AnalysisRequest{Owner: "a", Repo: "missing"})
	ae := analysisErr(t, err)
	if ae.Kind != analysis.RemoteError {
		t.Errorf("expected remote error, got %s", ae.Kind)
	}
	if ae.Message != "repository not found" {
		t.Errorf("expected detail message, got %q", ae.Message)
	}
	if ae.Status != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", ae.Status)
	}
	if !errors.Is(err, analysis.ErrRemote) {
		t.Error("expected errors.Is(err, ErrRemote)")
	}
}

func TestRestyClient_Analyze_RemoteErrorWithoutDetail(t *testing.T) {
	t.Parallel()
	bodies := []string{"", "internal failure", `{"detail":""}`, `{"detail":[{"msg":"bad"}]}`}

	for _, body := range bodies {
		body := body
		t.Run(body, func(t *testing.T) {
			t.Parallel()
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = io.WriteString(w, body)
			}))
			defer ts.Close()

			_, err := newClient(t, ts).Analyze(context.Background(), analysis.AnalysisRequest{Owner: "a", Repo: "b"})
			ae := analysisErr(t, err)
			if ae.Kind != analysis.RemoteError {
				t.Errorf("expected remote error, got %s", ae.Kind)
			}
			if ae.Message != "Request failed with status code 500" {
				t.Errorf("unexpected fallback message %q", ae.Message)
			}
		})
	}
}

func TestRestyClient_Analyze_MalformedBody(t *testing.T) {
	t.Parallel()
	bodies := map[string]string{
		"html":          "<html>oops</html>",
		"null":          "null",
		"array":         "[]",
		"missing score": `{"project_id":1,"commits_stored":2}`,
		"wrong type":    `{"project_id":"one","health_score":1,"commits_stored":1}`,
		"negative":      `{"project_id":1,"health_score":1,"commits_stored":-4}`,
	}

	for name, body := range bodies {
		name, body := name, body
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = io.WriteString(w, body)
			}))
			defer ts.Close()

			_, err := newClient(t, ts).Analyze(context.Background(), analysis.AnalysisRequest{Owner: "a", Repo: "b"})
			ae := analysisErr(t, err)
			if ae.Kind != analysis.MalformedResponse {
				t.Errorf("expected malformed response, got %s (%v)", ae.Kind, err)
			}
		})
	}
}

func TestRestyClient_Analyze_ConnectionRefused(t *testing.T) {
	t.Parallel()
	cfg := webclient.Config{BaseURL: "http://127.0.0.1:1", Timeout: time.Second}
	c, err := webclient.NewRestyClient(cfg, logging.Nop{}, nil)
	if err != nil {
		t.Fatalf("NewRestyClient: %v", err)
	}
	defer c.Close()

	_, err = c.Analyze(context.Background(), analysis.AnalysisRequest{Owner: "a", Repo: "b"})
	ae := analysisErr(t, err)
	if ae.Kind != analysis.TransportError {
		t.Errorf("expected transport error, got %s", ae.Kind)
	}
	if ae.Message == "" || ae.Message != ae.Cause.Error() {
		t.Errorf("expected transport message to be the low-level error, got %q", ae.Message)
	}
}

func TestRestyClient_Analyze_ContextCanceled(t *testing.T) {
	t.Parallel()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(500 * time.Millisecond)
		_, _ = io.WriteString(w, reactBody)
	}))
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newClient(t, ts).Analyze(ctx, analysis.AnalysisRequest{Owner: "a", Repo: "b"})
	if analysis.KindOf(err) != analysis.TransportError {
		t.Fatalf("expected transport error for canceled context, got %v", err)
	}
}

func TestRestyClient_Analyze_SingleCallNoRetry(t *testing.T) {
	t.Parallel()
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	_, _ = newClient(t, ts).Analyze(context.Background(), analysis.AnalysisRequest{Owner: "a", Repo: "b"})
	if got := calls.Load(); got != 1 {
		t.Errorf("expected exactly one request, got %d", got)
	}
}

func TestRestyClient_Analyze_EmptyRequestNeverHitsNetwork(t *testing.T) {
	t.Parallel()
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
	}))
	defer ts.Close()

	_, err := newClient(t, ts).Analyze(context.Background(), analysis.AnalysisRequest{Owner: "", Repo: "b"})
	if !errors.Is(err, analysis.ErrInvalidFormat) {
		t.Fatalf("expected invalid format, got %v", err)
	}
	if calls.Load() != 0 {
		t.Error("expected no request")
	}
}

// ─── Health ────────────────────────────────────────────────────────────

func TestRestyClient_Health(t *testing.T) {
	t.Parallel()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ping" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = io.WriteString(w, `"pong"`)
	}))
	defer ts.Close()

	got, err := newClient(t, ts).Health(context.Background())
	if err != nil {
		t.Fatalf("Health: %v", err)
	}
	if got != "pong" {
		t.Errorf("expected pong, got %q", got)
	}
}

func TestRestyClient_Health_ErrorStatus(t *testing.T) {
	t.Parallel()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	if _, err := newClient(t, ts).Health(context.Background()); err == nil {
		t.Fatal("expected error for 502")
	}
}
