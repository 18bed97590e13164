// Package demoserver is a stand-in analysis service that answers
// GET /api/analyze/{owner}/{repo} from canned fixtures.
package demoserver

import (
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/raysh454/repopulse/internal/logging"
)

// NotFoundDetail is the detail returned for repositories without a fixture.
const NotFoundDetail = "repository not found"

// DemoServer serves analysis fixtures over HTTP.
type DemoServer struct {
	cfg      Config
	fixtures map[string]Fixture
	router   chi.Router
	logger   logging.Logger
}

// NewDemoServer creates a new demo server instance.
func NewDemoServer(cfg Config, logger logging.Logger) *DemoServer {
	if logger == nil {
		logger = logging.NewStdoutLogger("demoserver")
	}

	fixtures := make(map[string]Fixture)
	for _, f := range AllFixtures() {
		fixtures[f.Slug] = f
	}

	s := &DemoServer{
		cfg:      cfg,
		fixtures: fixtures,
		router:   chi.NewRouter(),
		logger:   logger,
	}

	s.router.Get("/", s.indexHandler)
	s.router.Get("/ping", s.pingHandler)
	s.router.Get("/demo/fixtures", s.listFixturesHandler)
	s.router.Get("/api/analyze/{owner}/{repo}", s.analyzeHandler)
	return s
}

// ServeHTTP implements http.Handler.
func (s *DemoServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Start listens on the configured port until the listener fails.
func (s *DemoServer) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.logger.Info("demo server starting", logging.Field{Key: "addr", Value: "http://localhost" + addr})
	return http.ListenAndServe(addr, s)
}

func (s *DemoServer) analyzeHandler(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "owner") + "/" + chi.URLParam(r, "repo")

	f, ok := s.fixtures[slug]
	if !ok {
		s.logger.Info("unknown repository", logging.Field{Key: "repo", Value: slug})
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": NotFoundDetail})
		return
	}

	if f.Slow && s.cfg.SlowDelay > 0 {
		timer := time.NewTimer(s.cfg.SlowDelay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-r.Context().Done():
			return
		}
	}

	switch {
	case f.Status != 0 && f.Detail != "":
		writeJSON(w, f.Status, map[string]string{"detail": f.Detail})
	case f.Status != 0:
		w.WriteHeader(f.Status)
	default:
		writeJSON(w, http.StatusOK, f.Result)
	}
	s.logger.Info("served analysis", logging.Field{Key: "repo", Value: slug}, logging.Field{Key: "slow", Value: f.Slow})
}

func (s *DemoServer) pingHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, "pong")
}

// FixtureInfo describes one fixture for /demo/fixtures.
type FixtureInfo struct {
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Status      int    `json:"status"`
	Slow        bool   `json:"slow"`
}

func (s *DemoServer) fixtureInfos() []FixtureInfo {
	infos := make([]FixtureInfo, 0, len(s.fixtures))
	for _, f := range s.fixtures {
		status := f.Status
		if status == 0 {
			status = http.StatusOK
		}
		infos = append(infos, FixtureInfo{Slug: f.Slug, Description: f.Description, Status: status, Slow: f.Slow})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Slug < infos[j].Slug })
	return infos
}

func (s *DemoServer) listFixturesHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.fixtureInfos())
}

func (s *DemoServer) indexHandler(w http.ResponseWriter, r *http.Request) {
	tmpl := template.Must(template.New("index").Parse(indexHTML))
	w.Header().Set("Content-Type", "text/html")
	_ = tmpl.Execute(w, struct {
		Fixtures  []FixtureInfo
		SlowDelay time.Duration
	}{s.fixtureInfos(), s.cfg.SlowDelay})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

const indexHTML = `<!DOCTYPE html>
<html>
<head>
    <title>Analysis Demo Service</title>
    <style>
        body { font-family: system-ui, -apple-system, sans-serif; max-width: 900px; margin: 0 auto; padding: 20px; }
        table { border-collapse: collapse; width: 100%; }
        td, th { border-bottom: 1px solid #ddd; padding: 8px; text-align: left; }
        code { background: #f5f5f5; padding: 2px 4px; }
    </style>
</head>
<body>
    <h1>Analysis Demo Service</h1>
    <p>Query <code>/api/analyze/{owner}/{repo}</code> with one of the repositories below. Anything else answers 404.</p>
    <table>
        <tr><th>Repository</th><th>Status</th><th>Notes</th></tr>
        {{range .Fixtures}}
        <tr>
            <td><a href="/api/analyze/{{.Slug}}">{{.Slug}}</a></td>
            <td>{{.Status}}</td>
            <td>{{.Description}}{{if .Slow}} (waits {{$.SlowDelay}}){{end}}</td>
        </tr>
        {{end}}
    </table>
</body>
</html>`
