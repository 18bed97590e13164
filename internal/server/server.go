package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/raysh454/repopulse/docs/swagger" // registers the OpenAPI document
	"github.com/raysh454/repopulse/internal/controller"
	"github.com/raysh454/repopulse/internal/logging"
	"github.com/raysh454/repopulse/internal/metrics"
	"github.com/raysh454/repopulse/internal/series"
)

const upstreamPingTimeout = 2 * time.Second

// Server is the HTTP + WebSocket API surface over a Controller.
type Server struct {
	cfg        Config
	controller *controller.Controller
	metrics    *metrics.Metrics
	router     chi.Router
	upgrader   websocket.Upgrader
	logger     logging.Logger
}

// NewServer creates a Server for ctrl. m may be nil, in which case /metrics
// is not mounted.
func NewServer(cfg Config, ctrl *controller.Controller, m *metrics.Metrics) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewStdoutLogger("server")
	}
	if cfg.SubscriberBuffer < 1 {
		cfg.SubscriberBuffer = DefaultConfig().SubscriberBuffer
	}

	s := &Server{
		cfg:        cfg,
		controller: ctrl,
		metrics:    m,
		router:     chi.NewRouter(),
		logger:     logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// TODO: restrict to the configured dashboard origin once one exists
				return true
			},
		},
	}

	s.routes()
	return s
}

// Controller returns the underlying controller for advanced use (tests, etc.).
func (s *Server) Controller() *controller.Controller {
	return s.controller
}

func (s *Server) routes() {
	r := s.router

	r.Use(s.corsMiddleware)

	// CORS preflight
	r.Options("/analyze", s.optionsHandler("POST"))
	r.Options("/state", s.optionsHandler("GET"))
	r.Options("/series", s.optionsHandler("GET"))
	r.Options("/summary", s.optionsHandler("GET"))
	r.Options("/ws/state", s.optionsHandler("GET"))

	r.Post("/analyze", s.handleAnalyze)
	r.Get("/state", s.handleState)
	r.Get("/series", s.handleSeries)
	r.Get("/summary", s.handleSummary)
	r.Get("/healthz", s.handleHealth)

	r.Get("/ws/state", s.handleStateWS)

	if s.metrics != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.metrics.Registry(), promhttp.HandlerOpts{}))
	}
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Max-Age", "86400")

		next.ServeHTTP(w, r)
	})
}

func (s *Server) optionsHandler(methods string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Methods", methods)
		w.WriteHeader(http.StatusNoContent)
	}
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestID := r.Header.Get("X-Request-ID")
	if requestID == "" {
		requestID = uuid.NewString()
	}
	w.Header().Set("X-Request-ID", requestID)

	fields := []logging.Field{
		{Key: "request_id", Value: requestID},
		{Key: "method", Value: r.Method},
		{Key: "path", Value: r.URL.Path},
	}

	if q := r.URL.Query(); len(q) > 0 {
		fields = append(fields, logging.Field{Key: "query", Value: q})
	}

	if r.Body != nil && r.Method == http.MethodPost {
		if bodyBytes, err := io.ReadAll(r.Body); err == nil {
			fields = append(fields, logging.Field{Key: "body", Value: string(bodyBytes)})
			r.Body = io.NopCloser(bytes.NewReader(bodyBytes))
		}
	}

	s.logger.Info("http_request", fields...)

	s.router.ServeHTTP(w, r)
}

// Close shuts down the controller. Open websocket feeds end once their
// subscription channel closes.
func (s *Server) Close() {
	if s.controller != nil {
		s.controller.Close()
	}
}

// HTTPServer creates an *http.Server ready to ListenAndServe.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         s.cfg.ListenAddr,
		Handler:      s,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // allow streaming
	}
}

// --- JSON helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// --- HTTP handlers ---

// handleAnalyze godoc
// @Summary Start an analysis
// @Description Validates input and asks the analysis service for a report. With wait=true the call blocks and returns the resulting state.
// @Tags analyze
// @Accept json
// @Produce json
// @Param body body AnalyzeRequest true "Repository to analyze"
// @Param wait query bool false "Block until the analysis finishes"
// @Success 200 {object} controller.Snapshot
// @Success 202 {object} AnalyzeAcceptedResponse
// @Failure 400 {object} ErrorResponse
// @Router /analyze [post]
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var body AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.logger.Warn("decoding analyze body", logging.Field{Key: "error", Value: err.Error()})
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	wait, _ := strconv.ParseBool(r.URL.Query().Get("wait"))
	if wait {
		// The outcome is committed even if the caller hangs up first.
		st := s.controller.Analyze(context.WithoutCancel(r.Context()), body.Input)
		s.logger.Info("analyze finished", logging.Field{Key: "phase", Value: st.Phase()}, logging.Field{Key: "generation", Value: st.Generation()})
		writeJSON(w, http.StatusOK, controller.SnapshotOf(st))
		return
	}

	gen := s.controller.Submit(body.Input)
	s.logger.Info("analyze submitted", logging.Field{Key: "generation", Value: gen})
	writeJSON(w, http.StatusAccepted, AnalyzeAcceptedResponse{Generation: gen})
}

// handleState godoc
// @Summary Current analyze state
// @Tags analyze
// @Produce json
// @Success 200 {object} controller.Snapshot
// @Router /state [get]
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, controller.SnapshotOf(s.controller.State()))
}

// handleSeries godoc
// @Summary Chart series for the current result
// @Description Points are chronological. All arrays are empty unless the last analysis succeeded.
// @Tags charts
// @Produce json
// @Success 200 {object} SeriesResponse
// @Router /series [get]
func (s *Server) handleSeries(w http.ResponseWriter, r *http.Request) {
	points := s.controller.Series()
	writeJSON(w, http.StatusOK, SeriesResponse{
		Points: points,
		Churn:  series.ChurnSeries(points),
		Impact: series.ImpactSeries(points),
	})
}

// handleSummary godoc
// @Summary Headline numbers for the current result
// @Tags charts
// @Produce json
// @Success 200 {object} SummaryResponse
// @Failure 404 {object} ErrorResponse
// @Router /summary [get]
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	st, ok := s.controller.State().(controller.Success)
	if !ok {
		writeError(w, http.StatusNotFound, "no analysis result")
		return
	}
	writeJSON(w, http.StatusOK, SummaryResponse{
		Repo:          st.Request.Slug(),
		HealthScore:   st.Result.HealthScore,
		Band:          series.Band(st.Result.HealthScore),
		CommitsStored: st.Result.CommitsStored,
		Summary:       series.Summarize(st.Result),
	})
}

// handleHealth godoc
// @Summary Liveness and upstream reachability
// @Description Always 200 while the dashboard runs. Status turns "degraded" when the analysis service does not answer its ping.
// @Tags ops
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /healthz [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), upstreamPingTimeout)
	defer cancel()

	resp := HealthResponse{Status: "ok", Upstream: UpstreamReachable}
	reply, err := s.controller.PingUpstream(ctx)
	if err != nil {
		s.logger.Warn("analysis service unreachable", logging.Field{Key: "error", Value: err.Error()})
		resp.Status = "degraded"
		resp.Upstream = UpstreamUnreachable
		resp.UpstreamError = err.Error()
	} else {
		resp.UpstreamReply = reply
	}
	writeJSON(w, http.StatusOK, resp)
}

// WebSockets

// handleStateWS streams a Snapshot for the current state and then one per
// committed transition until either side goes away.
func (s *Server) handleStateWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrading to websocket", logging.Field{Key: "error", Value: err.Error()})
		return
	}
	defer conn.Close()

	subscriber := uuid.NewString()
	logger := s.logger.With(logging.Field{Key: "subscriber", Value: subscriber})

	states, unsubscribe := s.controller.Subscribe(s.cfg.SubscriberBuffer)
	defer unsubscribe()
	logger.Info("state subscriber connected")

	// Reads only detect the client closing the socket.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				unsubscribe()
				return
			}
		}
	}()

	for st := range states {
		if err := conn.WriteJSON(controller.SnapshotOf(st)); err != nil {
			logger.Info("state subscriber gone", logging.Field{Key: "error", Value: err.Error()})
			return
		}
	}
	_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	logger.Info("state subscriber disconnected")
}
