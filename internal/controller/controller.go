// Package controller drives the analyze workflow: it validates input, calls
// the analysis service and exposes the outcome as a single State.
//
// Every call to Analyze or Submit takes a new generation number. An outcome
// is committed only while its generation is still the newest, so a slow
// response can never overwrite the state of a later request.
package controller

import (
	"context"
	"sync"
	"time"

	"golang.org/x/text/language"

	"github.com/raysh454/repopulse/internal/analysis"
	"github.com/raysh454/repopulse/internal/logging"
	"github.com/raysh454/repopulse/internal/metrics"
	"github.com/raysh454/repopulse/internal/series"
	"github.com/raysh454/repopulse/internal/webclient"
)

// Option customises a Controller.
type Option func(*Controller)

// WithLocale sets the locale used for chart date labels.
func WithLocale(tag language.Tag) Option {
	return func(c *Controller) { c.locale = tag }
}

// WithLocation sets the time zone used for chart date labels.
func WithLocation(loc *time.Location) Option {
	return func(c *Controller) { c.location = loc }
}

// WithMetrics records outcomes on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Controller) { c.metrics = m }
}

// WithClock replaces time.Now for latency measurements.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// Controller owns the analyze state. It is safe for concurrent use.
type Controller struct {
	client   webclient.Client
	logger   logging.Logger
	metrics  *metrics.Metrics
	locale   language.Tag
	location *time.Location
	now      func() time.Time

	formatter series.DateFormatter

	mu         sync.Mutex
	state      State
	generation uint64
	subs       map[uint64]chan State
	nextSub    uint64
	closed     bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New returns a Controller in the Idle state.
func New(client webclient.Client, logger logging.Logger, opts ...Option) *Controller {
	if logger == nil {
		logger = logging.Nop{}
	}
	ctx, cancel := context.WithCancel(context.Background())
	c := &Controller{
		client:   client,
		logger:   logger.With(logging.Field{Key: "component", Value: "controller"}),
		locale:   language.AmericanEnglish,
		location: time.UTC,
		now:      time.Now,
		state:    Idle{},
		subs:     map[uint64]chan State{},
		ctx:      ctx,
		cancel:   cancel,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.formatter = series.NewDateFormatter(c.locale, c.location)
	return c
}

// Analyze runs one analyze workflow for input and blocks until the service
// answers. It returns the state it committed, or the current state when its
// outcome was superseded by a newer call.
func (c *Controller) Analyze(ctx context.Context, input string) State {
	gen, req, st := c.begin(input)
	if st.Phase() == PhaseFailure {
		return st
	}
	return c.finish(ctx, gen, req)
}

// Submit starts an analyze workflow in the background and returns its
// generation. Progress is observable through State and Subscribe.
func (c *Controller) Submit(input string) uint64 {
	gen, req, st := c.begin(input)
	if st.Phase() == PhaseFailure {
		return gen
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		c.logger.Warn("submit after close ignored", logging.Field{Key: "generation", Value: gen})
		return gen
	}
	c.wg.Add(1)
	c.mu.Unlock()

	go func() {
		defer c.wg.Done()
		c.finish(c.ctx, gen, req)
	}()
	return gen
}

// begin takes a new generation and commits Pending, or Failure when input
// does not parse.
func (c *Controller) begin(input string) (uint64, analysis.AnalysisRequest, State) {
	req, err := analysis.ParseRequest(input)

	c.mu.Lock()
	c.generation++
	gen := c.generation

	var st State
	if err != nil {
		st = Failure{Kind: analysis.InvalidFormat, Message: analysis.UserMessage(err), Gen: gen}
	} else {
		st = Pending{Request: req, Gen: gen}
	}
	c.commitLocked(st)
	c.mu.Unlock()

	if err != nil {
		c.metrics.Rejected(string(analysis.InvalidFormat))
		c.logger.Info("rejected analyze input",
			logging.Field{Key: "input", Value: input},
			logging.Field{Key: "generation", Value: gen})
	} else {
		c.logger.Info("analysis requested",
			logging.Field{Key: "repo", Value: req.Slug()},
			logging.Field{Key: "generation", Value: gen})
	}
	return gen, req, st
}

// finish calls the service and commits the outcome if gen is still current.
func (c *Controller) finish(ctx context.Context, gen uint64, req analysis.AnalysisRequest) State {
	start := c.now()
	c.metrics.Started()

	var next State
	result, err := c.client.Analyze(ctx, req)
	switch {
	case err != nil:
		kind := analysis.KindOf(err)
		if kind == "" {
			kind = analysis.TransportError
		}
		next = Failure{Kind: kind, Message: analysis.UserMessage(err), Gen: gen}
	case result == nil:
		next = Failure{Kind: analysis.MalformedResponse, Message: analysis.GenericErrorMessage, Gen: gen}
	default:
		next = Success{Request: req, Result: result, Gen: gen}
	}
	elapsed := c.now().Sub(start)

	c.mu.Lock()
	if gen != c.generation {
		current := c.state
		c.mu.Unlock()

		c.metrics.Finished(metrics.OutcomeStale, "", elapsed)
		c.logger.Debug("discarding stale analysis",
			logging.Field{Key: "repo", Value: req.Slug()},
			logging.Field{Key: "generation", Value: gen},
			logging.Field{Key: "current_generation", Value: current.Generation()})
		return current
	}
	c.commitLocked(next)
	c.mu.Unlock()

	switch st := next.(type) {
	case Success:
		c.metrics.Finished(metrics.OutcomeSuccess, "", elapsed)
		c.metrics.Committed(st.Result.HealthScore)
		c.logger.Info("analysis committed",
			logging.Field{Key: "repo", Value: req.Slug()},
			logging.Field{Key: "generation", Value: gen},
			logging.Field{Key: "health_score", Value: st.Result.HealthScore})
	case Failure:
		c.metrics.Finished(metrics.OutcomeFailure, string(st.Kind), elapsed)
		c.logger.Warn("analysis failed",
			logging.Field{Key: "repo", Value: req.Slug()},
			logging.Field{Key: "generation", Value: gen},
			logging.Field{Key: "kind", Value: string(st.Kind)},
			logging.Field{Key: "error", Value: st.Message})
	}
	return next
}

// commitLocked replaces the state and fans it out. Sends never block, so a
// slow subscriber misses transitions instead of stalling the controller.
// Must be called with c.mu held.
func (c *Controller) commitLocked(st State) {
	c.state = st
	for _, ch := range c.subs {
		select {
		case ch <- st:
		default:
		}
	}
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Result returns the committed result, or nil unless the state is Success.
func (c *Controller) Result() *analysis.AnalysisResult {
	if st, ok := c.State().(Success); ok {
		return st.Result
	}
	return nil
}

// Series derives the chart points for the current result. It is empty
// unless the state is Success.
func (c *Controller) Series() []series.ChartPoint {
	return series.DeriveWith(c.Result(), c.formatter)
}

// PingUpstream asks the analysis service whether it is up. It does not touch
// the state machine.
func (c *Controller) PingUpstream(ctx context.Context) (string, error) {
	return c.client.Health(ctx)
}

// Summary derives headline numbers for the current result.
func (c *Controller) Summary() series.Summary {
	return series.Summarize(c.Result())
}

// Subscribe returns a channel that first receives the current state and then
// every committed transition. buffer below 1 is raised to 1. The returned
// func unsubscribes and closes the channel; it is safe to call twice.
func (c *Controller) Subscribe(buffer int) (<-chan State, func()) {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan State, buffer)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	id := c.nextSub
	c.nextSub++
	c.subs[id] = ch
	ch <- c.state
	c.mu.Unlock()

	c.metrics.SubscriberAdded()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			c.mu.Lock()
			_, ok := c.subs[id]
			if ok {
				delete(c.subs, id)
				close(ch)
			}
			c.mu.Unlock()
			if ok {
				c.metrics.SubscriberRemoved()
			}
		})
	}
}

// Close cancels background submissions, waits for them and closes every
// subscription.
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()

	c.cancel()
	c.wg.Wait()

	c.mu.Lock()
	n := len(c.subs)
	for id, ch := range c.subs {
		delete(c.subs, id)
		close(ch)
	}
	c.mu.Unlock()

	for i := 0; i < n; i++ {
		c.metrics.SubscriberRemoved()
	}
	c.logger.Info("controller closed")
}
