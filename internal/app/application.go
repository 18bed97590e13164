package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/raysh454/repopulse/internal/controller"
	"github.com/raysh454/repopulse/internal/logging"
	"github.com/raysh454/repopulse/internal/metrics"
	"github.com/raysh454/repopulse/internal/webclient"
)

// Application is the runtime state container. It holds config and the core
// services shared across modules so nothing lives in package-level variables.
type Application struct {
	Config     *Config
	Logger     logging.Logger
	Metrics    *metrics.Metrics
	Client     webclient.Client
	Controller *controller.Controller
}

// NewApplication wires the web client and controller from cfg. httpClient is
// optional and lets tests point the client at an httptest server.
func NewApplication(cfg *Config, logger logging.Logger, httpClient *http.Client) (*Application, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if logger == nil {
		logger = logging.Nop{}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	tag, _ := cfg.LocaleTag()
	loc, _ := cfg.Location()

	client, err := webclient.NewRestyClient(cfg.WebClient, logger, httpClient)
	if err != nil {
		return nil, fmt.Errorf("creating webclient: %w", err)
	}

	m := metrics.New()
	ctrl := controller.New(client, logger,
		controller.WithLocale(tag),
		controller.WithLocation(loc),
		controller.WithMetrics(m))

	return &Application{
		Config:     cfg,
		Logger:     logger,
		Metrics:    m,
		Client:     client,
		Controller: ctrl,
	}, nil
}

// Shutdown stops the controller and releases the client.
func (a *Application) Shutdown(ctx context.Context) error {
	if a == nil {
		return errors.New("application is nil")
	}
	a.Logger.Info("application shutdown initiated")

	done := make(chan struct{})
	go func() {
		a.Controller.Close()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		return fmt.Errorf("waiting for controller: %w", ctx.Err())
	}
	return a.Client.Close()
}
