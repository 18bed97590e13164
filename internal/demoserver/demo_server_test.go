package demoserver_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raysh454/repopulse/internal/analysis"
	"github.com/raysh454/repopulse/internal/demoserver"
	"github.com/raysh454/repopulse/internal/logging"
	"github.com/raysh454/repopulse/internal/webclient"
)

func newDemo(t *testing.T, cfg demoserver.Config) (*httptest.Server, webclient.Client) {
	t.Helper()
	ts := httptest.NewServer(demoserver.NewDemoServer(cfg, logging.Nop{}))
	t.Cleanup(ts.Close)

	wcfg := webclient.DefaultConfig()
	wcfg.BaseURL = ts.URL
	wcfg.Timeout = 5 * time.Second
	client, err := webclient.NewRestyClient(wcfg, logging.Nop{}, ts.Client())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return ts, client
}

func TestDemoServer_ServesFixture(t *testing.T) {
	t.Parallel()
	_, client := newDemo(t, demoserver.DefaultConfig())

	res, err := client.Analyze(context.Background(), analysis.AnalysisRequest{Owner: "facebook", Repo: "react"})
	require.NoError(t, err)
	assert.Equal(t, 87.0, res.HealthScore)
	assert.Equal(t, 30, res.CommitsStored)
	require.Len(t, res.History, 2)
	assert.Equal(t, "x", res.History[0].Author)
}

func TestDemoServer_UnknownRepo(t *testing.T) {
	t.Parallel()
	_, client := newDemo(t, demoserver.DefaultConfig())

	_, err := client.Analyze(context.Background(), analysis.AnalysisRequest{Owner: "nobody", Repo: "nothing"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, analysis.ErrRemote))
	assert.Equal(t, demoserver.NotFoundDetail, analysis.UserMessage(err))

	var aerr *analysis.Error
	require.True(t, errors.As(err, &aerr))
	assert.Equal(t, http.StatusNotFound, aerr.Status)
}

func TestDemoServer_ErrorFixtures(t *testing.T) {
	t.Parallel()
	_, client := newDemo(t, demoserver.DefaultConfig())

	_, err := client.Analyze(context.Background(), analysis.AnalysisRequest{Owner: "acme", Repo: "private"})
	assert.Equal(t, "repository is private", analysis.UserMessage(err))

	_, err = client.Analyze(context.Background(), analysis.AnalysisRequest{Owner: "broken", Repo: "upstream"})
	assert.Equal(t, "Request failed with status code 502", analysis.UserMessage(err))
}

func TestDemoServer_SlowFixtureHonoursDelay(t *testing.T) {
	t.Parallel()
	cfg := demoserver.DefaultConfig()
	cfg.SlowDelay = 50 * time.Millisecond
	_, client := newDemo(t, cfg)

	start := time.Now()
	res, err := client.Analyze(context.Background(), analysis.AnalysisRequest{Owner: "slow", Repo: "repo"})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
	assert.Equal(t, 41.5, res.HealthScore)
}

func TestDemoServer_Ping(t *testing.T) {
	t.Parallel()
	_, client := newDemo(t, demoserver.DefaultConfig())

	msg, err := client.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "pong", msg)
}

func TestDemoServer_ListsFixtures(t *testing.T) {
	t.Parallel()
	ts, _ := newDemo(t, demoserver.DefaultConfig())

	resp, err := http.Get(ts.URL + "/demo/fixtures")
	require.NoError(t, err)
	defer resp.Body.Close()

	var infos []demoserver.FixtureInfo
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&infos))
	require.Len(t, infos, len(demoserver.AllFixtures()))
	assert.Equal(t, "acme/private", infos[0].Slug)
	assert.Equal(t, http.StatusForbidden, infos[0].Status)

	index, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer index.Body.Close()
	assert.Equal(t, http.StatusOK, index.StatusCode)
}
