package cli_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raysh454/repopulse/internal/analysis"
	"github.com/raysh454/repopulse/internal/cli"
	"github.com/raysh454/repopulse/internal/demoserver"
	"github.com/raysh454/repopulse/internal/logging"
	"github.com/raysh454/repopulse/internal/series"
)

type countingBackend struct {
	calls atomic.Int32
	ts    *httptest.Server
}

func newBackend(t *testing.T) *countingBackend {
	t.Helper()
	b := &countingBackend{}
	demo := demoserver.NewDemoServer(demoserver.DefaultConfig(), logging.Nop{})
	b.ts = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.calls.Add(1)
		demo.ServeHTTP(w, r)
	}))
	t.Cleanup(b.ts.Close)
	return b
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := cli.NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestAnalyze_BadFormatExitsWithUsageCode(t *testing.T) {
	t.Parallel()
	b := newBackend(t)

	_, _, err := run(t, "analyze", "badformat", "--server", b.ts.URL)

	require.Error(t, err)
	assert.Equal(t, cli.ExitUsage, cli.ExitCodeOf(err))
	assert.Equal(t, analysis.InvalidFormatMessage, err.Error())
	assert.Equal(t, int32(0), b.calls.Load(), "no request may reach the service")
}

func TestAnalyze_TextReport(t *testing.T) {
	t.Parallel()
	b := newBackend(t)

	out, _, err := run(t, "analyze", "facebook/react", "--server", b.ts.URL)

	require.NoError(t, err)
	assert.Contains(t, out, "facebook/react")
	assert.Contains(t, out, "87.0 (good)")
	assert.Contains(t, out, "Code churn")
	assert.Contains(t, out, "1/1/24")
	assert.Less(t, bytes.Index([]byte(out), []byte("1/1/24")), bytes.Index([]byte(out), []byte("1/2/24")),
		"series must be chronological")
	assert.Contains(t, out, "Weekly activity")
	assert.Contains(t, out, "2024-01-07")
	assert.Contains(t, out, "Trend:")
	assert.Contains(t, out, "Cooling Down (2.0 commits/week recently)")
	assert.Contains(t, out, "professional workflow")
	assert.Equal(t, int32(1), b.calls.Load())
}

func TestAnalyze_JSONReport(t *testing.T) {
	t.Parallel()
	b := newBackend(t)

	out, _, err := run(t, "analyze", "facebook/react", "--server", b.ts.URL, "--output", "json", "--locale", "en-GB")
	require.NoError(t, err)

	var r cli.Report
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	assert.Equal(t, "facebook/react", r.Repo)
	assert.Equal(t, 87.0, r.HealthScore)
	assert.Equal(t, 30, r.CommitsStored)
	require.Len(t, r.Points, 2)
	assert.Equal(t, "y", r.Points[0].Author)
	assert.Equal(t, "01/01/2024", r.Points[0].ShortDate)
	assert.Equal(t, 2, r.Summary.TotalCommits)
	assert.Equal(t, []series.WeeklyCount{{WeekEnding: "2024-01-07", Commits: 2}}, r.Summary.Weekly)
	assert.Equal(t, series.TrendDown, r.Summary.Trend)
	assert.Equal(t, series.WeekendProfessional, r.Summary.WeekendVerdict)
}

func TestAnalyze_RemoteErrorExitsWithFailureCode(t *testing.T) {
	t.Parallel()
	b := newBackend(t)

	out, _, err := run(t, "analyze", "nobody/nothing", "--server", b.ts.URL, "--output", "json")

	require.Error(t, err)
	assert.Equal(t, cli.ExitFailure, cli.ExitCodeOf(err))
	assert.Equal(t, demoserver.NotFoundDetail, err.Error())

	var fr cli.FailureReport
	require.NoError(t, json.Unmarshal([]byte(out), &fr))
	assert.Equal(t, analysis.RemoteError, fr.ErrorKind)
}

func TestAnalyze_UnknownOutput(t *testing.T) {
	t.Parallel()
	_, _, err := run(t, "analyze", "a/b", "--output", "yaml")

	require.Error(t, err)
	assert.Equal(t, cli.ExitUsage, cli.ExitCodeOf(err))
}

func TestAnalyze_RequiresOneArgument(t *testing.T) {
	t.Parallel()
	_, _, err := run(t, "analyze")

	require.Error(t, err)
	assert.Equal(t, cli.ExitFailure, cli.ExitCodeOf(err))
}

func TestVersion(t *testing.T) {
	t.Setenv(cli.EnvVersion, "1.2.3")

	out, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "repopulse version 1.2.3\n", out)
}

func TestExitCodeOf(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 0, cli.ExitCodeOf(nil))
	assert.Equal(t, cli.ExitFailure, cli.ExitCodeOf(assert.AnError))
	assert.Equal(t, cli.ExitFailure, cli.ExitCodeOf(cli.NewExitError(0, "zero")))

	wrapped := cli.WrapExitError(cli.ExitUsage, "outer", assert.AnError)
	assert.Equal(t, cli.ExitUsage, cli.ExitCodeOf(wrapped))
	assert.ErrorIs(t, wrapped, assert.AnError)
	assert.Equal(t, "outer: "+assert.AnError.Error(), wrapped.Error())
}
