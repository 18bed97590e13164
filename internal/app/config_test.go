package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/raysh454/repopulse/internal/controller"
	"github.com/raysh454/repopulse/internal/testutil"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "repopulse.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultConfig_IsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "http://127.0.0.1:8000", cfg.WebClient.BaseURL)
	assert.Equal(t, ":8080", cfg.Server.ListenAddr)
}

func TestLoadConfig_OverlaysYAML(t *testing.T) {
	t.Setenv(EnvAPIURL, "")
	path := writeConfig(t, `
server:
  listen_addr: ":9090"
webclient:
  base_url: "http://analysis.internal:8000"
  timeout: 5s
locale: en-GB
time_zone: Europe/Berlin
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.ListenAddr)
	assert.Equal(t, "http://analysis.internal:8000", cfg.WebClient.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.WebClient.Timeout)
	assert.Equal(t, "repopulse", cfg.WebClient.UserAgent, "unset keys keep defaults")
	assert.Equal(t, "info", cfg.LogLevel)

	tag, err := cfg.LocaleTag()
	require.NoError(t, err)
	assert.Equal(t, language.BritishEnglish, tag)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	t.Setenv(EnvAPIURL, "http://from-env:1234")
	path := writeConfig(t, "webclient:\n  base_url: http://from-file\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "http://from-env:1234", cfg.WebClient.BaseURL)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "server: [not, a, map]"))
	assert.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "locale: \"!!\"\n"))
	assert.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "time_zone: Mars/Olympus\n"))
	assert.Error(t, err)
}

func TestNewApplication_WiresController(t *testing.T) {
	cfg := DefaultConfig()
	a, err := NewApplication(cfg, &testutil.DummyLogger{}, nil)
	require.NoError(t, err)

	assert.Equal(t, controller.PhaseIdle, a.Controller.State().Phase())
	assert.NotNil(t, a.Metrics.Registry())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, a.Shutdown(ctx))
}

func TestNewApplication_RejectsBadConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WebClient.BaseURL = ""
	_, err := NewApplication(cfg, nil, nil)
	assert.Error(t, err)
}
