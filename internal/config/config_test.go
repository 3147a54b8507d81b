package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate runs the test from an empty directory so no stray config.yaml is picked up.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestNewManager_Defaults(t *testing.T) {
	isolate(t)

	m, err := NewManager()
	require.NoError(t, err)
	require.NoError(t, m.Validate())

	cfg := m.GetConfig()
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "perio_session", cfg.Session.CookieName)
	assert.Equal(t, 30*time.Minute, cfg.Session.TTL)
	assert.Equal(t, 10000, cfg.Session.MaxSessions)
	assert.Equal(t, "periodontal_report.txt", cfg.Report.FileName)
	assert.Equal(t, 2*time.Second, cfg.UI.ResultDelay)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 5.0, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.NotEmpty(t, cfg.Clinic.Name)
	assert.NotEmpty(t, cfg.Clinic.Phone)
	assert.NotEmpty(t, cfg.Clinic.Email)
	assert.True(t, m.IsDevelopment())
	assert.False(t, m.IsProduction())
	assert.Empty(t, m.ConfigFileUsed())
}

func TestNewManager_EnvironmentOverrides(t *testing.T) {
	isolate(t)

	t.Setenv("PERIO_SERVER_PORT", "9090")
	t.Setenv("PERIO_SESSION_TTL", "5m")
	t.Setenv("PERIO_UI_RESULT_DELAY", "0s")
	t.Setenv("PERIO_CLINIC_NAME", "Env Clinic")
	t.Setenv("PERIO_LOGGING_LEVEL", "debug")
	t.Setenv("PERIO_ENVIRONMENT", "production")

	m, err := NewManager()
	require.NoError(t, err)

	cfg := m.GetConfig()
	assert.Equal(t, 9090, m.GetServerConfig().Port)
	assert.Equal(t, 5*time.Minute, m.GetSessionConfig().TTL)
	assert.Equal(t, time.Duration(0), cfg.UI.ResultDelay)
	assert.Equal(t, "Env Clinic", cfg.Clinic.Name)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, m.IsProduction())
}

func TestNewManager_ConfigFile(t *testing.T) {
	isolate(t)
	dir := t.TempDir()

	content := []byte(`
server:
  port: 7070
clinic:
  name: File Clinic
  phone: "000"
  email: file@clinic.example
report:
  file_name: stage.txt
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), content, 0o644))

	m, err := NewManager(dir)
	require.NoError(t, err)
	require.NoError(t, m.Validate())

	cfg := m.GetConfig()
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "File Clinic", cfg.Clinic.Name)
	assert.Equal(t, "stage.txt", cfg.Report.FileName)
	assert.Equal(t, filepath.Join(dir, "config.yaml"), m.ConfigFileUsed())
}

func TestNewManager_MalformedFile(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("server: [unclosed"), 0o644))

	_, err := NewManager(dir)
	assert.Error(t, err)
}

func TestManager_Validate(t *testing.T) {
	tests := []struct {
		name   string
		env    map[string]string
		errMsg string
	}{
		{"bad port", map[string]string{"PERIO_SERVER_PORT": "70000"}, "invalid server port"},
		{"zero ttl", map[string]string{"PERIO_SESSION_TTL": "0s"}, "session ttl"},
		{"zero sessions", map[string]string{"PERIO_SESSION_MAX_SESSIONS": "0"}, "max_sessions"},
		{"bad level", map[string]string{"PERIO_LOGGING_LEVEL": "verbose"}, "invalid log level"},
		{"bad format", map[string]string{"PERIO_LOGGING_FORMAT": "xml"}, "invalid log format"},
		{"rate limit burst", map[string]string{"PERIO_RATE_LIMIT_BURST": "0"}, "burst"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			m, err := NewManager()
			require.NoError(t, err)

			err = m.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}
