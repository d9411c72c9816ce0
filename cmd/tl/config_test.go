package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timelog/internal/config"
)

func TestGetEnvironment(t *testing.T) {
	tests := []struct {
		value    string
		expected Environment
	}{
		{"development", Development},
		{"testing", Testing},
		{"production", Production},
		{"", Production},
		{"staging", Production},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("TL_ENV", tt.value)
			assert.Equal(t, tt.expected, getEnvironment())
		})
	}
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.NewConfig()
	cfg.Log.Dir = t.TempDir()
	cfg.Logging.File = filepath.Join(t.TempDir(), "logs", "tl.log")
	return cfg
}

func TestAppFactory_Production(t *testing.T) {
	t.Setenv("TL_DEBUG", "")
	cfg := testConfig(t)

	factory := NewAppFactory(Production)
	app, cleanup, err := factory.CreateApp(cfg)
	require.NoError(t, err)
	defer cleanup()

	require.NotNil(t, app)
	assert.FileExists(t, cfg.Logging.File)
}

func TestAppFactory_TestingLogIsReadOnly(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.WriteFile(cfg.GetLogPath(), []byte("2010-01-30 09:00: arrived\n"), 0o644))

	factory := NewAppFactory(Testing)
	log, err := factory.createTimeLog(cfg)
	require.NoError(t, err)

	window, err := log.Window()
	require.NoError(t, err)
	assert.Len(t, window.Entries(), 1)

	_, err = log.Append("more work", time.Date(2010, 1, 30, 10, 0, 0, 0, time.UTC))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "permission denied")
}

func TestAppFactory_TestingWithoutLogFile(t *testing.T) {
	factory := NewAppFactory(Testing)
	log, err := factory.createTimeLog(testConfig(t))
	require.NoError(t, err)

	window, err := log.Window()
	require.NoError(t, err)
	assert.Empty(t, window.Entries())
}

func TestAppFactory_InvalidLogLevel(t *testing.T) {
	t.Setenv("TL_DEBUG", "")
	cfg := testConfig(t)
	cfg.Logging.Level = "loud"

	_, _, err := NewAppFactory(Production).CreateApp(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to set up logging")
}
