package cli

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timelog/internal/config"
	"timelog/internal/tasklist"
	"timelog/internal/timelog"
	"timelog/internal/timeutil"
)

func TestAddCommand_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("appends an entry timestamped now", func(t *testing.T) {
		env := setupTestApp(t, "", dt(2024, 3, 4, 10, 0))

		err := NewAddCommand(env.app).Execute(ctx, []string{"arrived"})
		require.NoError(t, err)

		assert.Equal(t, "2024-03-04 10:00: arrived\n", readLog(t, env.logPath))
		assert.Equal(t, "Logged at 10:00: arrived\n", env.out.String())
	})

	t.Run("joins multiple words", func(t *testing.T) {
		env := setupTestApp(t, "", dt(2024, 3, 4, 10, 0))

		err := NewAddCommand(env.app).Execute(ctx, []string{"project:", "fix", "bugs", "--", "backend"})
		require.NoError(t, err)

		assert.Equal(t, "2024-03-04 10:00: project: fix bugs -- backend\n", readLog(t, env.logPath))
	})

	t.Run("applies an inline correction", func(t *testing.T) {
		env := setupTestApp(t, "2024-03-04 09:00: arrived\n", dt(2024, 3, 4, 10, 0))

		err := NewAddCommand(env.app).Execute(ctx, []string{"-15", "coffee", "**"})
		require.NoError(t, err)

		assert.Equal(t, "2024-03-04 09:00: arrived\n2024-03-04 09:45: coffee **\n", readLog(t, env.logPath))
		assert.Equal(t, "Logged at 09:45: coffee **\n", env.out.String())
	})

	t.Run("logs at the --at time", func(t *testing.T) {
		env := setupTestApp(t, "2024-03-04 09:00: arrived\n", dt(2024, 3, 4, 10, 0))

		cmd := NewAddCommand(env.app)
		cmd.at = "09:30"
		require.NoError(t, cmd.Execute(ctx, []string{"work"}))

		assert.Equal(t, "2024-03-04 09:00: arrived\n2024-03-04 09:30: work\n", readLog(t, env.logPath))
	})

	t.Run("starts a new day with a blank line", func(t *testing.T) {
		env := setupTestApp(t, "2024-03-03 18:00: done", dt(2024, 3, 4, 9, 0))

		require.NoError(t, NewAddCommand(env.app).Execute(ctx, []string{"arrived"}))

		assert.Equal(t, "2024-03-03 18:00: done\n\n2024-03-04 09:00: arrived\n", readLog(t, env.logPath))
	})
}

func TestAddCommand_Errors(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		log      string
		at       string
		args     []string
		expected string
	}{
		{
			name:     "no arguments",
			args:     []string{},
			expected: "usage: tl add",
		},
		{
			name:     "empty text",
			args:     []string{"  "},
			expected: "failed to add entry: entry is required",
		},
		{
			name:     "malformed --at",
			at:       "9:30",
			args:     []string{"work"},
			expected: `failed to add entry: bad time: "9:30"`,
		},
		{
			name:     "--at in the future",
			at:       "11:00",
			args:     []string{"work"},
			expected: "failed to add entry: invalid input for at: must not be in the future or before the last entry",
		},
		{
			name:     "--at before the last entry",
			log:      "2024-03-04 09:45: arrived\n",
			at:       "09:30",
			args:     []string{"work"},
			expected: "failed to add entry: invalid input for at: must not be in the future or before the last entry",
		},
		{
			name:     "multi-line text",
			args:     []string{"one\ntwo"},
			expected: "failed to add entry: entry must not contain line breaks",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupTestApp(t, tt.log, dt(2024, 3, 4, 10, 0))

			cmd := NewAddCommand(env.app)
			cmd.at = tt.at
			err := cmd.Execute(ctx, tt.args)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expected)
			assert.Empty(t, env.out.String())
		})
	}
}

func TestAddCommand_ReadOnlyLog(t *testing.T) {
	log, err := timelog.NewFromReader(strings.NewReader(""), timeutil.NewClock(2, 0))
	require.NoError(t, err)
	cfg := config.NewConfig()
	out := &lockedBuffer{}
	app := NewApp(log, tasklist.New(filepath.Join(t.TempDir(), "tasks.txt")), cfg, WithOutput(out))

	err = NewAddCommand(app).Execute(context.Background(), []string{"arrived"})

	require.Error(t, err)
	assert.Equal(t, "failed to add entry: permission denied for append on in-memory log", err.Error())
}
