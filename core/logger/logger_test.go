package logger

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		level   zapcore.Level
		wantErr bool
	}{
		{"ConsoleInfo", Config{Level: "info", Format: "console"}, zapcore.InfoLevel, false},
		{"JSONWarn", Config{Level: "WARN", Format: "json"}, zapcore.WarnLevel, false},
		{"Debug", Config{Level: "debug", Format: "console"}, zapcore.DebugLevel, false},
		{"Invalid", Config{Level: "chatty"}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(&tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, l.Core().Enabled(tt.level))
			if tt.level > zapcore.DebugLevel {
				assert.False(t, l.Core().Enabled(tt.level-1))
			}
		})
	}
}

func TestWithRayID(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	base := zap.New(core)

	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		WithRayID(base, c).Info("without")
		c.Locals("ray_id", "ray-1")
		WithRayID(base, c).Info("with")
		return c.SendStatus(fiber.StatusNoContent)
	})

	_, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Empty(t, entries[0].ContextMap())
	assert.Equal(t, "ray-1", entries[1].ContextMap()["ray_id"])
}

func TestProgress(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	Progress(zap.New(core))(3, 10, "deduplicating")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "deduplicating", entries[0].Message)
	assert.EqualValues(t, 3, entries[0].ContextMap()["current"])
	assert.EqualValues(t, 10, entries[0].ContextMap()["total"])
}
