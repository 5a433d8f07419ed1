package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestLogConfig_getter(t *testing.T) {
	tests := []struct {
		name      string
		cfg       LogConfig
		wantLevel zapcore.Level
	}{
		{name: "debug", cfg: LogConfig{Level: "debug", Format: "console"}, wantLevel: zapcore.DebugLevel},
		{name: "json warn", cfg: LogConfig{Level: "warn", Format: "json"}, wantLevel: zapcore.WarnLevel},
		{name: "bad level", cfg: LogConfig{Level: "loud"}, wantLevel: zapcore.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.wantLevel, tt.cfg.getLevel().Level())
			require.Len(t, tt.cfg.getOptions(), 2)
			require.NotNil(t, tt.cfg.getEncoder())
		})
	}
}

func TestJsonEncoder(t *testing.T) {
	cfg := LogConfig{Format: "json"}
	buf, err := cfg.getEncoder().EncodeEntry(zapcore.Entry{Level: zapcore.InfoLevel, Message: "hello"}, []zapcore.Field{zap.Int("rows", 3)})
	require.NoError(t, err)
	require.Contains(t, buf.String(), `"msg":"hello"`)
	require.Contains(t, buf.String(), `"rows":3`)
}

func TestFileLogger(t *testing.T) {
	name := filepath.Join(t.TempDir(), "table.log")
	logger := NewLogger(LogConfig{Level: "info", Format: "json", Filename: name, MaxSize: 1})
	logger.Info("written", zap.String("to", "file"))
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(name)
	require.NoError(t, err)
	require.Contains(t, string(data), `"msg":"written"`)
}

func TestSetupReplacesGlobals(t *testing.T) {
	logger, done := Setup(LogConfig{Level: "error"})
	require.Same(t, logger, zap.L())
	done()
	require.NotSame(t, logger, zap.L())
}
