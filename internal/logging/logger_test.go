package logging_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"chainvote/internal/logging"
)

func TestNew_Levels(t *testing.T) {
	l, err := logging.New(logging.Options{Level: "warn"})
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, l.Core().Enabled(zapcore.WarnLevel))

	l, err = logging.New(logging.Options{Level: "warn", Verbose: true})
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))

	_, err = logging.New(logging.Options{Level: "loud"})
	assert.Error(t, err)
}

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chainvote.log")
	l, err := logging.New(logging.Options{File: path})
	require.NoError(t, err)

	l.Error("vote failed", zap.String("tx", "0xabc"))
	_ = l.Sync()

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"msg":"vote failed"`)
	assert.Contains(t, string(b), `"tx":"0xabc"`)
}
