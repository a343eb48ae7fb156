package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDir points the package at a temporary log directory and resets global state.
func setupTestDir(t *testing.T) {
	t.Helper()

	origLogDir, origInitErr := logDir, initErr
	origSessionID := sessionID

	logDir = t.TempDir()
	initErr = nil
	initOnce = sync.Once{}
	sessionID = ""
	sessionIDOnce = sync.Once{}

	t.Cleanup(func() {
		logDir, initErr = origLogDir, origInitErr
		initOnce = sync.Once{}
		sessionID = origSessionID
		sessionIDOnce = sync.Once{}
	})
}

func TestNewLogger(t *testing.T) {
	setupTestDir(t)

	logger, err := NewLogger("runner")
	require.NoError(t, err)
	defer logger.Close()

	assert.Equal(t, "runner", logger.component)
	assert.NotEmpty(t, logger.SessionID())
	assert.FileExists(t, logger.LogPath())

	fileName := filepath.Base(logger.LogPath())
	assert.True(t, strings.HasSuffix(fileName, "-courtbook.log"), fileName)
}

func TestLoggerFormatting(t *testing.T) {
	setupTestDir(t)

	logger, err := NewLogger("discovery")
	require.NoError(t, err)

	logger.Printf("observe found %d candidates", 3)
	logger.Debugf("raw extraction")
	logger.Warnf("no bookable slot")
	logger.Errorf("booking failed")
	require.NoError(t, logger.Close())

	content, err := os.ReadFile(logger.LogPath())
	require.NoError(t, err)

	for _, pattern := range []string{
		"[discovery] [INFO] observe found 3 candidates",
		"[discovery] [DEBUG] raw extraction",
		"[discovery] [WARN] no bookable slot",
		"[discovery] [ERROR] booking failed",
	} {
		assert.Contains(t, string(content), pattern)
	}
}

func TestMultipleComponentsShareFile(t *testing.T) {
	setupTestDir(t)

	l1, err := NewLogger("auth")
	require.NoError(t, err)
	defer l1.Close()
	l2, err := NewLogger("booking")
	require.NoError(t, err)
	defer l2.Close()

	assert.Equal(t, l1.SessionID(), l2.SessionID())
	assert.Equal(t, l1.LogPath(), l2.LogPath())
}

func TestWriterLoggerAndWith(t *testing.T) {
	var buf bytes.Buffer
	base := NewWriterLogger("runner", &buf)
	child := base.With("semantic")

	base.Infof("start")
	child.Debugf("act %q", "Click the Login button")

	out := buf.String()
	assert.Contains(t, out, "[runner] [INFO] start")
	assert.Contains(t, out, `[semantic] [DEBUG] act "Click the Login button"`)
	assert.Empty(t, child.LogPath())
	require.NoError(t, child.Close())
}

func TestGetLogDirectory(t *testing.T) {
	setupTestDir(t)

	dir, err := GetLogDirectory()
	require.NoError(t, err)
	assert.DirExists(t, dir)
	assert.Equal(t, GetSessionID(), GetSessionID())
}

func TestLoggerCloseTwice(t *testing.T) {
	setupTestDir(t)

	logger, err := NewLogger("test")
	require.NoError(t, err)
	assert.NoError(t, logger.Close())
	assert.NoError(t, logger.Close())
}
