package booking

import (
	"context"
	"errors"
	"testing"

	"github.com/entrhq/courtbook/pkg/config"
	"github.com/entrhq/courtbook/pkg/tools/browser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	initErr     error
	startErr    error
	shutdownErr error

	started   []browser.SessionOptions
	shutdowns int
}

func (b *fakeBackend) Initialize() error { return b.initErr }

func (b *fakeBackend) StartSession(_ context.Context, opts browser.SessionOptions) (*browser.Session, error) {
	b.started = append(b.started, opts)
	if b.startErr != nil {
		return nil, b.startErr
	}
	return &browser.Session{ID: "sess-1"}, nil
}

func (b *fakeBackend) Shutdown() error {
	b.shutdowns++
	return b.shutdownErr
}

func TestBrowserOpener_StartFailureStopsDriver(t *testing.T) {
	startErr := errors.New("browserbase: 401 unauthorized")
	backend := &fakeBackend{startErr: startErr}

	s, err := NewBrowserOpener(backend, validConfig(), nil).Open(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, startErr)
	assert.Nil(t, s)
	assert.Len(t, backend.started, 1)
	assert.Equal(t, 1, backend.shutdowns)
}

func TestBrowserOpener_StartFailureKeepsCauseWhenShutdownFails(t *testing.T) {
	startErr := errors.New("session quota exceeded")
	backend := &fakeBackend{startErr: startErr, shutdownErr: errors.New("driver already gone")}

	_, err := NewBrowserOpener(backend, validConfig(), nil).Open(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, startErr)
	assert.Contains(t, err.Error(), "driver already gone")
}

func TestBrowserOpener_InitializeFailure(t *testing.T) {
	backend := &fakeBackend{initErr: errors.New("could not start playwright")}

	_, err := NewBrowserOpener(backend, validConfig(), nil).Open(context.Background())
	require.Error(t, err)
	assert.Empty(t, backend.started)
	assert.Zero(t, backend.shutdowns)
}

func TestBrowserOpener_OpenAndClose(t *testing.T) {
	backend := &fakeBackend{}

	s, err := NewBrowserOpener(backend, validConfig(), nil).Open(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "sess-1", s.ID())
	assert.NotNil(t, s.Executor())
	assert.Zero(t, backend.shutdowns)

	require.NoError(t, s.Close())
	assert.Equal(t, 1, backend.shutdowns)
}

func TestBrowserSessionOptions(t *testing.T) {
	cfg := validConfig()
	cfg.Site.AllowedURLs = "https://www.rec.us/*, ,https://*.browserbase.com/*"

	opts := BrowserSessionOptions(cfg)
	assert.Equal(t, browser.BackendBrowserbase, opts.Backend)
	assert.Equal(t, []string{"https://www.rec.us/*", "https://*.browserbase.com/*"}, opts.AllowedURLs)
	assert.Equal(t, "proj", opts.Remote.ProjectID)
	assert.Equal(t, "bb", opts.Remote.APIKey)

	cfg.Browser.Provider = config.BrowserLocal
	assert.Equal(t, browser.BackendLocal, BrowserSessionOptions(cfg).Backend)
}
