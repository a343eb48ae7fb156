package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/entrhq/courtbook/pkg/config"
	"github.com/entrhq/courtbook/pkg/llm"
	"github.com/entrhq/courtbook/pkg/semantic"
	"github.com/entrhq/courtbook/pkg/tools/browser"
)

// Session is an open browser the run drives.
type Session interface {
	ID() string
	// LiveViewURL is empty when the backend has no live view.
	LiveViewURL() string
	Navigate(ctx context.Context, url string) error
	Executor() semantic.Executor
	Close() error
}

// SessionOpener opens the run's single session.
type SessionOpener interface {
	Open(ctx context.Context) (Session, error)
}

// SessionBackend starts and stops browser sessions. *browser.SessionManager
// implements it.
type SessionBackend interface {
	Initialize() error
	StartSession(ctx context.Context, opts browser.SessionOptions) (*browser.Session, error)
	Shutdown() error
}

// BrowserOpener opens Playwright sessions through a SessionBackend.
type BrowserOpener struct {
	manager  SessionBackend
	options  browser.SessionOptions
	navigate browser.NavigateOptions
	provider llm.Provider
	execOpts []semantic.Option
}

// NewBrowserOpener maps cfg onto session options. provider decides page
// actions for the semantic executor.
func NewBrowserOpener(manager SessionBackend, cfg config.Config, provider llm.Provider, execOpts ...semantic.Option) *BrowserOpener {
	return &BrowserOpener{
		manager:  manager,
		options:  BrowserSessionOptions(cfg),
		navigate: browser.NavigateOptions{WaitUntil: "domcontentloaded", Timeout: float64(cfg.Site.NavigationTimeout / time.Millisecond)},
		provider: provider,
		execOpts: execOpts,
	}
}

// BrowserSessionOptions translates the browser and site configuration.
func BrowserSessionOptions(cfg config.Config) browser.SessionOptions {
	var allowed []string
	for _, pattern := range strings.Split(cfg.Site.AllowedURLs, ",") {
		if pattern = strings.TrimSpace(pattern); pattern != "" {
			allowed = append(allowed, pattern)
		}
	}

	backend := browser.BackendBrowserbase
	if cfg.Browser.Provider == config.BrowserLocal {
		backend = browser.BackendLocal
	}

	return browser.SessionOptions{
		Backend:     backend,
		Headless:    cfg.Browser.Headless,
		AllowedURLs: allowed,
		Remote: browser.RemoteOptions{
			ProjectID: cfg.Browser.ProjectID,
			APIKey:    cfg.Browser.APIKey,
			Region:    cfg.Browser.Region,
			Timeout:   int(cfg.Browser.Timeout / time.Second),
		},
	}
}

// Open starts the driver and the session. The driver is stopped again when
// the session cannot be started.
func (o *BrowserOpener) Open(ctx context.Context) (Session, error) {
	if err := o.manager.Initialize(); err != nil {
		return nil, err
	}
	s, err := o.manager.StartSession(ctx, o.options)
	if err != nil {
		if shutdownErr := o.manager.Shutdown(); shutdownErr != nil {
			return nil, fmt.Errorf("%w (shutdown: %v)", err, shutdownErr)
		}
		return nil, err
	}
	return &browserSession{
		manager:  o.manager,
		session:  s,
		navigate: o.navigate,
		exec:     semantic.NewPageExecutor(s, o.provider, o.execOpts...),
	}, nil
}

type browserSession struct {
	manager  SessionBackend
	session  *browser.Session
	navigate browser.NavigateOptions
	exec     semantic.Executor
}

func (s *browserSession) ID() string          { return s.session.ID }
func (s *browserSession) LiveViewURL() string { return s.session.LiveViewURL }

func (s *browserSession) Executor() semantic.Executor { return s.exec }

func (s *browserSession) Navigate(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.session.Navigate(url, s.navigate); err != nil {
		return fmt.Errorf("navigate to %s: %w", url, err)
	}
	return nil
}

// Close ends the session and stops the driver.
func (s *browserSession) Close() error {
	return s.manager.Shutdown()
}
