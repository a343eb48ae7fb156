package browser

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/playwright-community/playwright-go"
)

// SessionManager owns the Playwright driver and the one session of a run.
type SessionManager struct {
	mu          sync.Mutex
	session     *Session
	playwright  *playwright.Playwright
	browserbase *BrowserbaseClient
	remote      RemoteOptions
	initialized bool
}

// ManagerOption configures a SessionManager.
type ManagerOption func(*SessionManager)

// WithBrowserbaseClient sets the client used for remote sessions.
func WithBrowserbaseClient(c *BrowserbaseClient) ManagerOption {
	return func(m *SessionManager) {
		m.browserbase = c
	}
}

// NewSessionManager creates a new session manager.
func NewSessionManager(opts ...ManagerOption) *SessionManager {
	m := &SessionManager{}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Initialize installs and starts the Playwright driver.
// This must be called before creating a session.
func (m *SessionManager) Initialize() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	// Driver output would interleave with the interactive prompts.
	opts := &playwright.RunOptions{
		Browsers: []string{"chromium"},
		Verbose:  false,
		Stdout:   io.Discard,
		Stderr:   io.Discard,
	}

	if err := playwright.Install(opts); err != nil {
		return fmt.Errorf("failed to install playwright: %w", err)
	}

	pw, err := playwright.Run(opts)
	if err != nil {
		return fmt.Errorf("failed to start playwright: %w", err)
	}

	m.playwright = pw
	m.initialized = true
	return nil
}

// StartSession opens the run's browser session.
func (m *SessionManager) StartSession(ctx context.Context, opts SessionOptions) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session != nil {
		return nil, fmt.Errorf("session %q already open", m.session.ID)
	}
	if !m.initialized {
		return nil, fmt.Errorf("session manager not initialized")
	}

	guard, err := NewURLGuard(opts.AllowedURLs)
	if err != nil {
		return nil, err
	}

	if opts.Viewport == nil {
		opts.Viewport = &Viewport{
			Width:  DefaultViewportWidth,
			Height: DefaultViewportHeight,
		}
	}
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Backend == "" {
		opts.Backend = BackendBrowserbase
	}

	session := &Session{
		Backend:    opts.Backend,
		Headless:   opts.Headless,
		CurrentURL: "about:blank",
		guard:      guard,
	}

	switch opts.Backend {
	case BackendLocal:
		session.ID = uuid.New().String()
		session.Browser, err = m.playwright.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
			Headless: &opts.Headless,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to launch browser: %w", err)
		}
	case BackendBrowserbase:
		if m.browserbase == nil {
			m.browserbase = NewBrowserbaseClient(opts.Remote.APIKey)
		}
		remote, err := m.browserbase.CreateSession(ctx, opts.Remote)
		if err != nil {
			return nil, err
		}
		m.remote = opts.Remote
		session.ID = remote.ID
		session.LiveViewURL = remote.LiveViewURL()
		session.Headless = true
		session.Browser, err = m.playwright.Chromium.ConnectOverCDP(remote.ConnectURL)
		if err != nil {
			m.release(session.ID)
			return nil, fmt.Errorf("failed to connect to browserbase session %s: %w", remote.ID, err)
		}
	default:
		return nil, fmt.Errorf("unknown browser backend %q", opts.Backend)
	}

	if err := session.attach(opts); err != nil {
		session.close()
		m.release(session.ID)
		return nil, err
	}

	now := time.Now()
	session.CreatedAt = now
	session.LastUsedAt = now
	m.session = session
	return session, nil
}

// attach picks up the default context and page of a remote browser, or
// creates them for a freshly launched one.
func (s *Session) attach(opts SessionOptions) error {
	var err error
	if contexts := s.Browser.Contexts(); len(contexts) > 0 {
		s.Context = contexts[0]
	} else {
		s.Context, err = s.Browser.NewContext(playwright.BrowserNewContextOptions{
			Viewport: &playwright.Size{
				Width:  opts.Viewport.Width,
				Height: opts.Viewport.Height,
			},
		})
		if err != nil {
			return fmt.Errorf("failed to create context: %w", err)
		}
	}

	if pages := s.Context.Pages(); len(pages) > 0 {
		s.Page = pages[0]
	} else {
		s.Page, err = s.Context.NewPage()
		if err != nil {
			return fmt.Errorf("failed to create page: %w", err)
		}
	}

	s.Page.SetDefaultTimeout(opts.Timeout)
	return nil
}

func (m *SessionManager) closeLocked() error {
	if m.session == nil {
		return nil
	}
	session := m.session
	m.session = nil

	err := session.close()
	if session.Backend == BackendBrowserbase {
		m.release(session.ID)
	}
	return err
}

// release is best effort; the remote session also ends when its timeout elapses.
func (m *SessionManager) release(id string) {
	if m.browserbase == nil || id == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = m.browserbase.ReleaseSession(ctx, m.remote.ProjectID, id)
}

// Shutdown closes the session and stops Playwright.
func (m *SessionManager) Shutdown() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	closeErr := m.closeLocked()

	if m.initialized && m.playwright != nil {
		if err := m.playwright.Stop(); err != nil {
			return fmt.Errorf("failed to stop playwright: %w", err)
		}
		m.initialized = false
	}

	return closeErr
}

func (s *Session) close() error {
	var errs []error
	if s.Page != nil {
		if err := s.Page.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if s.Context != nil {
		if err := s.Context.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if s.Browser != nil {
		if err := s.Browser.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("errors closing session: %v", errs)
	}
	return nil
}
