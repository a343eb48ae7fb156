package browser

import (
	"errors"
	"time"

	"github.com/playwright-community/playwright-go"
)

// Backend selects where the browser runs.
type Backend string

const (
	// BackendBrowserbase runs the browser remotely on Browserbase.
	BackendBrowserbase Backend = "browserbase"

	// BackendLocal launches Chromium on this machine.
	BackendLocal Backend = "local"
)

// ErrNavigationBlocked is returned when a URL is outside the allowed patterns.
var ErrNavigationBlocked = errors.New("navigation blocked")

// Session represents the active browser session with its associated resources.
type Session struct {
	// ID is the backend session identifier (a uuid for local sessions)
	ID string

	// Backend is where the browser runs
	Backend Backend

	// LiveViewURL lets an operator watch a remote session; empty for local sessions
	LiveViewURL string

	// Browser is the Playwright browser instance
	Browser playwright.Browser

	// Context is the browser context (isolated session)
	Context playwright.BrowserContext

	// Page is the current active page
	Page playwright.Page

	// Headless indicates if the browser is running in headless mode
	Headless bool

	// CreatedAt is the timestamp when the session was created
	CreatedAt time.Time

	// LastUsedAt is the timestamp of the last operation on this session
	LastUsedAt time.Time

	// CurrentURL is the URL of the current page
	CurrentURL string

	guard *URLGuard
}

// SessionOptions configures a new browser session.
type SessionOptions struct {
	// Backend selects local or remote execution
	Backend Backend

	// Headless controls whether a local browser runs without a visible window
	Headless bool

	// Viewport sets the initial viewport size
	Viewport *Viewport

	// Timeout sets the default timeout for operations (in milliseconds)
	Timeout float64

	// AllowedURLs are glob patterns navigation is restricted to; empty allows all
	AllowedURLs []string

	// Remote configures the Browserbase session
	Remote RemoteOptions
}

// RemoteOptions configures a Browserbase session.
type RemoteOptions struct {
	ProjectID string
	APIKey    string
	Region    string
	// Timeout is the remote session lifetime in seconds
	Timeout int
}

// Viewport represents the browser viewport dimensions.
type Viewport struct {
	Width  int
	Height int
}

// NavigateOptions configures page navigation behavior.
type NavigateOptions struct {
	// WaitUntil specifies when to consider navigation successful
	// Valid values: "load", "domcontentloaded", "networkidle"
	WaitUntil string

	// Timeout in milliseconds (0 means default)
	Timeout float64
}

// SnapshotOptions configures page snapshots.
type SnapshotOptions struct {
	// MaxTokens caps the snapshot HTML; 0 means DefaultSnapshotTokens
	MaxTokens int
}

// Snapshot is a cleaned, element-tagged view of the current page.
type Snapshot struct {
	URL         string
	Title       string
	HTML        string
	Interactive int
	Tokens      int
	Truncated   bool
}

// Default values for various operations
const (
	DefaultTimeout         = 30000.0 // 30 seconds in milliseconds
	DefaultViewportWidth   = 1280
	DefaultViewportHeight  = 720
	DefaultSnapshotTokens  = 24000
	DefaultMaxHTMLLength   = 400000
	DefaultRemoteTimeout   = 900
	DefaultRemoteRegion    = "us-west-2"
	ElementIDAttribute     = "data-courtbook-id"
	settleAfterActionState = "domcontentloaded"
)
