package booking

import (
	"context"
	"time"

	"github.com/entrhq/courtbook/pkg/config"
	"github.com/entrhq/courtbook/pkg/logging"
	"github.com/entrhq/courtbook/pkg/prompt"
	"github.com/google/uuid"
)

// Result summarises a run. Fields are filled as far as the run got.
type Result struct {
	RunID        string        `json:"run_id"`
	Parameters   Parameters    `json:"parameters"`
	SessionID    string        `json:"session_id,omitempty"`
	LiveViewURL  string        `json:"live_view_url,omitempty"`
	Discovery    *Discovery    `json:"discovery,omitempty"`
	Confirmation *Confirmation `json:"confirmation,omitempty"`
	StartedAt    time.Time     `json:"started_at"`
	FinishedAt   time.Time     `json:"finished_at"`
	Error        string        `json:"error,omitempty"`
}

// Succeeded reports whether the run reached confirmation extraction.
func (r *Result) Succeeded() bool {
	return r.Error == "" && r.Confirmation != nil
}

// Runner sequences a whole booking run.
type Runner struct {
	Config   config.Config
	Prompter prompt.Provider
	Opener   SessionOpener
	Reporter Reporter
	Logger   *logging.Logger

	// Now is the clock for the date choices; nil means time.Now.
	Now func() time.Time

	// OnSessionStarted is called with the open session before navigation.
	OnSessionStarted func(Session)
}

// Run collects parameters, validates the configuration, then drives login,
// filters, discovery and booking on one session. The session is closed on
// every path once opened. The returned Result is never nil.
func (r *Runner) Run(ctx context.Context) (result *Result, err error) {
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	logger := r.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	result = &Result{RunID: uuid.New().String(), StartedAt: now()}
	defer func() {
		result.FinishedAt = now()
		if err != nil {
			result.Error = err.Error()
			logger.Errorf("run %s failed: %v", result.RunID, err)
		}
	}()

	r.Reporter.Infof("🎾 Starting tennis/paddle court booking automation in SF...")

	params, err := CollectParameters(ctx, r.Prompter, r.Reporter, now())
	if err != nil {
		return result, err
	}
	result.Parameters = params
	r.Reporter.Infof("🎾 Booking %s courts in San Francisco for %s on %s...", params.Activity, params.TimeOfDay, params.Date)

	if err := r.Config.Validate(); err != nil {
		return result, err
	}

	session, err := r.Opener.Open(ctx)
	if err != nil {
		return result, err
	}
	defer func() {
		if closeErr := session.Close(); closeErr != nil {
			logger.Warnf("closing session %s: %v", session.ID(), closeErr)
		}
		r.Reporter.Infof("👋 Browser session closed")
	}()

	result.SessionID = session.ID()
	result.LiveViewURL = session.LiveViewURL()
	logger.Infof("session %s started (run %s)", result.SessionID, result.RunID)
	if result.LiveViewURL != "" {
		r.Reporter.Successf("✅ Browserbase Session Started")
		r.Reporter.Infof("📺 Watch live: %s", result.LiveViewURL)
	} else {
		r.Reporter.Successf("✅ Browser Session Started")
	}
	if r.OnSessionStarted != nil {
		r.OnSessionStarted(session)
	}

	if err := r.drive(ctx, session, params, result); err != nil {
		r.Reporter.Errorf("❌ Error during court booking: %v", err)
		return result, err
	}
	return result, nil
}

func (r *Runner) drive(ctx context.Context, session Session, params Parameters, result *Result) error {
	r.Reporter.Infof("🌐 Navigating to court booking site...")
	if err := session.Navigate(ctx, r.Config.Site.TargetURL); err != nil {
		return err
	}

	exec := session.Executor()
	r.Reporter.Step("Logging in")
	if err := Login(ctx, exec, r.Config.Credentials, r.Reporter); err != nil {
		return err
	}
	r.Reporter.Step("Selecting filters")
	if err := SelectFilters(ctx, exec, params, r.Reporter); err != nil {
		return err
	}

	r.Reporter.Step("Finding courts")
	discovery, err := NewDiscoverer(exec, r.Reporter, r.Logger).Discover(ctx, params.TimeOfDay)
	if err != nil {
		return err
	}
	result.Discovery = discovery

	r.Reporter.Step("Booking")
	confirmation, err := NewBooker(exec, r.Prompter, r.Reporter, r.Logger).Book(ctx, discovery.Slots)
	if err != nil {
		return err
	}
	result.Confirmation = confirmation
	return nil
}
