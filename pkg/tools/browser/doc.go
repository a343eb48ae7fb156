// Package browser owns the single Playwright browser session a booking run
// drives.
//
// # Backends
//
// Two backends are supported:
//
//   - browserbase: a remote session is created through the Browserbase REST
//     API and attached over CDP. The session has a live view URL that can be
//     watched while the run is in progress.
//   - local: Chromium is launched on this machine, optionally headless.
//
// # Session Lifecycle
//
//  1. Initialize installs and starts the Playwright driver.
//  2. StartSession opens the browser, context and page.
//  3. The session navigates, snapshots and interacts with the page.
//  4. Shutdown releases the page, context and browser, releases a remote
//     session and stops the driver. It is safe to call more than once.
//
// # Navigation Guard
//
// Navigation is restricted to URLs that match the configured glob patterns;
// any other URL is refused with ErrNavigationBlocked.
//
// # Snapshots
//
// Snapshot tags every visible interactive element with a numeric
// data-courtbook-id attribute, then returns an outline of the page HTML. Click, Fill
// and Select address elements by that id.
//
// # Example Usage
//
//	manager := browser.NewSessionManager()
//	if err := manager.Initialize(); err != nil {
//	    return err
//	}
//	defer manager.Shutdown()
//
//	session, err := manager.StartSession(ctx, browser.SessionOptions{
//	    Backend:     browser.BackendLocal,
//	    AllowedURLs: []string{"https://www.rec.us/*"},
//	})
//	if err != nil {
//	    return err
//	}
//	err = session.Navigate("https://www.rec.us/organizations/san-francisco-rec-park", browser.NavigateOptions{
//	    WaitUntil: "domcontentloaded",
//	    Timeout:   60000,
//	})
package browser
