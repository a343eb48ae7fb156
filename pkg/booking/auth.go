package booking

import (
	"context"
	"fmt"

	"github.com/entrhq/courtbook/pkg/config"
	"github.com/entrhq/courtbook/pkg/semantic"
)

func loginIntents(creds config.Credentials) []string {
	return []string{
		"Click the Login button",
		fmt.Sprintf("Fill in the email or username field with \"%s\"", creds.Email),
		"Click the next, continue, or submit button to proceed",
		fmt.Sprintf("Fill in the password field with \"%s\"", creds.Password),
		"Click the login, sign in, or submit button",
	}
}

// Login signs in with creds. The first failing intent ends the step.
func Login(ctx context.Context, exec semantic.Executor, creds config.Credentials, r Reporter) error {
	r.Infof("🔐 Logging in...")
	for i, intent := range loginIntents(creds) {
		if err := exec.Act(ctx, intent); err != nil {
			return fmt.Errorf("login step %d: %w", i+1, err)
		}
	}
	r.Successf("🔐 Logged in")
	return nil
}

// actAll issues intents in order and stops at the first failure.
func actAll(ctx context.Context, exec semantic.Executor, step string, intents ...string) error {
	for _, intent := range intents {
		if err := exec.Act(ctx, intent); err != nil {
			return fmt.Errorf("%s: %w", step, err)
		}
	}
	return nil
}
