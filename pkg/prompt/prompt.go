// Package prompt asks the operator for booking parameters and the
// verification code.
//
// TUI renders bubbletea prompts on a terminal; Line reads numbered answers
// from any reader and is used for pipes and tests.
package prompt

import (
	"context"
	"errors"
)

// ErrAborted is returned when the operator cancels a prompt (Ctrl+C, Esc or EOF).
var ErrAborted = errors.New("prompt aborted")

// Choice is one option of a Select prompt.
type Choice struct {
	Label string
	Value string
}

// Provider asks questions and blocks until answered.
type Provider interface {
	// Select returns the Value of the chosen option. defaultIndex is
	// preselected and chosen when the operator just confirms.
	Select(ctx context.Context, question string, choices []Choice, defaultIndex int) (string, error)

	// Input returns free text. The prompt stays open until validate accepts
	// the answer; a nil validate accepts anything.
	Input(ctx context.Context, question string, validate func(string) error) (string, error)
}

func clampIndex(i, n int) int {
	if i < 0 || i >= n {
		return 0
	}
	return i
}
