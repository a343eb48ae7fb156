package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/entrhq/courtbook/pkg/logging"
	"github.com/entrhq/courtbook/pkg/prompt"
	"github.com/entrhq/courtbook/pkg/semantic"
)

const verificationQuestion = "📱 Please enter the verification code you received:"

// Booker reserves the first listed slot and completes code verification.
type Booker struct {
	exec     semantic.Executor
	prompter prompt.Provider
	reporter Reporter
	logger   *logging.Logger
}

// NewBooker creates a booker. A nil logger discards.
func NewBooker(exec semantic.Executor, prompter prompt.Provider, r Reporter, logger *logging.Logger) *Booker {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Booker{exec: exec, prompter: prompter, reporter: r, logger: logger}
}

// Book commits to the first slot in display order. The operator is asked
// for the verification code mid-run; the wait is unbounded.
func (b *Booker) Book(ctx context.Context, slots CourtSlotSet) (*Confirmation, error) {
	confirmation, err := b.book(ctx, slots)
	if err != nil {
		b.logger.Errorf("court booking failed: %v", err)
		return nil, err
	}
	return confirmation, nil
}

func (b *Booker) book(ctx context.Context, slots CourtSlotSet) (*Confirmation, error) {
	b.reporter.Infof("🎯 Starting court booking process...")
	if len(slots) > 0 {
		b.logger.Infof("committing to first listed slot: %s (%s)", slots[0].Name, slots[0].OpeningTimes)
	}

	b.reporter.Infof("🕐 Clicking the top available time slot...")
	if err := actAll(ctx, b.exec, "select time slot",
		"Click the first available time slot or court booking option",
	); err != nil {
		return nil, err
	}

	b.reporter.Infof("👥 Opening participant dropdown...")
	if err := actAll(ctx, b.exec, "select participant",
		"Click the participant dropdown menu or select participant field",
		"Click the only named participant in the dropdown!",
	); err != nil {
		return nil, err
	}

	b.reporter.Infof("Clicking the book button to complete reservation...")
	if err := actAll(ctx, b.exec, "submit reservation",
		"Click the book, reserve, or confirm booking button",
		"Click the Send Code Button",
	); err != nil {
		return nil, err
	}

	code, err := b.prompter.Input(ctx, verificationQuestion, ValidateVerificationCode)
	if err != nil {
		return nil, fmt.Errorf("verification code: %w", err)
	}
	b.reporter.Successf("✅ Verification code: %s", code)

	if err := actAll(ctx, b.exec, "submit verification code",
		fmt.Sprintf("Fill in the verification code field with \"%s\"", code),
		"Click the confirm button",
	); err != nil {
		return nil, err
	}

	b.reporter.Infof("✅ Checking for booking confirmation...")
	var confirmation Confirmation
	if err := b.exec.Extract(ctx, extractConfirmationInstruction, confirmationSchema, &confirmation); err != nil {
		if !errors.Is(err, semantic.ErrSchemaMismatch) {
			return nil, fmt.Errorf("extract confirmation: %w", err)
		}
		b.logger.Warnf("confirmation extraction did not match schema: %v", err)
		b.reporter.Warningf("No confirmation details could be read from the page")
		confirmation = Confirmation{}
	}

	ReportConfirmation(b.reporter, confirmation)
	b.reporter.Successf("✅ Court booking process completed!")
	return &confirmation, nil
}
