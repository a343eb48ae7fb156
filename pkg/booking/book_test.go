package booking

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/entrhq/courtbook/pkg/prompt"
	"github.com/entrhq/courtbook/pkg/semantic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBook(t *testing.T) {
	site := newFakeSite(Morning, nil)
	prompter := &scriptedPrompter{inputs: []string{"", "   ", " 482913 "}}
	r, out, _ := newTestReporter()

	got, err := NewBooker(site, prompter, r, nil).Book(context.Background(), CourtSlotSet{slot("Alice Marble", "Available")})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Click the first available time slot or court booking option",
		"Click the participant dropdown menu or select participant field",
		"Click the only named participant in the dropdown!",
		"Click the book, reserve, or confirm booking button",
		"Click the Send Code Button",
		`Fill in the verification code field with "482913"`,
		"Click the confirm button",
	}, site.acts)
	assert.Equal(t, 2, prompter.rejected)
	assert.Equal(t, []string{"📱 Please enter the verification code you received:"}, prompter.questions)

	require.NotNil(t, got)
	assert.Equal(t, "Reservation confirmed", *got.ConfirmationMessage)
	assert.Nil(t, got.ErrorMessage)

	s := out.String()
	assert.Contains(t, s, "✅ Verification code: 482913")
	assert.Contains(t, s, "🎉 Booking confirmed: Reservation confirmed")
	assert.Contains(t, s, "📋 Booking details: Court 1, 7:00 AM")
	assert.NotContains(t, s, "Booking error")
	assert.Contains(t, s, "✅ Court booking process completed!")
}

func TestBook_ConfirmationFieldsReportedIndependently(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    []string
		notWant []string
	}{
		{
			name:    "error only",
			payload: `{"confirmationMessage":null,"bookingDetails":null,"errorMessage":"Slot no longer available"}`,
			want:    []string{"❌ Booking error: Slot no longer available"},
			notWant: []string{"Booking confirmed", "Booking details"},
		},
		{
			name:    "all three",
			payload: `{"confirmationMessage":"Done","bookingDetails":"Court 2","errorMessage":"Payment pending"}`,
			want:    []string{"Booking confirmed: Done", "Booking details: Court 2", "Booking error: Payment pending"},
		},
		{
			name:    "none",
			payload: `{"confirmationMessage":null,"bookingDetails":"","errorMessage":null}`,
			notWant: []string{"Booking confirmed", "Booking details", "Booking error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			site := newFakeSite(Morning, nil)
			site.confirmation = tt.payload
			r, out, _ := newTestReporter()

			_, err := NewBooker(site, &scriptedPrompter{inputs: []string{"1"}}, r, nil).Book(context.Background(), nil)
			require.NoError(t, err)
			for _, w := range tt.want {
				assert.Contains(t, out.String(), w)
			}
			for _, nw := range tt.notWant {
				assert.NotContains(t, out.String(), nw)
			}
		})
	}
}

func TestBook_ActionFailureIsReturned(t *testing.T) {
	site := newFakeSite(Morning, nil)
	boom := errors.New("send code button missing")
	site.failOn["Click the Send Code Button"] = boom
	prompter := &scriptedPrompter{inputs: []string{"123"}}
	r, _, _ := newTestReporter()

	_, err := NewBooker(site, prompter, r, nil).Book(context.Background(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, prompter.questions, "no code prompt after a failed send")
}

func TestBook_PromptAborted(t *testing.T) {
	site := newFakeSite(Morning, nil)
	r, _, _ := newTestReporter()

	_, err := NewBooker(site, &scriptedPrompter{}, r, nil).Book(context.Background(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, prompt.ErrAborted)
	assert.NotContains(t, site.acts, "Click the confirm button")
}

func TestBook_ConfirmationMismatchDegrades(t *testing.T) {
	site := newFakeSite(Morning, nil)
	site.extractErr = fmt.Errorf("extract confirmation: %w", semantic.ErrSchemaMismatch)
	r, out, _ := newTestReporter()

	got, err := NewBooker(site, &scriptedPrompter{inputs: []string{"1"}}, r, nil).Book(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, &Confirmation{}, got)
	assert.Contains(t, out.String(), "No confirmation details")
}

func TestBook_ConfirmationExtractionFailure(t *testing.T) {
	site := newFakeSite(Morning, nil)
	site.extractErr = errors.New("LLM call failed")
	r, _, _ := newTestReporter()

	_, err := NewBooker(site, &scriptedPrompter{inputs: []string{"1"}}, r, nil).Book(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "extract confirmation")
}
