package prompt

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestSelectModel_DefaultAndMove(t *testing.T) {
	choices := []Choice{
		{Label: "Morning (Before 12 PM)", Value: "Morning"},
		{Label: "Afternoon (After 12 PM)", Value: "Afternoon"},
		{Label: "Evening (After 5 PM)", Value: "Evening"},
	}

	m := newSelectModel("🕐 Please select the time of day:", choices, 0)
	assert.Contains(t, m.View(), "Morning (Before 12 PM)")

	next, _ := m.Update(key("down"))
	next, cmd := next.Update(key("enter"))
	require.NotNil(t, cmd)

	final := next.(selectModel)
	assert.True(t, final.done)
	assert.Equal(t, 1, final.chosen)
	assert.Empty(t, final.View())
}

func TestSelectModel_Abort(t *testing.T) {
	m := newSelectModel("Pick", activities, 1)
	next, _ := m.Update(key("esc"))
	assert.True(t, next.(selectModel).aborted)
}

func TestInputModel_ValidationKeepsPromptOpen(t *testing.T) {
	validate := func(s string) error {
		if s == "" {
			return errors.New("Please enter a verification code")
		}
		return nil
	}
	m := newInputModel("📱 Please enter the verification code you received:", validate)

	next, cmd := m.Update(key("enter"))
	assert.Nil(t, cmd)
	im := next.(inputModel)
	assert.False(t, im.done)
	assert.Contains(t, im.View(), "Please enter a verification code")

	for _, r := range "4321" {
		next, _ = next.Update(key(string(r)))
	}
	next, cmd = next.Update(key("enter"))
	require.NotNil(t, cmd)
	im = next.(inputModel)
	assert.True(t, im.done)
	assert.Equal(t, "4321", im.value)
}

func TestInputModel_CtrlCAborts(t *testing.T) {
	m := newInputModel("?", nil)
	next, _ := m.Update(key("ctrl+c"))
	assert.True(t, next.(inputModel).aborted)
}
