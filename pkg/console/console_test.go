package console

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestConsole(level Level) (*Console, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return New(&out, &errOut, level), &out, &errOut
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelQuiet, ParseLevel("quiet"))
	assert.Equal(t, LevelVerbose, ParseLevel("Verbose"))
	assert.Equal(t, LevelDebug, ParseLevel(" debug "))
	assert.Equal(t, LevelNormal, ParseLevel(""))
	assert.Equal(t, LevelNormal, ParseLevel("loud"))
}

func TestConsole_NormalLevel(t *testing.T) {
	c, out, errOut := newTestConsole(LevelNormal)

	c.Step("Logging in")
	c.Step("Selecting filters")
	c.Successf("✅ Selected: %s", "Tennis")
	c.Infof("🔍 Checking for available courts...")
	c.Verbosef("hidden")
	c.Debugf("hidden too")
	c.JSON("extraction", `{"courts":[]}`)
	c.Errorf("💥 Failed: %s", "boom")

	s := out.String()
	assert.Contains(t, s, "[1] Logging in")
	assert.Contains(t, s, "[2] Selecting filters")
	assert.Contains(t, s, "✅ Selected: Tennis")
	assert.Contains(t, s, "Checking for available courts")
	assert.NotContains(t, s, "hidden")
	assert.NotContains(t, s, "courts")
	assert.NotContains(t, s, "boom")
	assert.Contains(t, errOut.String(), "💥 Failed: boom")
}

func TestConsole_QuietLevel(t *testing.T) {
	c, out, _ := newTestConsole(LevelQuiet)

	c.Infof("progress")
	c.Printf("slot line")
	c.Warningf("no bookable slot")
	c.Resultf("🎉 Booking confirmed")

	s := out.String()
	assert.NotContains(t, s, "progress")
	assert.NotContains(t, s, "slot line")
	assert.Contains(t, s, "no bookable slot")
	assert.Contains(t, s, "Booking confirmed")
}

func TestConsole_DebugLevel(t *testing.T) {
	c, out, _ := newTestConsole(LevelDebug)

	c.Verbosef("act %q", "Click the Done button")
	c.Debugf("tokens=%d", 1200)
	c.JSON("extraction", `{"courts":[{"name":"Court 1"}]}`)

	s := out.String()
	assert.Contains(t, s, `act "Click the Done button"`)
	assert.Contains(t, s, "[DEBUG] tokens=1200")
	assert.Contains(t, s, "[DEBUG] extraction:")
	assert.Contains(t, s, "Court 1")
	assert.Equal(t, LevelDebug, c.Level())
}
