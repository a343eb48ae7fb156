package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsBookable(t *testing.T) {
	tests := []struct {
		availability string
		want         bool
	}{
		{"Available", true},
		{"2 spots left", true},
		{"Book now", true},
		{"No free spots", false},
		{"NO FREE SPOTS today", false},
		{"Unavailable", false},
		{"Currently unavailable", false},
		{"Next available: Mar 7", false},
		{"The next available reservation is tomorrow", false},
		{"", false},
		{"   ", false},
	}

	for _, tt := range tests {
		t.Run(tt.availability, func(t *testing.T) {
			assert.Equal(t, tt.want, IsBookable(CourtSlot{Availability: tt.availability}))
		})
	}
}

func TestHasAvailability(t *testing.T) {
	assert.False(t, CourtSlotSet{}.HasAvailability())
	assert.False(t, CourtSlotSet(nil).HasAvailability())
	assert.False(t, CourtSlotSet{slot("A", "Unavailable"), slot("B", "No free spots")}.HasAvailability())
	assert.True(t, CourtSlotSet{slot("A", "Unavailable"), slot("B", "Available")}.HasAvailability())

	bookable := CourtSlotSet{slot("A", "Unavailable"), slot("B", "Available"), slot("C", "1 spot")}.Bookable()
	assert.Len(t, bookable, 2)
	assert.Equal(t, "B", bookable[0].Name)
}

func TestFallbackPlan(t *testing.T) {
	assert.Equal(t, []TimeOfDay{Afternoon, Evening}, FallbackPlan(Morning))
	assert.Equal(t, []TimeOfDay{Morning, Evening}, FallbackPlan(Afternoon))
	assert.Equal(t, []TimeOfDay{Morning, Afternoon}, FallbackPlan(Evening))

	for _, tod := range TimesOfDay() {
		plan := FallbackPlan(tod)
		assert.Len(t, plan, 2)
		assert.NotContains(t, plan, tod)
	}
}
