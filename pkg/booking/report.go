package booking

// Reporter receives the human progress lines of a run. *console.Console
// implements it.
type Reporter interface {
	Step(message string)
	Printf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Successf(format string, args ...interface{})
	Warningf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// ReportSlots prints one block per slot, or a no-data line for an empty set.
func ReportSlots(r Reporter, slots CourtSlotSet) {
	r.Printf("🏟️ Available Courts:")
	if len(slots) == 0 {
		r.Warningf("❌ No court data available to display")
		return
	}
	for i, slot := range slots {
		r.Printf("%d. %s", i+1, slot.Name)
		r.Printf("   Opening Times: %s", slot.OpeningTimes)
		r.Printf("   Location: %s", slot.Location)
		r.Printf("   Availability: %s", slot.Availability)
		if slot.Duration != nil && *slot.Duration != "" {
			r.Printf("   Duration: %s minutes", *slot.Duration)
		}
		r.Printf("")
	}
}

// ReportConfirmation prints every non-empty confirmation field.
func ReportConfirmation(r Reporter, c Confirmation) {
	if s := deref(c.ConfirmationMessage); s != "" {
		r.Successf("🎉 Booking confirmed: %s", s)
	}
	if s := deref(c.BookingDetails); s != "" {
		r.Infof("📋 Booking details: %s", s)
	}
	if s := deref(c.ErrorMessage); s != "" {
		r.Warningf("❌ Booking error: %s", s)
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
