// Package booking drives a court reservation on the SF Rec & Park site:
// login, listing filters, availability discovery with time-of-day fallback,
// and the verification-code protected booking itself.
//
// Every page interaction goes through a semantic.Executor and every operator
// question through a prompt.Provider, so the whole flow runs against scripted
// fakes in tests.
package booking

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrInvalidDate is returned for dates that are not three dash-separated components.
	ErrInvalidDate = errors.New("invalid date format")

	// ErrInvalidDay is returned when the day component is not a number in [1,31].
	ErrInvalidDay = errors.New("invalid day number")
)

// Activity is the sport to book.
type Activity string

const (
	Tennis     Activity = "Tennis"
	Pickleball Activity = "Pickleball"
)

// Activities lists the bookable activities in prompt order.
func Activities() []Activity {
	return []Activity{Tennis, Pickleball}
}

// TimeOfDay is a listing time band.
type TimeOfDay string

const (
	Morning   TimeOfDay = "Morning"
	Afternoon TimeOfDay = "Afternoon"
	Evening   TimeOfDay = "Evening"
)

// TimesOfDay lists the time bands in prompt order.
func TimesOfDay() []TimeOfDay {
	return []TimeOfDay{Morning, Afternoon, Evening}
}

// Label is the prompt text for the band.
func (t TimeOfDay) Label() string {
	switch t {
	case Morning:
		return "Morning (Before 12 PM)"
	case Afternoon:
		return "Afternoon (After 12 PM)"
	case Evening:
		return "Evening (After 5 PM)"
	}
	return string(t)
}

// Parameters are chosen once per run.
type Parameters struct {
	Activity  Activity  `json:"activity"`
	Date      string    `json:"date"`
	TimeOfDay TimeOfDay `json:"time_of_day"`
}

// Day validates Date and returns its day of month.
func (p Parameters) Day() (int, error) {
	return DayOfMonth(p.Date)
}

// DayOfMonth parses the day component of a YYYY-MM-DD date.
func DayOfMonth(date string) (int, error) {
	parts := strings.Split(date, "-")
	if len(parts) != 3 {
		return 0, fmt.Errorf("%w: %s. Expected YYYY-MM-DD", ErrInvalidDate, date)
	}

	day, err := strconv.Atoi(parts[2])
	if err != nil {
		return 0, fmt.Errorf("%w: %q from date: %s", ErrInvalidDay, parts[2], date)
	}
	if day < 1 || day > 31 {
		return 0, fmt.Errorf("%w: %d from date: %s", ErrInvalidDay, day, date)
	}
	return day, nil
}

// CourtSlot is one extracted listing row.
type CourtSlot struct {
	Name         string  `json:"name"`
	OpeningTimes string  `json:"openingTimes"`
	Location     string  `json:"location"`
	Availability string  `json:"availability"`
	Duration     *string `json:"duration"`
}

// CourtSlotSet is extracted slots in display order.
type CourtSlotSet []CourtSlot

// Confirmation is what the page reports after the booking is submitted. Any
// combination of fields may be set.
type Confirmation struct {
	ConfirmationMessage *string `json:"confirmationMessage"`
	BookingDetails      *string `json:"bookingDetails"`
	ErrorMessage        *string `json:"errorMessage"`
}

// ValidateVerificationCode rejects empty and whitespace-only codes.
func ValidateVerificationCode(code string) error {
	if strings.TrimSpace(code) == "" {
		return errors.New("Please enter a verification code")
	}
	return nil
}
