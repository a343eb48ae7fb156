package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/entrhq/courtbook/pkg/prompt"
)

const (
	dateValueLayout = "2006-01-02"
	bookingDays     = 7
)

// DateChoices returns today and the next six days.
func DateChoices(now time.Time) []prompt.Choice {
	choices := make([]prompt.Choice, 0, bookingDays)
	for i := 0; i < bookingDays; i++ {
		day := now.AddDate(0, 0, i)
		label := day.Format("Monday, Jan 2")
		if i == 0 {
			label += " (Today)"
		}
		choices = append(choices, prompt.Choice{Label: label, Value: day.Format(dateValueLayout)})
	}
	return choices
}

// LongDate renders a YYYY-MM-DD value as "Wednesday, March 5, 2025".
func LongDate(date string) string {
	t, err := time.Parse(dateValueLayout, date)
	if err != nil {
		return date
	}
	return t.Format("Monday, January 2, 2006")
}

func activityChoices() []prompt.Choice {
	var choices []prompt.Choice
	for _, a := range Activities() {
		choices = append(choices, prompt.Choice{Label: string(a), Value: string(a)})
	}
	return choices
}

func timeOfDayChoices() []prompt.Choice {
	var choices []prompt.Choice
	for _, t := range TimesOfDay() {
		choices = append(choices, prompt.Choice{Label: t.Label(), Value: string(t)})
	}
	return choices
}

// CollectParameters asks for activity, date and time of day, in that order.
// The first choice is the default for each.
func CollectParameters(ctx context.Context, p prompt.Provider, r Reporter, now time.Time) (Parameters, error) {
	var params Parameters

	activity, err := p.Select(ctx, "🎾 Please select an activity:", activityChoices(), 0)
	if err != nil {
		return params, fmt.Errorf("select activity: %w", err)
	}
	params.Activity = Activity(activity)
	r.Successf("✅ Selected: %s", activity)

	date, err := p.Select(ctx, "📅 Please select a date:", DateChoices(now), 0)
	if err != nil {
		return params, fmt.Errorf("select date: %w", err)
	}
	params.Date = date
	r.Successf("✅ Selected: %s", LongDate(date))

	tod, err := p.Select(ctx, "🕐 Please select the time of day:", timeOfDayChoices(), 0)
	if err != nil {
		return params, fmt.Errorf("select time of day: %w", err)
	}
	params.TimeOfDay = TimeOfDay(tod)
	r.Successf("✅ Selected: %s", tod)

	return params, nil
}
