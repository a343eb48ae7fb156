package booking

import (
	"context"
	"fmt"

	"github.com/entrhq/courtbook/pkg/semantic"
)

// SelectFilters narrows the listing to the chosen activity, date and time
// band. The date is validated before the page is touched.
func SelectFilters(ctx context.Context, exec semantic.Executor, p Parameters, r Reporter) error {
	day, err := p.Day()
	if err != nil {
		return err
	}

	r.Infof("Selecting the activity")
	if err := actAll(ctx, exec, "select activity",
		"Click the activites drop down menu",
		fmt.Sprintf("Select the %s activity", p.Activity),
		"Click the Done button",
	); err != nil {
		return err
	}

	r.Infof("Selecting date: %s", p.Date)
	if err := actAll(ctx, exec, "select date", "Click the date picker or calendar"); err != nil {
		return err
	}
	r.Infof("Looking for day number: %d in calendar", day)
	if err := actAll(ctx, exec, "select date", fmt.Sprintf("Click on the number %d in the calendar", day)); err != nil {
		return err
	}

	r.Infof("Selecting time of day: %s", p.TimeOfDay)
	if err := actAll(ctx, exec, "select time of day",
		"Click the time filter or time selection dropdown",
		fmt.Sprintf("Select %s time period", p.TimeOfDay),
		"Click the Done button",
	); err != nil {
		return err
	}

	return actAll(ctx, exec, "select availability filters",
		"Click Available Only button",
		"Click All Facilities dropdown list",
		"Select Accept Reservations checkbox",
		"Click the Done button",
	)
}
