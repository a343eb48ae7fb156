package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/entrhq/courtbook/pkg/logging"
	"github.com/entrhq/courtbook/pkg/semantic"
)

// Attempt records one time band that was checked.
type Attempt struct {
	TimeOfDay  TimeOfDay    `json:"time_of_day"`
	Candidates int          `json:"candidates"`
	Slots      CourtSlotSet `json:"slots,omitempty"`
	Available  bool         `json:"available"`
	// Skipped is set when no candidates were observed and extraction was not run.
	Skipped bool `json:"skipped,omitempty"`
}

// Discovery is the outcome of availability discovery. Slots is always the
// reported set, bookable or not.
type Discovery struct {
	Slots     CourtSlotSet `json:"slots"`
	TimeOfDay TimeOfDay    `json:"time_of_day"`
	Attempts  []Attempt    `json:"attempts"`
	Available bool         `json:"available"`
}

// Discoverer finds bookable slots in the filtered listing, trying the other
// time bands when the selected one has none.
type Discoverer struct {
	exec     semantic.Executor
	reporter Reporter
	logger   *logging.Logger
}

// NewDiscoverer creates a discoverer. A nil logger discards.
func NewDiscoverer(exec semantic.Executor, r Reporter, logger *logging.Logger) *Discoverer {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Discoverer{exec: exec, reporter: r, logger: logger}
}

// Discover inspects the listing currently filtered to tod. "No availability"
// is a result, not an error; executor failures are returned.
func (d *Discoverer) Discover(ctx context.Context, tod TimeOfDay) (*Discovery, error) {
	d.reporter.Infof("🔍 Checking for available courts...")

	result := &Discovery{TimeOfDay: tod}

	candidates, err := d.observeCandidates(ctx)
	if err != nil {
		return nil, err
	}
	d.reporter.Infof("Found %d available court options", candidates)

	slots, err := d.extract(ctx)
	if err != nil {
		return nil, err
	}
	result.Slots = slots
	result.Available = candidates > 0 && slots.HasAvailability()
	result.Attempts = append(result.Attempts, Attempt{
		TimeOfDay:  tod,
		Candidates: candidates,
		Slots:      slots,
		Available:  result.Available,
	})

	if !result.Available {
		d.reporter.Warningf("❌ No courts available for selected time. Trying different time periods...")
		if err := d.fallback(ctx, tod, result); err != nil {
			return nil, err
		}
	}

	if !result.Available {
		d.reporter.Infof("📋 Extracting final court information...")
		final, err := d.extract(ctx)
		if err != nil {
			return nil, err
		}
		result.Slots = final
	}

	ReportSlots(d.reporter, result.Slots)
	return result, nil
}

// fallback walks the fixed plan for tod and adopts the first band with a
// bookable slot.
func (d *Discoverer) fallback(ctx context.Context, tod TimeOfDay, result *Discovery) error {
	displayed := tod
	for _, alt := range FallbackPlan(tod) {
		d.reporter.Infof("🔄 Trying %s time period...", alt)

		if err := actAll(ctx, d.exec, fmt.Sprintf("switch time period to %s", alt),
			fmt.Sprintf("Click the time filter dropdown that currently shows \"%s\"", displayed),
			fmt.Sprintf("Select %s from the time period options", alt),
			"Click the Done button",
		); err != nil {
			return err
		}
		displayed = alt
		result.TimeOfDay = alt

		candidates, err := d.observeCandidates(ctx)
		if err != nil {
			return err
		}
		d.reporter.Infof("Found %d available court options for %s", candidates, alt)

		attempt := Attempt{TimeOfDay: alt, Candidates: candidates}
		if candidates == 0 {
			attempt.Skipped = true
			result.Attempts = append(result.Attempts, attempt)
			continue
		}

		slots, err := d.extract(ctx)
		if err != nil {
			return err
		}
		attempt.Slots = slots
		attempt.Available = slots.HasAvailability()
		result.Attempts = append(result.Attempts, attempt)

		if attempt.Available {
			d.reporter.Successf("✅ Found actually available courts for %s!", alt)
			result.Slots = slots
			result.Available = true
			return nil
		}
	}
	return nil
}

// observeCandidates counts slot-like elements. An empty listing is zero
// candidates; executor failures are returned.
func (d *Discoverer) observeCandidates(ctx context.Context) (int, error) {
	refs, err := d.exec.Observe(ctx, candidatesInstruction)
	if err != nil {
		return 0, fmt.Errorf("observe courts: %w", err)
	}
	return len(refs), nil
}

// extract reads the listing. Data that does not fit the schema degrades to an
// empty set; any other failure is returned.
func (d *Discoverer) extract(ctx context.Context) (CourtSlotSet, error) {
	var data struct {
		Courts CourtSlotSet `json:"courts"`
	}
	if err := d.exec.Extract(ctx, extractCourtsInstruction, courtsSchema, &data); err != nil {
		if !errors.Is(err, semantic.ErrSchemaMismatch) {
			return nil, fmt.Errorf("extract courts: %w", err)
		}
		d.logger.Warnf("court extraction did not match schema: %v", err)
		return CourtSlotSet{}, nil
	}
	if data.Courts == nil {
		return CourtSlotSet{}, nil
	}
	return data.Courts, nil
}
