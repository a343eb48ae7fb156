package booking

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/entrhq/courtbook/pkg/console"
	"github.com/entrhq/courtbook/pkg/prompt"
	"github.com/entrhq/courtbook/pkg/semantic"
)

// band is what the listing shows for one time filter value.
type band struct {
	candidates int
	slots      CourtSlotSet
}

// fakeSite is a scripted executor that models the filtered listing. Selecting
// a time period switches the band that Observe and Extract report.
type fakeSite struct {
	current      TimeOfDay
	bands        map[TimeOfDay]band
	confirmation string
	failOn       map[string]error
	observeErr   error
	extractErr   error

	acts     []string
	observes int
	extracts []string
}

var selectBand = regexp.MustCompile(`^Select (Morning|Afternoon|Evening) (time period|from the time period options)$`)

func newFakeSite(start TimeOfDay, bands map[TimeOfDay]band) *fakeSite {
	return &fakeSite{
		current:      start,
		bands:        bands,
		confirmation: `{"confirmationMessage":"Reservation confirmed","bookingDetails":"Court 1, 7:00 AM","errorMessage":null}`,
		failOn:       map[string]error{},
	}
}

func (f *fakeSite) Act(ctx context.Context, instruction string) error {
	f.acts = append(f.acts, instruction)
	if err, ok := f.failOn[instruction]; ok {
		return err
	}
	if m := selectBand.FindStringSubmatch(instruction); m != nil {
		f.current = TimeOfDay(m[1])
	}
	return nil
}

func (f *fakeSite) Observe(ctx context.Context, instruction string) ([]semantic.ElementRef, error) {
	f.observes++
	if f.observeErr != nil {
		return nil, f.observeErr
	}
	refs := make([]semantic.ElementRef, f.bands[f.current].candidates)
	for i := range refs {
		refs[i] = semantic.ElementRef{TargetID: i + 1, Description: "slot"}
	}
	return refs, nil
}

func (f *fakeSite) Extract(ctx context.Context, instruction string, schema semantic.Schema, dest any) error {
	f.extracts = append(f.extracts, schema.Name+"@"+string(f.current))
	if f.extractErr != nil {
		return f.extractErr
	}
	var raw []byte
	switch schema.Name {
	case "courts":
		raw, _ = json.Marshal(map[string]interface{}{"courts": f.bands[f.current].slots})
	case "confirmation":
		raw = []byte(f.confirmation)
	default:
		return fmt.Errorf("unexpected schema %s", schema.Name)
	}
	return json.Unmarshal(raw, dest)
}

// timeFilterActs returns the fallback re-selection intents issued so far.
func (f *fakeSite) timeFilterActs() []string {
	var out []string
	for _, a := range f.acts {
		if strings.HasPrefix(a, "Click the time filter dropdown that currently shows") || strings.HasSuffix(a, "from the time period options") {
			out = append(out, a)
		}
	}
	return out
}

// scriptedPrompter answers selects and inputs from fixed lists. Inputs are
// run through validate the way a real prompt would, skipping rejected ones.
type scriptedPrompter struct {
	selects   []string
	inputs    []string
	questions []string
	rejected  int
}

func (p *scriptedPrompter) Select(ctx context.Context, question string, choices []prompt.Choice, defaultIndex int) (string, error) {
	p.questions = append(p.questions, question)
	if len(p.selects) == 0 {
		return choices[defaultIndex].Value, nil
	}
	answer := p.selects[0]
	p.selects = p.selects[1:]
	for _, c := range choices {
		if c.Value == answer {
			return answer, nil
		}
	}
	return "", fmt.Errorf("%q is not a choice for %q", answer, question)
}

func (p *scriptedPrompter) Input(ctx context.Context, question string, validate func(string) error) (string, error) {
	p.questions = append(p.questions, question)
	for len(p.inputs) > 0 {
		answer := p.inputs[0]
		p.inputs = p.inputs[1:]
		if validate != nil && validate(answer) != nil {
			p.rejected++
			continue
		}
		return strings.TrimSpace(answer), nil
	}
	return "", prompt.ErrAborted
}

func newTestReporter() (*console.Console, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return console.New(&out, &errOut, console.LevelNormal), &out, &errOut
}

func slot(name, availability string) CourtSlot {
	return CourtSlot{
		Name:         name,
		OpeningTimes: "7:00 AM - 8:00 AM",
		Location:     name + " Park",
		Availability: availability,
	}
}

func strPtr(s string) *string {
	return &s
}
