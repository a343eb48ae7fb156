package prompt

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// TUI renders each prompt as a short-lived bubbletea program.
type TUI struct {
	in  io.Reader
	out io.Writer
}

// NewTUI creates a terminal prompter on stdin/stdout.
func NewTUI() *TUI {
	return &TUI{in: os.Stdin, out: os.Stdout}
}

// Select shows the choices as a list with defaultIndex preselected.
func (t *TUI) Select(ctx context.Context, question string, choices []Choice, defaultIndex int) (string, error) {
	if len(choices) == 0 {
		return "", fmt.Errorf("select %q: no choices", question)
	}
	final, err := t.run(ctx, newSelectModel(question, choices, defaultIndex))
	if err != nil {
		return "", err
	}
	m := final.(selectModel)
	if m.aborted {
		return "", ErrAborted
	}
	return choices[m.chosen].Value, nil
}

// Input shows a text field; validation errors are rendered under it.
func (t *TUI) Input(ctx context.Context, question string, validate func(string) error) (string, error) {
	final, err := t.run(ctx, newInputModel(question, validate))
	if err != nil {
		return "", err
	}
	m := final.(inputModel)
	if m.aborted {
		return "", ErrAborted
	}
	return m.value, nil
}

func (t *TUI) run(ctx context.Context, model tea.Model) (tea.Model, error) {
	p := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithInput(t.in),
		tea.WithOutput(t.out),
	)
	final, err := p.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	if err != nil {
		return nil, fmt.Errorf("prompt failed: %w", err)
	}
	return final, nil
}

type choiceItem struct {
	choice Choice
}

func (i choiceItem) Title() string       { return i.choice.Label }
func (i choiceItem) Description() string { return "" }
func (i choiceItem) FilterValue() string { return i.choice.Label }

func newChoiceDelegate() list.DefaultDelegate {
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	d.SetSpacing(0)
	d.Styles.SelectedTitle = d.Styles.SelectedTitle.
		Foreground(salmonPink).
		BorderForeground(salmonPink)
	d.Styles.NormalTitle = d.Styles.NormalTitle.
		Foreground(lipgloss.Color("#F9FAFB"))
	return d
}

type selectModel struct {
	list    list.Model
	chosen  int
	done    bool
	aborted bool
}

func newSelectModel(question string, choices []Choice, defaultIndex int) selectModel {
	items := make([]list.Item, len(choices))
	for i, c := range choices {
		items[i] = choiceItem{choice: c}
	}

	l := list.New(items, newChoiceDelegate(), 60, len(choices)+6)
	l.Title = question
	l.Styles.Title = questionStyle.Padding(0, 1)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowPagination(false)
	l.SetShowHelp(false)
	l.Select(clampIndex(defaultIndex, len(choices)))

	return selectModel{list: l}
}

func (m selectModel) Init() tea.Cmd {
	return nil
}

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			m.chosen = m.list.Index()
			m.done = true
			return m, tea.Quit
		case "ctrl+c", "esc", "q":
			m.aborted = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m selectModel) View() string {
	if m.done || m.aborted {
		return ""
	}
	return boxStyle.Render(m.list.View()) + "\n" + hintStyle.Render("↑/↓ to move • enter to choose • esc to cancel") + "\n"
}

type inputModel struct {
	question string
	input    textinput.Model
	validate func(string) error
	err      error
	value    string
	done     bool
	aborted  bool
}

func newInputModel(question string, validate func(string) error) inputModel {
	ti := textinput.New()
	ti.Prompt = "› "
	ti.PromptStyle = lipgloss.NewStyle().Foreground(mintGreen)
	ti.CharLimit = 64
	ti.Width = 40
	ti.Focus()

	return inputModel{
		question: question,
		input:    ti,
		validate: validate,
	}
}

func (m inputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			value := m.input.Value()
			if m.validate != nil {
				if err := m.validate(value); err != nil {
					m.err = err
					return m, nil
				}
			}
			m.value = strings.TrimSpace(value)
			m.done = true
			return m, tea.Quit
		case "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m inputModel) View() string {
	if m.done || m.aborted {
		return ""
	}
	view := questionStyle.Render(m.question) + "\n" + m.input.View() + "\n"
	if m.err != nil {
		view += errorStyle.Render(m.err.Error()) + "\n"
	}
	return view
}
