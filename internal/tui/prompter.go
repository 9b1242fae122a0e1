package tui

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrCancelled is returned when the user aborts the prompt with Ctrl+C.
var ErrCancelled = errors.New("prompt cancelled")

var (
	questionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)
	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// promptModel is the Bubble Tea model behind Prompter.
type promptModel struct {
	question  string
	field     *InputField
	answer    string
	done      bool
	cancelled bool
}

func newPromptModel(question string) *promptModel {
	return &promptModel{
		question: question,
		field:    NewInputField(),
	}
}

// Init implements tea.Model.
func (m *promptModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			m.cancelled = true
			return m, tea.Quit
		case tea.KeyEsc:
			m.answer = ""
			m.done = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.field.SetWidth(msg.Width)
		return m, nil
	case AnswerSubmittedMsg:
		m.answer = msg.Value
		m.done = true
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.field, cmd = m.field.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m *promptModel) View() string {
	if m.done || m.cancelled {
		return ""
	}
	return questionStyle.Render(m.question) + "\n" +
		m.field.View() + "\n" +
		helpStyle.Render("enter: submit • esc: leave blank • ctrl+c: cancel") + "\n"
}

// Prompter asks questions with a Bubble Tea text input.
type Prompter struct {
	in  io.Reader
	out io.Writer
}

// NewPrompter creates a Prompter using the given terminal streams.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: in, out: out}
}

// Prompt runs the input program until the user answers, cancels, or ctx
// is done.
func (p *Prompter) Prompt(ctx context.Context, message string) (string, error) {
	model := newPromptModel(message)

	program := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithInput(p.in),
		tea.WithOutput(p.out),
	)

	final, err := program.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return "", ctxErr
	}
	if err != nil {
		return "", fmt.Errorf("run prompt: %w", err)
	}

	m, ok := final.(*promptModel)
	if !ok {
		return "", fmt.Errorf("run prompt: unexpected model %T", final)
	}
	if m.cancelled {
		return "", ErrCancelled
	}
	return m.answer, nil
}
