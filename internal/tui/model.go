package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"docdigest/internal/answer"
	"docdigest/internal/service"
)

// AnalysisPort is the TUI-facing subset of the analysis service.
type AnalysisPort interface {
	Ask(ctx context.Context, report *service.Report, question string) (*answer.Answer, error)
}

type answerMsg struct {
	question string
	answer   *answer.Answer
	err      error
}

// Model is the Bubble Tea model for the TUI application.
type Model struct {
	ctx        context.Context
	service    AnalysisPort
	report     *service.Report
	input      textinput.Model
	viewport   viewport.Model
	overview   string
	transcript []string
	status     string
	pending    bool
	ready      bool
}

// New creates a new TUI model for an analyzed document set.
func New(ctx context.Context, svc AnalysisPort, report *service.Report) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask a question about the documents and press Enter"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{
		ctx:      ctx,
		service:  svc,
		report:   report,
		input:    ti,
		viewport: vp,
		overview: renderOverview(report),
		status:   "Documents analyzed. Ask away, Ctrl+C to quit.",
	}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key, window and answer events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		// account for frames around content and question boxes
		_, rh := contentBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		reserved := 1 + 1 + qh + 1 // header, status, spacer
		vh := msg.Height - reserved
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-rh)
		m.refresh()
		return m, nil
	case answerMsg:
		m.pending = false
		if msg.err != nil {
			m.status = "Error: " + msg.err.Error()
			return m, nil
		}
		m.status = fmt.Sprintf("Answered %q", msg.question)
		m.transcript = append(m.transcript, renderAnswer(msg.answer))
		m.refresh()
		m.viewport.GotoBottom()
		return m, nil
	case tea.KeyMsg:
		// Global quits
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			q := strings.TrimSpace(m.input.Value())
			if q == "" || m.pending {
				return m, nil
			}
			m.pending = true
			m.status = fmt.Sprintf("Thinking about %q...", q)
			m.input.Reset()
			return m, m.ask(q)
		case "up":
			m.viewport.LineUp(1)
			return m, nil
		case "down":
			m.viewport.LineDown(1)
			return m, nil
		case "pgup":
			m.viewport.HalfViewUp()
			return m, nil
		case "pgdown":
			m.viewport.HalfViewDown()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) ask(question string) tea.Cmd {
	svc, report, ctx := m.service, m.report, m.ctx
	return func() tea.Msg {
		a, err := svc.Ask(ctx, report, question)
		return answerMsg{question: question, answer: a, err: err}
	}
}

// View renders the TUI layout.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("Document Digest")
	content := contentBoxStyle.Render(m.viewport.View())
	input := queryBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	return header + "\n" + content + "\n" + input + "\n" + status
}

func (m *Model) refresh() {
	width := m.viewport.Width - 4
	parts := append([]string{m.overview}, m.transcript...)
	m.viewport.SetContent(lipgloss.NewStyle().Width(max(10, width)).Render(strings.Join(parts, "\n\n")))
}

var (
	contentBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	sectionStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	dimStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	highlightStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
)

func renderOverview(r *service.Report) string {
	if r == nil {
		return "No documents."
	}
	var b strings.Builder
	b.WriteString(r.Summary)

	b.WriteString("\n" + sectionStyle.Render("Documents") + "\n")
	for _, d := range r.Documents {
		fmt.Fprintf(&b, "%s %s\n", d.Name, dimStyle.Render(fmt.Sprintf("(%d words)", d.WordCount)))
	}

	if !r.Entities.Empty() {
		b.WriteString("\n" + sectionStyle.Render("Entities") + "\n")
		for _, row := range []struct {
			label string
			names []string
		}{
			{"People", r.Entities.People},
			{"Organizations", r.Entities.Organizations},
			{"Locations", r.Entities.Locations},
		} {
			if len(row.names) > 0 {
				fmt.Fprintf(&b, "%s: %s\n", row.label, strings.Join(row.names, ", "))
			}
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderAnswer shows the question followed by the answer, with the
// document sentences it drew on highlighted.
func renderAnswer(a *answer.Answer) string {
	text := a.Text
	for _, c := range a.Context {
		text = strings.Replace(text, c, highlightStyle.Render(c), 1)
	}
	return sectionStyle.Render("Q: "+a.Question) + "\n" + text
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
