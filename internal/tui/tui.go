// Package tui is an interactive decoder for series query paths. Type a
// path and the decomposition refreshes on every keystroke.
package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mini-kep/series-gateway/pkg/pathquery"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5"))
	labelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")).Width(14)
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	emptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).MarginTop(1)
)

// Run drives the decoder until the user quits with esc or ctrl+c.
func Run(in io.Reader, out io.Writer) error {
	p := tea.NewProgram(newModel(), tea.WithInput(in), tea.WithOutput(out))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui run failed: %w", err)
	}
	return nil
}

type model struct {
	input textinput.Model
}

func newModel() model {
	ti := textinput.New()
	ti.Placeholder = "api/oil/series/BRENT/m/eop/2015/2017/csv"
	ti.Prompt = "> "
	ti.CharLimit = 256
	ti.Focus()
	return model{input: ti}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("seriesgw path decoder"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(renderDecode(m.input.Value()))
	b.WriteString(helpStyle.Render("esc or ctrl+c to quit"))
	b.WriteString("\n")
	return b.String()
}

func renderDecode(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return emptyStyle.Render("(waiting for a path)") + "\n"
	}
	q, err := pathquery.Decompose(path)
	if err != nil {
		return errorStyle.Render("error: "+err.Error()) + "\n"
	}

	var b strings.Builder
	row := func(label, value string) {
		if strings.TrimSpace(value) == "" {
			b.WriteString(labelStyle.Render(label) + emptyStyle.Render("-") + "\n")
			return
		}
		b.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("domain", q.Domain)
	row("varname", q.VarName)
	row("freq", q.Freq)
	row("unit", q.Unit)
	row("rate", q.Rate)
	row("agg", q.Agg)
	row("fin", q.Fin)
	row("start_date", q.StartDate)
	row("end_date", q.EndDate)
	row("lookup", q.LookupParams().Encode())
	row("canonical", q.CanonicalPath())
	return b.String()
}
