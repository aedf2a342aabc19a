package choice

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	styleTitle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	stylePrompt = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
)

// TUIPicker renders the candidates as an arrow-key list. It needs a terminal
// on In; callers fall back to Prompter otherwise.
type TUIPicker struct {
	In    io.Reader
	Out   io.Writer
	Title string
}

type optionItem struct {
	title  string
	number int
}

func (i optionItem) Title() string       { return i.title }
func (i optionItem) Description() string { return "" }
func (i optionItem) FilterValue() string { return i.title }

type pickerModel struct {
	list      list.Model
	picked    int
	cancelled bool
}

// Pick runs a bubbletea program until the user selects an entry or quits.
func (t *TUIPicker) Pick(labels []string, start int) (int, error) {
	model := newPickerModel(t.Title, labels, start)

	var opts []tea.ProgramOption
	if t.In != nil {
		opts = append(opts, tea.WithInput(t.In))
	}
	if t.Out != nil {
		opts = append(opts, tea.WithOutput(t.Out))
	}

	result, err := tea.NewProgram(model, opts...).Run()
	if err != nil {
		return 0, fmt.Errorf("picker: %w", err)
	}
	final, ok := result.(pickerModel)
	if !ok {
		return 0, fmt.Errorf("picker failed to return a selection")
	}
	if final.cancelled {
		return 0, ErrCancelled
	}
	return final.picked, nil
}

func newPickerModel(title string, labels []string, start int) pickerModel {
	items := make([]list.Item, len(labels))
	for i, label := range labels {
		items[i] = optionItem{
			title:  fmt.Sprintf("%d) %s", start+i, label),
			number: start + i,
		}
	}

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.Styles.NormalTitle = delegate.Styles.NormalTitle.Foreground(lipgloss.Color("252"))
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(lipgloss.Color("205")).Bold(true)

	if title == "" {
		title = "Select an option"
	}
	l := list.New(items, delegate, 60, 2*len(items)+4)
	l.Title = styleTitle.Render(title)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowPagination(false)

	return pickerModel{list: l}
}

func (m pickerModel) Init() tea.Cmd {
	return nil
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.cancelled = true
			return m, tea.Quit
		case "enter":
			item, ok := m.list.SelectedItem().(optionItem)
			if !ok {
				return m, nil
			}
			m.picked = item.number
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m pickerModel) View() string {
	return m.list.View() + "\n" + stylePrompt.Render("Use ↑/↓ to move, Enter to select, q to quit.")
}
