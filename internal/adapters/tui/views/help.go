package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"contexere/internal/adapters/tui/styles"
)

// HelpKeyMap defines key bindings for the help view
type HelpKeyMap struct {
	Close key.Binding
}

var HelpKeys = HelpKeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "?"),
		key.WithHelp("esc/q/?", "close"),
	),
}

// HelpModel is the model for the help view
type HelpModel struct {
	ViewState
}

// NewHelpModel creates a new help view model
func NewHelpModel() *HelpModel {
	return &HelpModel{}
}

// Init initializes the help view
func (m *HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view
func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, HelpKeys.Close) {
			return m, func() tea.Msg {
				return SwitchToTimelineMsg{}
			}
		}
	}

	return m, nil
}

// View renders the help view
func (m *HelpModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("contexere help"))
	b.WriteString("\n\n")

	b.WriteString(styles.SectionLabel.Render("Navigation"))
	b.WriteString("\n")
	b.WriteString(helpLine("j / k / ↑ / ↓", "Move up/down"))
	b.WriteString(helpLine("h / l / PgUp / PgDn", "Previous/next page"))
	b.WriteString("\n")

	b.WriteString(styles.SectionLabel.Render("Actions"))
	b.WriteString("\n")
	b.WriteString(helpLine("c", "Copy the suggested identifier"))
	b.WriteString(helpLine("y", "Copy the selected identifier"))
	b.WriteString(helpLine("e / Enter", "Open the selected entry in $EDITOR"))
	b.WriteString(helpLine("r", "Reload (also happens when the directory changes)"))
	b.WriteString("\n")

	b.WriteString(styles.SectionLabel.Render("General"))
	b.WriteString("\n")
	b.WriteString(helpLine("?", "Toggle help"))
	b.WriteString(helpLine("q / Ctrl+C", "Quit"))
	b.WriteString("\n")

	b.WriteString(styles.SectionLabel.Render("Identifiers"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("  proj 22p3 b  =  project, date token (2022-02-03), step"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("  month o..z   day 1..9 A..V   step a..z"))
	b.WriteString("\n\n")

	b.WriteString(styles.HelpDesc.Render("Press "))
	b.WriteString(styles.HelpKey.Render("esc"))
	b.WriteString(styles.HelpDesc.Render(" or "))
	b.WriteString(styles.HelpKey.Render("?"))
	b.WriteString(styles.HelpDesc.Render(" to close"))

	return styles.App.Render(b.String())
}

func helpLine(key, desc string) string {
	return "  " + styles.HelpKey.Render(padRight(key, 22)) + styles.HelpDesc.Render(desc) + "\n"
}

func padRight(s string, length int) string {
	n := len([]rune(s))
	if n >= length {
		return s
	}
	return s + strings.Repeat(" ", length-n)
}
