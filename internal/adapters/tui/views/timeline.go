package views

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"contexere/internal/adapters/tui/styles"
	"contexere/internal/application/commands"
	"contexere/internal/domain"
	"contexere/internal/ports"
)

// TimelineKeyMap defines key bindings for the timeline view
type TimelineKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PrevPage key.Binding
	NextPage key.Binding
	Copy     key.Binding
	CopyRow  key.Binding
	Open     key.Binding
	Reload   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

var TimelineKeys = TimelineKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	PrevPage: key.NewBinding(
		key.WithKeys("h", "left", "pgup"),
		key.WithHelp("h/←", "previous page"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("l", "right", "pgdown"),
		key.WithHelp("l/→", "next page"),
	),
	Copy: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "copy next"),
	),
	CopyRow: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy selected"),
	),
	Open: key.NewBinding(
		key.WithKeys("e", "enter"),
		key.WithHelp("e", "edit"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// Source says where the timeline comes from
type Source struct {
	Provider ports.HistoryProvider
	Location string
	Timezone string
	Clock    ports.Clock
}

// TimelineModel shows a location's identifiers and the suggested next one
type TimelineModel struct {
	ViewState
	src     Source
	result  *commands.TimelineResult
	latest  map[string]bool
	next    string
	nextErr error
	pager   *Paginator
	loaded  bool
}

// NewTimelineModel creates a new timeline model
func NewTimelineModel(src Source) *TimelineModel {
	return &TimelineModel{
		src:   src,
		pager: NewPaginator(15),
	}
}

// Init loads the timeline
func (m *TimelineModel) Init() tea.Cmd {
	return m.load
}

// Reload reloads the timeline, keeping the cursor where possible
func (m *TimelineModel) Reload() tea.Cmd {
	return m.load
}

type timelineLoadedMsg struct {
	result  *commands.TimelineResult
	next    string
	nextErr error
}

type errMsg struct {
	err error
}

func (m *TimelineModel) load() tea.Msg {
	ctx := context.Background()

	result, err := commands.NewTimelineCommand(m.src.Provider, m.src.Location, 0).Execute(ctx)
	if err != nil {
		return errMsg{err}
	}

	msg := timelineLoadedMsg{result: result}
	suggest := commands.NewSuggestNextCommand(m.src.Provider, m.src.Location, m.src.Timezone)
	if m.src.Clock != nil {
		suggest.Clock = m.src.Clock
	}
	if next, err := suggest.Execute(ctx); err != nil {
		msg.nextErr = err
	} else {
		msg.next = next.Identifier.String()
	}
	return msg
}

// Update handles messages for the timeline
func (m *TimelineModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case timelineLoadedMsg:
		m.apply(msg)
		return m, nil

	case errMsg:
		m.SetMessage(msg.err.Error(), true)
		return m, nil

	case tea.KeyMsg:
		m.ClearMessage()

		switch {
		case key.Matches(msg, TimelineKeys.Quit):
			return m, tea.Quit

		case key.Matches(msg, TimelineKeys.Up):
			m.pager.CursorUp()

		case key.Matches(msg, TimelineKeys.Down):
			m.pager.CursorDown()

		case key.Matches(msg, TimelineKeys.PrevPage):
			m.pager.PrevPage()

		case key.Matches(msg, TimelineKeys.NextPage):
			m.pager.NextPage()

		case key.Matches(msg, TimelineKeys.Copy):
			if m.next == "" {
				m.SetMessage("No suggestion to copy", true)
				return m, nil
			}
			m.copy(m.next)

		case key.Matches(msg, TimelineKeys.CopyRow):
			if id, ok := m.Selected(); ok {
				m.copy(id.String())
			}

		case key.Matches(msg, TimelineKeys.Open):
			if id, ok := m.Selected(); ok {
				names := m.result.Context.Names(id)
				if len(names) == 0 {
					return m, nil
				}
				path := filepath.Join(m.src.Location, names[0])
				return m, func() tea.Msg {
					return OpenEditorMsg{Path: path}
				}
			}

		case key.Matches(msg, TimelineKeys.Reload):
			return m, m.Reload()

		case key.Matches(msg, TimelineKeys.Help):
			return m, func() tea.Msg {
				return SwitchToHelpMsg{}
			}
		}
	}

	return m, nil
}

func (m *TimelineModel) apply(msg timelineLoadedMsg) {
	first := !m.loaded
	m.loaded = true
	m.result = msg.result
	m.next = msg.next
	m.nextErr = msg.nextErr

	m.latest = make(map[string]bool, len(msg.result.Last))
	for _, s := range msg.result.Last {
		m.latest[s] = true
	}

	m.pager.SetTotal(len(msg.result.Timeline))
	if first {
		m.pager.End()
	}
}

func (m *TimelineModel) copy(text string) {
	if err := copyToClipboard(text); err != nil {
		m.SetMessage(fmt.Sprintf("Copy failed: %v", err), true)
		return
	}
	m.SetMessage(fmt.Sprintf("Copied %s", text), false)
}

// Selected returns the identifier under the cursor
func (m *TimelineModel) Selected() (domain.Identifier, bool) {
	if m.result == nil || len(m.result.Timeline) == 0 {
		return domain.Identifier{}, false
	}
	return m.result.Timeline[m.pager.Cursor()], true
}

// Next returns the suggested identifier, or the reason there is none
func (m *TimelineModel) Next() (string, error) {
	return m.next, m.nextErr
}

// SetSize updates the view dimensions and the page size
func (m *TimelineModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)
	// title, subtitle, suggestion box, message and help line
	if rows := height - 12; rows > 0 {
		m.pager.SetPageSize(rows)
	}
}

// View renders the timeline
func (m *TimelineModel) View() string {
	if !m.loaded {
		if m.Message != "" {
			return styles.App.Render(styles.ErrorMsg.Render(m.Message))
		}
		return "Loading..."
	}

	var b strings.Builder

	b.WriteString(styles.Title.Render("contexere"))
	b.WriteString("\n")
	b.WriteString(styles.Subtitle.Render(m.src.Location))
	b.WriteString("\n\n")

	if len(m.result.Timeline) == 0 {
		b.WriteString(styles.MutedText.Render("No identifiers yet."))
		b.WriteString("\n")
	} else {
		start, end := m.pager.VisibleRange()
		for i := start; i < end; i++ {
			b.WriteString(m.renderRow(m.result.Timeline[i], i == m.pager.Cursor()))
			b.WriteString("\n")
		}
		if m.pager.TotalPages() > 1 {
			b.WriteString(styles.MutedText.Render(fmt.Sprintf("page %d/%d, %d identifiers",
				m.pager.CurrentPage(), m.pager.TotalPages(), m.result.Total)))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	if m.nextErr != nil {
		b.WriteString(styles.SuggestionBlocked.Render("No suggestion: " + m.nextErr.Error()))
	} else {
		b.WriteString(styles.Suggestion.Render("Next: " + m.next))
	}
	b.WriteString("\n")

	if m.Message != "" {
		b.WriteString("\n")
		if m.MessageErr {
			b.WriteString(styles.ErrorMsg.Render(m.Message))
		} else {
			b.WriteString(styles.Success.Render(m.Message))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderHelpLine())

	return styles.App.Render(b.String())
}

func (m *TimelineModel) renderRow(id domain.Identifier, selected bool) string {
	marker := "  "
	if m.latest[id.String()] {
		marker = styles.LatestMarker.String()
	}
	names := strings.Join(m.result.Context.Names(id), ", ")

	if selected {
		return marker + styles.RowSelected.Render(id.String()+"  "+names)
	}

	project := lipgloss.NewStyle().Foreground(styles.ProjectColor(id.Project)).Render(id.Project)
	return fmt.Sprintf("%s%s%s%s  %s",
		marker,
		project,
		styles.Token.Render(id.Date),
		styles.Step.Render(id.Step),
		styles.Names.Render(names),
	)
}

func (m *TimelineModel) renderHelpLine() string {
	keys := []struct {
		key  string
		desc string
	}{
		{"j/k", "navigate"},
		{"c", "copy next"},
		{"y", "copy selected"},
		{"e", "edit"},
		{"r", "reload"},
		{"?", "help"},
		{"q", "quit"},
	}

	var parts []string
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s %s",
			styles.HelpKey.Render(k.key),
			styles.HelpDesc.Render(k.desc),
		))
	}

	return strings.Join(parts, styles.HelpSeparator.String())
}
