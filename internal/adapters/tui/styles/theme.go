package styles

import (
	"hash/fnv"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Colors
	Primary   = lipgloss.Color("#7C3AED") // Purple
	Secondary = lipgloss.Color("#10B981") // Green
	Muted     = lipgloss.Color("#6B7280") // Gray
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Error     = lipgloss.Color("#EF4444") // Red
	White     = lipgloss.Color("#FFFFFF")

	// Project colors, picked by hashing the project name
	projectColors = []lipgloss.Color{
		"#6366F1", // Indigo
		"#8B5CF6", // Violet
		"#EC4899", // Pink
		"#F97316", // Orange
		"#60A5FA", // Blue
		"#14B8A6", // Teal
	}

	// Base styles
	App = lipgloss.NewStyle().
		Padding(1, 2)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		MarginBottom(1)

	Subtitle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	// Timeline rows
	Token = lipgloss.NewStyle().
		Foreground(Secondary)

	Step = lipgloss.NewStyle().
		Bold(true)

	Names = lipgloss.NewStyle().
		Foreground(Muted)

	RowSelected = lipgloss.NewStyle().
			Background(Primary).
			Foreground(White).
			Bold(true)

	LatestMarker = lipgloss.NewStyle().
			Foreground(Warning).
			SetString("● ")

	// Suggestion box
	Suggestion = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Secondary).
			Padding(0, 1).
			Bold(true)

	SuggestionBlocked = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(Error).
				Padding(0, 1)

	// Help styles
	HelpKey = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	HelpDesc = lipgloss.NewStyle().
			Foreground(Muted)

	HelpSeparator = lipgloss.NewStyle().
			Foreground(Muted).
			SetString(" • ")

	SectionLabel = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	// Message styles
	Success = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)

	ErrorMsg = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	MutedText = lipgloss.NewStyle().
			Foreground(Muted)
)

// ProjectColor returns a stable color for a project name
func ProjectColor(project string) lipgloss.Color {
	h := fnv.New32a()
	h.Write([]byte(project))
	return projectColors[h.Sum32()%uint32(len(projectColors))]
}
