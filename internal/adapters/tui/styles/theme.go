package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	Primary   = lipgloss.Color("#7C3AED") // Purple
	Secondary = lipgloss.Color("#10B981") // Green
	Muted     = lipgloss.Color("#6B7280") // Gray
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Error     = lipgloss.Color("#EF4444") // Red
	White     = lipgloss.Color("#FFFFFF")
	Black     = lipgloss.Color("#000000")

	// Node palette, indexed by a phone's color index
	Palette = []lipgloss.Color{
		"#60A5FA", // Blue
		"#F97316", // Orange
		"#10B981", // Green
		"#EF4444", // Red
		"#8B5CF6", // Violet
		"#A16207", // Brown
		"#EC4899", // Pink
		"#9CA3AF", // Gray
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

	// Chart styles
	Canvas = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Muted)

	EdgeLine = lipgloss.NewStyle().
			Foreground(Muted)

	EdgeHeavy = lipgloss.NewStyle().
			Foreground(White)

	EdgeNote = lipgloss.NewStyle().
			Foreground(Warning)

	NodeLabel = lipgloss.NewStyle().
			Foreground(White)

	// List styles
	ListItem = lipgloss.NewStyle()

	ListSelected = lipgloss.NewStyle().
			Background(Primary).
			Foreground(White).
			Bold(true)

	ListUnassigned = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	PanelTitle = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true).
			Underline(true)

	// Status bar
	StatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("#1F2937")).
			Foreground(White).
			Padding(0, 1)

	StatusKey = lipgloss.NewStyle().
			Background(Primary).
			Foreground(White).
			Padding(0, 1).
			MarginRight(1)

	StatusBusy = lipgloss.NewStyle().
			Background(Warning).
			Foreground(Black).
			Padding(0, 1).
			MarginRight(1)

	// Input styles
	InputLabel = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	InputField = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(0, 1)

	InputFocused = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Secondary).
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

	// Message styles
	Success = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)

	ErrorMsg = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	// Muted text style (for using Muted color as a style)
	MutedText = lipgloss.NewStyle().
			Foreground(Muted)
)

// NodeColor returns the palette color for a color index, wrapping around
func NodeColor(index int) lipgloss.Color {
	if index < 0 {
		index = -index
	}
	return Palette[index%len(Palette)]
}

// NodeStyle is the marker style for a node
func NodeStyle(index int, selected bool) lipgloss.Style {
	s := lipgloss.NewStyle().Foreground(NodeColor(index)).Bold(true)
	if selected {
		s = s.Reverse(true)
	}
	return s
}
