package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/wsdemo/internal/version"
)

// Application branding constants
const (
	AppName   = "WSDEMO"
	Heading   = "Web Socket Demo"
	GitHubURL = "github.com/muurk/wsdemo"
)

// Layout constants
const (
	MinTerminalWidth = 60
	InputHeight      = 4
)

// Color palette
var (
	PrimaryColor   = lipgloss.Color("#7D56F4") // Purple
	SecondaryColor = lipgloss.Color("#43BF6D") // Green
	WarningColor   = lipgloss.Color("#FFA500") // Orange
	ErrorColor     = lipgloss.Color("#FF0000") // Red

	TextColor   = lipgloss.Color("#FFFFFF") // White
	SubtleColor = lipgloss.Color("#626262") // Gray
	BorderColor = lipgloss.Color("#7D56F4") // Purple (same as primary)
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true).
			MarginBottom(1)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor)

	// Textarea frame when editable; the border turns primary on focus
	FocusedInputStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(PrimaryColor)

	BlurredInputStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(SubtleColor)

	DisabledInputStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(SubtleColor).
				Foreground(SubtleColor).
				Faint(true)

	ButtonStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Padding(0, 1)

	FocusedButtonStyle = lipgloss.NewStyle().
				Foreground(TextColor).
				Background(PrimaryColor).
				Bold(true).
				Padding(0, 1)

	DisabledButtonStyle = lipgloss.NewStyle().
				Foreground(SubtleColor).
				Strikethrough(true).
				Padding(0, 1)

	StatusStyle = lipgloss.NewStyle().
			MarginTop(1)

	ServerMessageStyle = lipgloss.NewStyle().
				Foreground(SecondaryColor)

	HelpStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			MarginTop(1)
)

// RenderApplicationContainer frames a screen with a header line carrying the
// app name and version. A zero width (before the first WindowSizeMsg) renders
// the content unframed.
func RenderApplicationContainer(content string, width int) string {
	if width <= 0 {
		return content
	}
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}

	header := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Foreground(TextColor).Bold(true).Render(AppName+" "+version.Version),
		" ",
		lipgloss.NewStyle().Foreground(SubtleColor).Render(GitHubURL),
	)

	styledHeader := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Bottom: "─"}).
		BorderForeground(BorderColor).
		Width(width-4).
		Padding(0, 1).
		Render(header)

	styledContent := lipgloss.NewStyle().
		Width(width-4).
		Padding(1, 1, 0, 1).
		Render(content)

	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(BorderColor).
		Width(width - 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, styledHeader, styledContent))
}
