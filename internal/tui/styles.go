package tui

import "github.com/charmbracelet/lipgloss"

var (
	appStyle        = lipgloss.NewStyle().Padding(1, 2)
	titleStyle      = lipgloss.NewStyle().Bold(true)
	helpStyle       = lipgloss.NewStyle().Faint(true)
	errorStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	warningStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	overlayBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2)

	badgeStyle     = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	inSyncBadge    = badgeStyle.Background(lipgloss.Color("2")).Foreground(lipgloss.Color("0"))
	syncingBadge   = badgeStyle.Background(lipgloss.Color("3")).Foreground(lipgloss.Color("0"))
	outOfSyncBadge = badgeStyle.Background(lipgloss.Color("1")).Foreground(lipgloss.Color("15"))
)
