package theme

import (
	catppuccin "github.com/catppuccin/go"
	"github.com/charmbracelet/lipgloss"
)

var theme = catppuccin.Mocha

func Red() lipgloss.Color      { return lipgloss.Color(theme.Red().Hex) }
func Green() lipgloss.Color    { return lipgloss.Color(theme.Green().Hex) }
func Blue() lipgloss.Color     { return lipgloss.Color(theme.Blue().Hex) }
func Lavender() lipgloss.Color { return lipgloss.Color(theme.Lavender().Hex) }
func Text() lipgloss.Color     { return lipgloss.Color(theme.Text().Hex) }
func Subtext0() lipgloss.Color { return lipgloss.Color(theme.Subtext0().Hex) }
func Overlay0() lipgloss.Color { return lipgloss.Color(theme.Overlay0().Hex) }
func Surface0() lipgloss.Color { return lipgloss.Color(theme.Surface0().Hex) }
func Surface2() lipgloss.Color { return lipgloss.Color(theme.Surface2().Hex) }

// Styles shared by the panel views.
var (
	Title    = lipgloss.NewStyle().Bold(true).Foreground(Lavender())
	Header   = lipgloss.NewStyle().Bold(true).Foreground(Subtext0()).BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).BorderForeground(Surface2())
	Cell     = lipgloss.NewStyle().Foreground(Text())
	Selected = lipgloss.NewStyle().Foreground(Blue()).Background(Surface0())
	Disabled = lipgloss.NewStyle().Foreground(Overlay0())
	Error    = lipgloss.NewStyle().Foreground(Red())
	Spinner  = lipgloss.NewStyle().Foreground(Green())
	Help     = lipgloss.NewStyle().Foreground(Overlay0())
)
