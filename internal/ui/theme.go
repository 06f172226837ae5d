package ui

import (
	"image/color"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

type Palette struct {
	Surface lipgloss.AdaptiveColor
	Border  lipgloss.AdaptiveColor
	Faint   lipgloss.AdaptiveColor
	Muted   lipgloss.AdaptiveColor
	Text    lipgloss.AdaptiveColor
	Strong  lipgloss.AdaptiveColor

	Accent     lipgloss.AdaptiveColor
	AccentSoft lipgloss.AdaptiveColor
	OnAccent   lipgloss.AdaptiveColor

	Success lipgloss.AdaptiveColor
	Warning lipgloss.AdaptiveColor
	Error   lipgloss.AdaptiveColor
}

var C = Palette{
	Surface: lipgloss.AdaptiveColor{Light: "#f5f6f7", Dark: "#161a1f"},
	Border:  lipgloss.AdaptiveColor{Light: "#b9c0c8", Dark: "#3a414a"},
	Faint:   lipgloss.AdaptiveColor{Light: "#8a949e", Dark: "#5f6873"},
	Muted:   lipgloss.AdaptiveColor{Light: "#5b6570", Dark: "#9aa4ae"},
	Text:    lipgloss.AdaptiveColor{Light: "#232f3e", Dark: "#e6e9ec"},
	Strong:  lipgloss.AdaptiveColor{Light: "#111820", Dark: "#f7f8f9"},

	Accent:     lipgloss.AdaptiveColor{Light: "#c45500", Dark: "#ff9900"},
	AccentSoft: lipgloss.AdaptiveColor{Light: "#e47911", Dark: "#ffb84d"},
	OnAccent:   lipgloss.AdaptiveColor{Light: "#ffffff", Dark: "#111820"},

	Success: lipgloss.AdaptiveColor{Light: "#1d8102", Dark: "#4cc35f"},
	Warning: lipgloss.AdaptiveColor{Light: "#b8860b", Dark: "#f2c94c"},
	Error:   lipgloss.AdaptiveColor{Light: "#d13212", Dark: "#ff5d4a"},
}

type Symbols struct {
	Check    string
	Cross    string
	Warn     string
	Info     string
	Dot      string
	CornerTL string
	CornerTR string
	CornerBL string
	CornerBR string
	Line     string
	Pipe     string
	Spinner  []string
}

var S = Symbols{
	Check:    "✓",
	Cross:    "✗",
	Warn:     "⚠",
	Info:     "ⓘ",
	Dot:      "•",
	CornerTL: "╭",
	CornerTR: "╮",
	CornerBL: "╰",
	CornerBR: "╯",
	Line:     "─",
	Pipe:     "│",
	Spinner:  []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
}

var (
	H1 = lipgloss.NewStyle().
		Foreground(C.Strong).
		Bold(true)

	H2 = lipgloss.NewStyle().
		Foreground(C.Text).
		Bold(true)

	Body = lipgloss.NewStyle().
		Foreground(C.Text)

	BodyMuted = lipgloss.NewStyle().
			Foreground(C.Muted)

	BodySmall = lipgloss.NewStyle().
			Foreground(C.Faint)

	Code = lipgloss.NewStyle().
		Foreground(C.Text).
		Background(C.Surface).
		Padding(0, 1)

	StatusSuccess = lipgloss.NewStyle().
			Foreground(C.Success).
			Bold(true)

	StatusWarning = lipgloss.NewStyle().
			Foreground(C.Warning).
			Bold(true)

	StatusError = lipgloss.NewStyle().
			Foreground(C.Error).
			Bold(true)

	Badge = lipgloss.NewStyle().
		Background(C.Accent).
		Foreground(C.OnAccent).
		Padding(0, 1)

	button = lipgloss.NewStyle().
		Foreground(C.OnAccent).
		Background(C.Accent).
		Padding(0, 2).
		Margin(0, 1)

	buttonBlurred = lipgloss.NewStyle().
			Foreground(C.Muted).
			Padding(0, 2).
			Margin(0, 1)
)

func HuhTheme() *huh.Theme {
	theme := huh.ThemeBase()
	accent := lipgloss.NewStyle().Foreground(C.Accent)

	theme.Focused.Title = H2
	theme.Focused.Description = BodyMuted
	theme.Focused.ErrorMessage = StatusError
	theme.Focused.ErrorIndicator = StatusError
	theme.Focused.FocusedButton = button
	theme.Focused.BlurredButton = buttonBlurred
	theme.Focused.TextInput.Cursor = accent
	theme.Focused.TextInput.Placeholder = BodySmall
	theme.Focused.TextInput.Prompt = accent
	theme.Focused.TextInput.Text = Body

	theme.Blurred.Title = BodyMuted
	theme.Blurred.Description = BodySmall
	theme.Blurred.ErrorMessage = StatusError.Faint(true)
	theme.Blurred.FocusedButton = buttonBlurred
	theme.Blurred.BlurredButton = buttonBlurred
	theme.Blurred.TextInput.Placeholder = BodySmall.Faint(true)
	theme.Blurred.TextInput.Prompt = BodyMuted
	theme.Blurred.TextInput.Text = BodyMuted

	return theme
}

func StyledSpinner() spinner.Model {
	s := spinner.New()
	s.Spinner = spinner.Spinner{
		Frames: S.Spinner,
		FPS:    10,
	}
	s.Style = lipgloss.NewStyle().Foreground(C.Accent)
	return s
}

func FangTheme() fang.ColorScheme {
	return fang.ColorScheme{
		Base:           C.Text,
		Title:          C.Accent,
		Description:    C.Muted,
		Codeblock:      C.Surface,
		Program:        C.AccentSoft,
		DimmedArgument: C.Faint,
		Comment:        C.Faint,
		Flag:           C.Warning,
		FlagDefault:    C.Faint,
		Command:        C.Success,
		QuotedString:   C.Success,
		Argument:       C.Text,
		Help:           C.Muted,
		Dash:           C.Faint,
		ErrorHeader:    [2]color.Color{C.OnAccent, C.Error},
		ErrorDetails:   C.Error,
	}
}
