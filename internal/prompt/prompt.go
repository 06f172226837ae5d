package prompt

import (
	"errors"
	"os"

	"dario.lol/ddns/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

var (
	ErrUserCancelled  = errors.New("cancelled by user")
	ErrNotInteractive = errors.New("stdin is not a terminal")
)

// Interactive reports whether forms can be shown.
var Interactive = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// run shows form on stderr so stdout carries only command output.
func run(form *huh.Form) error {
	err := form.
		WithTheme(ui.HuhTheme()).
		WithProgramOptions(tea.WithOutput(os.Stderr)).
		Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return ErrUserCancelled
	}
	return err
}
