package tui

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/muurk/wsdemo/internal/logging"
)

// RunOptions controls how the program attaches to the terminal.
type RunOptions struct {
	AltScreen bool
	Input     io.Reader // nil means stdin
	Output    io.Writer // nil means stdout
}

// Run shows the component until the user quits. The connection is opened by
// the component on start and closed here once the program has exited.
func Run(conn Connection, opts RunOptions) error {
	defer func() {
		if err := conn.Close(); err != nil {
			logging.Warn("Failed to close connection", zap.Error(err))
		}
	}()

	var programOpts []tea.ProgramOption
	if opts.AltScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}
	if opts.Input != nil {
		programOpts = append(programOpts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		programOpts = append(programOpts, tea.WithOutput(opts.Output))
	}

	if _, err := tea.NewProgram(New(conn), programOpts...).Run(); err != nil {
		return fmt.Errorf("client UI failed: %w", err)
	}
	return nil
}
