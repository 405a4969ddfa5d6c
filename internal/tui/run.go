package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// NewProgram wraps m in a full-screen program bound to ctx. The caller
// keeps the program to Send messages from outside the update loop.
func NewProgram(ctx context.Context, m tea.Model) *tea.Program {
	return tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
}

// Run runs p until the user quits or its context is cancelled.
func Run(p *tea.Program) error {
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}
