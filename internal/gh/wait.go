// Copyright (c) 2026 Kicksaw Consulting.
// SPDX-License-Identifier: Apache-2.0

package gh

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type waitDoneMsg struct{}

// waitModel is the Bubble Tea model behind WaitWithSpinner. It quits on its
// own once the wait duration elapses.
type waitModel struct {
	spinner  spinner.Model
	message  string
	duration time.Duration
}

func newWaitModel(duration time.Duration, message string) waitModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	return waitModel{
		spinner:  s,
		message:  message,
		duration: duration,
	}
}

func (m waitModel) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		tea.Tick(m.duration, func(time.Time) tea.Msg { return waitDoneMsg{} }),
	)
}

func (m waitModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case waitDoneMsg:
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m waitModel) View() string {
	return fmt.Sprintf("%s %s", m.spinner.View(), m.message)
}

// WaitWithSpinner sleeps for the given duration while showing a spinner and
// message. It falls back to a plain sleep when the TUI cannot start.
func WaitWithSpinner(duration time.Duration, message string) {
	if _, err := tea.NewProgram(newWaitModel(duration, message)).Run(); err != nil {
		time.Sleep(duration)
	}
}
