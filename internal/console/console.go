// Copyright (c) 2026 Kicksaw Consulting.
// SPDX-License-Identifier: Apache-2.0

package console

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
)

// Out is the destination for all console output. Tests swap it for a buffer.
var Out io.Writer = os.Stdout

var (
	infoStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	successStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	warningStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	highlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4")).Bold(true)
	headerStyle    = lipgloss.NewStyle().Align(lipgloss.Left).Bold(true)
)

func Infof(format string, args ...any) {
	fmt.Fprintln(Out, infoStyle.Render(fmt.Sprintf(format, args...)))
}

func Successf(format string, args ...any) {
	fmt.Fprintln(Out, successStyle.Render("✓ "+fmt.Sprintf(format, args...)))
}

func Warnf(format string, args ...any) {
	fmt.Fprintln(Out, warningStyle.Render(fmt.Sprintf(format, args...)))
}

func Errorf(format string, args ...any) {
	fmt.Fprintln(Out, errorStyle.Render("✗ "+fmt.Sprintf(format, args...)))
}

// Highlight styles an inline fragment for embedding in a larger message.
func Highlight(s string) string {
	return highlightStyle.Render(s)
}

// Panel renders a bordered box with a title, used to mark the start and end
// of multi-step operations.
func Panel(title, message string, style ...lipgloss.Style) {
	border := infoStyle
	if len(style) > 0 {
		border = style[0]
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border.GetForeground()).
		Padding(0, 1)

	body := headerStyle.Render(title) + "\n" + message
	fmt.Fprintln(Out, box.Render(body))
}

// SuccessPanel is a Panel with the success border style.
func SuccessPanel(title, message string) {
	Panel(title, message, successStyle)
}

// ErrorPanel is a Panel with the error border style.
func ErrorPanel(title, message string) {
	Panel(title, message, errorStyle)
}

// Table renders rows under the given headers.
func Table(headers []string, rows [][]string) {
	cellStyle := lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Left)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			return cellStyle
		}).
		Headers(headers...).
		Rows(rows...)

	fmt.Fprintln(Out, t)
}
