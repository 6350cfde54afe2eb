/*
Copyright 2026 The pkgvet Authors
SPDX-License-Identifier: Apache-2.0
*/

package table

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pkgvet/pkgvet/pkg/formats"
)

const (
	widthCheck    = 16
	widthSeverity = 12
	widthFinding  = 36
	widthTitle    = 40
)

const (
	hexNotSelected = "#777777"
	hexSelected    = "#FFFFFF"
)

var (
	styleHeaderRow          = lipgloss.NewStyle().Foreground(lipgloss.Color(hexNotSelected)).Bold(true)
	styleDataRowNotSelected = lipgloss.NewStyle().Foreground(lipgloss.Color(hexNotSelected))
	styleDataRowSelected    = lipgloss.NewStyle().Foreground(lipgloss.Color(hexSelected))
)

func (m Model) totalRowCount() int {
	return len(m.rows)
}

func (m Model) lastRowIndex() int {
	return m.totalRowCount() - 1
}

func (m Model) dataWindowEnd() int {
	return m.windowStart + m.windowSize - 1
}

func (m Model) renderRowsWindow(start, size int) string {
	lastRow := m.lastRowIndex()

	if start > lastRow {
		return "\n"
	}

	output := ""

	for i := start; i < start+size; i++ {
		if i > lastRow {
			output += "\n"
			continue
		}

		isSelected := i == m.rowSelected

		output += renderDataRow(m.rows[i], isSelected)
	}

	return output
}

func renderHeaderRow() string {
	unstyled := "  " +
		renderCell("Check", widthCheck) +
		renderCell("Severity", widthSeverity) +
		renderCell("Finding", widthFinding) +
		renderCell("Title", widthTitle)

	return styleHeaderRow.Render(unstyled) + "\n"
}

func renderDataRow(r formats.Row, isSelected bool) string {
	row := renderCell(r.Check, widthCheck) +
		renderCell(strings.ToUpper(string(r.Severity)), widthSeverity) +
		renderCell(r.FindingID, widthFinding) +
		renderCell(r.Title, widthTitle)

	if isSelected {
		row = "> " + row
		row = styleDataRowSelected.Render(row)
	} else {
		row = "  " + row
		row = styleDataRowNotSelected.Render(row)
	}

	row += "\n"

	return row
}

func renderCell(content string, size int) string {
	if lipgloss.Width(content) > size-1 {
		content = truncate(content, size-1)
	}

	padSize := size - lipgloss.Width(content)

	return lipgloss.NewStyle().PaddingRight(padSize).Render(content)
}

func truncate(content string, max int) string {
	runes := []rune(content)
	if len(runes) <= max {
		return content
	}

	return string(runes[:max-1]) + "…"
}

func (m Model) moveUp() Model {
	if m.rowSelected == 0 {
		return m
	}

	m = m.selectAndShowRow(m.rowSelected - 1)
	return m
}

func (m Model) moveDown() Model {
	if m.rowSelected == m.lastRowIndex() {
		return m
	}

	m = m.selectAndShowRow(m.rowSelected + 1)
	return m
}

func (m Model) jumpToStart() Model {
	m = m.selectAndShowRow(0)
	return m
}

func (m Model) jumpToEnd() Model {
	m = m.selectAndShowRow(m.lastRowIndex())
	return m
}

func (m Model) pageUp() Model {
	if m.rowSelected > m.windowStart {
		m.rowSelected = m.windowStart
		return m
	}

	// already at the top of the window

	newSelectedRow := m.rowSelected - m.windowSize
	if newSelectedRow < 0 {
		// catch out-of-bounds case
		newSelectedRow = 0
	}

	m = m.selectAndShowRow(newSelectedRow)

	return m
}

func (m Model) pageDown() Model {
	if windowEnd := m.dataWindowEnd(); m.rowSelected < windowEnd {
		if windowEnd > m.lastRowIndex() {
			m.rowSelected = m.lastRowIndex()
			return m
		}

		m.rowSelected = windowEnd
		return m
	}

	// already at the bottom of the window

	newSelectedRow := m.rowSelected + m.windowSize
	if lastRow := m.lastRowIndex(); newSelectedRow > lastRow {
		// catch out-of-bounds case
		newSelectedRow = lastRow
	}

	m = m.selectAndShowRow(newSelectedRow)

	return m
}

func (m Model) updateWindow() Model {
	newSelectedIndex := m.rowSelected

	windowFirst := m.windowStart
	windowLast := m.dataWindowEnd()

	if newSelectedIndex >= windowFirst && newSelectedIndex <= windowLast {
		// selection already appears in window
		return m
	}

	if newSelectedIndex < windowFirst {
		// jump window backward to start at selection
		m.windowStart = newSelectedIndex
		return m
	}

	if newSelectedIndex > windowLast {
		// jump window forward so that windowLast is selection
		newStart := newSelectedIndex - (m.windowSize - 1)
		m.windowStart = newStart
		return m
	}

	return m
}
