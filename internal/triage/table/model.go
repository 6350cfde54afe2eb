/*
Copyright 2026 The pkgvet Authors
SPDX-License-Identifier: Apache-2.0
*/

package table

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pkgvet/pkgvet/pkg/formats"
)

const notFound = -1

var NoMatchFound = errors.New("no row matched expression")

type Model struct {
	windowStart    int
	windowSize     int
	width          int
	rowSelected    int
	findExpression string

	rows []formats.Row
}

func New(rows []formats.Row) Model {
	return Model{
		windowStart: 0,
		windowSize:  10,
		rowSelected: 0,
		rows:        rows,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {

	// Is it a key press?
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}

		switch msg.String() {

		case "q":
			return m, tea.Quit

		case "up", "k":
			return m.moveUp(), nil

		case "down", "j":
			return m.moveDown(), nil

		case "g":
			return m.jumpToStart(), nil

		case "G":
			return m.jumpToEnd(), nil

		case "w":
			return m.pageUp(), nil

		case "z":
			return m.pageDown(), nil

		}
	}

	return m, nil
}

func (m Model) View() string {
	output := ""
	output += renderHeaderRow()
	output += m.renderRowsWindow(m.windowStart, m.windowSize)

	return output
}

func (m Model) SetHeight(h int) Model {
	m.windowSize = h - 2
	return m
}

func (m Model) SetWidth(w int) Model {
	m.width = w
	return m
}

// IndexSelected reports which row the cursor is on, for the details pane.
func (m Model) IndexSelected() int {
	return m.rowSelected
}

func (m Model) Find(expr string) (Model, error) {
	m.findExpression = expr
	foundIndex := m.find(expr)
	if foundIndex == notFound {
		return Model{}, NoMatchFound
	}

	m = m.selectAndShowRow(foundIndex)
	return m, nil
}

func (m Model) FindNext() (Model, error) {
	foundIndex := m.findNext(m.findExpression)
	if foundIndex == notFound {
		return Model{}, NoMatchFound
	}

	m = m.selectAndShowRow(foundIndex)
	return m, nil
}

func (m Model) FindPrevious() (Model, error) {
	foundIndex := m.findPrevious(m.findExpression)
	if foundIndex == notFound {
		return Model{}, NoMatchFound
	}

	m = m.selectAndShowRow(foundIndex)
	return m, nil
}

func (m Model) find(expr string) int {
	for i, row := range m.rows {
		if filterRowFound(row, expr) {
			return i
		}
	}

	return notFound
}

func (m Model) findNext(expr string) int {
	i := m.rowSelected

	for {
		i++
		if i > m.lastRowIndex() {
			i = 0
		}
		if i == m.rowSelected {
			return notFound
		}

		if filterRowFound(m.rows[i], expr) {
			return i
		}
	}
}

func (m Model) findPrevious(expr string) int {
	i := m.rowSelected

	for {
		i--
		if i < 0 {
			i = m.lastRowIndex()
		}
		if i == m.rowSelected {
			return notFound
		}

		if filterRowFound(m.rows[i], expr) {
			return i
		}
	}
}

func filterRowFound(row formats.Row, expr string) bool {
	return strings.Contains(row.FindingID, expr) ||
		strings.Contains(row.Title, expr) ||
		strings.Contains(row.Check, expr)
}

// selectAndShowRow updates the index setting for the "selected row" and then
// updates the table window appropriately to ensure the selected row is shown.
func (m Model) selectAndShowRow(i int) Model {
	m.rowSelected = i
	m = m.updateWindow()
	return m
}
