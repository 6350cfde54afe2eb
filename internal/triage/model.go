/*
Copyright 2026 The pkgvet Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package triage is the interactive findings browser. It presents a
// verdict's findings in a scrollable table with substring search and a
// toggleable details pane.
package triage

import (
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pkgvet/pkgvet/internal/triage/details"
	"github.com/pkgvet/pkgvet/internal/triage/table"
	"github.com/pkgvet/pkgvet/pkg/formats"
)

type model struct {
	height, width int

	rows []formats.Row

	mode   Mode
	table  table.Model
	filter textinput.Model

	showDetails bool
	details     details.Model
}

type Mode int

const (
	ModeDataScroll Mode = iota
	ModeFilterEntry
)

// New builds the triage model over a verdict's flattened finding rows,
// sorted by severity (highest first), then check, then finding ID.
func New(rows []formats.Row) tea.Model {
	sort.SliceStable(rows, func(i, j int) bool {
		if rank := rows[i].Severity.Rank() - rows[j].Severity.Rank(); rank != 0 {
			return rank > 0
		}

		if checkCmp := strings.Compare(rows[i].Check, rows[j].Check); checkCmp != 0 {
			return checkCmp < 0
		}

		return strings.Compare(rows[i].FindingID, rows[j].FindingID) < 0
	})

	return model{
		rows:   rows,
		table:  table.New(rows),
		mode:   ModeDataScroll,
		filter: textinput.Model{},
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {

	// Is it a key press?
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}

		switch m.mode {
		case ModeDataScroll:
			switch msg.String() {

			case "q":
				return m, tea.Quit

			case "/":
				m.mode = ModeFilterEntry
				m.filter = newFilterTextInput()
				m.filter.Focus()
				m = m.updateComponentSizes()
				return m, textinput.Blink

			case "n":
				if expr := m.filter.Value(); expr != "" {
					updatedTable, err := m.table.FindNext()
					if err == table.NoMatchFound {
						// TODO: handle not found
						break
					}

					m.table = updatedTable
					return m, nil
				}

			case "N":
				if expr := m.filter.Value(); expr != "" {
					updatedTable, err := m.table.FindPrevious()
					if err == table.NoMatchFound {
						// TODO: handle not found
						return m, nil
					}

					m.table = updatedTable
					return m, nil
				}

			case "d":
				m.showDetails = !m.showDetails

				m = m.updateComponentSizes()
				return m, nil
			}

			m.table, cmd = m.table.Update(msg)
			return m, cmd

		case ModeFilterEntry:
			if msg.String() == "enter" {
				expr := m.filter.Value()
				updatedTable, err := m.table.Find(expr)
				if err == table.NoMatchFound {
					// TODO: handle not found
					return m, nil
				}

				m.table = updatedTable

				m.filter.Blur()
				m.mode = ModeDataScroll
				m = m.updateComponentSizes()
				return m, nil
			}

			if msg.String() == "esc" {
				m.filter.Blur()
				m.mode = ModeDataScroll
				m = m.updateComponentSizes()
				return m, nil
			}

			m.filter, cmd = m.filter.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.height = msg.Height
		m.width = msg.Width

		m = m.updateComponentSizes()

		return m, nil
	}

	m.filter, cmd = m.filter.Update(msg)
	return m, cmd
}

func (m model) updateComponentSizes() model {
	tableHeight, detailsHeight := m.expectedComponentHeights()

	m.table = m.table.SetHeight(tableHeight).SetWidth(m.width)
	m.details = m.details.SetHeight(detailsHeight).SetWidth(m.width)

	return m
}

func (m model) View() string {
	output := ""

	output += m.table.View()

	if m.mode == ModeFilterEntry {
		output += "\n" + m.filter.View()
	}

	if m.showDetails && len(m.rows) > 0 {
		selectedRow := m.rows[m.table.IndexSelected()]
		output += "\n" + m.details.For(selectedRow).View()
	}

	return output
}

func (m model) expectedComponentHeights() (table, details int) {
	table = m.height
	details = 0

	if m.showDetails {
		details = m.height / 2
		table = m.height - details
	}

	if m.mode == ModeFilterEntry {
		table = table - 1
	}

	return
}

func newFilterTextInput() textinput.Model {
	ti := textinput.New()
	ti.Prompt = "Find: "
	ti.Placeholder = "check or finding"

	return ti
}
