/*
Copyright 2026 The pkgvet Authors
SPDX-License-Identifier: Apache-2.0
*/

package details

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pkgvet/pkgvet/pkg/formats"
)

var (
	detailsStyle    = lipgloss.NewStyle().Background(lipgloss.Color("#222233"))
	fieldNameStyle  = lipgloss.NewStyle().Inherit(detailsStyle).Foreground(lipgloss.Color("#aaaaaa"))
	fieldValueStyle = lipgloss.NewStyle().Inherit(detailsStyle).Foreground(lipgloss.Color("#ffffff"))
)

type Model struct {
	height, width int

	row formats.Row
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(_ tea.Msg) (tea.Model, tea.Cmd) {
	return m, nil
}

func (m Model) View() string {
	output := ""
	output += m.renderFieldNameValue("Check", m.row.Check) + "\n"
	output += m.renderFieldNameValue("Finding", m.row.FindingID) + "\n"
	output += m.renderFieldNameValue("Severity", strings.ToUpper(string(m.row.Severity))) + "\n"
	output += m.renderFieldNameValue("Title", m.row.Title) + "\n"
	output += m.renderFieldNameValue("Description", m.row.Description) + "\n"

	output += "\n"

	output += m.renderEvidence(m.row.Evidence) + "\n"
	output += m.renderFieldNameValue("Remediation", m.row.Remediation)

	return detailsStyle.Height(m.height).MaxHeight(m.height).Width(m.width).Render(output)
}

func (m Model) SetHeight(h int) Model {
	m.height = h
	return m
}

func (m Model) SetWidth(w int) Model {
	m.width = w
	return m
}

func (m Model) For(row formats.Row) Model {
	m.row = row
	return m
}

func (m Model) renderFieldNameValue(name, value string) string {
	renderedName := fieldNameStyle.Render(name + ":")
	renderedName = stripANSIReset(renderedName)
	renderedValue := fieldValueStyle.Render(value)

	line := renderedName + " " + renderedValue

	return line
}

func (m Model) renderEvidence(evidence []string) string {
	switch len(evidence) {
	case 0:
		return m.renderFieldNameValue("Evidence", "")
	case 1:
		return m.renderFieldNameValue("Evidence", evidence[0])
	default:
		values := strings.Join(evidence, "\n")
		return m.renderFieldNameValue("Evidence", values)
	}
}

func stripANSIReset(in string) string {
	const resetSequence = "\x1b[0m"
	return strings.Replace(in, resetSequence, "", -1)
}
