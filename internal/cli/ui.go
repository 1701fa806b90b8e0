package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/inamate/rigidgroup/internal/engine"
)

var (
	colorCyan  = lipgloss.Color("36")
	colorGreen = lipgloss.Color("35")
	colorRed   = lipgloss.Color("167")
	colorDim   = lipgloss.Color("240")

	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleHeader  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	styleCell    = lipgloss.NewStyle().Padding(0, 1)
	styleDerived = lipgloss.NewStyle().Padding(0, 1).Foreground(colorDim)

	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
)

func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func printError(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconError.Render(iconError)+" "+fmt.Sprintf(format, args...))
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

// renderPoints draws one row per point. Derived points are dimmed.
func renderPoints(points []engine.PointState) string {
	derived := make(map[int]bool, len(points))
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("POINT", "X", "Y", "GROUPS")

	for i, p := range points {
		derived[i] = p.Derived
		groups := ""
		for j, g := range p.Groups {
			if j > 0 {
				groups += ", "
			}
			groups += g
		}
		t.Row(p.Name, formatCoord(p.X), formatCoord(p.Y), groups)
	}

	t.StyleFunc(func(row, col int) lipgloss.Style {
		switch {
		case row == table.HeaderRow:
			return styleHeader
		case derived[row]:
			return styleDerived
		}
		return styleCell
	})
	return t.Render()
}

// renderGroups lists each group's last action and roles.
func renderGroups(groups []engine.GroupState) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("GROUP", "MEMBERS", "LAST ACTION", "ROTATION CENTER", "SCALE CENTER")
	for _, g := range groups {
		t.Row(g.Name, strconv.Itoa(len(g.Members)), g.LastAction, g.RotationCenter, g.ScaleCenter)
	}
	t.StyleFunc(func(row, col int) lipgloss.Style {
		if row == table.HeaderRow {
			return styleHeader
		}
		return styleCell
	})
	return t.Render()
}
