package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/SeamusWaldron/cube3d"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	turnStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	moveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// stickerStyles holds one background style per color.
var stickerStyles = func() map[cube3d.Color]lipgloss.Style {
	colors := []cube3d.Color{
		cube3d.Interior, cube3d.Red, cube3d.Orange, cube3d.White,
		cube3d.Yellow, cube3d.Blue, cube3d.Green,
	}
	out := make(map[cube3d.Color]lipgloss.Style, len(colors))
	for _, c := range colors {
		out[c] = lipgloss.NewStyle().Background(lipgloss.Color(c.Hex()))
	}
	return out
}()

const cellWidth = 2

func renderSticker(c cube3d.Color) string {
	return stickerStyles[c].Render(strings.Repeat(" ", cellWidth))
}

// renderNet draws the unfolded cube as colored cells in a cross:
//
//	  U
//	L F R B
//	  D
func renderNet(net cube3d.Net) string {
	blank := strings.Repeat(" ", 3*cellWidth+1)

	row := func(s cube3d.Side, r int) string {
		var b strings.Builder
		for col := 0; col < 3; col++ {
			b.WriteString(renderSticker(net[s][r*3+col]))
		}
		b.WriteByte(' ')
		return b.String()
	}

	var lines []string
	for r := 0; r < 3; r++ {
		lines = append(lines, blank+row(cube3d.SideUp, r))
	}
	for r := 0; r < 3; r++ {
		var b strings.Builder
		for _, s := range []cube3d.Side{cube3d.SideLeft, cube3d.SideFront, cube3d.SideRight, cube3d.SideBack} {
			b.WriteString(row(s, r))
		}
		lines = append(lines, b.String())
	}
	for r := 0; r < 3; r++ {
		lines = append(lines, blank+row(cube3d.SideDown, r))
	}
	return strings.Join(lines, "\n")
}

// renderProgress draws a fixed-width progress bar for the turn in flight.
func renderProgress(p float64, width int) string {
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	filled := int(p*float64(width) + 0.5)
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", width-filled) + "]"
}

// renderTurn describes the turn in flight, or "idle".
func renderTurn(q *cube3d.Queue) string {
	t := q.Current()
	if t == nil {
		return statusStyle.Render("idle")
	}
	name := t.Rotation().Notation(q.Cube().Offset())
	if name == "" {
		name = t.Rotation().String()
	}
	return fmt.Sprintf("%s %s %3.0f°",
		turnStyle.Render(fmt.Sprintf("%-3s", name)),
		renderProgress(t.Progress(), 20),
		mgl64.RadToDeg(t.Angle()))
}

// recentMoves formats the last n notations, oldest first.
func recentMoves(history []string, n int) string {
	if len(history) == 0 {
		return ""
	}
	prefix := ""
	if len(history) > n {
		history = history[len(history)-n:]
		prefix = "... "
	}
	return prefix + moveStyle.Render(strings.Join(history, " "))
}
