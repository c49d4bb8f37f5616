package diagram

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/alexiusacademia/holeframe/internal/framing"
	"github.com/alexiusacademia/holeframe/internal/hole"
)

// Grid size of the ASCII plan
const (
	planCols = 61
	planRows = 25
)

// DrawASCIIPlan renders a plan as a character grid. Long-direction bars
// are drawn with ═, transverse bars with ║ and the top legs of bent bars
// with •.
func DrawASCIIPlan(pl *Plan) string {
	grid := make([][]rune, planRows)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", planCols))
	}

	spanX := pl.Max.X - pl.Min.X
	spanY := pl.Max.Y - pl.Min.Y
	if spanX <= 0 || spanY <= 0 {
		return ""
	}
	cell := func(p Point) (int, int) {
		c := int(math.Round((p.X - pl.Min.X) / spanX * float64(planCols-1)))
		r := int(math.Round((pl.Max.Y - p.Y) / spanY * float64(planRows-1)))
		return c, r
	}
	line := func(a, b Point, mark rune) {
		c0, r0 := cell(a)
		c1, r1 := cell(b)
		steps := max(abs(c1-c0), abs(r1-r0))
		for s := 0; s <= steps; s++ {
			t := 0.0
			if steps > 0 {
				t = float64(s) / float64(steps)
			}
			c := c0 + int(math.Round(t*float64(c1-c0)))
			r := r0 + int(math.Round(t*float64(r1-r0)))
			grid[r][c] = mark
		}
	}

	// Opening outline
	o := pl.Outline()
	for i := 0; i < 4; i++ {
		mark := '─'
		if i%2 == 1 {
			mark = '│'
		}
		line(o[i], o[i+1], mark)
	}
	for i, corner := range []rune{'└', '┘', '┐', '┌'} {
		c, r := cell(o[i])
		grid[r][c] = corner
	}

	for _, ln := range pl.Straight {
		mark := '═'
		if math.Abs(ln.To.X-ln.From.X) < math.Abs(ln.To.Y-ln.From.Y) {
			mark = '║'
		}
		line(ln.From, ln.To, mark)
	}
	for _, ln := range pl.Bent {
		line(ln.From, ln.To, '•')
	}

	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  PLAN %s  (%.0f x %.0f mm)\n", pl.Opening, pl.Length, pl.Width))
	sb.WriteString(fmt.Sprintf("  ┌%s┐\n", strings.Repeat("─", planCols)))
	for _, row := range grid {
		sb.WriteString(fmt.Sprintf("  │%s│\n", string(row)))
	}
	sb.WriteString(fmt.Sprintf("  └%s┘\n", strings.Repeat("─", planCols)))

	sb.WriteString("\n")
	sb.WriteString("  Legend:\n")
	sb.WriteString("  ═══ = Long bars\n")
	sb.WriteString("  ║   = Transverse bars\n")
	sb.WriteString("  ••• = Bent bars (top leg)\n")

	return sb.String()
}

// Summary lists the bars framing one opening with their lengths and the
// total steel mass.
func Summary(f *hole.Frame, specs []framing.RebarSpec) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("\n  Opening %s in %s %s: %.0f x %.0f mm, t = %.0f mm\n",
		f.Opening(), f.HostType(), f.Host(), f.Length(), f.Width(), f.Thickness()))
	sb.WriteString("  ──────────────────────────────────────────────────────────\n")
	sb.WriteString(fmt.Sprintf("  %-12s %-9s %-10s %6s %10s %10s\n", "Role", "Kind", "Bar", "Count", "Length", "Mass"))

	var bars int
	var mass float64
	for _, s := range specs {
		length := s.Points().Length()
		n := s.BarCount()
		m := float64(n) * length / 1000 * s.Bar.MassPerMeter()
		bars += n
		mass += m

		role := s.Role.String()
		if s.Copy > 0 {
			role = fmt.Sprintf("%s #%d", role, s.Copy)
		}
		sb.WriteString(fmt.Sprintf("  %-12s %-9s %-10s %6d %7.0f mm %7.2f kg\n",
			role, s.Kind, s.Bar.Name, n, length, m))
	}
	sb.WriteString("  ──────────────────────────────────────────────────────────\n")
	sb.WriteString(fmt.Sprintf("  %-33s %6d %21.2f kg\n", "Total", bars, mass))

	return sb.String()
}

// DrawSummaryBox creates a summary box for results
func DrawSummaryBox(title string, lines []string) string {
	var sb strings.Builder

	width := utf8.RuneCountInString(title)
	for _, line := range lines {
		width = max(width, utf8.RuneCountInString(line))
	}
	width += 4

	pad := func(s string) string {
		return s + strings.Repeat(" ", width-4-utf8.RuneCountInString(s))
	}

	border := strings.Repeat("═", width)
	sb.WriteString(fmt.Sprintf("  ╔%s╗\n", border))
	sb.WriteString(fmt.Sprintf("  ║  %s  ║\n", pad(title)))
	sb.WriteString(fmt.Sprintf("  ╠%s╣\n", border))
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("  ║  %s  ║\n", pad(line)))
	}
	sb.WriteString(fmt.Sprintf("  ╚%s╝\n", border))

	return sb.String()
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
