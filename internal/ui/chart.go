package ui

import (
	"fmt"
	"math"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/oakwood-commons/bzx/internal/app"
)

// Point is one chart sample: X in seconds since the first history point.
type Point struct {
	X float64
	Y float64
}

// smaWindow is the moving-average window for the chart overlay.
const smaWindow = 5

// historySeries converts the history ring into buy and sell series. Fewer
// than two points yields empty series (nothing worth plotting). In percent
// mode values are relative to the first point.
func historySeries(history []app.HistoryPoint, percent bool) (buy, sell []Point) {
	if len(history) < 2 {
		return nil, nil
	}
	t0 := history[0].At
	b0, s0 := history[0].Buy, history[0].Sell

	buy = make([]Point, 0, len(history))
	sell = make([]Point, 0, len(history))
	for _, h := range history {
		x := h.At.Sub(t0).Seconds()
		if percent {
			bp, sp := 0.0, 0.0
			if b0 != 0 {
				bp = (h.Buy - b0) / b0 * 100
			}
			if s0 != 0 {
				sp = (h.Sell - s0) / s0 * 100
			}
			buy = append(buy, Point{X: x, Y: bp})
			sell = append(sell, Point{X: x, Y: sp})
			continue
		}
		buy = append(buy, Point{X: x, Y: h.Buy})
		sell = append(sell, Point{X: x, Y: h.Sell})
	}
	return buy, sell
}

// sma computes a simple moving average over k samples; shorter inputs yield
// an empty series.
func sma(points []Point, k int) []Point {
	if len(points) < k || k <= 0 {
		return nil
	}
	out := make([]Point, 0, len(points)-k+1)
	sum := 0.0
	for i := range points {
		sum += points[i].Y
		if i >= k {
			sum -= points[i-k].Y
		}
		if i+1 >= k {
			out = append(out, Point{X: points[i].X, Y: sum / float64(k)})
		}
	}
	return out
}

// autoBounds pads the joint min/max of both series by 5%, falling back to
// [0, 1] when the range is degenerate.
func autoBounds(buy, sell []Point) (yMin, yMax float64) {
	yMin = math.Inf(1)
	yMax = math.Inf(-1)
	for _, p := range buy {
		yMin = math.Min(yMin, p.Y)
		yMax = math.Max(yMax, p.Y)
	}
	for _, p := range sell {
		yMin = math.Min(yMin, p.Y)
		yMax = math.Max(yMax, p.Y)
	}
	if !isFinite(yMin) || !isFinite(yMax) || math.Abs(yMax-yMin) < 1e-6 {
		return 0, 1
	}
	pad := (yMax - yMin) * 0.05
	return yMin - pad, yMax + pad
}

func isFinite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}

type chartInput struct {
	Buy         []Point
	Sell        []Point
	ShowSMA     bool
	ShowMidline bool
	Width       int
	Height      int
	NoColor     bool
}

// Series color slots for the braille canvas, drawn back to front.
const (
	colorNone = iota
	colorMid
	colorBuySMA
	colorSellSMA
	colorBuy
	colorSell
)

// brailleCanvas maps (column*2+dx, row*4+dy) dots onto braille cells and
// remembers a color slot per cell.
type brailleCanvas struct {
	cols, rows int
	cells      []rune
	colors     []int
}

// Braille dot bit layout per Unicode U+2800.
var brailleBits = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

func newBrailleCanvas(cols, rows int) *brailleCanvas {
	return &brailleCanvas{
		cols:   cols,
		rows:   rows,
		cells:  make([]rune, cols*rows),
		colors: make([]int, cols*rows),
	}
}

func (c *brailleCanvas) setDot(dotX, dotY, color int) {
	if dotX < 0 || dotY < 0 {
		return
	}
	col, row := dotX/2, dotY/4
	if col >= c.cols || row >= c.rows {
		return
	}
	i := row*c.cols + col
	c.cells[i] |= brailleBits[dotY%4][dotX%2]
	if color >= c.colors[i] {
		c.colors[i] = color
	}
}

// plot draws a series by sampling linear segments at every dot column.
func (c *brailleCanvas) plot(points []Point, xMax, yMin, yMax float64, color int) {
	if len(points) == 0 || xMax <= 0 || yMax <= yMin {
		return
	}
	dotW := c.cols * 2
	dotH := c.rows * 4
	toDot := func(p Point) (int, int) {
		x := int(math.Round(p.X / xMax * float64(dotW-1)))
		y := int(math.Round((yMax - p.Y) / (yMax - yMin) * float64(dotH-1)))
		return x, y
	}

	prevX, prevY := toDot(points[0])
	c.setDot(prevX, prevY, color)
	for _, p := range points[1:] {
		x, y := toDot(p)
		steps := maxInt(absInt(x-prevX), absInt(y-prevY))
		for s := 1; s <= steps; s++ {
			ix := prevX + (x-prevX)*s/maxInt(steps, 1)
			iy := prevY + (y-prevY)*s/maxInt(steps, 1)
			c.setDot(ix, iy, color)
		}
		prevX, prevY = x, y
	}
}

func (c *brailleCanvas) render(styles map[int]lipgloss.Style) []string {
	lines := make([]string, c.rows)
	for row := 0; row < c.rows; row++ {
		var sb strings.Builder
		for col := 0; col < c.cols; col++ {
			i := row*c.cols + col
			if c.cells[i] == 0 {
				sb.WriteByte(' ')
				continue
			}
			ch := string(0x2800 + c.cells[i])
			if style, ok := styles[c.colors[i]]; ok {
				sb.WriteString(style.Render(ch))
			} else {
				sb.WriteString(ch)
			}
		}
		lines[row] = sb.String()
	}
	return lines
}

// renderChart draws the buy/sell history as a braille line chart with a y
// label gutter and an x axis in seconds.
func renderChart(in chartInput) string {
	const gutter = 9

	cols := in.Width - gutter
	if cols < 4 {
		cols = 4
	}
	rows := in.Height
	if rows < 2 {
		rows = 2
	}

	yMin, yMax := autoBounds(in.Buy, in.Sell)
	xMax := 1.0
	if len(in.Buy) > 0 {
		xMax = math.Max(in.Buy[len(in.Buy)-1].X, 1.0)
	}

	canvas := newBrailleCanvas(cols, rows)
	if in.ShowMidline {
		mid := (yMin + yMax) / 2
		dotY := int(math.Round((yMax - mid) / (yMax - yMin) * float64(rows*4-1)))
		for x := 0; x < cols*2; x += 2 {
			canvas.setDot(x, dotY, colorMid)
		}
	}
	if in.ShowSMA {
		canvas.plot(sma(in.Buy, smaWindow), xMax, yMin, yMax, colorBuySMA)
		canvas.plot(sma(in.Sell, smaWindow), xMax, yMin, yMax, colorSellSMA)
	}
	canvas.plot(in.Buy, xMax, yMin, yMax, colorBuy)
	canvas.plot(in.Sell, xMax, yMin, yMax, colorSell)

	styles := map[int]lipgloss.Style{}
	if !in.NoColor {
		th := CurrentTheme()
		styles[colorMid] = lipgloss.NewStyle().Foreground(th.Muted)
		styles[colorBuySMA] = lipgloss.NewStyle().Foreground(th.BuySMA)
		styles[colorSellSMA] = lipgloss.NewStyle().Foreground(th.SellSMA)
		styles[colorBuy] = lipgloss.NewStyle().Foreground(th.Buy)
		styles[colorSell] = lipgloss.NewStyle().Foreground(th.Sell)
	}

	plotted := canvas.render(styles)
	lines := make([]string, 0, rows+1)
	for row := 0; row < rows; row++ {
		label := strings.Repeat(" ", gutter-1)
		switch row {
		case 0:
			label = fmt.Sprintf("%8.1f", yMax)
		case rows - 1:
			label = fmt.Sprintf("%8.1f", yMin)
		}
		lines = append(lines, padLine(label, gutter-1)+"│"+plotted[row])
	}

	axis := strings.Repeat(" ", gutter-1) + "└" + strings.Repeat("─", cols)
	xLabels := strings.Repeat(" ", gutter) + "0" +
		strings.Repeat(" ", maxInt(cols-1-len(fmt.Sprintf("%.0f", xMax)), 1)) +
		fmt.Sprintf("%.0f", xMax)
	lines = append(lines, axis, clampLine(xLabels, in.Width))

	return strings.Join(lines, "\n")
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
