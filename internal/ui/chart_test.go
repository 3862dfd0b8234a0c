package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/bzx/internal/app"
)

func historyAt(base time.Time, pairs ...[2]float64) []app.HistoryPoint {
	out := make([]app.HistoryPoint, 0, len(pairs))
	for i, p := range pairs {
		out = append(out, app.HistoryPoint{
			At:   base.Add(time.Duration(i) * time.Second),
			Buy:  p[0],
			Sell: p[1],
		})
	}
	return out
}

func TestHistorySeriesNeedsTwoPoints(t *testing.T) {
	base := time.Now()

	buy, sell := historySeries(nil, false)
	assert.Nil(t, buy)
	assert.Nil(t, sell)

	buy, sell = historySeries(historyAt(base, [2]float64{10, 12}), false)
	assert.Nil(t, buy)
	assert.Nil(t, sell)
}

func TestHistorySeriesAbsolute(t *testing.T) {
	base := time.Now()
	buy, sell := historySeries(historyAt(base, [2]float64{10, 12}, [2]float64{11, 13}), false)

	require.Len(t, buy, 2)
	require.Len(t, sell, 2)
	assert.Equal(t, 0.0, buy[0].X)
	assert.Equal(t, 1.0, buy[1].X)
	assert.Equal(t, 11.0, buy[1].Y)
	assert.Equal(t, 13.0, sell[1].Y)
}

func TestHistorySeriesPercentIsRelativeToFirstPoint(t *testing.T) {
	base := time.Now()
	buy, sell := historySeries(historyAt(base, [2]float64{100, 200}, [2]float64{110, 150}), true)

	require.Len(t, buy, 2)
	assert.Equal(t, 0.0, buy[0].Y)
	assert.InDelta(t, 10.0, buy[1].Y, 1e-9)
	assert.InDelta(t, -25.0, sell[1].Y, 1e-9)
}

func TestHistorySeriesPercentZeroBaseline(t *testing.T) {
	base := time.Now()
	buy, _ := historySeries(historyAt(base, [2]float64{0, 1}, [2]float64{5, 2}), true)

	require.Len(t, buy, 2)
	assert.Equal(t, 0.0, buy[1].Y, "zero baseline must not divide")
}

func TestSMA(t *testing.T) {
	points := []Point{
		{X: 0, Y: 1}, {X: 1, Y: 2}, {X: 2, Y: 3},
		{X: 3, Y: 4}, {X: 4, Y: 5}, {X: 5, Y: 6},
	}

	out := sma(points, 5)
	require.Len(t, out, 2)
	assert.Equal(t, 3.0, out[0].Y)
	assert.Equal(t, 4.0, out[1].Y)
	assert.Equal(t, 4.0, out[0].X, "average is anchored at the window end")

	assert.Nil(t, sma(points[:3], 5), "short series has no average")
	assert.Nil(t, sma(points, 0))
}

func TestAutoBoundsPadsFivePercent(t *testing.T) {
	buy := []Point{{Y: 10}, {Y: 20}}
	yMin, yMax := autoBounds(buy, nil)

	assert.InDelta(t, 9.5, yMin, 1e-9)
	assert.InDelta(t, 20.5, yMax, 1e-9)
}

func TestAutoBoundsDegenerateRange(t *testing.T) {
	yMin, yMax := autoBounds(nil, nil)
	assert.Equal(t, 0.0, yMin)
	assert.Equal(t, 1.0, yMax)

	flat := []Point{{Y: 7}, {Y: 7}}
	yMin, yMax = autoBounds(flat, flat)
	assert.Equal(t, 0.0, yMin)
	assert.Equal(t, 1.0, yMax)
}

func TestBrailleCanvasDotMapping(t *testing.T) {
	c := newBrailleCanvas(2, 1)

	c.setDot(0, 0, colorBuy)
	assert.Equal(t, rune(0x01), c.cells[0])

	c.setDot(1, 3, colorSell)
	assert.Equal(t, rune(0x01|0x80), c.cells[0])
	assert.Equal(t, colorSell, c.colors[0], "higher slot wins the cell")

	// Out of range is ignored.
	c.setDot(-1, 0, colorBuy)
	c.setDot(4, 0, colorBuy)
	c.setDot(0, 4, colorBuy)
	assert.Equal(t, rune(0), c.cells[1])
}

func TestRenderChartLayout(t *testing.T) {
	base := time.Now()
	history := historyAt(base,
		[2]float64{10, 12}, [2]float64{11, 13}, [2]float64{10.5, 12.5},
		[2]float64{12, 14}, [2]float64{11.5, 13.5}, [2]float64{13, 15},
	)
	buy, sell := historySeries(history, false)

	out := renderChart(chartInput{
		Buy:         buy,
		Sell:        sell,
		ShowSMA:     true,
		ShowMidline: true,
		Width:       60,
		Height:      8,
		NoColor:     true,
	})

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 10, "plot rows plus axis and x labels")
	assert.Contains(t, lines[0], "│")
	assert.Contains(t, lines[8], "└")
	for _, line := range lines {
		assert.LessOrEqual(t, visibleWidth(line), 60)
	}
}
