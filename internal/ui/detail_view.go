package ui

import (
	"fmt"
	"strconv"
	"strings"

	"charm.land/bubbles/v2/table"
	"charm.land/lipgloss/v2"

	"github.com/oakwood-commons/bzx/internal/bazaar"
)

// orderRowLimit caps how many order book rows each side shows.
const orderRowLimit = 5

// detailView renders the detail screen: header, quick status and order
// books side by side, price history chart, status bar.
func (m *Model) detailView() string {
	th := CurrentTheme()

	headerStyle := lipgloss.NewStyle()
	if !m.NoColor {
		headerStyle = headerStyle.Foreground(th.Accent)
	}
	header := headerStyle.Render(fmt.Sprintf("Detail: %s   (b=back, r=refresh)", m.App.Detail.ProductID))

	product, ok := m.App.CurrentProduct()
	if !ok {
		return header + "\n\nNo product selected\n\n" + m.Status.View()
	}

	middleHeight := (m.WinHeight - 3) * 2 / 5
	if middleHeight < 8 {
		middleHeight = 8
	}
	quick := m.renderQuickStatus(product.QuickStatus, middleHeight)
	orders := m.renderOrders(product, middleHeight)
	middle := lipgloss.JoinHorizontal(lipgloss.Top, quick, "  ", orders)

	chartHeight := m.WinHeight - middleHeight - 5
	if chartHeight < 4 {
		chartHeight = 4
	}
	chart := m.renderHistory(chartHeight)

	return strings.Join([]string{header, middle, chart, m.Status.View()}, "\n")
}

func (m *Model) tableStyles() table.Styles {
	th := CurrentTheme()
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Bold(true).
		Align(lipgloss.Left).
		PaddingLeft(0).
		PaddingRight(1)
	s.Cell = lipgloss.NewStyle().
		Align(lipgloss.Left).
		PaddingLeft(0).
		PaddingRight(1)
	// These tables are read-only; suppress the selection highlight.
	s.Selected = lipgloss.NewStyle().PaddingLeft(0).PaddingRight(1)
	if !m.NoColor {
		s.Header = s.Header.Foreground(th.Text)
		s.Cell = s.Cell.Foreground(th.Text)
	}
	return s
}

// renderQuickStatus shows the summary pricing and volume fields.
func (m *Model) renderQuickStatus(q bazaar.QuickStatus, height int) string {
	spread := q.Spread()
	if spread < 0 {
		spread = 0
	}
	rows := []table.Row{
		{"Product ID", q.ProductID},
		{"Buy Price", fmt.Sprintf("%.1f", q.BuyPrice)},
		{"Sell Price", fmt.Sprintf("%.1f", q.SellPrice)},
		{"Spread", fmt.Sprintf("%.1f", spread)},
		{"Buy Vol", strconv.FormatInt(q.BuyVolume, 10)},
		{"Sell Vol", strconv.FormatInt(q.SellVolume, 10)},
		{"Buy Move/Wk", strconv.FormatInt(q.BuyMovingWeek, 10)},
		{"Sell Move/Wk", strconv.FormatInt(q.SellMovingWeek, 10)},
		{"Buy Orders", strconv.FormatInt(q.BuyOrders, 10)},
		{"Sell Orders", strconv.FormatInt(q.SellOrders, 10)},
	}

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Quick Status", Width: 14},
			{Title: "", Width: 22},
		}),
		table.WithRows(rows),
		table.WithHeight(minInt(height, len(rows)+1)),
	)
	t.SetStyles(m.tableStyles())
	return t.View()
}

// renderOrders shows the top buy and sell order book rows stacked.
func (m *Model) renderOrders(p bazaar.Product, height int) string {
	half := maxInt(height/2, 3)
	buys := m.renderOrderTable("Top Buys", p.BuySummary, half)
	sells := m.renderOrderTable("Top Sells", p.SellSummary, half)
	return lipgloss.JoinVertical(lipgloss.Left, buys, sells)
}

func (m *Model) renderOrderTable(title string, orders []bazaar.OrderSummary, height int) string {
	rows := make([]table.Row, 0, orderRowLimit)
	for i, o := range orders {
		if i >= orderRowLimit {
			break
		}
		rows = append(rows, table.Row{
			fmt.Sprintf("%.1f", o.PricePerUnit),
			strconv.FormatInt(o.Amount, 10),
			strconv.FormatInt(o.Orders, 10),
		})
	}

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Price", Width: 12},
			{Title: "Amt", Width: 10},
			{Title: "#", Width: 8},
		}),
		table.WithRows(rows),
		table.WithHeight(minInt(height, len(rows)+1)),
	)
	t.SetStyles(m.tableStyles())

	titleStyle := lipgloss.NewStyle().Bold(true)
	return titleStyle.Render(title) + "\n" + t.View()
}

// renderHistory draws the legend line and the price chart.
func (m *Model) renderHistory(height int) string {
	th := CurrentTheme()
	detail := m.App.Detail

	buyPts, sellPts := historySeries(detail.History, detail.ShowPercent)

	buyStyle := lipgloss.NewStyle()
	sellStyle := lipgloss.NewStyle()
	accentStyle := lipgloss.NewStyle()
	if !m.NoColor {
		buyStyle = buyStyle.Foreground(th.Buy)
		sellStyle = sellStyle.Foreground(th.Sell)
		accentStyle = accentStyle.Foreground(th.Accent)
	}

	lastBuy, lastSell := "-", "-"
	spreadText := "-"
	if len(buyPts) > 0 {
		b := buyPts[len(buyPts)-1].Y
		s := sellPts[len(sellPts)-1].Y
		lastBuy = fmt.Sprintf("%.1f", b)
		lastSell = fmt.Sprintf("%.1f", s)
		pct := 0.0
		if b != 0 {
			pct = (s - b) / b * 100
		}
		spreadText = fmt.Sprintf("%+.1f (%+.2f%%)", s-b, pct)
	}
	legend := buyStyle.Render("● ") + "Buy " + buyStyle.Render(lastBuy) +
		"   " + sellStyle.Render("● ") + "Sell " + sellStyle.Render(lastSell) +
		"   Spread " + accentStyle.Render(spreadText)

	title := "Price History"
	if detail.ProductID != "" {
		title = "Price History: " + detail.ProductID
	}
	titleLine := lipgloss.NewStyle().Bold(true).Render(title)

	chart := renderChart(chartInput{
		Buy:         buyPts,
		Sell:        sellPts,
		ShowSMA:     detail.ShowSMA,
		ShowMidline: detail.ShowMidline,
		Width:       maxInt(m.WinWidth-2, 20),
		Height:      maxInt(height-2, 2),
		NoColor:     m.NoColor,
	})

	return legend + "\n" + titleLine + "\n" + chart
}
