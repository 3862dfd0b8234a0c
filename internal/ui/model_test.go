package ui

import (
	"context"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/bzx/internal/app"
	"github.com/oakwood-commons/bzx/internal/bazaar"
)

func snapshotWith(quick map[string][2]float64) *bazaar.Response {
	products := make(map[string]bazaar.Product, len(quick))
	for id, prices := range quick {
		products[id] = bazaar.Product{
			ProductID: id,
			QuickStatus: bazaar.QuickStatus{
				ProductID: id,
				BuyPrice:  prices[0],
				SellPrice: prices[1],
			},
		}
	}
	return &bazaar.Response{Success: true, LastUpdated: 1735000000000, Products: products}
}

func newTestModel(t *testing.T) *Model {
	t.Helper()
	quick := map[string][2]float64{
		"BOOK":           {10, 12},
		"ENCHANTED_BOOK": {100, 130},
		"ENDER_PEARL":    {7, 7.5},
	}
	fetch := func(context.Context) (*bazaar.Response, error) {
		return snapshotWith(quick), nil
	}
	a := app.New(snapshotWith(quick), fetch, time.Hour, nil)
	t.Cleanup(a.StopRefresh)

	m := NewModel(a, Options{NoColor: true})
	return &m
}

func pressText(m *Model, s string) {
	for _, r := range s {
		m.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func TestTypingEditsQueryInInsertMode(t *testing.T) {
	m := newTestModel(t)

	pressText(m, "eb")

	assert.Equal(t, "eb", m.App.Search.Input)
	assert.Equal(t, app.ModeInsert, m.App.Search.Mode)
	assert.True(t, m.App.Search.NeedsFilter)
	assert.Equal(t, "eb", m.SearchInput.Value())
}

func TestArrowKeysEnterNavigateMode(t *testing.T) {
	m := newTestModel(t)

	m.Update(tea.KeyPressMsg{Code: tea.KeyDown})

	assert.Equal(t, app.ModeNavigate, m.App.Search.Mode)
	assert.Equal(t, 1, m.App.Search.SelectedIndex)
}

func TestTypingInNavigateModeReturnsToInsert(t *testing.T) {
	m := newTestModel(t)

	m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	require.Equal(t, app.ModeNavigate, m.App.Search.Mode)

	pressText(m, "x")

	assert.Equal(t, app.ModeInsert, m.App.Search.Mode)
	assert.Equal(t, "x", m.App.Search.Input)
}

func TestTickAppliesDebouncedFilter(t *testing.T) {
	m := newTestModel(t)
	m.DebounceWindow = time.Nanosecond

	pressText(m, "book")
	require.True(t, m.App.Search.NeedsFilter)

	time.Sleep(time.Millisecond)
	_, cmd := m.Update(TickMsg(time.Now()))

	assert.False(t, m.App.Search.NeedsFilter)
	assert.NotNil(t, cmd, "tick must re-arm itself")
}

func TestEscapeClearsInputBeforeQuitting(t *testing.T) {
	m := newTestModel(t)

	pressText(m, "book")
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.Nil(t, cmd)
	assert.Empty(t, m.App.Search.Input)

	_, cmd = m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestCtrlCQuitsFromAnyView(t *testing.T) {
	m := newTestModel(t)

	m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.Equal(t, app.ViewDetail, m.App.View)

	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestCtrlSTogglesSpreadSort(t *testing.T) {
	m := newTestModel(t)

	m.Update(tea.KeyPressMsg{Code: 's', Mod: tea.ModCtrl})
	assert.True(t, m.App.Search.SortBySpread)
	assert.Equal(t, "Sorted by spread", m.App.Status)

	m.Update(tea.KeyPressMsg{Code: 's', Mod: tea.ModCtrl})
	assert.False(t, m.App.Search.SortBySpread)
	assert.Equal(t, "Sorted by relevance", m.App.Status)
}

func TestEnterOpensDetailAndBackReturns(t *testing.T) {
	m := newTestModel(t)

	m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.Equal(t, app.ViewDetail, m.App.View)
	assert.Equal(t, "BOOK", m.App.Detail.ProductID)
	assert.Contains(t, m.App.Status, "Detail: BOOK")

	m.Update(tea.KeyPressMsg{Code: 'b', Text: "b"})
	assert.Equal(t, app.ViewSearch, m.App.View)
}

func TestDetailChartToggles(t *testing.T) {
	m := newTestModel(t)
	m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.Equal(t, app.ViewDetail, m.App.View)

	m.Update(tea.KeyPressMsg{Code: 'p', Text: "p"})
	assert.True(t, m.App.Detail.ShowPercent)
	assert.Equal(t, "Chart: % mode", m.App.Status)

	m.Update(tea.KeyPressMsg{Code: 'm', Text: "m"})
	assert.False(t, m.App.Detail.ShowSMA, "SMA defaults on, first press turns it off")
	assert.Equal(t, "SMA: off", m.App.Status)

	m.Update(tea.KeyPressMsg{Code: 'g', Text: "g"})
	assert.True(t, m.App.Detail.ShowMidline)
	assert.Equal(t, "Midline: on", m.App.Status)
}

func TestProductUpdateMsgExtendsHistory(t *testing.T) {
	m := newTestModel(t)
	m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.Len(t, m.App.Detail.History, 1)

	update := bazaar.Product{
		ProductID:   "BOOK",
		QuickStatus: bazaar.QuickStatus{ProductID: "BOOK", BuyPrice: 11, SellPrice: 13},
	}
	_, cmd := m.Update(ProductUpdateMsg(update))

	assert.Len(t, m.App.Detail.History, 2)
	assert.Equal(t, "Updated", m.App.Status)
	assert.NotNil(t, cmd, "update handler must re-arm the channel reader")
}

func TestWindowSizeResizesSearchInput(t *testing.T) {
	m := newTestModel(t)

	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	assert.Equal(t, 120, m.WinWidth)
	assert.Equal(t, 40, m.WinHeight)
}

func TestSearchViewRendersResultsAndStatus(t *testing.T) {
	m := newTestModel(t)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	out := m.searchView()

	assert.Contains(t, out, "(Enter to open) – 3 results")
	assert.Contains(t, out, "Book")
	assert.Contains(t, out, "Ender Pearl")
	assert.Contains(t, out, "Loaded")
}

func TestDetailViewRendersOrderBooksAndChartLegend(t *testing.T) {
	m := newTestModel(t)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	out := m.detailView()

	assert.Contains(t, out, "Detail: BOOK")
	assert.Contains(t, out, "Top Buys")
	assert.Contains(t, out, "Top Sells")
}
