// Package app owns the application state machine: the product index, the
// search and detail views, selection, ranking, and the background refresh
// lifecycle. All mutation happens on the UI goroutine; background fetches
// only communicate through the Updates channel.
package app

import (
	"fmt"
	"sort"
	"time"

	"github.com/go-logr/logr"

	"github.com/oakwood-commons/bzx/internal/bazaar"
	"github.com/oakwood-commons/bzx/internal/fuzzy"
)

// View identifies the active screen.
type View int

const (
	ViewSearch View = iota
	ViewDetail
)

// SearchMode identifies the search sub-mode.
type SearchMode int

const (
	ModeInsert SearchMode = iota
	ModeNavigate
)

func (m SearchMode) String() string {
	if m == ModeNavigate {
		return "Navigate"
	}
	return "Insert"
}

// HistoryCapacity is the fixed size of the detail price-history ring.
const HistoryCapacity = 256

// updateQueueSize bounds the background update channel. One refresh tick
// produces at most one message, so the buffer never fills in practice;
// overflow drops are safe because the next tick re-delivers.
const updateQueueSize = 64

// ProductIndexItem is one immutable entry of the searchable product index.
// NormDisplay caches fuzzy.Normalize(Display) so scoring never re-normalizes
// per keystroke.
type ProductIndexItem struct {
	ID          string
	Display     string
	NormDisplay string
}

// Data holds the shared product snapshot and the derived search index.
type Data struct {
	Products    map[string]bazaar.Product
	LastUpdated int64
	Index       []ProductIndexItem
}

// SearchState is the state of the search view.
type SearchState struct {
	Input           string
	Mode            SearchMode
	FilteredIndices []int
	SelectedIndex   int
	NeedsFilter     bool
	LastInputChange time.Time
	SortBySpread    bool
}

// HistoryPoint is one sampled (buy, sell) pair.
type HistoryPoint struct {
	At   time.Time
	Buy  float64
	Sell float64
}

// DetailState is the state of the detail view for one product session.
type DetailState struct {
	ProductID   string
	History     []HistoryPoint
	ShowPercent bool
	ShowSMA     bool
	ShowMidline bool

	stopRefresh func()
}

// App is the single-owner state machine. Only the UI goroutine may call its
// methods; the refresh goroutine funnels results through Updates.
type App struct {
	View    View
	Status  string
	Data    Data
	Search  SearchState
	Detail  DetailState
	Updates chan bazaar.Product

	fetch           Fetcher
	refreshInterval time.Duration
	log             *logr.Logger
	now             func() time.Time
}

// New builds the App from the initial snapshot. The index is ordered by
// product id so filtering and ranking are reproducible across runs.
func New(resp *bazaar.Response, fetch Fetcher, refreshInterval time.Duration, log *logr.Logger) *App {
	products := make(map[string]bazaar.Product, len(resp.Products))
	ids := make([]string, 0, len(resp.Products))
	for id, p := range resp.Products {
		products[id] = p
		ids = append(ids, id)
	}
	sort.Strings(ids)

	index := make([]ProductIndexItem, 0, len(ids))
	for _, id := range ids {
		display := fuzzy.PrettyName(id)
		index = append(index, ProductIndexItem{
			ID:          id,
			Display:     display,
			NormDisplay: fuzzy.Normalize(display),
		})
	}

	filtered := make([]int, len(index))
	for i := range filtered {
		filtered[i] = i
	}

	if refreshInterval <= 0 {
		refreshInterval = 3 * time.Second
	}

	return &App{
		View:   ViewSearch,
		Status: "Loaded",
		Data: Data{
			Products:    products,
			LastUpdated: resp.LastUpdated,
			Index:       index,
		},
		Search: SearchState{
			Mode:            ModeInsert,
			FilteredIndices: filtered,
			NeedsFilter:     true,
			LastInputChange: time.Now(),
		},
		Detail: DetailState{
			History: make([]HistoryPoint, 0, HistoryCapacity),
			ShowSMA: true,
		},
		Updates:         make(chan bazaar.Product, updateQueueSize),
		fetch:           fetch,
		refreshInterval: refreshInterval,
		log:             log,
		now:             time.Now,
	}
}

// CurrentProduct resolves the detail product id against the shared map.
func (a *App) CurrentProduct() (bazaar.Product, bool) {
	if a.Detail.ProductID == "" {
		return bazaar.Product{}, false
	}
	p, ok := a.Data.Products[a.Detail.ProductID]
	return p, ok
}

// SelectedItem resolves the current selection to an index entry.
func (a *App) SelectedItem() (ProductIndexItem, bool) {
	if a.Search.SelectedIndex >= len(a.Search.FilteredIndices) {
		return ProductIndexItem{}, false
	}
	idx := a.Search.FilteredIndices[a.Search.SelectedIndex]
	if idx >= len(a.Data.Index) {
		return ProductIndexItem{}, false
	}
	return a.Data.Index[idx], true
}

// --- Search input ---

// OnInput appends a rune to the query and schedules a debounced re-filter.
func (a *App) OnInput(ch rune) {
	a.Search.Input += string(ch)
	a.markInputChanged()
}

// OnBackspace removes the last rune of the query.
func (a *App) OnBackspace() {
	runes := []rune(a.Search.Input)
	if len(runes) > 0 {
		a.Search.Input = string(runes[:len(runes)-1])
	}
	a.markInputChanged()
}

// OnDelete clears the query.
func (a *App) OnDelete() {
	a.Search.Input = ""
	a.markInputChanged()
}

func (a *App) markInputChanged() {
	a.Search.NeedsFilter = true
	a.Search.LastInputChange = a.now()
}

// MaybeApplyFilter re-ranks if an edit is pending and the debounce window
// has elapsed. Called from the periodic tick; this is the only automatic
// re-rank trigger for text edits.
func (a *App) MaybeApplyFilter(debounce time.Duration) {
	if a.Search.NeedsFilter && a.now().Sub(a.Search.LastInputChange) >= debounce {
		a.applyFilter()
		a.Search.NeedsFilter = false
	}
}

// RecomputeFilter forces an immediate re-rank, bypassing the debounce.
// Used when toggling the spread sort, which must reflect instantly.
func (a *App) RecomputeFilter() {
	a.applyFilter()
}

// ToggleSpreadSort flips the spread ordering and re-ranks immediately.
func (a *App) ToggleSpreadSort() {
	a.Search.SortBySpread = !a.Search.SortBySpread
	a.RecomputeFilter()
	if a.Search.SortBySpread {
		a.Status = "Sorted by spread"
	} else {
		a.Status = "Sorted by relevance"
	}
}

// --- Selection ---

// MoveSelection shifts the selection by delta, clamped to the result set.
func (a *App) MoveSelection(delta int) {
	count := len(a.Search.FilteredIndices)
	if count == 0 {
		return
	}
	idx := a.Search.SelectedIndex + delta
	if idx < 0 {
		idx = 0
	}
	if idx > count-1 {
		idx = count - 1
	}
	a.Search.SelectedIndex = idx
}

// JumpToTop selects the first result.
func (a *App) JumpToTop() {
	if len(a.Search.FilteredIndices) > 0 {
		a.Search.SelectedIndex = 0
	}
}

// JumpToBottom selects the last result.
func (a *App) JumpToBottom() {
	if count := len(a.Search.FilteredIndices); count > 0 {
		a.Search.SelectedIndex = count - 1
	}
}

// --- Detail lifecycle ---

// EnterDetail opens the detail view for the current selection, seeds the
// history from the cached quick status, and starts the background refresh.
// No-op when the filtered set is empty.
func (a *App) EnterDetail() {
	item, ok := a.SelectedItem()
	if !ok {
		return
	}
	a.Detail.ProductID = item.ID
	a.Detail.History = a.Detail.History[:0]
	if p, ok := a.Data.Products[item.ID]; ok {
		a.pushHistory(p.QuickStatus.BuyPrice, p.QuickStatus.SellPrice)
	}
	a.View = ViewDetail
	a.startRefresh(item.ID)
	a.Status = fmt.Sprintf("Detail: %s (refreshing every %s)", item.ID, a.refreshInterval)
}

// ExitDetail stops any active refresh and returns to the search view.
func (a *App) ExitDetail() {
	a.StopRefresh()
	a.View = ViewSearch
	a.Detail.ProductID = ""
	a.Detail.History = a.Detail.History[:0]
}

// UpdateProduct is the sole mutation path for incoming background data: it
// replaces the cached product and, when it matches the open detail session,
// appends a history point.
func (a *App) UpdateProduct(p bazaar.Product) {
	a.Data.Products[p.ProductID] = p

	if a.Detail.ProductID == p.ProductID {
		a.pushHistory(p.QuickStatus.BuyPrice, p.QuickStatus.SellPrice)
		a.Status = "Updated"
	}
}

// pushHistory appends a point, evicting the oldest once the ring is full.
func (a *App) pushHistory(buy, sell float64) {
	point := HistoryPoint{At: a.now(), Buy: buy, Sell: sell}
	if len(a.Detail.History) >= HistoryCapacity {
		a.Detail.History = append(a.Detail.History[1:], point)
		return
	}
	a.Detail.History = append(a.Detail.History, point)
}
