// Package bazaar talks to the Hypixel SkyBlock bazaar API and defines the
// wire-level snapshot types shared with the rest of the application.
package bazaar

// Response is one full bazaar snapshot as returned by the API.
type Response struct {
	Success     bool               `json:"success"`
	Cause       string             `json:"cause,omitempty"`
	LastUpdated int64              `json:"lastUpdated"`
	Products    map[string]Product `json:"products"`
}

// Product holds the order book summaries and quick status for one item.
type Product struct {
	ProductID   string         `json:"product_id"`
	SellSummary []OrderSummary `json:"sell_summary"`
	BuySummary  []OrderSummary `json:"buy_summary"`
	QuickStatus QuickStatus    `json:"quick_status"`
}

// OrderSummary is one aggregated order book row.
type OrderSummary struct {
	Amount       int64   `json:"amount"`
	PricePerUnit float64 `json:"pricePerUnit"`
	Orders       int64   `json:"orders"`
}

// QuickStatus carries the summary pricing and volume fields for one item.
type QuickStatus struct {
	ProductID      string  `json:"productId"`
	SellPrice      float64 `json:"sellPrice"`
	SellVolume     int64   `json:"sellVolume"`
	SellMovingWeek int64   `json:"sellMovingWeek"`
	SellOrders     int64   `json:"sellOrders"`
	BuyPrice       float64 `json:"buyPrice"`
	BuyVolume      int64   `json:"buyVolume"`
	BuyMovingWeek  int64   `json:"buyMovingWeek"`
	BuyOrders      int64   `json:"buyOrders"`
}

// Spread returns the sell price minus the buy price.
func (q QuickStatus) Spread() float64 {
	return q.SellPrice - q.BuyPrice
}
