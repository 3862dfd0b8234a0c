package app

import (
	"context"
	"time"

	"github.com/oakwood-commons/bzx/internal/bazaar"
	"github.com/oakwood-commons/bzx/pkg/logger"
)

// Fetcher retrieves one full snapshot. It must honor context cancellation.
type Fetcher func(ctx context.Context) (*bazaar.Response, error)

// startRefresh launches the periodic poll for one detail session. Any
// previous session's poll is stopped first so at most one loop is ever
// alive.
func (a *App) startRefresh(productID string) {
	a.StopRefresh()

	ctx, cancel := context.WithCancel(context.Background())
	a.Detail.stopRefresh = cancel
	go a.pollLoop(ctx, productID)
}

// StopRefresh cancels the active poll, if any. The cancellation also aborts
// an in-flight fetch, so the loop never outlives the session.
func (a *App) StopRefresh() {
	if a.Detail.stopRefresh != nil {
		a.Detail.stopRefresh()
		a.Detail.stopRefresh = nil
	}
}

// pollLoop fetches the snapshot once per interval and forwards the matching
// product. Fetch failures are logged at V(1) and otherwise swallowed; the
// next tick is the retry.
func (a *App) pollLoop(ctx context.Context, productID string) {
	ticker := time.NewTicker(a.refreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.fetchAndForward(ctx, productID)
		}
	}
}

// ManualRefresh issues one fire-and-forget fetch for the open detail
// product, funneled through the same update path as the periodic poll.
func (a *App) ManualRefresh() {
	if a.View != ViewDetail || a.Detail.ProductID == "" {
		return
	}
	go a.fetchAndForward(context.Background(), a.Detail.ProductID)
	a.Status = "Refreshing..."
}

func (a *App) fetchAndForward(ctx context.Context, productID string) {
	resp, err := a.fetch(ctx)
	if err != nil {
		if a.log != nil {
			a.log.V(1).Info("background refresh failed", logger.ProductKey, productID, "error", err.Error())
		}
		return
	}
	p, ok := resp.Products[productID]
	if !ok {
		return
	}
	select {
	case a.Updates <- p:
	default:
		// Receiver is behind; the next tick re-delivers fresher data anyway.
	}
}
