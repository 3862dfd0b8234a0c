package app

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/bzx/internal/bazaar"
)

func TestPollLoopForwardsMatchingProduct(t *testing.T) {
	var calls atomic.Int64
	fetch := func(context.Context) (*bazaar.Response, error) {
		calls.Add(1)
		return snapshotWith(map[string][2]float64{"ENCHANTED_BOOK": {100, 130}}), nil
	}
	a := New(snapshotWith(defaultQuick()), fetch, 10*time.Millisecond, nil)
	defer a.StopRefresh()

	a.startRefresh("ENCHANTED_BOOK")

	select {
	case p := <-a.Updates:
		assert.Equal(t, "ENCHANTED_BOOK", p.ProductID)
	case <-time.After(2 * time.Second):
		t.Fatal("no update forwarded before timeout")
	}
	assert.GreaterOrEqual(t, calls.Load(), int64(1))
}

func TestPollLoopSwallowsFetchErrors(t *testing.T) {
	var calls atomic.Int64
	fetch := func(context.Context) (*bazaar.Response, error) {
		calls.Add(1)
		return nil, assert.AnError
	}
	a := New(snapshotWith(defaultQuick()), fetch, 5*time.Millisecond, nil)
	defer a.StopRefresh()

	a.startRefresh("ENCHANTED_BOOK")

	assert.Eventually(t, func() bool { return calls.Load() >= 3 },
		2*time.Second, 5*time.Millisecond, "failed ticks must keep retrying")

	select {
	case <-a.Updates:
		t.Fatal("no product may be forwarded on fetch failure")
	default:
	}
}

func TestPollLoopSkipsMissingProduct(t *testing.T) {
	var calls atomic.Int64
	fetch := func(context.Context) (*bazaar.Response, error) {
		calls.Add(1)
		return snapshotWith(map[string][2]float64{"OTHER": {1, 2}}), nil
	}
	a := New(snapshotWith(defaultQuick()), fetch, 5*time.Millisecond, nil)
	defer a.StopRefresh()

	a.startRefresh("ENCHANTED_BOOK")

	assert.Eventually(t, func() bool { return calls.Load() >= 2 },
		2*time.Second, 5*time.Millisecond)

	select {
	case <-a.Updates:
		t.Fatal("product absent from snapshot must not be forwarded")
	default:
	}
}

func TestStopRefreshHaltsPolling(t *testing.T) {
	var calls atomic.Int64
	fetch := func(context.Context) (*bazaar.Response, error) {
		calls.Add(1)
		return snapshotWith(defaultQuick()), nil
	}
	a := New(snapshotWith(defaultQuick()), fetch, 5*time.Millisecond, nil)

	a.startRefresh("BOOK")
	require.Eventually(t, func() bool { return calls.Load() >= 1 },
		2*time.Second, time.Millisecond)

	a.StopRefresh()
	settled := calls.Load()
	time.Sleep(50 * time.Millisecond)
	assert.LessOrEqual(t, calls.Load(), settled+1, "at most one in-flight tick after stop")
	assert.Nil(t, a.Detail.stopRefresh)

	// Stopping again is a no-op.
	a.StopRefresh()
}

func TestStartRefreshReplacesPriorSession(t *testing.T) {
	var active atomic.Int64
	var maxActive atomic.Int64
	fetch := func(ctx context.Context) (*bazaar.Response, error) {
		cur := active.Add(1)
		for {
			prev := maxActive.Load()
			if cur <= prev || maxActive.CompareAndSwap(prev, cur) {
				break
			}
		}
		defer active.Add(-1)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Millisecond):
		}
		return snapshotWith(defaultQuick()), nil
	}
	a := New(snapshotWith(defaultQuick()), fetch, 2*time.Millisecond, nil)
	defer a.StopRefresh()

	a.startRefresh("BOOK")
	time.Sleep(10 * time.Millisecond)
	a.startRefresh("ENDER_PEARL")
	time.Sleep(10 * time.Millisecond)
	a.startRefresh("ENCHANTED_BOOK")
	time.Sleep(30 * time.Millisecond)

	// Replacement cancels the prior loop before starting the next; brief
	// overlap with a cancelled in-flight fetch is tolerated, steady-state
	// concurrency is one.
	assert.LessOrEqual(t, maxActive.Load(), int64(2))
}

func TestManualRefreshRequiresDetailView(t *testing.T) {
	var calls atomic.Int64
	fetch := func(context.Context) (*bazaar.Response, error) {
		calls.Add(1)
		return snapshotWith(defaultQuick()), nil
	}
	a := New(snapshotWith(defaultQuick()), fetch, time.Second, nil)

	a.ManualRefresh()
	time.Sleep(20 * time.Millisecond)
	assert.Zero(t, calls.Load(), "manual refresh is detail-view only")
	assert.NotEqual(t, "Refreshing...", a.Status)
}

func TestManualRefreshFunnelsThroughUpdates(t *testing.T) {
	fetch := func(context.Context) (*bazaar.Response, error) {
		return snapshotWith(map[string][2]float64{"ENCHANTED_BOOK": {105, 135}}), nil
	}
	a := New(snapshotWith(defaultQuick()), fetch, time.Hour, nil)
	defer a.StopRefresh()

	a.Search.SelectedIndex = 1
	a.EnterDetail()
	a.ManualRefresh()

	assert.Equal(t, "Refreshing...", a.Status)
	select {
	case p := <-a.Updates:
		assert.Equal(t, "ENCHANTED_BOOK", p.ProductID)
		assert.InDelta(t, 105, p.QuickStatus.BuyPrice, 1e-9)
	case <-time.After(2 * time.Second):
		t.Fatal("manual refresh did not deliver an update")
	}
}
