// Package stats computes the admin dashboard aggregates from the visit log.
package stats

import (
	"context"
	"sync"
	"time"

	"github.com/D6nnisAd/Celeste-Emerald/models"
	"github.com/D6nnisAd/Celeste-Emerald/store"
)

// Counter is the slice of the analytics store the dashboard needs. It is an
// interface so the aggregation and polling logic can be tested against a fake.
type Counter interface {
	CountEvents(ctx context.Context, filter store.CountFilter) (uint64, error)
}

// StartOfToday returns local midnight for the given instant. The "today"
// count is anchored to the server's local day, matching the dashboard's
// framing of "visits today".
func StartOfToday(now time.Time) time.Time {
	year, month, day := now.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, now.Location())
}

// FetchDashboard issues the five aggregate count queries concurrently and
// joins them. If any one fails the whole fetch fails; a partially populated
// dashboard is never returned.
func FetchDashboard(ctx context.Context, counter Counter) (*models.DashboardStats, error) {
	filters := []store.CountFilter{
		{},
		{Status: models.StatusNew},
		{Since: StartOfToday(time.Now())},
		{PageType: models.PageTypeRegister},
		{PageType: models.PageTypeCheckout},
	}

	counts := make([]uint64, len(filters))
	errs := make([]error, len(filters))

	var wg sync.WaitGroup
	wg.Add(len(filters))
	for i, f := range filters {
		go func(i int, f store.CountFilter) {
			defer wg.Done()
			counts[i], errs[i] = counter.CountEvents(ctx, f)
		}(i, f)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return &models.DashboardStats{
		TotalVisits:   counts[0],
		NewVisitors:   counts[1],
		VisitsToday:   counts[2],
		RegisterViews: counts[3],
		CheckoutViews: counts[4],
	}, nil
}
