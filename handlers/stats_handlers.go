package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/D6nnisAd/Celeste-Emerald/models"
	"github.com/D6nnisAd/Celeste-Emerald/stats"
	"github.com/D6nnisAd/Celeste-Emerald/utils"
)

const (
	recentVisitsLimit  = 50
	referrerDisplayMax = 30
	recentQueryTimeout = 10 * time.Second
)

// RecentReader fetches the bounded recent window of the visit log.
type RecentReader interface {
	RecentEvents(ctx context.Context, limit int) ([]models.VisitEvent, error)
}

type StatsHandlers struct {
	Poller *stats.Poller
	Events RecentReader
}

func NewStatsHandlers(poller *stats.Poller, events RecentReader) *StatsHandlers {
	return &StatsHandlers{Poller: poller, Events: events}
}

// GetDashboard serves the five aggregate counts. Opening the analytics view
// activates the poller and forces an immediate refresh, so the first response
// is never stale. All five counts succeed together or the request fails.
func (h *StatsHandlers) GetDashboard(c *gin.Context) {
	snapshot, err := h.Poller.Activate(c.Request.Context())
	if err != nil {
		log.Printf("Error refreshing dashboard stats: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve visit statistics"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stats": snapshot,
		"display": gin.H{
			"totalVisits":   utils.GroupThousands(snapshot.TotalVisits),
			"newVisitors":   utils.GroupThousands(snapshot.NewVisitors),
			"visitsToday":   utils.GroupThousands(snapshot.VisitsToday),
			"registerViews": utils.GroupThousands(snapshot.RegisterViews),
			"checkoutViews": utils.GroupThousands(snapshot.CheckoutViews),
		},
	})
}

// GetRecentVisits serves the 50 most recent events as pre-formatted table rows.
func (h *StatsHandlers) GetRecentVisits(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), recentQueryTimeout)
	defer cancel()

	events, err := h.Events.RecentEvents(ctx, recentVisitsLimit)
	if err != nil {
		log.Printf("Error fetching recent visits: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve recent visits"})
		return
	}

	rows := make([]models.RecentVisitRow, 0, len(events))
	for i := range events {
		event := &events[i]
		rows = append(rows, models.RecentVisitRow{
			Time:      event.Timestamp.Format("3:04 PM"),
			Date:      event.Timestamp.Format("Jan 2, 2006"),
			Page:      utils.PageLabel(event),
			Status:    event.Status,
			Referrer:  utils.TruncateReferrer(event.Referrer, referrerDisplayMax),
			VisitorID: utils.ShortVisitorID(event.VisitorID),
		})
	}

	c.JSON(http.StatusOK, gin.H{"visits": rows})
}
