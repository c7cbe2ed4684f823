package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/D6nnisAd/Celeste-Emerald/models"
	"github.com/D6nnisAd/Celeste-Emerald/tracker"
)

// visitorCookieMaxAge keeps the visitor token for a year so returning
// visitors are recognized across sessions.
const visitorCookieMaxAge = int(365 * 24 * time.Hour / time.Second)

// EventWriter is the append-only slice of the analytics store.
type EventWriter interface {
	InsertEvent(ctx context.Context, event *models.VisitEvent) error
}

type TrackHandlers struct {
	Events EventWriter
}

func NewTrackHandlers(events EventWriter) *TrackHandlers {
	return &TrackHandlers{Events: events}
}

// TrackVisit records at most one visit event per page per browsing session.
// It is best effort: storage failures are logged and the response is still a
// success so the tracking snippet never breaks a page.
func (h *TrackHandlers) TrackVisit(c *gin.Context) {
	var req models.TrackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("Error binding track request: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	// Session-scoped dedup: a repeat view of this page in the same browsing
	// session writes nothing.
	dedupCookie := tracker.DedupCookieName(req.Path)
	if _, err := c.Cookie(dedupCookie); err == nil {
		c.Status(http.StatusNoContent)
		return
	}

	visitorID, err := c.Cookie(tracker.VisitorCookie)
	status := models.StatusReturning
	if err != nil || visitorID == "" {
		visitorID = tracker.NewVisitorID()
		status = models.StatusNew
		c.SetCookie(tracker.VisitorCookie, visitorID, visitorCookieMaxAge, "/", "", false, false)
	}

	userAgent := c.Request.UserAgent()
	event := &models.VisitEvent{
		EventID:     uuid.New().String(),
		PageName:    req.PageName,
		PageType:    tracker.ClassifyPage(req.Path),
		URL:         req.URL,
		Timestamp:   time.Now(),
		Referrer:    tracker.NormalizeReferrer(req.Referrer),
		VisitorID:   visitorID,
		Status:      status,
		UserAgent:   userAgent,
		IsBot:       tracker.IsBot(userAgent),
		ScreenWidth: req.ScreenWidth,
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	if err := h.Events.InsertEvent(ctx, event); err != nil {
		// Swallowed: the visitor never sees tracker failures. The dedup
		// cookie is not set so a later load can retry.
		log.Printf("Tracker failed silently: %v", err)
		c.Status(http.StatusNoContent)
		return
	}

	// Max-Age omitted: the cookie lives only for this browsing session.
	c.SetCookie(dedupCookie, "true", 0, "/", "", false, false)
	c.Status(http.StatusNoContent)
}
