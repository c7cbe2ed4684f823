package models

import "time"

// Page type labels written by the tracker so the dashboard can count
// funnel stages server-side without scanning URLs.
const (
	PageTypeRegister = "Register"
	PageTypeCheckout = "Checkout"
	PageTypeHome     = "Home"
	PageTypeOther    = "Other"
)

// Visitor status labels.
const (
	StatusNew       = "New"
	StatusReturning = "Returning"
)

// VisitEvent is one tracked page view. Events are append-only: the tracker
// writes them and the admin dashboard only reads them back in aggregate or
// as a bounded recent window.
type VisitEvent struct {
	EventID     string    `json:"eventId"`
	PageName    string    `json:"page_name"`
	PageType    string    `json:"page_type"`
	URL         string    `json:"url"`
	Timestamp   time.Time `json:"timestamp"`
	Referrer    string    `json:"referrer"`
	VisitorID   string    `json:"visitor_id"`
	Status      string    `json:"status"`
	UserAgent   string    `json:"user_agent"`
	IsBot       bool      `json:"is_bot"`
	ScreenWidth int32     `json:"screen_width"`
}

// TrackRequest is the payload the tracking snippet posts for each page view.
// Identity and dedup state travel in cookies, not in the body.
type TrackRequest struct {
	PageName    string `json:"page_name"`
	URL         string `json:"url" binding:"required"`
	Path        string `json:"path" binding:"required"`
	Referrer    string `json:"referrer"`
	ScreenWidth int32  `json:"screen_width"`
}

// DashboardStats is the fan-in result of the five aggregate count queries.
// All five are populated together or not at all.
type DashboardStats struct {
	TotalVisits   uint64 `json:"totalVisits"`
	NewVisitors   uint64 `json:"newVisitors"`
	VisitsToday   uint64 `json:"visitsToday"`
	RegisterViews uint64 `json:"registerViews"`
	CheckoutViews uint64 `json:"checkoutViews"`
}

// RecentVisitRow is one pre-formatted row of the recent-events table.
type RecentVisitRow struct {
	Time      string `json:"time"`
	Date      string `json:"date"`
	Page      string `json:"page"`
	Status    string `json:"status"`
	Referrer  string `json:"referrer"`
	VisitorID string `json:"visitorId"`
}
