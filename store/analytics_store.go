package store

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/D6nnisAd/Celeste-Emerald/database"
	"github.com/D6nnisAd/Celeste-Emerald/models"
)

type AnalyticsStore struct {
	DB *database.ClickHouseClient
}

func NewAnalyticsStore(chClient *database.ClickHouseClient) *AnalyticsStore {
	return &AnalyticsStore{
		DB: chClient,
	}
}

// CountFilter narrows an aggregate count query. Zero-value fields are not
// applied, so the empty filter counts every event.
type CountFilter struct {
	Status   string
	PageType string
	Since    time.Time
}

// InsertEvent appends one visit event to the log. Events are never updated
// or deleted afterwards.
func (s *AnalyticsStore) InsertEvent(ctx context.Context, event *models.VisitEvent) error {
	batch, err := s.DB.Conn.PrepareBatch(ctx, `
		INSERT INTO analytics_logs (
			event_id, page_name, page_type, url, timestamp, referrer,
			visitor_id, status, user_agent, is_bot, screen_width
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}

	err = batch.Append(
		event.EventID,
		event.PageName,
		event.PageType,
		event.URL,
		event.Timestamp,
		event.Referrer,
		event.VisitorID,
		event.Status,
		event.UserAgent,
		event.IsBot,
		event.ScreenWidth,
	)
	if err != nil {
		return fmt.Errorf("failed to append event %s: %w", event.EventID, err)
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("failed to send event: %w", err)
	}

	log.Printf("Visit event logged: visitor=%s page_type=%s status=%s", event.VisitorID, event.PageType, event.Status)
	return nil
}

// CountEvents returns the number of events matching the filter without
// transferring the matched rows.
func (s *AnalyticsStore) CountEvents(ctx context.Context, filter CountFilter) (uint64, error) {
	query := `SELECT count() FROM analytics_logs WHERE 1 = 1`
	var args []interface{}

	if filter.Status != "" {
		query += ` AND status = ?`
		args = append(args, filter.Status)
	}
	if filter.PageType != "" {
		query += ` AND page_type = ?`
		args = append(args, filter.PageType)
	}
	if !filter.Since.IsZero() {
		query += ` AND timestamp >= ?`
		args = append(args, filter.Since)
	}

	var count uint64
	if err := s.DB.Conn.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count events: %w", err)
	}

	return count, nil
}

// RecentEvents returns the limit most recent events, newest first.
func (s *AnalyticsStore) RecentEvents(ctx context.Context, limit int) ([]models.VisitEvent, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT event_id, page_name, page_type, url, timestamp, referrer,
			visitor_id, status, user_agent, is_bot, screen_width
		FROM analytics_logs
		ORDER BY timestamp DESC
		LIMIT ?
	`
	rows, err := s.DB.Conn.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent events: %w", err)
	}
	defer rows.Close()

	var results []models.VisitEvent
	for rows.Next() {
		var event models.VisitEvent
		if err := rows.Scan(
			&event.EventID,
			&event.PageName,
			&event.PageType,
			&event.URL,
			&event.Timestamp,
			&event.Referrer,
			&event.VisitorID,
			&event.Status,
			&event.UserAgent,
			&event.IsBot,
			&event.ScreenWidth,
		); err != nil {
			log.Printf("Error scanning recent event row: %v", err)
			continue
		}
		results = append(results, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row error during recent events query: %w", err)
	}

	return results, nil
}
