package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/scoutlabs/web3scout/internal/models"
)

// Store persists discovered alerts and subscriber preferences in sqlite.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS community_alerts (
	unique_id     TEXT PRIMARY KEY,
	title         TEXT NOT NULL,
	username      TEXT NOT NULL,
	description   TEXT NOT NULL,
	invite_link   TEXT NOT NULL,
	source        TEXT NOT NULL,
	member_count  INTEGER NOT NULL,
	size_category TEXT NOT NULL,
	analysis      TEXT NOT NULL,
	needs         TEXT NOT NULL,
	discovered_at TIMESTAMP NOT NULL,
	sent          INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS subscribers (
	chat_id       INTEGER PRIMARY KEY,
	subscribed_at TIMESTAMP NOT NULL,
	size_filters  TEXT NOT NULL,
	max_risk_tier TEXT NOT NULL,
	enabled       INTEGER NOT NULL DEFAULT 1
);
`

func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// sqlite tolerates a single writer only.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// InsertAlert stores a new alert record. It returns existed=true when a
// record with the same unique id was already present, leaving the stored
// row untouched.
func (s *Store) InsertAlert(ctx context.Context, rec models.AlertRecord) (existed bool, err error) {
	analysisJSON, err := json.Marshal(rec.Analysis)
	if err != nil {
		return false, fmt.Errorf("encoding analysis: %w", err)
	}
	needsJSON, err := json.Marshal(rec.Needs)
	if err != nil {
		return false, fmt.Errorf("encoding needs: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO community_alerts
		(unique_id, title, username, description, invite_link, source,
		 member_count, size_category, analysis, needs, discovered_at, sent)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0)`,
		rec.UniqueID,
		rec.Community.Title,
		rec.Community.Username,
		rec.Community.Description,
		rec.Community.InviteLink,
		rec.Community.Source,
		rec.Community.Metrics.MemberCount,
		string(rec.SizeCategory),
		string(analysisJSON),
		string(needsJSON),
		rec.DiscoveredAt.UTC(),
	)
	if err != nil {
		return false, fmt.Errorf("inserting alert: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 0, nil
}

// UnsentAlerts returns alerts that have not been delivered yet, oldest first.
func (s *Store) UnsentAlerts(ctx context.Context) ([]models.AlertRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT unique_id, title, username, description, invite_link, source,
		       member_count, size_category, analysis, needs, discovered_at, sent
		FROM community_alerts
		WHERE sent = 0
		ORDER BY discovered_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying unsent alerts: %w", err)
	}
	defer rows.Close()

	var records []models.AlertRecord
	for rows.Next() {
		rec, err := scanAlert(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// AlertByUsername returns the most recently discovered alert for a
// community username. Returns a wrapped sql.ErrNoRows when the community
// was never scanned.
func (s *Store) AlertByUsername(ctx context.Context, username string) (models.AlertRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT unique_id, title, username, description, invite_link, source,
		       member_count, size_category, analysis, needs, discovered_at, sent
		FROM community_alerts
		WHERE username = ? COLLATE NOCASE
		ORDER BY discovered_at DESC
		LIMIT 1`, username)

	rec, err := scanAlert(row)
	if err != nil {
		return rec, fmt.Errorf("loading alert for %s: %w", username, err)
	}
	return rec, nil
}

// MarkSent flags an alert as delivered.
func (s *Store) MarkSent(ctx context.Context, uniqueID string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE community_alerts SET sent = 1 WHERE unique_id = ?`, uniqueID)
	if err != nil {
		return fmt.Errorf("marking alert sent: %w", err)
	}
	return nil
}

// AlertCount returns the total number of stored alerts and how many were sent.
func (s *Store) AlertCount(ctx context.Context) (total, sent int, err error) {
	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(sent), 0) FROM community_alerts`).Scan(&total, &sent)
	return total, sent, err
}

// rowScanner covers both sql.Row and sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanAlert(row rowScanner) (models.AlertRecord, error) {
	var (
		rec          models.AlertRecord
		sizeCategory string
		analysisJSON string
		needsJSON    string
		discoveredAt time.Time
		sent         int
	)
	err := row.Scan(
		&rec.UniqueID,
		&rec.Community.Title,
		&rec.Community.Username,
		&rec.Community.Description,
		&rec.Community.InviteLink,
		&rec.Community.Source,
		&rec.Community.Metrics.MemberCount,
		&sizeCategory,
		&analysisJSON,
		&needsJSON,
		&discoveredAt,
		&sent,
	)
	if err != nil {
		return rec, fmt.Errorf("scanning alert: %w", err)
	}

	if err := json.Unmarshal([]byte(analysisJSON), &rec.Analysis); err != nil {
		return rec, fmt.Errorf("decoding analysis: %w", err)
	}
	if err := json.Unmarshal([]byte(needsJSON), &rec.Needs); err != nil {
		return rec, fmt.Errorf("decoding needs: %w", err)
	}

	rec.SizeCategory = models.SizeCategory(sizeCategory)
	rec.DiscoveredAt = discoveredAt
	rec.Sent = sent == 1
	return rec, nil
}

// UpsertSubscriber creates or replaces a subscriber's preferences.
func (s *Store) UpsertSubscriber(ctx context.Context, sub models.Subscriber) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO subscribers (chat_id, subscribed_at, size_filters, max_risk_tier, enabled)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(chat_id) DO UPDATE SET
			size_filters = excluded.size_filters,
			max_risk_tier = excluded.max_risk_tier,
			enabled = excluded.enabled`,
		sub.ChatID,
		sub.SubscribedAt.UTC(),
		encodeSizeFilters(sub.SizeFilters),
		string(sub.MaxRiskTier),
		boolToInt(sub.Enabled),
	)
	if err != nil {
		return fmt.Errorf("upserting subscriber: %w", err)
	}
	return nil
}

// Subscriber returns the preferences for the given chat, or sql.ErrNoRows
// wrapped when none exist.
func (s *Store) Subscriber(ctx context.Context, chatID int64) (models.Subscriber, error) {
	var (
		sub     models.Subscriber
		filters string
		tier    string
		enabled int
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT chat_id, subscribed_at, size_filters, max_risk_tier, enabled
		FROM subscribers WHERE chat_id = ?`, chatID).
		Scan(&sub.ChatID, &sub.SubscribedAt, &filters, &tier, &enabled)
	if err != nil {
		return sub, fmt.Errorf("loading subscriber %d: %w", chatID, err)
	}

	sub.SizeFilters = decodeSizeFilters(filters)
	sub.MaxRiskTier = models.RiskTier(tier)
	sub.Enabled = enabled == 1
	return sub, nil
}

// Subscribers returns all enabled subscribers.
func (s *Store) Subscribers(ctx context.Context) ([]models.Subscriber, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT chat_id, subscribed_at, size_filters, max_risk_tier, enabled
		FROM subscribers WHERE enabled = 1`)
	if err != nil {
		return nil, fmt.Errorf("querying subscribers: %w", err)
	}
	defer rows.Close()

	var subs []models.Subscriber
	for rows.Next() {
		var (
			sub     models.Subscriber
			filters string
			tier    string
			enabled int
		)
		if err := rows.Scan(&sub.ChatID, &sub.SubscribedAt, &filters, &tier, &enabled); err != nil {
			return nil, fmt.Errorf("scanning subscriber: %w", err)
		}
		sub.SizeFilters = decodeSizeFilters(filters)
		sub.MaxRiskTier = models.RiskTier(tier)
		sub.Enabled = enabled == 1
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

// RemoveSubscriber disables delivery for the given chat.
func (s *Store) RemoveSubscriber(ctx context.Context, chatID int64) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE subscribers SET enabled = 0 WHERE chat_id = ?`, chatID)
	if err != nil {
		return fmt.Errorf("removing subscriber %d: %w", chatID, err)
	}
	return nil
}

func encodeSizeFilters(filters []models.SizeCategory) string {
	parts := make([]string, len(filters))
	for i, f := range filters {
		parts[i] = string(f)
	}
	return strings.Join(parts, ",")
}

func decodeSizeFilters(s string) []models.SizeCategory {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	filters := make([]models.SizeCategory, len(parts))
	for i, p := range parts {
		filters[i] = models.SizeCategory(p)
	}
	return filters
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
