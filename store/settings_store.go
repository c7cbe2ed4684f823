package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/D6nnisAd/Celeste-Emerald/models"
)

var ErrSettingsNotFound = errors.New("settings record not found")

// settingsKey is the fixed identifier of the singleton settings row.
const settingsKey = "global"

type SettingsStore struct {
	db *sql.DB
}

func NewSettingsStore(db *sql.DB) *SettingsStore {
	return &SettingsStore{db: db}
}

// Get fetches the singleton settings record. ErrSettingsNotFound means the
// record has never been saved; callers fall back to zero-value defaults.
func (s *SettingsStore) Get(ctx context.Context) (*models.Settings, error) {
	settings := &models.Settings{}
	query := `
		SELECT enable_paystack, support_link, bank_name, account_number, account_name, last_updated
		FROM settings
		WHERE key = $1;
	`
	err := s.db.QueryRowContext(ctx, query, settingsKey).Scan(
		&settings.EnablePaystack,
		&settings.SupportLink,
		&settings.BankName,
		&settings.AccountNumber,
		&settings.AccountName,
		&settings.LastUpdated,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrSettingsNotFound
		}
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	return settings, nil
}

// Save overwrites the singleton settings record wholesale, creating it on
// first save. LastUpdated is stamped here so every save strictly advances it.
func (s *SettingsStore) Save(ctx context.Context, settings *models.Settings) error {
	settings.LastUpdated = time.Now()
	query := `
		INSERT INTO settings (key, enable_paystack, support_link, bank_name, account_number, account_name, last_updated)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (key) DO UPDATE SET
			enable_paystack = EXCLUDED.enable_paystack,
			support_link = EXCLUDED.support_link,
			bank_name = EXCLUDED.bank_name,
			account_number = EXCLUDED.account_number,
			account_name = EXCLUDED.account_name,
			last_updated = EXCLUDED.last_updated;
	`
	_, err := s.db.ExecContext(ctx, query,
		settingsKey,
		settings.EnablePaystack,
		settings.SupportLink,
		settings.BankName,
		settings.AccountNumber,
		settings.AccountName,
		settings.LastUpdated,
	)
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("Settings saved (lastUpdated=%s)", settings.LastUpdated.Format(time.RFC3339))
	return nil
}
