package store

import (
	"database/sql"
	"strconv"
)

// Setting keys used by the application.
const (
	SettingTheme            = "theme"
	SettingCooldownMs       = "cooldown_ms"
	SettingTouchRadius      = "touch_radius"
	SettingShowInstructions = "show_instructions"
)

// SettingsRepository provides key-value settings storage.
type SettingsRepository struct {
	db *sql.DB
}

// Settings returns the settings repository for this store.
func (s *Store) Settings() *SettingsRepository {
	return &SettingsRepository{db: s.db}
}

// Get retrieves a setting value by key.
func (r *SettingsRepository) Get(key string) (string, error) {
	var value string
	err := r.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", ErrNotFound
		}
		return "", err
	}
	return value, nil
}

// GetOrDefault retrieves a setting value, falling back when unset.
func (r *SettingsRepository) GetOrDefault(key, fallback string) string {
	value, err := r.Get(key)
	if err != nil {
		return fallback
	}
	return value
}

// GetInt retrieves a setting as an integer, falling back when unset or
// unparseable.
func (r *SettingsRepository) GetInt(key string, fallback int) int {
	value, err := r.Get(key)
	if err != nil {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}

// GetBool retrieves a setting as a boolean, falling back when unset or
// unparseable.
func (r *SettingsRepository) GetBool(key string, fallback bool) bool {
	value, err := r.Get(key)
	if err != nil {
		return fallback
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return b
}

// Set stores a setting value, replacing any existing value for the key.
func (r *SettingsRepository) Set(key, value string) error {
	_, err := r.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}

// All retrieves every stored setting.
func (r *SettingsRepository) All() (map[string]string, error) {
	rows, err := r.db.Query(`SELECT key, value FROM settings`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	settings := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		settings[key] = value
	}
	return settings, rows.Err()
}
