package store

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Calculation represents one completed calculation stored in the database.
type Calculation struct {
	ID         string
	Expression string
	Result     string
	CreatedAt  time.Time
}

// HistoryRepository provides persistence for completed calculations.
type HistoryRepository struct {
	db *sql.DB
}

// History returns the history repository for this store.
func (s *Store) History() *HistoryRepository {
	return &HistoryRepository{db: s.db}
}

// Add inserts a calculation. A missing ID is filled in with a new UUID.
func (r *HistoryRepository) Add(c *Calculation) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}

	_, err := r.db.Exec(
		`INSERT INTO history (id, expression, result, created_at)
		 VALUES (?, ?, ?, ?)`,
		c.ID, c.Expression, c.Result, c.CreatedAt,
	)
	return err
}

// Recent retrieves up to limit calculations, newest first.
func (r *HistoryRepository) Recent(limit int) ([]*Calculation, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := r.db.Query(
		`SELECT id, expression, result, created_at
		 FROM history ORDER BY created_at DESC, id LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var calcs []*Calculation
	for rows.Next() {
		c := &Calculation{}
		if err := rows.Scan(&c.ID, &c.Expression, &c.Result, &c.CreatedAt); err != nil {
			return nil, err
		}
		calcs = append(calcs, c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return calcs, nil
}

// GetByID retrieves one calculation.
func (r *HistoryRepository) GetByID(id string) (*Calculation, error) {
	c := &Calculation{}
	err := r.db.QueryRow(
		`SELECT id, expression, result, created_at FROM history WHERE id = ?`,
		id,
	).Scan(&c.ID, &c.Expression, &c.Result, &c.CreatedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

// Clear removes all stored calculations.
func (r *HistoryRepository) Clear() error {
	_, err := r.db.Exec(`DELETE FROM history`)
	return err
}

// Count returns the number of stored calculations.
func (r *HistoryRepository) Count() (int, error) {
	var n int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM history`).Scan(&n)
	return n, err
}
