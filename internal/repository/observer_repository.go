package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/seasurvey/transect-backend-go/internal/database"
	"github.com/seasurvey/transect-backend-go/internal/models"
)

// ObserverRepository reads the observer lookup table
type ObserverRepository struct {
	db         *database.DB
	selectByID string
}

// NewObserverRepository creates a new observer repository
func NewObserverRepository(db *database.DB) *ObserverRepository {
	return &ObserverRepository{
		db:         db,
		selectByID: rebind(db.Dialect(), `SELECT id, name FROM observer WHERE id = ?`),
	}
}

// GetAllObservers retrieves every observer ordered by id
func (r *ObserverRepository) GetAllObservers(ctx context.Context) ([]models.Observer, error) {
	rows, err := r.db.Conn().QueryContext(ctx, `SELECT id, name FROM observer ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query observers: %w", err)
	}
	defer rows.Close()

	observers := make([]models.Observer, 0)
	for rows.Next() {
		var o models.Observer
		if err := rows.Scan(&o.ID, &o.Name); err != nil {
			return nil, fmt.Errorf("failed to scan observer: %w", err)
		}
		observers = append(observers, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating observer rows: %w", err)
	}

	return observers, nil
}

// GetObserverByID retrieves a single observer. Returns (nil, nil) when absent.
func (r *ObserverRepository) GetObserverByID(ctx context.Context, id string) (*models.Observer, error) {
	var o models.Observer
	err := r.db.Conn().QueryRowContext(ctx, r.selectByID, id).Scan(&o.ID, &o.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get observer: %w", err)
	}
	return &o, nil
}
