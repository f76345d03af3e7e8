package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/seasurvey/transect-backend-go/internal/database"
	"github.com/seasurvey/transect-backend-go/internal/models"
)

// VesselRepository reads the vessel reference table and the vessel-scoped
// transect data the aggregate calculator needs
type VesselRepository struct {
	db *database.DB

	selectVessels     string
	selectVessel      string
	selectTransects   string
	selectSightingSum string
}

// NewVesselRepository creates a new vessel repository
func NewVesselRepository(db *database.DB) *VesselRepository {
	d := db.Dialect()
	return &VesselRepository{
		db:            db,
		selectVessels: `SELECT id, name FROM vessel ORDER BY id`,
		selectVessel:  rebind(d, `SELECT id, name FROM vessel WHERE id = ?`),
		selectTransects: rebind(d, fmt.Sprintf(
			`SELECT %s FROM transect WHERE vessel_id = ? ORDER BY start_date, id`,
			strings.Join(transectColumns, ", "))),
		selectSightingSum: rebind(d, `SELECT COUNT(o.id), COALESCE(SUM(o.count), 0)
			FROM observation o
			INNER JOIN transect t ON o.transect_id = t.id
			WHERE t.vessel_id = ? AND o.obs_type = ?`),
	}
}

// GetAllVessels retrieves every vessel ordered by id
func (r *VesselRepository) GetAllVessels(ctx context.Context) ([]models.Vessel, error) {
	rows, err := r.db.Conn().QueryContext(ctx, r.selectVessels)
	if err != nil {
		return nil, fmt.Errorf("failed to query vessels: %w", err)
	}
	defer rows.Close()

	vessels := make([]models.Vessel, 0)
	for rows.Next() {
		var v models.Vessel
		if err := rows.Scan(&v.ID, &v.Name); err != nil {
			return nil, fmt.Errorf("failed to scan vessel: %w", err)
		}
		vessels = append(vessels, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating vessel rows: %w", err)
	}

	return vessels, nil
}

// GetVesselByID retrieves a single vessel. Returns (nil, nil) when absent.
func (r *VesselRepository) GetVesselByID(ctx context.Context, id string) (*models.Vessel, error) {
	var v models.Vessel
	err := r.db.Conn().QueryRowContext(ctx, r.selectVessel, id).Scan(&v.ID, &v.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get vessel: %w", err)
	}
	return &v, nil
}

// ListTransectsByVessel retrieves a vessel's transects without their
// observations. Each Observations slice is empty, not nil.
func (r *VesselRepository) ListTransectsByVessel(ctx context.Context, vesselID string) ([]models.Transect, error) {
	rows, err := r.db.Conn().QueryContext(ctx, r.selectTransects, vesselID)
	if err != nil {
		return nil, fmt.Errorf("failed to query vessel transects: %w", err)
	}
	defer rows.Close()

	transects := make([]models.Transect, 0)
	for rows.Next() {
		t, err := scanTransect(rows)
		if err != nil {
			return nil, err
		}
		t.Observations = []models.Observation{}
		transects = append(transects, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating vessel transect rows: %w", err)
	}

	return transects, nil
}

// GetSightingTotals counts the Sighting observations across a vessel's
// transects and sums their animal counts. NULL counts add nothing and a
// vessel without sightings yields zeros.
func (r *VesselRepository) GetSightingTotals(ctx context.Context, vesselID string) (models.SightingTotals, error) {
	var totals models.SightingTotals
	err := r.db.Conn().QueryRowContext(ctx, r.selectSightingSum, vesselID, models.ObsTypeSighting).
		Scan(&totals.Sightings, &totals.Animals)
	if err != nil {
		return totals, fmt.Errorf("failed to sum sightings: %w", err)
	}
	return totals, nil
}
