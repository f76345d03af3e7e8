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

var transectColumns = []string{
	"id", "start_date", "end_date", "bearing",
	"start_lat", "start_lon", "end_lat", "end_lon",
	"vessel_id", "observer1_id", "observer2_id",
}

var observationColumns = []string{
	"id", "transect_id", "obs_type", "date", "bearing", "count",
	"lat", "lon", "distance_km", "group_type", "beaufort_type", "weather_type",
}

// TransectRepository handles database operations for transects and their
// observations
type TransectRepository struct {
	db *database.DB

	selectObservations string
	selectTransect     string
	selectAllJoined    string
	upsertTransect     string
	upsertObservation  string
}

// NewTransectRepository creates a new transect repository
func NewTransectRepository(db *database.DB) *TransectRepository {
	d := db.Dialect()
	return &TransectRepository{
		db: db,
		selectObservations: rebind(d, fmt.Sprintf(
			`SELECT %s FROM observation WHERE transect_id = ? ORDER BY date, id`,
			strings.Join(observationColumns, ", "))),
		selectTransect: rebind(d, fmt.Sprintf(
			`SELECT %s FROM transect WHERE id = ?`,
			strings.Join(transectColumns, ", "))),
		selectAllJoined: fmt.Sprintf(
			`SELECT %s, %s FROM transect t
			LEFT JOIN observation o ON o.transect_id = t.id
			ORDER BY t.start_date, t.id, o.date, o.id`,
			qualify("t", transectColumns), qualify("o", observationColumns)),
		upsertTransect:    upsertStatement(d, "transect", transectColumns),
		upsertObservation: upsertStatement(d, "observation", observationColumns),
	}
}

// GetObservations retrieves the observations of a transect ordered by date then id.
// An unknown transect yields an empty slice.
func (r *TransectRepository) GetObservations(ctx context.Context, transectID string) ([]models.Observation, error) {
	rows, err := r.db.Conn().QueryContext(ctx, r.selectObservations, transectID)
	if err != nil {
		return nil, fmt.Errorf("failed to query observations: %w", err)
	}
	defer rows.Close()

	observations := make([]models.Observation, 0)
	for rows.Next() {
		o, err := scanObservation(rows)
		if err != nil {
			return nil, err
		}
		observations = append(observations, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating observation rows: %w", err)
	}

	return observations, nil
}

// GetTransectByID retrieves a single transect with its observations.
// Returns (nil, nil) when no row matches.
func (r *TransectRepository) GetTransectByID(ctx context.Context, id string) (*models.Transect, error) {
	t, err := scanTransect(r.db.Conn().QueryRowContext(ctx, r.selectTransect, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	t.Observations, err = r.GetObservations(ctx, t.ID)
	if err != nil {
		return nil, err
	}

	return &t, nil
}

// GetAllTransects retrieves every transect with its observations, ordered by
// start date then id. One LEFT JOIN query replaces a per-transect observation
// fetch; rows of a transect are contiguous and grouped in memory.
func (r *TransectRepository) GetAllTransects(ctx context.Context) ([]models.Transect, error) {
	rows, err := r.db.Conn().QueryContext(ctx, r.selectAllJoined)
	if err != nil {
		return nil, fmt.Errorf("failed to query transects: %w", err)
	}
	defer rows.Close()

	transects := make([]models.Transect, 0)
	for rows.Next() {
		t, o, err := scanTransectWithObservation(rows)
		if err != nil {
			return nil, err
		}

		if n := len(transects); n == 0 || transects[n-1].ID != t.ID {
			t.Observations = make([]models.Observation, 0)
			transects = append(transects, t)
		}
		if o != nil {
			last := &transects[len(transects)-1]
			last.Observations = append(last.Observations, *o)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transect rows: %w", err)
	}

	return transects, nil
}

// UpsertTransect inserts or fully replaces a transect and each of its
// observations, keyed on id, in a single transaction. Stored observations
// missing from t.Observations are left untouched.
//
// The transect row is written before its observations so that a new
// transect satisfies the observation foreign key; inside the transaction
// the order is not observable to other readers.
func (r *TransectRepository) UpsertTransect(ctx context.Context, t *models.Transect) error {
	return r.db.Transaction(ctx, func(tx *sql.Tx) error {
		if err := r.writeTransect(ctx, tx, t); err != nil {
			return err
		}
		for i := range t.Observations {
			if err := r.writeObservation(ctx, tx, &t.Observations[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *TransectRepository) writeTransect(ctx context.Context, db DBTX, t *models.Transect) error {
	start, err := formatDate(t.StartDate)
	if err != nil {
		return fmt.Errorf("transect %s start_date: %w", t.ID, err)
	}
	end, err := formatDate(t.EndDate)
	if err != nil {
		return fmt.Errorf("transect %s end_date: %w", t.ID, err)
	}

	_, err = db.ExecContext(ctx, r.upsertTransect,
		t.ID, start, end, t.Bearing,
		float64(t.StartLat), float64(t.StartLon), float64(t.EndLat), float64(t.EndLon),
		t.VesselID, t.Observer1ID, nullString(t.Observer2ID),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert transect %s: %w", t.ID, err)
	}
	return nil
}

func (r *TransectRepository) writeObservation(ctx context.Context, db DBTX, o *models.Observation) error {
	date, err := formatDate(o.Date)
	if err != nil {
		return fmt.Errorf("observation %s date: %w", o.ID, err)
	}

	_, err = db.ExecContext(ctx, r.upsertObservation,
		o.ID, o.TransectID, o.ObsType, date,
		nullInt64(o.Bearing), nullInt64(o.Count),
		float64(o.Lat), float64(o.Lon), nullFloat32(o.DistanceKm),
		nullString(o.GroupType), nullString(o.BeaufortType), nullString(o.WeatherType),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert observation %s: %w", o.ID, err)
	}
	return nil
}

// scanTransect reads the transectColumns projection. Observations are left nil.
func scanTransect(row rowScanner) (models.Transect, error) {
	var t models.Transect
	var start, end epochTime
	err := row.Scan(
		&t.ID, &start, &end, &t.Bearing,
		&t.StartLat, &t.StartLon, &t.EndLat, &t.EndLon,
		&t.VesselID, &t.Observer1ID, &t.Observer2ID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return t, err
	}
	if err != nil {
		return t, fmt.Errorf("failed to scan transect: %w", err)
	}

	t.StartDate = int64(start)
	t.EndDate = int64(end)
	return t, nil
}

func scanObservation(row rowScanner) (models.Observation, error) {
	var o models.Observation
	var date epochTime
	err := row.Scan(
		&o.ID, &o.TransectID, &o.ObsType, &date, &o.Bearing, &o.Count,
		&o.Lat, &o.Lon, &o.DistanceKm, &o.GroupType, &o.BeaufortType, &o.WeatherType,
	)
	if err != nil {
		return o, fmt.Errorf("failed to scan observation: %w", err)
	}

	o.Date = int64(date)
	return o, nil
}

// scanTransectWithObservation reads one row of the LEFT JOIN. The observation
// is nil for a transect without observations.
func scanTransectWithObservation(row rowScanner) (models.Transect, *models.Observation, error) {
	var t models.Transect
	var start, end epochTime

	var (
		obsID, obsTransectID, obsType *string
		obsDate                       *epochTime
		obsLat, obsLon                *float32
		o                             models.Observation
	)

	err := row.Scan(
		&t.ID, &start, &end, &t.Bearing,
		&t.StartLat, &t.StartLon, &t.EndLat, &t.EndLon,
		&t.VesselID, &t.Observer1ID, &t.Observer2ID,
		&obsID, &obsTransectID, &obsType, &obsDate, &o.Bearing, &o.Count,
		&obsLat, &obsLon, &o.DistanceKm, &o.GroupType, &o.BeaufortType, &o.WeatherType,
	)
	if err != nil {
		return t, nil, fmt.Errorf("failed to scan transect row: %w", err)
	}
	t.StartDate = int64(start)
	t.EndDate = int64(end)

	if obsID == nil {
		return t, nil, nil
	}
	if obsTransectID == nil || obsType == nil || obsDate == nil || obsLat == nil || obsLon == nil {
		return t, nil, fmt.Errorf("observation %s has NULL required columns", *obsID)
	}

	o.ID = *obsID
	o.TransectID = *obsTransectID
	o.ObsType = *obsType
	o.Date = int64(*obsDate)
	o.Lat = *obsLat
	o.Lon = *obsLon
	return t, &o, nil
}
