package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/seasurvey/transect-backend-go/internal/database"
	"github.com/seasurvey/transect-backend-go/internal/models"
)

// newTestDB opens a file-backed SQLite database with the schema applied and
// reference rows for vessels V1, V2 and observers O1, O2.
func newTestDB(t *testing.T) *database.DB {
	t.Helper()
	ctx := context.Background()

	db, err := database.Open(ctx, database.Config{
		Driver: "sqlite",
		Path:   filepath.Join(t.TempDir(), "survey.db"),
	}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, db.EnsureSchema(ctx))

	for _, stmt := range []string{
		`INSERT INTO vessel (id, name) VALUES ('V1', 'Kittiwake'), ('V2', 'Fulmar')`,
		`INSERT INTO observer (id, name) VALUES ('O1', 'Ada'), ('O2', 'Grace')`,
	} {
		_, err := db.Conn().ExecContext(ctx, stmt)
		require.NoError(t, err)
	}
	return db
}

func ptr[T any](v T) *T { return &v }

// sampleTransect covers every field, including both set and unset optionals
func sampleTransect(id string) *models.Transect {
	return &models.Transect{
		ID:          id,
		StartDate:   1717245000,
		EndDate:     1717248600,
		StartLat:    56.125,
		StartLon:    -2.5,
		EndLat:      56.3,
		EndLon:      -2.25,
		Bearing:     42,
		VesselID:    "V1",
		Observer1ID: "O1",
		Observer2ID: ptr("O2"),
		Observations: []models.Observation{
			{
				ID:           id + "-obs1",
				TransectID:   id,
				ObsType:      models.ObsTypeSighting,
				Date:         1717245600,
				Lat:          56.15,
				Lon:          -2.45,
				Bearing:      ptr(int64(270)),
				Count:        ptr(int64(3)),
				DistanceKm:   ptr(float32(0.4)),
				GroupType:    ptr("pod"),
				BeaufortType: ptr("2"),
			},
			{
				ID:          id + "-obs2",
				TransectID:  id,
				ObsType:     "Weather",
				Date:        1717246200,
				Lat:         56.2,
				Lon:         -2.4,
				WeatherType: ptr("overcast"),
			},
		},
	}
}
