package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seasurvey/transect-backend-go/internal/models"
)

func TestTransectRepository_RoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := NewTransectRepository(newTestDB(t))

	original := sampleTransect("T1")
	require.NoError(t, repo.UpsertTransect(ctx, original))

	loaded, err := repo.GetTransectByID(ctx, "T1")
	require.NoError(t, err)
	require.NotNil(t, loaded)

	assert.Equal(t, *original, *loaded)
}

func TestTransectRepository_UpsertIsIdempotent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewTransectRepository(db)

	tr := sampleTransect("T1")
	require.NoError(t, repo.UpsertTransect(ctx, tr))
	once, err := repo.GetAllTransects(ctx)
	require.NoError(t, err)

	require.NoError(t, repo.UpsertTransect(ctx, tr))
	twice, err := repo.GetAllTransects(ctx)
	require.NoError(t, err)

	assert.Equal(t, once, twice)

	var rows int
	require.NoError(t, db.Conn().QueryRowContext(ctx, `SELECT COUNT(*) FROM observation`).Scan(&rows))
	assert.Equal(t, 2, rows)
}

func TestTransectRepository_UpsertReplacesAllFields(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := NewTransectRepository(newTestDB(t))

	require.NoError(t, repo.UpsertTransect(ctx, sampleTransect("T1")))

	updated := sampleTransect("T1")
	updated.EndDate = updated.StartDate + 60
	updated.Bearing = 180
	updated.VesselID = "V2"
	updated.Observer2ID = nil
	updated.Observations[0].Count = nil
	updated.Observations[0].GroupType = nil
	updated.Observations[0].ObsType = "Debris"
	require.NoError(t, repo.UpsertTransect(ctx, updated))

	loaded, err := repo.GetTransectByID(ctx, "T1")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, *updated, *loaded)
}

func TestTransectRepository_UpsertKeepsUnlistedObservations(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := NewTransectRepository(newTestDB(t))

	require.NoError(t, repo.UpsertTransect(ctx, sampleTransect("T1")))

	partial := sampleTransect("T1")
	partial.Observations = partial.Observations[1:]
	partial.Observations[0].WeatherType = ptr("rain")
	require.NoError(t, repo.UpsertTransect(ctx, partial))

	loaded, err := repo.GetTransectByID(ctx, "T1")
	require.NoError(t, err)
	require.Len(t, loaded.Observations, 2)
	assert.Equal(t, "T1-obs1", loaded.Observations[0].ID)
	assert.Equal(t, "rain", *loaded.Observations[1].WeatherType)
}

func TestTransectRepository_NotFound(t *testing.T) {
	t.Parallel()
	repo := NewTransectRepository(newTestDB(t))

	tr, err := repo.GetTransectByID(context.Background(), "nonexistent")
	require.NoError(t, err)
	assert.Nil(t, tr)
}

func TestTransectRepository_NoObservationsIsEmptyNotNil(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := NewTransectRepository(newTestDB(t))

	tr := sampleTransect("T1")
	tr.Observations = []models.Observation{}
	require.NoError(t, repo.UpsertTransect(ctx, tr))

	loaded, err := repo.GetTransectByID(ctx, "T1")
	require.NoError(t, err)
	require.NotNil(t, loaded.Observations)
	assert.Empty(t, loaded.Observations)

	all, err := repo.GetAllTransects(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.NotNil(t, all[0].Observations)
	assert.Empty(t, all[0].Observations)

	obs, err := repo.GetObservations(ctx, "unknown")
	require.NoError(t, err)
	assert.NotNil(t, obs)
	assert.Empty(t, obs)
}

func TestTransectRepository_ObservationOrder(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := NewTransectRepository(newTestDB(t))

	tr := sampleTransect("T1")
	// later date listed first, and two observations sharing a date
	tr.Observations[0].Date = 1717247000
	tr.Observations = append(tr.Observations, models.Observation{
		ID: "T1-obs0", TransectID: "T1", ObsType: "Weather", Date: 1717247000, Lat: 56.2, Lon: -2.4,
	})
	require.NoError(t, repo.UpsertTransect(ctx, tr))

	obs, err := repo.GetObservations(ctx, "T1")
	require.NoError(t, err)

	var ids []string
	for _, o := range obs {
		ids = append(ids, o.ID)
	}
	assert.Equal(t, []string{"T1-obs2", "T1-obs0", "T1-obs1"}, ids)
}

func TestTransectRepository_GetAllTransectsMatchesPerTransectReads(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := NewTransectRepository(newTestDB(t))

	t1 := sampleTransect("T1")
	t2 := sampleTransect("T2")
	t2.StartDate = t1.StartDate - 3600
	t2.EndDate = t1.StartDate
	t3 := sampleTransect("T3")
	t3.Observations = nil
	for _, tr := range []*models.Transect{t1, t2, t3} {
		require.NoError(t, repo.UpsertTransect(ctx, tr))
	}

	all, err := repo.GetAllTransects(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)

	// start_date, then id
	assert.Equal(t, "T2", all[0].ID)
	assert.Equal(t, "T1", all[1].ID)
	assert.Equal(t, "T3", all[2].ID)

	for _, got := range all {
		one, err := repo.GetTransectByID(ctx, got.ID)
		require.NoError(t, err)
		assert.Equal(t, *one, got, got.ID)
	}
}

func TestTransectRepository_OrphanObservationRollsBack(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewTransectRepository(db)

	tr := sampleTransect("T1")
	tr.Observations[1].TransectID = "ghost"

	err := repo.UpsertTransect(ctx, tr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "T1-obs2")

	loaded, err := repo.GetTransectByID(ctx, "T1")
	require.NoError(t, err)
	assert.Nil(t, loaded, "transect must not be stored when an observation fails")

	var rows int
	require.NoError(t, db.Conn().QueryRowContext(ctx, `SELECT COUNT(*) FROM observation`).Scan(&rows))
	assert.Zero(t, rows)
}

func TestTransectRepository_UnknownVesselFails(t *testing.T) {
	t.Parallel()
	repo := NewTransectRepository(newTestDB(t))

	tr := sampleTransect("T1")
	tr.VesselID = "V9"
	assert.Error(t, repo.UpsertTransect(context.Background(), tr))
}

func TestTransectRepository_UnstorableDatesRejected(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := NewTransectRepository(newTestDB(t))
	require.NoError(t, repo.UpsertTransect(ctx, sampleTransect("T1")))

	tests := []struct {
		name   string
		mutate func(*models.Transect)
	}{
		{"end after year 9999", func(tr *models.Transect) { tr.EndDate = models.MaxDate + 1 }},
		{"start before year 1", func(tr *models.Transect) { tr.StartDate = models.MinDate - 1 }},
		{"observation date", func(tr *models.Transect) { tr.Observations[1].Date = models.MaxDate + 1 }},
	}
	for _, tt := range tests {
		tr := sampleTransect("T2")
		tt.mutate(tr)
		assert.ErrorIs(t, repo.UpsertTransect(ctx, tr), ErrDateOutOfRange, tt.name)
	}

	missing, err := repo.GetTransectByID(ctx, "T2")
	require.NoError(t, err)
	assert.Nil(t, missing)

	all, err := repo.GetAllTransects(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "T1", all[0].ID)
}

func TestTransectRepository_DateBoundsRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := NewTransectRepository(newTestDB(t))

	tr := sampleTransect("T1")
	tr.StartDate = models.MinDate
	tr.EndDate = models.MaxDate
	tr.Observations[0].Date = -1
	require.NoError(t, repo.UpsertTransect(ctx, tr))

	loaded, err := repo.GetTransectByID(ctx, "T1")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, models.MinDate, loaded.StartDate)
	assert.Equal(t, models.MaxDate, loaded.EndDate)
	assert.Contains(t, []int64{loaded.Observations[0].Date, loaded.Observations[1].Date}, int64(-1))
}

func TestTransectRepository_NegativeDurationStoredAsIs(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := NewTransectRepository(newTestDB(t))

	tr := sampleTransect("T1")
	tr.StartDate, tr.EndDate = tr.EndDate, tr.StartDate
	require.NoError(t, repo.UpsertTransect(ctx, tr))

	loaded, err := repo.GetTransectByID(ctx, "T1")
	require.NoError(t, err)
	assert.Equal(t, int64(-3600), loaded.DurationSeconds())
}

func TestTransectRepository_ConcurrentUpsertsAndReads(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := NewTransectRepository(newTestDB(t))

	const workers = 8
	var wg sync.WaitGroup
	errs := make(chan error, workers*2)
	for i := 0; i < workers; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			errs <- repo.UpsertTransect(ctx, sampleTransect(fmt.Sprintf("T%d", i)))
		}(i)
		go func() {
			defer wg.Done()
			_, err := repo.GetAllTransects(ctx)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	all, err := repo.GetAllTransects(ctx)
	require.NoError(t, err)
	assert.Len(t, all, workers)
}
