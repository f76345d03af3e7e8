package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/seasurvey/transect-backend-go/internal/metrics"
	"github.com/seasurvey/transect-backend-go/internal/models"
	"github.com/seasurvey/transect-backend-go/internal/spatial"
)

// vesselConcurrency bounds how many vessels are summarised at once
const vesselConcurrency = 4

// VesselStore is the persistence surface the aggregate calculator needs
type VesselStore interface {
	GetAllVessels(ctx context.Context) ([]models.Vessel, error)
	GetVesselByID(ctx context.Context, id string) (*models.Vessel, error)
	ListTransectsByVessel(ctx context.Context, vesselID string) ([]models.Transect, error)
	GetSightingTotals(ctx context.Context, vesselID string) (models.SightingTotals, error)
}

// VesselService computes per-vessel rollups from stored transects and
// observations. Nothing is cached: every call reads current state, and the
// reads making up one summary are not isolated from concurrent writers.
type VesselService struct {
	repo    VesselStore
	metrics *metrics.Metrics
	log     *zap.Logger
}

// NewVesselService creates a new vessel service. m may be nil.
func NewVesselService(repo VesselStore, m *metrics.Metrics, log *zap.Logger) *VesselService {
	if log == nil {
		log = zap.NewNop()
	}
	return &VesselService{repo: repo, metrics: m, log: log.Named("vessel")}
}

// GetAllVessels summarises every vessel, in vessel table order
func (s *VesselService) GetAllVessels(ctx context.Context) ([]models.VesselSummary, error) {
	start := time.Now()
	defer s.observe(start)

	vessels, err := s.repo.GetAllVessels(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]models.VesselSummary, len(vessels))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(vesselConcurrency)
	for i, v := range vessels {
		g.Go(func() error {
			summary, err := s.summarize(gctx, v)
			if err != nil {
				return err
			}
			summaries[i] = summary
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.log.Error("vessel aggregation failed", zap.Error(err))
		return nil, err
	}

	s.log.Debug("vessels summarised", zap.Int("vessels", len(summaries)), zap.Duration("took", time.Since(start)))
	return summaries, nil
}

// GetVesselByID summarises a single vessel. Returns (nil, nil) when absent.
func (s *VesselService) GetVesselByID(ctx context.Context, id string) (*models.VesselSummary, error) {
	start := time.Now()
	defer s.observe(start)

	v, err := s.repo.GetVesselByID(ctx, id)
	if err != nil || v == nil {
		return nil, err
	}

	summary, err := s.summarize(ctx, *v)
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

func (s *VesselService) summarize(ctx context.Context, v models.Vessel) (models.VesselSummary, error) {
	transects, err := s.repo.ListTransectsByVessel(ctx, v.ID)
	if err != nil {
		return models.VesselSummary{}, fmt.Errorf("vessel %s: %w", v.ID, err)
	}

	totals, err := s.repo.GetSightingTotals(ctx, v.ID)
	if err != nil {
		return models.VesselSummary{}, fmt.Errorf("vessel %s: %w", v.ID, err)
	}

	return Summarize(v, transects, totals), nil
}

func (s *VesselService) observe(start time.Time) {
	if s.metrics != nil {
		s.metrics.AggregateDuration.Observe(time.Since(start).Seconds())
	}
}

// Summarize folds a vessel's transects and sighting totals into a summary.
// Transects with end_date before start_date contribute negative duration.
func Summarize(v models.Vessel, transects []models.Transect, totals models.SightingTotals) models.VesselSummary {
	summary := models.VesselSummary{
		ID:                v.ID,
		Name:              v.Name,
		NumberOfTransects: int64(len(transects)),
		NumberOfSightings: totals.Sightings,
		NumberOfAnimals:   totals.Animals,
	}

	for i := range transects {
		t := &transects[i]
		summary.TotalDurationOfAllTransectsSecs += t.DurationSeconds()
		summary.TotalDistanceOfAllTransectsKm += spatial.DistanceKm(
			spatial.Point{Lat: t.StartLat, Lon: t.StartLon},
			spatial.Point{Lat: t.EndLat, Lon: t.EndLon},
		)
	}
	return summary
}
