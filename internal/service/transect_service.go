package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/seasurvey/transect-backend-go/internal/models"
)

// ErrInvalidTransect is returned when a transect is missing required fields
var ErrInvalidTransect = errors.New("invalid transect")

// TransectStore is the persistence surface TransectService needs
type TransectStore interface {
	GetObservations(ctx context.Context, transectID string) ([]models.Observation, error)
	GetTransectByID(ctx context.Context, id string) (*models.Transect, error)
	GetAllTransects(ctx context.Context) ([]models.Transect, error)
	UpsertTransect(ctx context.Context, t *models.Transect) error
}

// TransectService handles business logic for transects
type TransectService struct {
	repo TransectStore
	log  *zap.Logger
}

// NewTransectService creates a new transect service
func NewTransectService(repo TransectStore, log *zap.Logger) *TransectService {
	if log == nil {
		log = zap.NewNop()
	}
	return &TransectService{repo: repo, log: log.Named("transect")}
}

// GetObservations retrieves the observations recorded on a transect
func (s *TransectService) GetObservations(ctx context.Context, transectID string) ([]models.Observation, error) {
	return s.repo.GetObservations(ctx, transectID)
}

// GetTransectByID retrieves a single transect. Returns (nil, nil) when absent.
func (s *TransectService) GetTransectByID(ctx context.Context, id string) (*models.Transect, error) {
	return s.repo.GetTransectByID(ctx, id)
}

// GetAllTransects retrieves every transect with its observations
func (s *TransectService) GetAllTransects(ctx context.Context) ([]models.Transect, error) {
	return s.repo.GetAllTransects(ctx)
}

// UpsertTransect validates and stores a transect with its observations.
// end_date before start_date is accepted.
func (s *TransectService) UpsertTransect(ctx context.Context, t *models.Transect) error {
	if err := ValidateTransect(t); err != nil {
		return err
	}

	if err := s.repo.UpsertTransect(ctx, t); err != nil {
		s.log.Error("upsert failed", zap.String("transect_id", t.ID), zap.Error(err))
		return err
	}

	s.log.Debug("transect saved",
		zap.String("transect_id", t.ID),
		zap.String("vessel_id", t.VesselID),
		zap.Int("observations", len(t.Observations)))
	return nil
}

// ValidateTransect checks the identifiers and dates the storage layer
// requires. Every observation must belong to t; whether the vessel and
// observers exist is left to the storage layer.
func ValidateTransect(t *models.Transect) error {
	if t == nil {
		return fmt.Errorf("%w: missing body", ErrInvalidTransect)
	}
	if t.ID == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidTransect)
	}
	if t.VesselID == "" {
		return fmt.Errorf("%w: vessel_id is required", ErrInvalidTransect)
	}
	if t.Observer1ID == "" {
		return fmt.Errorf("%w: observer1_id is required", ErrInvalidTransect)
	}
	if !models.DateInRange(t.StartDate) {
		return fmt.Errorf("%w: start_date %d is outside years 0001-9999", ErrInvalidTransect, t.StartDate)
	}
	if !models.DateInRange(t.EndDate) {
		return fmt.Errorf("%w: end_date %d is outside years 0001-9999", ErrInvalidTransect, t.EndDate)
	}
	for i, o := range t.Observations {
		if o.ID == "" {
			return fmt.Errorf("%w: observations[%d].id is required", ErrInvalidTransect, i)
		}
		if o.TransectID == "" {
			return fmt.Errorf("%w: observations[%d].transect_id is required", ErrInvalidTransect, i)
		}
		if o.TransectID != t.ID {
			return fmt.Errorf("%w: observations[%d].transect_id %q does not match transect %q",
				ErrInvalidTransect, i, o.TransectID, t.ID)
		}
		if !models.DateInRange(o.Date) {
			return fmt.Errorf("%w: observations[%d].date %d is outside years 0001-9999", ErrInvalidTransect, i, o.Date)
		}
	}
	return nil
}
