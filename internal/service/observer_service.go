package service

import (
	"context"

	"github.com/seasurvey/transect-backend-go/internal/models"
)

// ObserverStore is the persistence surface ObserverService needs
type ObserverStore interface {
	GetAllObservers(ctx context.Context) ([]models.Observer, error)
}

// ObserverService serves observer reference data
type ObserverService struct {
	repo ObserverStore
}

// NewObserverService creates a new observer service
func NewObserverService(repo ObserverStore) *ObserverService {
	return &ObserverService{repo: repo}
}

// GetAllObservers retrieves all observers
func (s *ObserverService) GetAllObservers(ctx context.Context) ([]models.Observer, error) {
	return s.repo.GetAllObservers(ctx)
}
