package health

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/herdbook/internal/domain/models"
	"github.com/mamadbah2/herdbook/internal/repository/kv"
)

// Repository describes the health record operations exposed to callers.
type Repository interface {
	List(ctx context.Context) ([]models.HealthRecord, error)
	ListByAnimal(ctx context.Context, animalID string) ([]models.HealthRecord, error)
	Create(ctx context.Context, candidate models.HealthRecord) (models.HealthRecord, error)
	UpdateStatus(ctx context.Context, id string, status models.HealthStatus) (models.HealthRecord, error)
}

// Service stores vaccinations, treatments and exams.
type Service struct {
	store  *kv.Collection[models.HealthRecord]
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

// NewService wires a health service over backend. seed is stored on first access.
func NewService(backend kv.Backend, seed []models.HealthRecord, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:  kv.NewCollection(backend, kv.KeyHealth, seed),
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// List returns every health record, newest first.
func (s *Service) List(ctx context.Context) ([]models.HealthRecord, error) {
	return s.store.Read(ctx)
}

// ListByAnimal returns the records referencing animalID. Records of deleted animals
// are still returned when asked for by id.
func (s *Service) ListByAnimal(ctx context.Context, animalID string) ([]models.HealthRecord, error) {
	all, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.HealthRecord, 0, len(all))
	for _, r := range all {
		if r.AnimalID == animalID {
			out = append(out, r)
		}
	}
	return out, nil
}

// Create stores a new record at the front of the list. Status defaults to scheduled
// and date to today.
func (s *Service) Create(ctx context.Context, candidate models.HealthRecord) (models.HealthRecord, error) {
	if candidate.Status == "" {
		candidate.Status = models.HealthScheduled
	}
	if candidate.Date == "" {
		candidate.Date = s.now().Format(models.DateLayout)
	}
	if err := candidate.Validate(); err != nil {
		return models.HealthRecord{}, err
	}

	all, err := s.store.Read(ctx)
	if err != nil {
		return models.HealthRecord{}, err
	}
	candidate.ID = s.newID()
	if err := s.store.Write(ctx, append([]models.HealthRecord{candidate}, all...)); err != nil {
		return models.HealthRecord{}, err
	}

	s.logger.Info("health record created",
		zap.String("record_id", candidate.ID),
		zap.String("animal_id", candidate.AnimalID),
		zap.String("type", string(candidate.Kind)))
	return candidate, nil
}

// UpdateStatus sets the status of a record. It is the only status mutator and does
// not enforce forward-only transitions.
func (s *Service) UpdateStatus(ctx context.Context, id string, status models.HealthStatus) (models.HealthRecord, error) {
	if !status.Valid() {
		return models.HealthRecord{}, fmt.Errorf("%w: unknown health status %q", models.ErrInvalidArgument, status)
	}
	all, err := s.store.Read(ctx)
	if err != nil {
		return models.HealthRecord{}, err
	}
	for i := range all {
		if all[i].ID != id {
			continue
		}
		if all[i].Status == models.HealthCompleted && status == models.HealthScheduled {
			s.logger.Warn("health record reopened", zap.String("record_id", id))
		}
		all[i].Status = status
		if err := s.store.Write(ctx, all); err != nil {
			return models.HealthRecord{}, err
		}
		return all[i], nil
	}
	return models.HealthRecord{}, fmt.Errorf("health record %s: %w", id, models.ErrNotFound)
}
