package animals

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/herdbook/internal/domain/models"
	"github.com/mamadbah2/herdbook/internal/repository/kv"
	"github.com/mamadbah2/herdbook/internal/service/audit"
)

// Repository describes the animal operations exposed to callers.
type Repository interface {
	List(ctx context.Context) ([]models.Animal, error)
	Get(ctx context.Context, id string) (models.Animal, error)
	Create(ctx context.Context, candidate models.Animal) (models.Animal, error)
	Update(ctx context.Context, id string, patch models.AnimalPatch) (models.Animal, error)
	Delete(ctx context.Context, id string) error
	ApplyVisionResult(ctx context.Context, id string, result models.VisionResult) (models.Animal, error)
}

// Service stores animals under one key and keeps their history in sync with updates.
//
// Each mutation is a read-modify-write of the whole sequence with no locking: two
// callers updating concurrently race and the later write wins, dropping the earlier
// call's changes and history entries.
type Service struct {
	store  *kv.Collection[models.Animal]
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

// NewService wires an animal service over backend. seed is stored on first access.
func NewService(backend kv.Backend, seed []models.Animal, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:  kv.NewCollection(backend, kv.KeyAnimals, seed),
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

func (s *Service) stamp() audit.Stamp {
	return audit.Stamp{Date: s.now().Format(models.DateLayout), NextID: s.newID}
}

// List returns every animal in store order, newest first.
func (s *Service) List(ctx context.Context) ([]models.Animal, error) {
	return s.store.Read(ctx)
}

// Get returns the animal with id.
func (s *Service) Get(ctx context.Context, id string) (models.Animal, error) {
	all, err := s.store.Read(ctx)
	if err != nil {
		return models.Animal{}, err
	}
	idx := indexOf(all, id)
	if idx < 0 {
		return models.Animal{}, fmt.Errorf("animal %s: %w", id, models.ErrNotFound)
	}
	return all[idx], nil
}

// Create assigns a fresh identity, opens the history with a creation entry and
// stores the animal at the front of the list.
func (s *Service) Create(ctx context.Context, candidate models.Animal) (models.Animal, error) {
	if candidate.Status == "" {
		candidate.Status = models.StatusHealthy
	}
	if err := candidate.Validate(); err != nil {
		return models.Animal{}, err
	}

	current, err := s.store.Read(ctx)
	if err != nil {
		return models.Animal{}, err
	}

	created := candidate
	created.ID = s.newID()
	created.History = []models.HistoryRecord{audit.Created(s.stamp())}

	if err := s.store.Write(ctx, append([]models.Animal{created}, current...)); err != nil {
		return models.Animal{}, err
	}

	s.logger.Info("animal created", zap.String("animal_id", created.ID), zap.String("breed", string(created.Breed)))
	return created, nil
}

// Update merges patch into the stored animal and prepends one history entry per
// tracked field (weight, status, lot) whose value actually changed.
func (s *Service) Update(ctx context.Context, id string, patch models.AnimalPatch) (models.Animal, error) {
	all, err := s.store.Read(ctx)
	if err != nil {
		return models.Animal{}, err
	}
	idx := indexOf(all, id)
	if idx < 0 {
		return models.Animal{}, fmt.Errorf("animal %s: %w", id, models.ErrNotFound)
	}

	prev := all[idx]
	updated := patch.Apply(prev)
	if err := updated.Validate(); err != nil {
		return models.Animal{}, err
	}

	entries := audit.Changes(prev, patch, s.stamp())
	updated.History = audit.Prepend(prev.History, entries)
	all[idx] = updated

	if err := s.store.Write(ctx, all); err != nil {
		return models.Animal{}, err
	}

	s.logger.Info("animal updated", zap.String("animal_id", id), zap.Int("history_entries", len(entries)))
	return updated, nil
}

// Delete removes the animal with id. Health records referencing it are left as they are.
func (s *Service) Delete(ctx context.Context, id string) error {
	all, err := s.store.Read(ctx)
	if err != nil {
		return err
	}
	kept := all[:0]
	for _, a := range all {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	if err := s.store.Write(ctx, kept); err != nil {
		return err
	}
	s.logger.Info("animal deleted", zap.String("animal_id", id))
	return nil
}

// ApplyVisionResult merges the recognised breed and estimated weight from an image
// analysis through Update, so the weight change is audited like any other.
func (s *Service) ApplyVisionResult(ctx context.Context, id string, result models.VisionResult) (models.Animal, error) {
	var patch models.AnimalPatch
	if result.Breed != "" {
		if breed, err := models.ParseBreed(result.Breed); err == nil {
			patch.Breed = &breed
		} else {
			s.logger.Debug("ignoring unrecognised breed", zap.String("breed", result.Breed))
		}
	}
	if result.EstimatedWeight != nil && *result.EstimatedWeight > 0 {
		weight := *result.EstimatedWeight
		patch.WeightKg = &weight
	}
	return s.Update(ctx, id, patch)
}

func indexOf(all []models.Animal, id string) int {
	for i, a := range all {
		if a.ID == id {
			return i
		}
	}
	return -1
}
