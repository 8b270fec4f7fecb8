package pastures

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/herdbook/internal/domain/models"
	"github.com/mamadbah2/herdbook/internal/repository/kv"
)

// Repository describes the pasture operations exposed to callers.
type Repository interface {
	List(ctx context.Context) ([]models.Pasture, error)
	Get(ctx context.Context, id string) (models.Pasture, error)
	Create(ctx context.Context, candidate models.Pasture) (models.Pasture, error)
	Update(ctx context.Context, id string, patch models.PasturePatch) (models.Pasture, error)
	Move(ctx context.Context, originID, destID string, amount int) (MoveResult, error)
}

// MoveResult reports both pastures after a successful transfer.
type MoveResult struct {
	Origin      models.Pasture `json:"origin"`
	Destination models.Pasture `json:"destination"`
}

// Service stores pastures under one key and moves head counts between them.
type Service struct {
	store  *kv.Collection[models.Pasture]
	logger *zap.Logger
	newID  func() string
}

// NewService wires a pasture service over backend. seed is stored on first access.
func NewService(backend kv.Backend, seed []models.Pasture, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:  kv.NewCollection(backend, kv.KeyPastures, seed),
		logger: logger,
		newID:  uuid.NewString,
	}
}

// List returns every pasture in store order.
func (s *Service) List(ctx context.Context) ([]models.Pasture, error) {
	return s.store.Read(ctx)
}

// Get returns the pasture with id.
func (s *Service) Get(ctx context.Context, id string) (models.Pasture, error) {
	all, err := s.store.Read(ctx)
	if err != nil {
		return models.Pasture{}, err
	}
	idx := indexOf(all, id)
	if idx < 0 {
		return models.Pasture{}, fmt.Errorf("pasture %s: %w", id, models.ErrNotFound)
	}
	return all[idx], nil
}

// Create validates candidate, assigns an identity and appends it.
func (s *Service) Create(ctx context.Context, candidate models.Pasture) (models.Pasture, error) {
	if candidate.Status == "" {
		candidate.Status = models.PastureResting
		if candidate.Current > 0 {
			candidate.Status = models.PastureOccupied
		}
	}
	if err := candidate.Validate(); err != nil {
		return models.Pasture{}, err
	}
	all, err := s.store.Read(ctx)
	if err != nil {
		return models.Pasture{}, err
	}
	candidate.ID = s.newID()
	if err := s.store.Write(ctx, append(all, candidate)); err != nil {
		return models.Pasture{}, err
	}
	s.logger.Info("pasture created", zap.String("pasture_id", candidate.ID), zap.Int("capacity", candidate.Capacity))
	return candidate, nil
}

// Update merges patch into the stored pasture. Head count bounds are not checked.
func (s *Service) Update(ctx context.Context, id string, patch models.PasturePatch) (models.Pasture, error) {
	if patch.Status != nil && !patch.Status.Valid() {
		return models.Pasture{}, fmt.Errorf("%w: unknown pasture status %q", models.ErrInvalidArgument, *patch.Status)
	}
	all, err := s.store.Read(ctx)
	if err != nil {
		return models.Pasture{}, err
	}
	idx := indexOf(all, id)
	if idx < 0 {
		return models.Pasture{}, fmt.Errorf("pasture %s: %w", id, models.ErrNotFound)
	}
	all[idx] = patch.Apply(all[idx])
	if err := s.store.Write(ctx, all); err != nil {
		return models.Pasture{}, err
	}
	return all[idx], nil
}

// Move transfers amount head from origin to destination. The destination capacity
// is not checked.
//
// Both pastures are updated from a single read and written one after the other.
// Once validation passes the writes ignore cancellation of ctx. If the second write
// fails the first has already landed and the total head count is no longer
// conserved; the error is returned and logged, nothing is rolled back.
func (s *Service) Move(ctx context.Context, originID, destID string, amount int) (MoveResult, error) {
	if originID == destID {
		return MoveResult{}, fmt.Errorf("%w: origin and destination are the same pasture", models.ErrInvalidArgument)
	}
	if amount < 0 {
		return MoveResult{}, fmt.Errorf("%w: amount must be >= 0", models.ErrInvalidArgument)
	}

	all, err := s.store.Read(ctx)
	if err != nil {
		return MoveResult{}, err
	}
	oi, di := indexOf(all, originID), indexOf(all, destID)
	if oi < 0 {
		return MoveResult{}, fmt.Errorf("pasture %s: %w", originID, models.ErrNotFound)
	}
	if di < 0 {
		return MoveResult{}, fmt.Errorf("pasture %s: %w", destID, models.ErrNotFound)
	}

	if origin := all[oi]; amount > origin.Current {
		return MoveResult{}, fmt.Errorf("%w: pasture %s holds %d head, asked to move %d",
			models.ErrInsufficientCapacity, originID, origin.Current, amount)
	}

	ctx = context.WithoutCancel(ctx)

	all[oi].Current -= amount
	if err := s.store.Write(ctx, all); err != nil {
		return MoveResult{}, fmt.Errorf("write origin %s: %w", originID, err)
	}

	all[di].Current += amount
	if err := s.store.Write(ctx, all); err != nil {
		s.logger.Error("pasture move left herd count unconserved",
			zap.String("origin", originID),
			zap.String("destination", destID),
			zap.Int("amount", amount),
			zap.Error(err))
		return MoveResult{}, fmt.Errorf("write destination %s: %w", destID, err)
	}

	s.logger.Info("head moved between pastures",
		zap.String("origin", originID),
		zap.String("destination", destID),
		zap.Int("amount", amount))
	return MoveResult{Origin: all[oi], Destination: all[di]}, nil
}

func indexOf(all []models.Pasture, id string) int {
	for i, p := range all {
		if p.ID == id {
			return i
		}
	}
	return -1
}
