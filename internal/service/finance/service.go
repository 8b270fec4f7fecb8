package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/herdbook/internal/domain/models"
	"github.com/mamadbah2/herdbook/internal/repository/kv"
)

// Mirror receives a copy of every ledger entry after it is stored.
type Mirror interface {
	AppendFinancialRecord(ctx context.Context, record models.FinancialRecord) error
}

// Repository describes the ledger operations exposed to callers. There is no update
// or delete: entries are immutable once created.
type Repository interface {
	List(ctx context.Context) ([]models.FinancialRecord, error)
	Create(ctx context.Context, candidate models.FinancialRecord) (models.FinancialRecord, error)
	Balance(ctx context.Context) (float64, error)
}

// Service is the append-only farm ledger.
type Service struct {
	store  *kv.Collection[models.FinancialRecord]
	mirror Mirror
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

// NewService wires a ledger over backend. mirror may be nil.
func NewService(backend kv.Backend, seed []models.FinancialRecord, mirror Mirror, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:  kv.NewCollection(backend, kv.KeyFinance, seed),
		mirror: mirror,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// List returns every ledger entry, newest first.
func (s *Service) List(ctx context.Context) ([]models.FinancialRecord, error) {
	return s.store.Read(ctx)
}

// Create stores a new entry at the front of the ledger and forwards it to the mirror.
// Mirror failures are logged and never undo the stored entry.
func (s *Service) Create(ctx context.Context, candidate models.FinancialRecord) (models.FinancialRecord, error) {
	if candidate.Date == "" {
		candidate.Date = s.now().Format(models.DateLayout)
	}
	if err := candidate.Validate(); err != nil {
		return models.FinancialRecord{}, err
	}

	all, err := s.store.Read(ctx)
	if err != nil {
		return models.FinancialRecord{}, err
	}
	candidate.ID = s.newID()
	if err := s.store.Write(ctx, append([]models.FinancialRecord{candidate}, all...)); err != nil {
		return models.FinancialRecord{}, err
	}

	s.logger.Info("ledger entry created",
		zap.String("record_id", candidate.ID),
		zap.String("type", string(candidate.Kind)),
		zap.Float64("amount", candidate.Amount))

	if s.mirror != nil {
		if err := s.mirror.AppendFinancialRecord(ctx, candidate); err != nil {
			s.logger.Warn("failed to mirror ledger entry", zap.String("record_id", candidate.ID), zap.Error(err))
		}
	}
	return candidate, nil
}

// Balance recomputes income minus expense from the stored ledger.
func (s *Service) Balance(ctx context.Context) (float64, error) {
	all, err := s.store.Read(ctx)
	if err != nil {
		return 0, err
	}
	return models.Balance(all), nil
}
