package reporting

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/herdbook/internal/domain/models"
)

// AnimalLister reads the herd.
type AnimalLister interface {
	List(ctx context.Context) ([]models.Animal, error)
}

// PastureLister reads the pastures.
type PastureLister interface {
	List(ctx context.Context) ([]models.Pasture, error)
}

// HealthLister reads health records.
type HealthLister interface {
	List(ctx context.Context) ([]models.HealthRecord, error)
}

// LedgerLister reads the ledger.
type LedgerLister interface {
	List(ctx context.Context) ([]models.FinancialRecord, error)
}

// Summary is a point-in-time view of the farm derived from every collection.
type Summary struct {
	GeneratedAt         time.Time                   `json:"generatedAt"`
	Animals             int                         `json:"animals"`
	ByStatus            map[models.AnimalStatus]int `json:"byStatus"`
	AverageWeightKg     float64                     `json:"averageWeightKg"`
	HeadInPastures      int                         `json:"headInPastures"`
	PastureCapacity     int                         `json:"pastureCapacity"`
	OverfilledPastures  []string                    `json:"overfilledPastures"`
	PendingHealthEvents int                         `json:"pendingHealthEvents"`
	HealthCost          float64                     `json:"healthCost"`
	Balance             float64                     `json:"balance"`
}

// Service aggregates the collections into summaries.
type Service struct {
	animals  AnimalLister
	pastures PastureLister
	health   HealthLister
	ledger   LedgerLister
	logger   *zap.Logger
	now      func() time.Time
}

// NewService wires a new reporting service instance.
func NewService(animals AnimalLister, pastures PastureLister, health HealthLister, ledger LedgerLister, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		animals:  animals,
		pastures: pastures,
		health:   health,
		ledger:   ledger,
		logger:   logger,
		now:      time.Now,
	}
}

// Summary reads every collection and computes the aggregate. Nothing is cached.
func (s *Service) Summary(ctx context.Context) (Summary, error) {
	herd, err := s.animals.List(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("load animals: %w", err)
	}
	pastures, err := s.pastures.List(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("load pastures: %w", err)
	}
	records, err := s.health.List(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("load health records: %w", err)
	}
	ledger, err := s.ledger.List(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("load ledger: %w", err)
	}

	out := Summary{
		GeneratedAt:        s.now().UTC(),
		Animals:            len(herd),
		ByStatus:           make(map[models.AnimalStatus]int),
		OverfilledPastures: []string{},
		Balance:            models.Balance(ledger),
	}

	var totalWeight float64
	for _, a := range herd {
		out.ByStatus[a.Status]++
		totalWeight += a.WeightKg
	}
	if len(herd) > 0 {
		out.AverageWeightKg = math.Round(totalWeight/float64(len(herd))*10) / 10
	}

	for _, p := range pastures {
		out.HeadInPastures += p.Current
		out.PastureCapacity += p.Capacity
		if p.Current > p.Capacity {
			out.OverfilledPastures = append(out.OverfilledPastures, p.Name)
		}
	}

	for _, r := range records {
		out.HealthCost += r.Cost
		if r.Status == models.HealthScheduled {
			out.PendingHealthEvents++
		}
	}

	s.logger.Debug("summary computed", zap.Int("animals", out.Animals), zap.Int("head_in_pastures", out.HeadInPastures))
	return out, nil
}

// Text renders the summary as a short multi-line report.
func (s Summary) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Farm summary (%s)\n", s.GeneratedAt.Format(models.DateLayout))
	fmt.Fprintf(&b, "Herd: %d animals, average %.1f kg", s.Animals, s.AverageWeightKg)

	statuses := make([]string, 0, len(s.ByStatus))
	for status := range s.ByStatus {
		statuses = append(statuses, string(status))
	}
	sort.Strings(statuses)
	for _, status := range statuses {
		fmt.Fprintf(&b, ", %s %d", status, s.ByStatus[models.AnimalStatus(status)])
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "Pastures: %d/%d head", s.HeadInPastures, s.PastureCapacity)
	if len(s.OverfilledPastures) > 0 {
		fmt.Fprintf(&b, " (over capacity: %s)", strings.Join(s.OverfilledPastures, ", "))
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "Health: %d pending, %.2f spent\n", s.PendingHealthEvents, s.HealthCost)
	fmt.Fprintf(&b, "Balance: %.2f", s.Balance)
	return b.String()
}
