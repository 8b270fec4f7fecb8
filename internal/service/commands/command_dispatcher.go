package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/herdbook/internal/domain/models"
	"github.com/mamadbah2/herdbook/internal/service/animals"
	"github.com/mamadbah2/herdbook/internal/service/finance"
	"github.com/mamadbah2/herdbook/internal/service/pastures"
	"github.com/mamadbah2/herdbook/internal/service/reporting"
)

// ErrInvalidArguments indicates the command payload could not be parsed.
var ErrInvalidArguments = fmt.Errorf("%w: invalid command arguments", models.ErrInvalidArgument)

// ErrUnsupportedCommand indicates we do not support the requested command.
var ErrUnsupportedCommand = fmt.Errorf("%w: unsupported command", models.ErrInvalidArgument)

const quickEntryCategory = "Quick entry"

// Summarizer produces the farm summary used by the summary command.
type Summarizer interface {
	Summary(ctx context.Context) (reporting.Summary, error)
}

// Dispatcher executes parsed commands against the farm services.
type Dispatcher interface {
	HandleCommand(ctx context.Context, cmd models.Command, sender string) (string, error)
}

// Service implements the Dispatcher interface.
type Service struct {
	animals    animals.Repository
	pastures   pastures.Repository
	ledger     finance.Repository
	summarizer Summarizer
	logger     *zap.Logger
	now        func() time.Time
}

// NewService constructs a command dispatcher. summarizer may be nil.
func NewService(animalRepo animals.Repository, pastureRepo pastures.Repository, ledger finance.Repository, summarizer Summarizer, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		animals:    animalRepo,
		pastures:   pastureRepo,
		ledger:     ledger,
		summarizer: summarizer,
		logger:     logger,
		now:        time.Now,
	}
}

// HandleCommand runs the command and returns a one-line confirmation.
func (s *Service) HandleCommand(ctx context.Context, cmd models.Command, sender string) (string, error) {
	s.logger.Debug("dispatching command", zap.String("command", string(cmd.Type)), zap.String("sender", sender), zap.Strings("args", cmd.Args))

	switch cmd.Type {
	case models.CommandWeigh:
		if len(cmd.Args) != 2 {
			return "", ErrInvalidArguments
		}
		weight, err := strconv.ParseFloat(cmd.Args[1], 64)
		if err != nil {
			return "", ErrInvalidArguments
		}
		animal, err := s.animals.Update(ctx, cmd.Args[0], models.AnimalPatch{WeightKg: &weight})
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Weight for %s recorded: %.1f kg.", label(animal), animal.WeightKg), nil
	case models.CommandStatus:
		if len(cmd.Args) != 2 {
			return "", ErrInvalidArguments
		}
		status, err := models.ParseAnimalStatus(cmd.Args[1])
		if err != nil {
			return "", err
		}
		animal, err := s.animals.Update(ctx, cmd.Args[0], models.AnimalPatch{Status: &status})
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Status of %s is now %s.", label(animal), animal.Status), nil
	case models.CommandMove:
		if len(cmd.Args) != 3 {
			return "", ErrInvalidArguments
		}
		amount, err := strconv.Atoi(cmd.Args[2])
		if err != nil {
			return "", ErrInvalidArguments
		}
		res, err := s.pastures.Move(ctx, cmd.Args[0], cmd.Args[1], amount)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Moved %d head from %s (%d left) to %s (%d now).",
			amount, res.Origin.Name, res.Origin.Current, res.Destination.Name, res.Destination.Current), nil
	case models.CommandIncome, models.CommandExpense:
		record, err := s.buildFinancialRecord(cmd)
		if err != nil {
			return "", err
		}
		saved, err := s.ledger.Create(ctx, record)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s logged: %s %.2f on %s.", titleCase(string(saved.Kind)), saved.Description, saved.Amount, saved.Date), nil
	case models.CommandBalance:
		balance, err := s.ledger.Balance(ctx)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Current balance: %.2f.", balance), nil
	case models.CommandSummary:
		if s.summarizer == nil {
			return "", ErrUnsupportedCommand
		}
		sum, err := s.summarizer.Summary(ctx)
		if err != nil {
			return "", err
		}
		return sum.Text(), nil
	default:
		return "", ErrUnsupportedCommand
	}
}

// buildFinancialRecord reads "<amount> <description...> [#category]".
func (s *Service) buildFinancialRecord(cmd models.Command) (models.FinancialRecord, error) {
	if len(cmd.Args) < 2 {
		return models.FinancialRecord{}, ErrInvalidArguments
	}

	amount, err := strconv.ParseFloat(strings.ReplaceAll(cmd.Args[0], ",", "."), 64)
	if err != nil {
		return models.FinancialRecord{}, ErrInvalidArguments
	}

	rest := cmd.Args[1:]
	category := quickEntryCategory
	if last := rest[len(rest)-1]; len(rest) > 1 && strings.HasPrefix(last, "#") && len(last) > 1 {
		category = strings.TrimPrefix(last, "#")
		rest = rest[:len(rest)-1]
	}

	kind := models.Income
	if cmd.Type == models.CommandExpense {
		kind = models.Expense
	}

	return models.FinancialRecord{
		Kind:        kind,
		Category:    category,
		Amount:      amount,
		Date:        s.now().Format(models.DateLayout),
		Description: strings.Join(rest, " "),
	}, nil
}

func label(a models.Animal) string {
	if a.Name != "" {
		return a.Name
	}
	return a.ID
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

