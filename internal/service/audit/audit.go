// Package audit derives animal history entries from field transitions. It does no I/O.
package audit

import (
	"fmt"

	"github.com/mamadbah2/herdbook/internal/domain/models"
)

// Descriptions written into synthesized entries.
const (
	DescriptionCreated = "entity created"
	DescriptionWeight  = "Weight recorded"
	statusTemplate     = "Status changed to %s"
	locationTemplate   = "Moved to %s"
)

// Stamp supplies the date and identities for synthesized entries.
type Stamp struct {
	Date   string
	NextID func() string
}

// Created returns the entry that opens every new animal's history.
func Created(stamp Stamp) models.HistoryRecord {
	return models.HistoryRecord{
		ID:          stamp.NextID(),
		Date:        stamp.Date,
		Kind:        models.HistoryGeneral,
		Description: DescriptionCreated,
		Value:       models.Text("initial"),
	}
}

// Changes returns one entry per tracked field that patch sets to a value different
// from prev, in the order weight, status, location. Fields that are absent from
// patch, or equal to the current value, produce nothing.
func Changes(prev models.Animal, patch models.AnimalPatch, stamp Stamp) []models.HistoryRecord {
	var out []models.HistoryRecord

	if patch.WeightKg != nil && *patch.WeightKg != prev.WeightKg {
		out = append(out, models.HistoryRecord{
			ID:            stamp.NextID(),
			Date:          stamp.Date,
			Kind:          models.HistoryWeight,
			Description:   DescriptionWeight,
			Value:         models.Number(*patch.WeightKg),
			PreviousValue: models.Number(prev.WeightKg),
		})
	}

	if patch.Status != nil && *patch.Status != prev.Status {
		out = append(out, models.HistoryRecord{
			ID:            stamp.NextID(),
			Date:          stamp.Date,
			Kind:          models.HistoryStatus,
			Description:   fmt.Sprintf(statusTemplate, *patch.Status),
			Value:         models.Text(string(*patch.Status)),
			PreviousValue: models.Text(string(prev.Status)),
		})
	}

	if patch.LotID != nil && *patch.LotID != prev.LotID {
		out = append(out, models.HistoryRecord{
			ID:            stamp.NextID(),
			Date:          stamp.Date,
			Kind:          models.HistoryLocation,
			Description:   fmt.Sprintf(locationTemplate, *patch.LotID),
			Value:         models.Text(*patch.LotID),
			PreviousValue: models.Text(prev.LotID),
		})
	}

	return out
}

// Prepend pushes each entry onto the front of history in turn, so the last entry
// ends up first. history itself is never modified.
func Prepend(history []models.HistoryRecord, entries []models.HistoryRecord) []models.HistoryRecord {
	out := make([]models.HistoryRecord, 0, len(history)+len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		out = append(out, entries[i])
	}
	return append(out, history...)
}
