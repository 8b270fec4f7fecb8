package audit

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/mamadbah2/herdbook/internal/domain/models"
)

func sequentialStamp() Stamp {
	n := 0
	return Stamp{Date: "2024-03-01", NextID: func() string {
		n++
		return fmt.Sprintf("h%d", n)
	}}
}

func ptr[T any](v T) *T { return &v }

func baseAnimal() models.Animal {
	return models.Animal{
		ID:       "2",
		WeightKg: 380,
		Status:   models.StatusHealthy,
		LotID:    "Lote A",
		History:  []models.HistoryRecord{{ID: "old", Kind: models.HistoryGeneral}},
	}
}

func TestChangesWeightOnly(t *testing.T) {
	got := Changes(baseAnimal(), models.AnimalPatch{WeightKg: ptr(410.0)}, sequentialStamp())
	require.Len(t, got, 1)
	assert.Equal(t, models.HistoryWeight, got[0].Kind)
	assert.Equal(t, models.Number(410), got[0].Value)
	assert.Equal(t, models.Number(380), got[0].PreviousValue)
	assert.Equal(t, "2024-03-01", got[0].Date)
}

func TestChangesAllTrackedFieldsInFixedOrder(t *testing.T) {
	patch := models.AnimalPatch{
		LotID:    ptr("Lote B"),
		Status:   ptr(models.StatusSick),
		WeightKg: ptr(400.0),
	}
	got := Changes(baseAnimal(), patch, sequentialStamp())
	require.Len(t, got, 3)
	assert.Equal(t, []models.HistoryKind{models.HistoryWeight, models.HistoryStatus, models.HistoryLocation},
		[]models.HistoryKind{got[0].Kind, got[1].Kind, got[2].Kind})
	assert.Equal(t, "Status changed to sick", got[1].Description)
	assert.Equal(t, "Moved to Lote B", got[2].Description)
	assert.Equal(t, models.Text("Lote A"), got[2].PreviousValue)

	history := Prepend(baseAnimal().History, got)
	require.Len(t, history, 4)
	assert.Equal(t, models.HistoryLocation, history[0].Kind)
	assert.Equal(t, models.HistoryStatus, history[1].Kind)
	assert.Equal(t, models.HistoryWeight, history[2].Kind)
	assert.Equal(t, "old", history[3].ID)
}

func TestChangesIgnoresEqualValues(t *testing.T) {
	patch := models.AnimalPatch{
		WeightKg: ptr(380.0),
		Status:   ptr(models.StatusHealthy),
		LotID:    ptr("Lote A"),
		Name:     ptr("renamed"),
	}
	assert.Empty(t, Changes(baseAnimal(), patch, sequentialStamp()))
}

func TestChangesRecordsZeroWeight(t *testing.T) {
	got := Changes(baseAnimal(), models.AnimalPatch{WeightKg: ptr(0.0)}, sequentialStamp())
	require.Len(t, got, 1)
	assert.Equal(t, models.Number(0), got[0].Value)
}

func TestCreated(t *testing.T) {
	rec := Created(sequentialStamp())
	assert.Equal(t, models.HistoryGeneral, rec.Kind)
	assert.Equal(t, DescriptionCreated, rec.Description)
	assert.Equal(t, "h1", rec.ID)
}

func TestPrependLeavesInputUntouched(t *testing.T) {
	history := make([]models.HistoryRecord, 1, 8)
	history[0] = models.HistoryRecord{ID: "a"}
	out := Prepend(history, []models.HistoryRecord{{ID: "b"}})
	out[1].ID = "mutated"
	assert.Equal(t, "a", history[0].ID)
	assert.Equal(t, "b", out[0].ID)
}

func TestChangesProperties(t *testing.T) {
	statuses := []models.AnimalStatus{models.StatusHealthy, models.StatusSick, models.StatusPregnant, models.StatusSold, models.StatusQuarantine}
	rapid.Check(t, func(t *rapid.T) {
		prev := models.Animal{
			WeightKg: float64(rapid.IntRange(0, 1000).Draw(t, "weight")),
			Status:   rapid.SampledFrom(statuses).Draw(t, "status"),
			LotID:    rapid.SampledFrom([]string{"A", "B", "C"}).Draw(t, "lot"),
		}
		var patch models.AnimalPatch
		want := 0
		if rapid.Bool().Draw(t, "setWeight") {
			w := float64(rapid.IntRange(0, 1000).Draw(t, "newWeight"))
			patch.WeightKg = &w
			if w != prev.WeightKg {
				want++
			}
		}
		if rapid.Bool().Draw(t, "setStatus") {
			s := rapid.SampledFrom(statuses).Draw(t, "newStatus")
			patch.Status = &s
			if s != prev.Status {
				want++
			}
		}
		if rapid.Bool().Draw(t, "setLot") {
			l := rapid.SampledFrom([]string{"A", "B", "C"}).Draw(t, "newLot")
			patch.LotID = &l
			if l != prev.LotID {
				want++
			}
		}

		got := Changes(prev, patch, sequentialStamp())
		if len(got) != want {
			t.Fatalf("expected %d entries, got %d", want, len(got))
		}
		rank := map[models.HistoryKind]int{models.HistoryWeight: 0, models.HistoryStatus: 1, models.HistoryLocation: 2}
		for i := 1; i < len(got); i++ {
			if rank[got[i-1].Kind] >= rank[got[i].Kind] {
				t.Fatalf("entries out of order: %v then %v", got[i-1].Kind, got[i].Kind)
			}
		}
	})
}
