// Package seed holds the demo herd stored on first access when SEED_DEMO_DATA is on.
package seed

import "github.com/mamadbah2/herdbook/internal/domain/models"

// Animals returns the demo herd. Each call returns fresh slices.
func Animals() []models.Animal {
	return []models.Animal{
		{
			ID: "1", Name: "Mimoso", RFID: "RFID-001",
			Breed: models.BreedNelore, Sex: models.SexMale, BirthDate: "2023-01-15",
			WeightKg: 450, Status: models.StatusHealthy, LotID: "Lote A", PastureID: "Pasto 1",
			Sire: "Touro Bandido", Dam: "Matriz 04",
			History: []models.HistoryRecord{
				{ID: "h4", Date: "2024-01-15", Kind: models.HistoryWeight, Description: "Routine weighing", Value: models.Number(450), PreviousValue: models.Number(180)},
				{ID: "h3", Date: "2023-10-15", Kind: models.HistoryLocation, Description: "Moved to Pasto 1", Value: models.Text("Pasto 1"), PreviousValue: models.Text("Maternidade")},
				{ID: "h2", Date: "2023-06-15", Kind: models.HistoryWeight, Description: "Weaning weight", Value: models.Number(180), PreviousValue: models.Number(35)},
				{ID: "h1", Date: "2023-01-15", Kind: models.HistoryGeneral, Description: "Birth registered", Value: models.Text("35kg")},
			},
		},
		{
			ID: "2", Name: "Estrela", RFID: "RFID-002",
			Breed: models.BreedGirolando, Sex: models.SexFemale, BirthDate: "2022-05-20",
			WeightKg: 380, Status: models.StatusPregnant, LotID: "Lote B", PastureID: "Pasto 2",
			Sire: "Sansão", Dam: "Estrelinha",
			History: []models.HistoryRecord{
				{ID: "h1", Date: "2023-11-20", Kind: models.HistoryStatus, Description: "Pregnancy confirmed", Value: models.Text(string(models.StatusPregnant)), PreviousValue: models.Text(string(models.StatusHealthy))},
			},
		},
		{
			ID: "3", Name: "Bruto", RFID: "RFID-003",
			Breed: models.BreedAngus, Sex: models.SexMale, BirthDate: "2023-03-10",
			WeightKg: 410, Status: models.StatusSick, LotID: "Lote A", PastureID: "Enfermaria",
			History: []models.HistoryRecord{
				{ID: "h1", Date: "2023-10-25", Kind: models.HistoryStatus, Description: "Tick fever diagnosed", Value: models.Text(string(models.StatusSick)), PreviousValue: models.Text(string(models.StatusHealthy))},
				{ID: "h2", Date: "2023-10-25", Kind: models.HistoryLocation, Description: "Moved to Enfermaria", Value: models.Text("Enfermaria"), PreviousValue: models.Text("Pasto 3")},
			},
		},
	}
}

// Finance returns the demo ledger, newest first.
func Finance() []models.FinancialRecord {
	return []models.FinancialRecord{
		{ID: "1", Description: "Heifer sale (Lote C)", Kind: models.Income, Amount: 45000, Date: "2023-10-25", Category: "Animal sales"},
		{ID: "2", Description: "Mineral supplement", Kind: models.Expense, Amount: 3200, Date: "2023-10-24", Category: "Nutrition"},
		{ID: "3", Description: "Tractor maintenance", Kind: models.Expense, Amount: 1500, Date: "2023-10-22", Category: "Machinery"},
		{ID: "4", Description: "Veterinary fees", Kind: models.Expense, Amount: 2800, Date: "2023-10-20", Category: "Services"},
		{ID: "5", Description: "Milk sale (week 41)", Kind: models.Income, Amount: 8400, Date: "2023-10-18", Category: "Milk"},
	}
}

// Pastures returns the demo grazing areas.
func Pastures() []models.Pasture {
	return []models.Pasture{
		{ID: "1", Name: "Pasto Sede A", Area: "12 ha", Capacity: 25, Current: 20, GrassHeight: "high", Status: models.PastureOccupied, Type: "Mombaça", LastRotation: "10 days"},
		{ID: "2", Name: "Pasto Sede B", Area: "10 ha", Capacity: 20, Current: 0, GrassHeight: "high", Status: models.PastureResting, Type: "Braquiária", LastRotation: "25 days"},
		{ID: "3", Name: "Piquete Leite 1", Area: "5 ha", Capacity: 15, Current: 12, GrassHeight: "medium", Status: models.PastureOccupied, Type: "Tifton", LastRotation: "5 days"},
		{ID: "4", Name: "Piquete Leite 2", Area: "5 ha", Capacity: 15, Current: 0, GrassHeight: "low", Status: models.PastureRecovering, Type: "Tifton", LastRotation: "2 days"},
		{ID: "5", Name: "Confinamento 1", Area: "2 ha", Capacity: 100, Current: 85, GrassHeight: "n/a", Status: models.PastureIntensive, Type: "Feedlot ration", LastRotation: "-"},
	}
}
