package models

import (
	"fmt"
	"strings"
)

// AnimalStatus enumerates the lifecycle states of an animal.
type AnimalStatus string

const (
	StatusHealthy    AnimalStatus = "healthy"
	StatusSick       AnimalStatus = "sick"
	StatusPregnant   AnimalStatus = "pregnant"
	StatusSold       AnimalStatus = "sold"
	StatusQuarantine AnimalStatus = "quarantine"
)

// Valid reports whether s is a known status.
func (s AnimalStatus) Valid() bool {
	switch s {
	case StatusHealthy, StatusSick, StatusPregnant, StatusSold, StatusQuarantine:
		return true
	}
	return false
}

// ParseAnimalStatus normalizes free text into an AnimalStatus.
func ParseAnimalStatus(value string) (AnimalStatus, error) {
	s := AnimalStatus(strings.ToLower(strings.TrimSpace(value)))
	if !s.Valid() {
		return "", fmt.Errorf("%w: unknown animal status %q", ErrInvalidArgument, value)
	}
	return s, nil
}

// Breed enumerates supported cattle breeds.
type Breed string

const (
	BreedNelore    Breed = "nelore"
	BreedAngus     Breed = "angus"
	BreedBrahman   Breed = "brahman"
	BreedGirolando Breed = "girolando"
	BreedHolandes  Breed = "holandes"
)

var breeds = []Breed{BreedNelore, BreedAngus, BreedBrahman, BreedGirolando, BreedHolandes}

// Valid reports whether b is a known breed.
func (b Breed) Valid() bool {
	for _, known := range breeds {
		if b == known {
			return true
		}
	}
	return false
}

// ParseBreed normalizes free text into a Breed. Leading breed names followed by
// qualifiers ("Nelore (estimated)") are accepted; "Holandês" maps to holandes.
func ParseBreed(value string) (Breed, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	normalized = strings.ReplaceAll(normalized, "ê", "e")
	for _, known := range breeds {
		if normalized == string(known) || strings.HasPrefix(normalized, string(known)+" ") {
			return known, nil
		}
	}
	return "", fmt.Errorf("%w: unknown breed %q", ErrInvalidArgument, value)
}

// Sex of an animal.
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

// Valid reports whether s is a known sex.
func (s Sex) Valid() bool { return s == SexMale || s == SexFemale }

// Animal is a single head of cattle with its audit timeline.
type Animal struct {
	ID              string          `json:"id"`
	RFID            string          `json:"rfid,omitempty"`
	Name            string          `json:"name,omitempty"`
	Breed           Breed           `json:"breed"`
	Sex             Sex             `json:"sex"`
	BirthDate       string          `json:"birthDate"`
	WeightKg        float64         `json:"weightKg"`
	Status          AnimalStatus    `json:"status"`
	LotID           string          `json:"lotId"`
	PastureID       string          `json:"pastureId"`
	LastVaccination string          `json:"lastVaccination,omitempty"`
	Sire            string          `json:"sire,omitempty"`
	Dam             string          `json:"dam,omitempty"`
	PhotoURL        string          `json:"photoUrl,omitempty"`
	History         []HistoryRecord `json:"history"`
}

// Validate checks the invariants every stored animal must satisfy.
func (a Animal) Validate() error {
	switch {
	case a.WeightKg < 0:
		return fmt.Errorf("%w: weightKg must be >= 0", ErrInvalidArgument)
	case !a.Status.Valid():
		return fmt.Errorf("%w: unknown animal status %q", ErrInvalidArgument, a.Status)
	case !a.Breed.Valid():
		return fmt.Errorf("%w: unknown breed %q", ErrInvalidArgument, a.Breed)
	case !a.Sex.Valid():
		return fmt.Errorf("%w: unknown sex %q", ErrInvalidArgument, a.Sex)
	}
	return nil
}

// AnimalPatch carries a partial update. Nil fields are absent and left untouched.
// History and ID are not patchable.
type AnimalPatch struct {
	RFID            *string       `json:"rfid,omitempty"`
	Name            *string       `json:"name,omitempty"`
	Breed           *Breed        `json:"breed,omitempty"`
	Sex             *Sex          `json:"sex,omitempty"`
	BirthDate       *string       `json:"birthDate,omitempty"`
	WeightKg        *float64      `json:"weightKg,omitempty"`
	Status          *AnimalStatus `json:"status,omitempty"`
	LotID           *string       `json:"lotId,omitempty"`
	PastureID       *string       `json:"pastureId,omitempty"`
	LastVaccination *string       `json:"lastVaccination,omitempty"`
	Sire            *string       `json:"sire,omitempty"`
	Dam             *string       `json:"dam,omitempty"`
	PhotoURL        *string       `json:"photoUrl,omitempty"`
}

// Apply returns a copy of a with every present patch field merged in.
// The returned animal shares no history backing array with a.
func (p AnimalPatch) Apply(a Animal) Animal {
	out := a
	out.History = append([]HistoryRecord(nil), a.History...)
	if p.RFID != nil {
		out.RFID = *p.RFID
	}
	if p.Name != nil {
		out.Name = *p.Name
	}
	if p.Breed != nil {
		out.Breed = *p.Breed
	}
	if p.Sex != nil {
		out.Sex = *p.Sex
	}
	if p.BirthDate != nil {
		out.BirthDate = *p.BirthDate
	}
	if p.WeightKg != nil {
		out.WeightKg = *p.WeightKg
	}
	if p.Status != nil {
		out.Status = *p.Status
	}
	if p.LotID != nil {
		out.LotID = *p.LotID
	}
	if p.PastureID != nil {
		out.PastureID = *p.PastureID
	}
	if p.LastVaccination != nil {
		out.LastVaccination = *p.LastVaccination
	}
	if p.Sire != nil {
		out.Sire = *p.Sire
	}
	if p.Dam != nil {
		out.Dam = *p.Dam
	}
	if p.PhotoURL != nil {
		out.PhotoURL = *p.PhotoURL
	}
	return out
}
