package models

import "fmt"

// HealthKind enumerates health event categories.
type HealthKind string

const (
	HealthVaccine   HealthKind = "vaccine"
	HealthTreatment HealthKind = "treatment"
	HealthExam      HealthKind = "exam"
)

// Valid reports whether k is a known health event kind.
func (k HealthKind) Valid() bool {
	return k == HealthVaccine || k == HealthTreatment || k == HealthExam
}

// HealthStatus is the lifecycle state of a health record.
type HealthStatus string

const (
	HealthScheduled HealthStatus = "scheduled"
	HealthCompleted HealthStatus = "completed"
)

// Valid reports whether s is a known health status.
func (s HealthStatus) Valid() bool {
	return s == HealthScheduled || s == HealthCompleted
}

// HealthRecord is a vaccination, treatment or exam for one animal.
type HealthRecord struct {
	ID          string       `json:"id"`
	AnimalID    string       `json:"animalId"`
	Kind        HealthKind   `json:"type"`
	Date        string       `json:"date"`
	Description string       `json:"description"`
	Cost        float64      `json:"cost"`
	Status      HealthStatus `json:"status"`
}

// Validate checks the invariants every stored health record must satisfy.
func (r HealthRecord) Validate() error {
	switch {
	case r.AnimalID == "":
		return fmt.Errorf("%w: animalId is required", ErrInvalidArgument)
	case !r.Kind.Valid():
		return fmt.Errorf("%w: unknown health record type %q", ErrInvalidArgument, r.Kind)
	case !r.Status.Valid():
		return fmt.Errorf("%w: unknown health status %q", ErrInvalidArgument, r.Status)
	case r.Cost < 0:
		return fmt.Errorf("%w: cost must be >= 0", ErrInvalidArgument)
	}
	return nil
}
