package models

import "fmt"

// PastureStatus enumerates grazing-area management states.
type PastureStatus string

const (
	PastureOccupied   PastureStatus = "occupied"
	PastureResting    PastureStatus = "resting"
	PastureRecovering PastureStatus = "recovering"
	PastureIntensive  PastureStatus = "intensive"
	PasturePreserved  PastureStatus = "preserved"
)

// Valid reports whether s is a known pasture status.
func (s PastureStatus) Valid() bool {
	switch s {
	case PastureOccupied, PastureResting, PastureRecovering, PastureIntensive, PasturePreserved:
		return true
	}
	return false
}

// Pasture is a physical grazing area with a head-count capacity.
type Pasture struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Area         string        `json:"area"`
	Capacity     int           `json:"capacity"`
	Current      int           `json:"current"`
	GrassHeight  string        `json:"grassHeight"`
	Status       PastureStatus `json:"status"`
	Type         string        `json:"type"`
	LastRotation string        `json:"lastRotation"`
}

// Validate checks the invariants enforced when a pasture is created.
func (p Pasture) Validate() error {
	switch {
	case p.Name == "":
		return fmt.Errorf("%w: name is required", ErrInvalidArgument)
	case p.Capacity < 0:
		return fmt.Errorf("%w: capacity must be >= 0", ErrInvalidArgument)
	case p.Current < 0 || p.Current > p.Capacity:
		return fmt.Errorf("%w: current must be within [0, capacity]", ErrInvalidArgument)
	case !p.Status.Valid():
		return fmt.Errorf("%w: unknown pasture status %q", ErrInvalidArgument, p.Status)
	}
	return nil
}

// PasturePatch carries a direct field update. Capacity bounds are not enforced here;
// only Move guards head counts.
type PasturePatch struct {
	Name         *string        `json:"name,omitempty"`
	Area         *string        `json:"area,omitempty"`
	Capacity     *int           `json:"capacity,omitempty"`
	Current      *int           `json:"current,omitempty"`
	GrassHeight  *string        `json:"grassHeight,omitempty"`
	Status       *PastureStatus `json:"status,omitempty"`
	Type         *string        `json:"type,omitempty"`
	LastRotation *string        `json:"lastRotation,omitempty"`
}

// Apply returns a copy of p with every present patch field merged in.
func (pp PasturePatch) Apply(p Pasture) Pasture {
	if pp.Name != nil {
		p.Name = *pp.Name
	}
	if pp.Area != nil {
		p.Area = *pp.Area
	}
	if pp.Capacity != nil {
		p.Capacity = *pp.Capacity
	}
	if pp.Current != nil {
		p.Current = *pp.Current
	}
	if pp.GrassHeight != nil {
		p.GrassHeight = *pp.GrassHeight
	}
	if pp.Status != nil {
		p.Status = *pp.Status
	}
	if pp.Type != nil {
		p.Type = *pp.Type
	}
	if pp.LastRotation != nil {
		p.LastRotation = *pp.LastRotation
	}
	return p
}
