package models

// HistoryKind enumerates the categories of animal history entries.
type HistoryKind string

const (
	HistoryWeight   HistoryKind = "weight"
	HistoryStatus   HistoryKind = "status"
	HistoryLocation HistoryKind = "location"
	HistoryMedical  HistoryKind = "medical"
	HistoryGeneral  HistoryKind = "general"
)

// Valid reports whether k is a known history kind.
func (k HistoryKind) Valid() bool {
	switch k {
	case HistoryWeight, HistoryStatus, HistoryLocation, HistoryMedical, HistoryGeneral:
		return true
	}
	return false
}

// HistoryRecord is one immutable entry in an animal's timeline.
type HistoryRecord struct {
	ID            string      `json:"id"`
	Date          string      `json:"date"`
	Kind          HistoryKind `json:"type"`
	Description   string      `json:"description"`
	Value         *FieldValue `json:"value,omitempty"`
	PreviousValue *FieldValue `json:"previousValue,omitempty"`
}

// DateLayout is the calendar-date format used for every stored date.
const DateLayout = "2006-01-02"
