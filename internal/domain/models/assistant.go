package models

// VisionResult is what the assistant infers from a photo of an animal. Every field
// is optional.
type VisionResult struct {
	Breed              string   `json:"breed,omitempty"`
	EstimatedWeight    *float64 `json:"estimatedWeight,omitempty"`
	BodyConditionScore string   `json:"bodyConditionScore,omitempty"`
	HealthNotes        string   `json:"healthNotes,omitempty"`
}
