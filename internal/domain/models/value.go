package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// FieldValue holds the value of an audited field: either a number (weight) or text
// (status, lot). It serializes as a bare JSON number or string.
type FieldValue struct {
	num     float64
	text    string
	numeric bool
}

// Number wraps a numeric value.
func Number(v float64) *FieldValue {
	return &FieldValue{num: v, numeric: true}
}

// Text wraps a textual value.
func Text(v string) *FieldValue {
	return &FieldValue{text: v}
}

// IsNumber reports whether the value is numeric.
func (v FieldValue) IsNumber() bool { return v.numeric }

// Float returns the numeric value and whether the value is numeric.
func (v FieldValue) Float() (float64, bool) { return v.num, v.numeric }

func (v FieldValue) String() string {
	if v.numeric {
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	}
	return v.text
}

// MarshalJSON implements json.Marshaler.
func (v FieldValue) MarshalJSON() ([]byte, error) {
	if v.numeric {
		return json.Marshal(v.num)
	}
	return json.Marshal(v.text)
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *FieldValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("empty field value")
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = FieldValue{text: s}
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("field value must be a number or string: %w", err)
	}
	*v = FieldValue{num: f, numeric: true}
	return nil
}
