package types

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// FlexInt is an int that can be unmarshaled from either a JSON number or a
// JSON string. Mobile clients send quantity and frequency fields both ways.
type FlexInt int

// UnmarshalJSON implements the json.Unmarshaler interface.
func (f *FlexInt) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		return nil
	}

	// Try unmarshaling as a number first
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexInt(n)
		return nil
	}

	// Try unmarshaling as a string
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		val, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("FlexInt: invalid integer string %q: %w", s, err)
		}
		*f = FlexInt(val)
		return nil
	}

	return fmt.Errorf("FlexInt: unexpected type, expected number or string")
}

// MarshalJSON implements the json.Marshaler interface.
func (f FlexInt) MarshalJSON() ([]byte, error) {
	return json.Marshal(int(f))
}

// Int converts FlexInt back to int.
func (f FlexInt) Int() int {
	return int(f)
}

// dateLayouts are accepted on input, most specific first.
var dateLayouts = []string{time.RFC3339, "2006-01-02"}

// FlexDate is a date that can be unmarshaled from RFC3339 timestamps or
// bare yyyy-mm-dd strings, or be null. Set records whether the field was
// present in the payload at all, so patch handlers can tell an explicit
// null (clear the date) from an omitted field (leave it alone). A JSON
// null never reaches a pointer's UnmarshalJSON, so patch structs must use
// FlexDate by value and check Set.
type FlexDate struct {
	Time  time.Time
	Valid bool
	Set   bool
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (f *FlexDate) UnmarshalJSON(data []byte) error {
	f.Set = true
	if len(data) == 0 || string(data) == "null" {
		f.Valid = false
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("FlexDate: expected string or null")
	}
	if s == "" {
		f.Valid = false
		return nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			f.Time = t.UTC()
			f.Valid = true
			return nil
		}
	}

	return fmt.Errorf("FlexDate: invalid date %q", s)
}

// MarshalJSON implements the json.Marshaler interface.
func (f FlexDate) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(f.Time.Format(time.RFC3339))
}

// FlexList is a slice that can be unmarshaled from either a single JSON
// object or a JSON array.
type FlexList[T any] []T

// UnmarshalJSON implements the json.Unmarshaler interface.
func (f *FlexList[T]) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		return nil
	}

	// If it starts with '[', treat it as a normal array
	if data[0] == '[' {
		var slice []T
		if err := json.Unmarshal(data, &slice); err != nil {
			return err
		}
		*f = FlexList[T](slice)
		return nil
	}

	// Otherwise, try to unmarshal as a single item and wrap it in a slice
	var item T
	if err := json.Unmarshal(data, &item); err != nil {
		return err
	}
	*f = FlexList[T]{item}
	return nil
}

// Slice converts FlexList[T] back to []T.
func (f FlexList[T]) Slice() []T {
	return []T(f)
}
