// Package models defines the person record and the search request/response shapes.
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Person is one record of the dataset. Records are created once at load and never mutated.
type Person struct {
	ID              FlexString `json:"id" db:"id"`
	CIIDNum         FlexString `json:"ci_id_num" db:"ci_id_num"`
	FullName        string     `json:"full_name" db:"full_name"`
	FirstName       string     `json:"first_name" db:"first_name"`
	FatherName      string     `json:"father_name" db:"father_name"`
	GrandfatherName string     `json:"grandfather_name" db:"grandfather_name"`
	FamilyName      string     `json:"family_name" db:"family_name"`
}

// FlexString is an identifier that may arrive as a JSON number or a numeric string.
// It is always compared in its string form; numbers keep their literal digits.
type FlexString string

// String returns the identifier as text.
func (f FlexString) String() string {
	return string(f)
}

// UnmarshalJSON accepts a string, a number or null.
func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0, bytes.Equal(data, []byte("null")):
		*f = ""
		return nil
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("identifier must be a string or number, got %s", data)
	}
	*f = FlexString(canonicalNumber(n))
	return nil
}

// canonicalNumber renders integral numbers written in exponent form (1e3) as plain digits.
func canonicalNumber(n json.Number) string {
	s := n.String()
	if _, err := strconv.ParseInt(s, 10, 64); err == nil {
		return s
	}
	if fl, err := n.Float64(); err == nil && fl == float64(int64(fl)) {
		return strconv.FormatInt(int64(fl), 10)
	}
	return s
}
