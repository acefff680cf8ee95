package main

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// The lsblk JSON schema drifted between util-linux releases: numbers are
// sometimes quoted, booleans sometimes "0"/"1", and most columns may be null.
// These field types accept every observed shape and fall back to "absent"
// instead of failing the whole document.

var jsonNull = []byte("null")

type optString struct {
	Value string
	Valid bool
}

func (s *optString) UnmarshalJSON(b []byte) error {
	*s = optString{}
	if bytes.Equal(b, jsonNull) {
		return nil
	}
	var v string
	if err := json.Unmarshal(b, &v); err != nil {
		return nil
	}
	*s = optString{Value: v, Valid: true}
	return nil
}

// Or returns the value, or def when the field is absent or empty.
func (s optString) Or(def string) string {
	if !s.Valid || s.Value == "" {
		return def
	}
	return s.Value
}

type optInt64 struct {
	Value int64
	Valid bool
}

func (n *optInt64) UnmarshalJSON(b []byte) error {
	*n = optInt64{}
	v, err := strconv.ParseInt(string(unquote(b)), 10, 64)
	if err != nil {
		return nil
	}
	*n = optInt64{Value: v, Valid: true}
	return nil
}

func (n optInt64) Or(def int64) int64 {
	if !n.Valid {
		return def
	}
	return n.Value
}

type optUint64 struct {
	Value uint64
	Valid bool
}

func (n *optUint64) UnmarshalJSON(b []byte) error {
	*n = optUint64{}
	v, err := strconv.ParseUint(string(unquote(b)), 10, 64)
	if err != nil {
		return nil
	}
	*n = optUint64{Value: v, Valid: true}
	return nil
}

// Ptr returns a pointer to the value, or nil when absent.
func (n optUint64) Ptr() *uint64 {
	if !n.Valid {
		return nil
	}
	v := n.Value
	return &v
}

type optBool struct {
	Value bool
	Valid bool
}

func (f *optBool) UnmarshalJSON(b []byte) error {
	*f = optBool{}
	v, err := strconv.ParseBool(string(unquote(b)))
	if err != nil {
		return nil
	}
	*f = optBool{Value: v, Valid: true}
	return nil
}

func (f optBool) Or(def bool) bool {
	if !f.Valid {
		return def
	}
	return f.Value
}

func unquote(b []byte) []byte {
	if len(b) >= 2 && b[0] == '"' && b[len(b)-1] == '"' {
		return b[1 : len(b)-1]
	}
	return b
}
