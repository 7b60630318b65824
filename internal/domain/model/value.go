package model

import "encoding/json"

// Value is an optional float64. The zero Value is undefined.
//
// Undefined values flow through every derived field (acute, chronic, acwr)
// instead of NaN sentinels or errors; consumers render them as "no data".
type Value struct {
	v  float64
	ok bool
}

// Some returns a defined Value.
func Some(v float64) Value {
	return Value{v: v, ok: true}
}

// None returns an undefined Value.
func None() Value {
	return Value{}
}

// Defined reports whether the value is present.
func (v Value) Defined() bool {
	return v.ok
}

// Float64 returns the underlying number and whether it is defined.
func (v Value) Float64() (float64, bool) {
	return v.v, v.ok
}

// Or returns the underlying number, or fallback when undefined.
func (v Value) Or(fallback float64) float64 {
	if !v.ok {
		return fallback
	}
	return v.v
}

// MarshalJSON encodes a defined Value as a number and an undefined one as null.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.ok {
		return []byte("null"), nil
	}
	return json.Marshal(v.v)
}

// UnmarshalJSON decodes null as undefined and a number as defined.
func (v *Value) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*v = None()
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*v = Some(f)
	return nil
}
