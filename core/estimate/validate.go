package estimate

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInput is matched by errors.Is for every rejected input.
var ErrInvalidInput = errors.New("invalid input")

// InvalidInputError describes the first field that failed validation.
type InvalidInputError struct {
	Field  string
	Value  any
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s (%v): %s", e.Field, e.Value, e.Reason)
}

// Is reports whether target is ErrInvalidInput.
func (e *InvalidInputError) Is(target error) bool { return target == ErrInvalidInput }

func invalid(field string, v any, reason string) error {
	return &InvalidInputError{Field: field, Value: v, Reason: reason}
}

// check accumulates the first validation failure so estimators can chain
// field checks without repeating the error plumbing.
type check struct {
	err error
}

func (c *check) finite(field string, v float64) bool {
	if c.err != nil {
		return false
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		c.err = invalid(field, v, "must be a finite number")
		return false
	}
	return true
}

func (c *check) positive(field string, v float64) {
	if c.finite(field, v) && v <= 0 {
		c.err = invalid(field, v, "must be greater than 0")
	}
}

func (c *check) nonNegative(field string, v float64) {
	if c.finite(field, v) && v < 0 {
		c.err = invalid(field, v, "must not be negative")
	}
}

func (c *check) between(field string, v, lo, hi float64) {
	if c.finite(field, v) && (v < lo || v > hi) {
		c.err = invalid(field, v, fmt.Sprintf("must be within [%g, %g]", lo, hi))
	}
}

func lookup[K ~string, V any](c *check, field string, table map[K]V, key K) V {
	v, ok := table[key]
	if !ok && c.err == nil {
		c.err = invalid(field, string(key), "unknown value")
	}
	return v
}
