// Package services defines the business logic for the airline booking
// backend. This file centralizes service-level error values so they can be
// consistently returned by service methods and checked by callers.
//
// Translating these into HTTP statuses and user-facing messages is the
// handler layer's job.
package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrCountryNotFound indicates the referenced country does not exist.
	ErrCountryNotFound = errors.New("country not found")

	// ErrCityNotFound indicates the referenced city does not exist.
	ErrCityNotFound = errors.New("city not found")

	// ErrAirportNotFound indicates the referenced airport does not exist.
	ErrAirportNotFound = errors.New("airport not found")

	// ErrAirplaneTypeNotFound indicates the referenced airplane type does
	// not exist.
	ErrAirplaneTypeNotFound = errors.New("airplane type not found")

	// ErrAirplaneNotFound indicates the referenced airplane does not exist.
	ErrAirplaneNotFound = errors.New("airplane not found")

	// ErrCrewNotFound indicates a referenced crew member does not exist.
	ErrCrewNotFound = errors.New("crew member not found")

	// ErrRouteNotFound indicates the referenced route does not exist.
	ErrRouteNotFound = errors.New("route not found")

	// ErrFlightNotFound indicates the referenced flight does not exist.
	ErrFlightNotFound = errors.New("flight not found")

	// ErrOrderNotFound indicates the order does not exist or is not owned
	// by the caller.
	ErrOrderNotFound = errors.New("order not found")

	// ErrChatNotFound indicates the support thread does not exist or is not
	// visible to the caller.
	ErrChatNotFound = errors.New("chat not found")

	// ErrMessageNotFound indicates the chat message does not exist or is
	// not owned by the caller. Ownership mismatches intentionally surface
	// as not-found, never as forbidden.
	ErrMessageNotFound = errors.New("message not found")

	// ErrAlreadyMember is returned when connecting a user who already
	// belongs to the thread. Membership transitions are strict, not
	// idempotent.
	ErrAlreadyMember = errors.New("user already connected to the chat")

	// ErrNotMember is returned when disconnecting a user who is not in the
	// thread.
	ErrNotMember = errors.New("user not in chat")

	// ErrSeatTaken is returned when a requested (flight, row, seat) slot is
	// already sold, either detected up front or via the unique constraint.
	ErrSeatTaken = errors.New("seat already taken for this flight")
)

// ValidationError carries field-level validation failures. Keys address the
// offending input field ("rows", "tickets[2].seat", ...), values describe
// the problem.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

// Add records one more field failure and returns the receiver for chaining.
func (e *ValidationError) Add(field, msg string) *ValidationError {
	if e.Fields == nil {
		e.Fields = map[string]string{}
	}
	e.Fields[field] = msg
	return e
}

// Empty reports whether no field failures were recorded.
func (e *ValidationError) Empty() bool { return len(e.Fields) == 0 }

// Error summarizes the failed fields in a stable order.
func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// isDuplicate detects unique-constraint violations across drivers that may
// not map to gorm.ErrDuplicatedKey.
func isDuplicate(err error) bool {
	if err == nil {
		return false
	}
	// SQLite: "UNIQUE constraint failed"
	// Postgres: "duplicate key value violates unique constraint"
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key")
}
