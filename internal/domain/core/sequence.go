package core

import (
	"context"
	"fmt"
)

const EntityEmployee = "employee"

// NextCode allocates the next code for a named entity, e.g. EMP-001.
// The counter bump is a single atomic upsert, so concurrent creators
// cannot observe the same value.
func (s *Store) NextCode(ctx context.Context, entity string) (string, error) {
	var lastValue int
	err := s.DB.QueryRow(ctx, `
    INSERT INTO counters (entity, last_value)
    VALUES ($1, 1)
    ON CONFLICT (entity)
    DO UPDATE SET last_value = counters.last_value + 1, updated_at = now()
    RETURNING last_value
  `, entity).Scan(&lastValue)
	if err != nil {
		return "", err
	}
	return FormatCode(entity, lastValue), nil
}

// FormatCode renders a counter value as a display code, zero-padded to
// three digits (EMP-001, EMP-042, EMP-1000).
func FormatCode(entity string, value int) string {
	prefix := "EMP"
	if entity != EntityEmployee {
		prefix = entity
	}
	return fmt.Sprintf("%s-%03d", prefix, value)
}
