package models

import "strings"

// SchemaError is returned when a record fails the stored-shape rules. It
// carries every violated rule, not just the first.
type SchemaError struct {
	Messages []string
}

func (e *SchemaError) Error() string {
	return strings.Join(e.Messages, ", ")
}

func schemaError(msgs []string) error {
	if len(msgs) == 0 {
		return nil
	}
	return &SchemaError{Messages: msgs}
}
