package models

import "github.com/google/uuid"

// newID returns the string primary key assigned to every row on insert.
func newID() string {
	return uuid.NewString()
}

func ensureID(id *string) {
	if *id == "" {
		*id = newID()
	}
}
