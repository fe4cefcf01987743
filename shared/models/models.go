package models

import (
	"github.com/google/uuid"
)

// ID is a UUID-backed identifier used for sagas and events
type ID string

// GenerateUUID creates a new random ID
func GenerateUUID() ID {
	return ID(uuid.New().String())
}

// NewID parses an ID, rejecting anything that is not a UUID
func NewID(id string) (ID, error) {
	if _, err := uuid.Parse(id); err != nil {
		return "", err
	}
	return ID(id), nil
}

// String returns string representation
func (id ID) String() string {
	return string(id)
}

// IsZero reports whether the ID was never set
func (id ID) IsZero() bool {
	return id == ""
}
