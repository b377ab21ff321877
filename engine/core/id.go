package core

import (
	"fmt"

	"github.com/google/uuid"
)

// ID is the canonical identifier type for recipes, templates, and pipeline
// runs. Recipe and template IDs come from their source artifacts; generated
// IDs are only used for run-scoped logging correlation.
type ID string

func (i ID) String() string {
	return string(i)
}

func (i ID) IsZero() bool {
	return i == ""
}

// NewID generates a new random ID.
func NewID() (ID, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("failed to generate ID: %w", err)
	}
	return ID(id.String()), nil
}

// MustNewID generates a new random ID and panics on failure.
func MustNewID() ID {
	id, err := NewID()
	if err != nil {
		panic(err)
	}
	return id
}
