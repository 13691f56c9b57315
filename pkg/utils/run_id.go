package utils

import (
	"github.com/google/uuid"
)

var newUUIDv7 = uuid.NewV7

// NewRunID returns a time-ordered identifier for one seed run
func NewRunID() string {
	id, err := newUUIDv7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
