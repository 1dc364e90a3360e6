package utils

import "github.com/google/uuid"

// UUIDGenerator issues identifiers for newly registered identities. It
// prefers time-ordered v7 UUIDs so records sort roughly by creation time.
type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a v7 UUID, falling back to v4 if the system clock or
// entropy source fails.
func (g *UUIDGenerator) Generate() string {
	if v7, err := uuid.NewV7(); err == nil {
		return v7.String()
	}

	return uuid.NewString()
}
