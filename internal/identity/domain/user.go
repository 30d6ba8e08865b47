package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents a hub user. Group membership is loaded alongside the record
// because authorization decisions expand group-filtered scopes through it.
type User struct {
	ID        uuid.UUID
	Name      string
	Admin     bool
	Groups    []string
	CreatedAt time.Time
}

// Group represents a named collection of users referenced by group-filtered
// scope grants.
type Group struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
}

// Service represents a machine service that can hold scopes and own tokens.
type Service struct {
	ID        uuid.UUID
	Name      string
	Admin     bool
	CreatedAt time.Time
}
