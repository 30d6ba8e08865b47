package domain

import (
	"time"

	"github.com/google/uuid"
)

// Token represents a delegated API token. The owner reference is a foreign-key
// style relation to a user or service; it is consulted only for the owner
// intersection when the token's effective scopes are computed.
type Token struct {
	ID        uuid.UUID
	TokenHash string
	OwnerKind PrincipalKind
	OwnerName string
	ExpiresAt time.Time
	RevokedAt *time.Time
	CreatedAt time.Time
}

// IssueTokenInput contains the parameters for issuing a new API token.
type IssueTokenInput struct {
	OwnerKind PrincipalKind
	OwnerName string
}

// IssueTokenOutput contains the result of issuing a token. The plain token is
// only returned once and is never retrievable again.
type IssueTokenOutput struct {
	ID         uuid.UUID
	PlainToken string
}

// Role is a named bag of scope grant strings. How roles are assembled is not
// this system's concern; it only flattens the grants of a principal's assigned
// roles into the raw scope list the resolver consumes.
type Role struct {
	ID        uuid.UUID
	Name      string
	Scopes    []string
	CreatedAt time.Time
}
