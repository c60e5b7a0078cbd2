package interfaces

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrUnauthorized reports a missing or invalid credential.
var ErrUnauthorized = errors.New("auth: unauthorized")

// Identity describes the authenticated caller of a mutation or proxy route.
type Identity struct {
	UserID uuid.UUID
	Email  string
	Roles  []string
}

// AuthService validates bearer tokens presented by admin callers. The
// storefront never mints tokens itself; the host wires its own verifier.
// Implementations must return ErrUnauthorized (possibly wrapped) for any
// token that does not map to a live session.
type AuthService interface {
	Authenticate(ctx context.Context, bearerToken string) (*Identity, error)
}
