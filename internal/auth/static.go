package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"

	"github.com/amara-beauty/storefront-cms/pkg/interfaces"
)

// StaticToken returns an interfaces.AuthService that accepts exactly one
// pre-shared token and maps it onto identity. It suits single-operator
// deployments; hosts with real user accounts wire their own verifier.
// An empty token rejects every caller.
func StaticToken(token string, identity interfaces.Identity) interfaces.AuthService {
	return &staticTokenService{
		token:    strings.TrimSpace(token),
		identity: identity,
	}
}

type staticTokenService struct {
	token    string
	identity interfaces.Identity
}

func (s *staticTokenService) Authenticate(ctx context.Context, bearerToken string) (*interfaces.Identity, error) {
	if s.token == "" {
		return nil, fmt.Errorf("%w: no admin token configured", interfaces.ErrUnauthorized)
	}
	if subtle.ConstantTimeCompare([]byte(s.token), []byte(bearerToken)) != 1 {
		return nil, fmt.Errorf("%w: token mismatch", interfaces.ErrUnauthorized)
	}
	identity := s.identity
	return &identity, nil
}
