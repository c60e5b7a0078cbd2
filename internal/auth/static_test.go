package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/amara-beauty/storefront-cms/pkg/interfaces"
)

func TestStaticTokenAcceptsConfiguredToken(t *testing.T) {
	userID := uuid.New()
	svc := StaticToken("s3cret", interfaces.Identity{UserID: userID, Email: "ops@amara.vn"})

	identity, err := svc.Authenticate(context.Background(), "s3cret")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if identity == nil || identity.UserID != userID {
		t.Fatalf("unexpected identity %+v", identity)
	}
}

func TestStaticTokenRejectsMismatch(t *testing.T) {
	svc := StaticToken("s3cret", interfaces.Identity{UserID: uuid.New()})

	if _, err := svc.Authenticate(context.Background(), "wrong"); !errors.Is(err, interfaces.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), ""); !errors.Is(err, interfaces.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for empty token, got %v", err)
	}
}

func TestStaticTokenRejectsEverythingWhenUnconfigured(t *testing.T) {
	svc := StaticToken("   ", interfaces.Identity{})

	if _, err := svc.Authenticate(context.Background(), ""); !errors.Is(err, interfaces.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
