package usecase

import (
	"context"
	"fmt"

	"github.com/sunnykeerthi/service-center-user/internal/domain"
)

type Identity struct {
	provider IdentityProvider
}

func NewIdentity(provider IdentityProvider) *Identity {
	return &Identity{provider: provider}
}

func (uc *Identity) Resolve(ctx context.Context, token string) (domain.Identity, error) {
	const op = "usecase.ResolveIdentity"

	if token == "" {
		return domain.Identity{}, fmt.Errorf("%s: %w", op, domain.ErrNoLinkedAccount)
	}

	identity, err := uc.provider.Identity(ctx, token)
	if err != nil {
		return domain.Identity{}, &domain.RemoteError{Op: op, Err: err}
	}
	return identity, nil
}
