package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunnykeerthi/service-center-user/internal/domain"
)

type fakeIdentityProvider struct {
	identity domain.Identity
	err      error
	calls    int
}

func (f *fakeIdentityProvider) Identity(context.Context, string) (domain.Identity, error) {
	f.calls++
	return f.identity, f.err
}

func TestResolve_EmptyTokenNeverHitsProvider(t *testing.T) {
	provider := &fakeIdentityProvider{}
	uc := NewIdentity(provider)

	_, err := uc.Resolve(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrNoLinkedAccount)
	assert.Zero(t, provider.calls)
}

func TestResolve_ReturnsIdentity(t *testing.T) {
	provider := &fakeIdentityProvider{identity: domain.Identity{UserID: "005", DisplayName: "Sunny"}}
	uc := NewIdentity(provider)

	identity, err := uc.Resolve(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "Sunny", identity.DisplayName)
}

func TestResolve_WrapsProviderFailure(t *testing.T) {
	provider := &fakeIdentityProvider{err: errors.New("upstream down")}
	uc := NewIdentity(provider)

	_, err := uc.Resolve(context.Background(), "tok")
	var remoteErr *domain.RemoteError
	assert.ErrorAs(t, err, &remoteErr)
}
