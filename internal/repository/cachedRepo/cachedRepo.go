package cachedRepo

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sunnykeerthi/service-center-user/internal/domain"
	"github.com/sunnykeerthi/service-center-user/pkg/prometheus"
)

type IdentityProvider interface {
	Identity(ctx context.Context, token string) (domain.Identity, error)
}

type CacheRepository interface {
	GetIdentity(ctx context.Context, key string) (domain.Identity, error)
	SetIdentity(ctx context.Context, key string, identity domain.Identity) error
}

type CachedRepo struct {
	repo  IdentityProvider
	cache CacheRepository
	log   *slog.Logger
}

func NewCachedRepo(repo IdentityProvider, cache CacheRepository, log *slog.Logger) *CachedRepo {

	return &CachedRepo{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

func (r *CachedRepo) Identity(ctx context.Context, token string) (domain.Identity, error) {
	const op = "cachedRepo.Identity"

	key := tokenKey(token)
	identity, err := r.cache.GetIdentity(ctx, key)
	if err == nil {
		prometheus.CacheOperations.WithLabelValues("hit").Inc()
		return identity, nil
	}
	if !errors.Is(err, domain.ErrRecordNotFound) {
		prometheus.CacheOperations.WithLabelValues("error").Inc()
		r.log.WarnContext(ctx, "cache lookup failed",
			"error", err,
		)
	}
	prometheus.CacheOperations.WithLabelValues("miss").Inc()
	identity, err = r.repo.Identity(ctx, token)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("%s: %w", op, err)
	}

	go func() {
		if err := r.cache.SetIdentity(context.WithoutCancel(ctx), key, identity); err != nil {
			r.log.ErrorContext(ctx, "failed to cache identity",
				"error", err,
			)
		}
	}()
	return identity, nil
}

// tokenKey hashes the access token so raw credentials never reach the cache
// backend.
func tokenKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
