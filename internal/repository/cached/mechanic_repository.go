package cached

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/SabrinaLamprecht/Mechanic-Shop-API-Development/internal/domain"
	"github.com/SabrinaLamprecht/Mechanic-Shop-API-Development/internal/pkg/redis"
	"github.com/SabrinaLamprecht/Mechanic-Shop-API-Development/internal/repository"
	"github.com/google/uuid"
)

const mechanicCachePrefix = "mechanics:list:"

// MechanicRepository adds listing caches on top of a mechanic repository.
// The popular-mechanics view is cached under its own key. Assignments do not
// pass through this repository, so popular ordering can lag behind a fresh
// assignment; the TTL bounds how stale it can get.
type MechanicRepository struct {
	repo  repository.MechanicRepository
	cache *redis.Client
	ttl   time.Duration
}

// NewMechanicRepository creates a new cached mechanic repository
func NewMechanicRepository(repo repository.MechanicRepository, cache *redis.Client, ttl time.Duration) *MechanicRepository {
	return &MechanicRepository{
		repo:  repo,
		cache: cache,
		ttl:   ttl,
	}
}

func (r *MechanicRepository) Create(ctx context.Context, mechanic *domain.Mechanic) error {
	if err := r.repo.Create(ctx, mechanic); err != nil {
		return err
	}

	r.invalidate(ctx)
	return nil
}

func (r *MechanicRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Mechanic, error) {
	return r.repo.GetByID(ctx, id)
}

func (r *MechanicRepository) GetByEmail(ctx context.Context, email string) (*domain.Mechanic, error) {
	return r.repo.GetByEmail(ctx, email)
}

func (r *MechanicRepository) GetExistingIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]bool, error) {
	return r.repo.GetExistingIDs(ctx, ids)
}

func (r *MechanicRepository) Update(ctx context.Context, mechanic *domain.Mechanic) error {
	if err := r.repo.Update(ctx, mechanic); err != nil {
		return err
	}

	r.invalidate(ctx)
	return nil
}

func (r *MechanicRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.repo.Delete(ctx, id); err != nil {
		return err
	}

	r.invalidate(ctx)
	return nil
}

func (r *MechanicRepository) List(ctx context.Context, limit, offset int) ([]*domain.Mechanic, error) {
	cacheKey := fmt.Sprintf("%s%d:%d", mechanicCachePrefix, limit, offset)

	if mechanics, ok := r.fromCache(ctx, cacheKey); ok {
		return mechanics, nil
	}

	mechanics, err := r.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	r.toCache(ctx, cacheKey, mechanics)
	return mechanics, nil
}

func (r *MechanicRepository) ListAll(ctx context.Context) ([]*domain.Mechanic, error) {
	cacheKey := mechanicCachePrefix + "all"

	if mechanics, ok := r.fromCache(ctx, cacheKey); ok {
		return mechanics, nil
	}

	mechanics, err := r.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	r.toCache(ctx, cacheKey, mechanics)
	return mechanics, nil
}

func (r *MechanicRepository) ListByTicketCount(ctx context.Context) ([]*domain.Mechanic, error) {
	cacheKey := mechanicCachePrefix + "popular"

	if mechanics, ok := r.fromCache(ctx, cacheKey); ok {
		return mechanics, nil
	}

	mechanics, err := r.repo.ListByTicketCount(ctx)
	if err != nil {
		return nil, err
	}

	r.toCache(ctx, cacheKey, mechanics)
	return mechanics, nil
}

func (r *MechanicRepository) fromCache(ctx context.Context, key string) ([]*domain.Mechanic, bool) {
	cached, err := r.cache.Get(ctx, key)
	if err != nil {
		// Both a plain miss and a real cache error degrade to the DB
		return nil, false
	}

	var mechanics []*domain.Mechanic
	if err := json.Unmarshal([]byte(cached), &mechanics); err != nil {
		return nil, false
	}

	return mechanics, true
}

func (r *MechanicRepository) toCache(ctx context.Context, key string, mechanics []*domain.Mechanic) {
	payload, err := json.Marshal(mechanics)
	if err != nil {
		return
	}

	// Cache write failures are not critical
	_ = r.cache.Set(ctx, key, payload, r.ttl)
}

func (r *MechanicRepository) invalidate(ctx context.Context) {
	iter := r.cache.GetClient().Scan(ctx, 0, mechanicCachePrefix+"*", 0).Iterator()
	keys := []string{}
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return
	}

	if len(keys) > 0 {
		_ = r.cache.Del(ctx, keys...)
	}
}

var _ repository.MechanicRepository = (*MechanicRepository)(nil)
