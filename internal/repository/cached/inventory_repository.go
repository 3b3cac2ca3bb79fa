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

const inventoryCachePrefix = "inventory:list:"

// InventoryPartRepository adds listing caches on top of an inventory repository.
type InventoryPartRepository struct {
	repo  repository.InventoryPartRepository
	cache *redis.Client
	ttl   time.Duration
}

// NewInventoryPartRepository creates a new cached inventory repository
func NewInventoryPartRepository(repo repository.InventoryPartRepository, cache *redis.Client, ttl time.Duration) *InventoryPartRepository {
	return &InventoryPartRepository{
		repo:  repo,
		cache: cache,
		ttl:   ttl,
	}
}

func (r *InventoryPartRepository) Create(ctx context.Context, part *domain.InventoryPart) error {
	if err := r.repo.Create(ctx, part); err != nil {
		return err
	}

	r.invalidate(ctx)
	return nil
}

func (r *InventoryPartRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.InventoryPart, error) {
	return r.repo.GetByID(ctx, id)
}

func (r *InventoryPartRepository) GetByPartName(ctx context.Context, partName string) (*domain.InventoryPart, error) {
	return r.repo.GetByPartName(ctx, partName)
}

func (r *InventoryPartRepository) SearchByPartName(ctx context.Context, partName string) (*domain.InventoryPart, error) {
	return r.repo.SearchByPartName(ctx, partName)
}

func (r *InventoryPartRepository) Update(ctx context.Context, part *domain.InventoryPart) error {
	if err := r.repo.Update(ctx, part); err != nil {
		return err
	}

	r.invalidate(ctx)
	return nil
}

func (r *InventoryPartRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.repo.Delete(ctx, id); err != nil {
		return err
	}

	r.invalidate(ctx)
	return nil
}

func (r *InventoryPartRepository) List(ctx context.Context, limit, offset int) ([]*domain.InventoryPart, error) {
	cacheKey := fmt.Sprintf("%s%d:%d", inventoryCachePrefix, limit, offset)

	if parts, ok := r.fromCache(ctx, cacheKey); ok {
		return parts, nil
	}

	parts, err := r.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	r.toCache(ctx, cacheKey, parts)
	return parts, nil
}

func (r *InventoryPartRepository) ListAll(ctx context.Context) ([]*domain.InventoryPart, error) {
	cacheKey := inventoryCachePrefix + "all"

	if parts, ok := r.fromCache(ctx, cacheKey); ok {
		return parts, nil
	}

	parts, err := r.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	r.toCache(ctx, cacheKey, parts)
	return parts, nil
}

func (r *InventoryPartRepository) fromCache(ctx context.Context, key string) ([]*domain.InventoryPart, bool) {
	cached, err := r.cache.Get(ctx, key)
	if err != nil {
		// Both a plain miss and a real cache error degrade to the DB
		return nil, false
	}

	var parts []*domain.InventoryPart
	if err := json.Unmarshal([]byte(cached), &parts); err != nil {
		return nil, false
	}

	return parts, true
}

func (r *InventoryPartRepository) toCache(ctx context.Context, key string, parts []*domain.InventoryPart) {
	payload, err := json.Marshal(parts)
	if err != nil {
		return
	}

	// Cache write failures are not critical
	_ = r.cache.Set(ctx, key, payload, r.ttl)
}

func (r *InventoryPartRepository) invalidate(ctx context.Context) {
	iter := r.cache.GetClient().Scan(ctx, 0, inventoryCachePrefix+"*", 0).Iterator()
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

var _ repository.InventoryPartRepository = (*InventoryPartRepository)(nil)
