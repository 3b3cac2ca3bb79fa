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

const customerCachePrefix = "customers:list:"

// CustomerRepository adds listing caches on top of a customer repository.
// Only the listing reads are cached; lookups and login paths always hit
// the database. Any write invalidates every cached customer listing, so a
// stale page can survive at most the configured TTL.
type CustomerRepository struct {
	repo  repository.CustomerRepository
	cache *redis.Client
	ttl   time.Duration
}

// NewCustomerRepository creates a new cached customer repository
func NewCustomerRepository(repo repository.CustomerRepository, cache *redis.Client, ttl time.Duration) *CustomerRepository {
	return &CustomerRepository{
		repo:  repo,
		cache: cache,
		ttl:   ttl,
	}
}

func (r *CustomerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	if err := r.repo.Create(ctx, customer); err != nil {
		return err
	}

	r.invalidate(ctx)
	return nil
}

func (r *CustomerRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	return r.repo.GetByID(ctx, id)
}

func (r *CustomerRepository) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	return r.repo.GetByEmail(ctx, email)
}

func (r *CustomerRepository) SearchByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	return r.repo.SearchByEmail(ctx, email)
}

func (r *CustomerRepository) Update(ctx context.Context, customer *domain.Customer) error {
	if err := r.repo.Update(ctx, customer); err != nil {
		return err
	}

	r.invalidate(ctx)
	return nil
}

func (r *CustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.repo.Delete(ctx, id); err != nil {
		return err
	}

	r.invalidate(ctx)
	return nil
}

func (r *CustomerRepository) List(ctx context.Context, limit, offset int) ([]*domain.Customer, error) {
	cacheKey := fmt.Sprintf("%s%d:%d", customerCachePrefix, limit, offset)

	if customers, ok := r.fromCache(ctx, cacheKey); ok {
		return customers, nil
	}

	customers, err := r.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	r.toCache(ctx, cacheKey, customers)
	return customers, nil
}

func (r *CustomerRepository) ListAll(ctx context.Context) ([]*domain.Customer, error) {
	cacheKey := customerCachePrefix + "all"

	if customers, ok := r.fromCache(ctx, cacheKey); ok {
		return customers, nil
	}

	customers, err := r.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	r.toCache(ctx, cacheKey, customers)
	return customers, nil
}

func (r *CustomerRepository) fromCache(ctx context.Context, key string) ([]*domain.Customer, bool) {
	cached, err := r.cache.Get(ctx, key)
	if err != nil {
		// Both a plain miss and a real cache error degrade to the DB
		return nil, false
	}

	var customers []*domain.Customer
	if err := json.Unmarshal([]byte(cached), &customers); err != nil {
		return nil, false
	}

	return customers, true
}

func (r *CustomerRepository) toCache(ctx context.Context, key string, customers []*domain.Customer) {
	payload, err := json.Marshal(customers)
	if err != nil {
		return
	}

	// Cache write failures are not critical
	_ = r.cache.Set(ctx, key, payload, r.ttl)
}

func (r *CustomerRepository) invalidate(ctx context.Context) {
	iter := r.cache.GetClient().Scan(ctx, 0, customerCachePrefix+"*", 0).Iterator()
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

var _ repository.CustomerRepository = (*CustomerRepository)(nil)
