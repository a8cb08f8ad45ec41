package patient

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
)

// cachedRepo keeps hits from the single-record lookups in memory. Misses are
// never cached so a record is visible as soon as it is inserted, and records
// are never modified through this service, so hits do not go stale.
type cachedRepo struct {
	Repository
	cache *cache.Cache
}

// NewCachedRepo wraps next with a read-through cache. A non-positive ttl
// disables caching and returns next unchanged.
func NewCachedRepo(next Repository, ttl time.Duration) Repository {
	if ttl <= 0 {
		return next
	}
	return &cachedRepo{Repository: next, cache: cache.New(ttl, 2*ttl)}
}

const (
	keyPatientID      = "pid:"
	keyEmail          = "email:"
	keyPhone          = "phone:"
	keyIdentification = "ident:"
)

func (r *cachedRepo) GetByPatientID(ctx context.Context, patientID string) (*Patient, error) {
	return r.lookup(keyPatientID+patientID, func() (*Patient, error) {
		return r.Repository.GetByPatientID(ctx, patientID)
	})
}

func (r *cachedRepo) GetByEmail(ctx context.Context, email string) (*Patient, error) {
	return r.lookup(keyEmail+email, func() (*Patient, error) {
		return r.Repository.GetByEmail(ctx, email)
	})
}

func (r *cachedRepo) GetByPhoneNumber(ctx context.Context, phone string) (*Patient, error) {
	return r.lookup(keyPhone+phone, func() (*Patient, error) {
		return r.Repository.GetByPhoneNumber(ctx, phone)
	})
}

func (r *cachedRepo) GetByIdentificationNumber(ctx context.Context, number string) (*Patient, error) {
	return r.lookup(keyIdentification+number, func() (*Patient, error) {
		return r.Repository.GetByIdentificationNumber(ctx, number)
	})
}

func (r *cachedRepo) Create(ctx context.Context, p *Patient) error {
	if err := r.Repository.Create(ctx, p); err != nil {
		return err
	}
	r.put(keyPatientID+p.PatientID, p)
	return nil
}

func (r *cachedRepo) lookup(key string, load func() (*Patient, error)) (*Patient, error) {
	if v, ok := r.cache.Get(key); ok {
		cp := *v.(*Patient)
		return &cp, nil
	}
	p, err := load()
	if err != nil {
		return nil, err
	}
	r.put(key, p)
	return p, nil
}

func (r *cachedRepo) put(key string, p *Patient) {
	cp := *p
	r.cache.SetDefault(key, &cp)
}
