package repository

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"skillup/api/internal/kv"
	"skillup/api/internal/models"
)

var ErrResourceNotFound = errors.New("resource not found")

const resourcePrefix = "resource:"

type ResourceRepository struct {
	records records[models.Resource]
}

func NewResourceRepository(store kv.Store, log zerolog.Logger) *ResourceRepository {
	return &ResourceRepository{records: records[models.Resource]{store: store, log: log}}
}

func (r *ResourceRepository) Get(ctx context.Context, id string) (models.Resource, error) {
	resource, err := r.records.get(ctx, resourcePrefix+id)
	if errors.Is(err, kv.ErrNotFound) {
		return models.Resource{}, ErrResourceNotFound
	}
	return resource, err
}

func (r *ResourceRepository) Save(ctx context.Context, resource models.Resource) error {
	return r.records.put(ctx, resourcePrefix+resource.ID, resource)
}

func (r *ResourceRepository) Delete(ctx context.Context, id string) error {
	return r.records.store.Delete(ctx, resourcePrefix+id)
}

func (r *ResourceRepository) List(ctx context.Context) ([]models.Resource, error) {
	items, err := r.records.list(ctx, resourcePrefix)
	if err != nil {
		return nil, err
	}
	return values(items), nil
}
