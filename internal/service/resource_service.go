package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"skillup/api/internal/ids"
	"skillup/api/internal/models"
	"skillup/api/internal/repository"
)

// Default map position for resources created without coordinates (Manila).
const (
	DefaultLatitude  = 14.5995
	DefaultLongitude = 120.9842
)

type ResourceService struct {
	resources *repository.ResourceRepository
	log       zerolog.Logger
	now       func() time.Time
}

func NewResourceService(resources *repository.ResourceRepository, log zerolog.Logger) *ResourceService {
	return &ResourceService{
		resources: resources,
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// ResourceInput is used for both create and partial update; nil fields are left alone.
type ResourceInput struct {
	Name      *string
	Type      *string
	Address   *string
	Contact   *string
	Latitude  *float64
	Longitude *float64
}

// List returns every resource, newest first.
func (s *ResourceService) List(ctx context.Context) ([]models.Resource, error) {
	items, err := s.resources.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

func (s *ResourceService) Create(ctx context.Context, input ResourceInput) (models.Resource, error) {
	name := strings.TrimSpace(deref(input.Name))
	kind := strings.TrimSpace(deref(input.Type))
	if name == "" || kind == "" {
		return models.Resource{}, NewValidationError("Name and type are required")
	}
	if !models.ResourceType(kind).Valid() {
		return models.Resource{}, NewValidationError("Invalid resource type")
	}

	resource := models.Resource{
		ID:        ids.NewWithPrefix("resource"),
		Name:      name,
		Type:      models.ResourceType(kind),
		Address:   deref(input.Address),
		Contact:   deref(input.Contact),
		Latitude:  DefaultLatitude,
		Longitude: DefaultLongitude,
		CreatedAt: s.now(),
	}
	if input.Latitude != nil && *input.Latitude != 0 {
		resource.Latitude = *input.Latitude
	}
	if input.Longitude != nil && *input.Longitude != 0 {
		resource.Longitude = *input.Longitude
	}

	if err := s.resources.Save(ctx, resource); err != nil {
		return models.Resource{}, err
	}
	return resource, nil
}

func (s *ResourceService) Update(ctx context.Context, id string, input ResourceInput) (models.Resource, error) {
	resource, err := s.get(ctx, id)
	if err != nil {
		return models.Resource{}, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return models.Resource{}, NewValidationError("Name cannot be empty")
		}
		resource.Name = name
	}
	if input.Type != nil {
		kind := models.ResourceType(strings.TrimSpace(*input.Type))
		if !kind.Valid() {
			return models.Resource{}, NewValidationError("Invalid resource type")
		}
		resource.Type = kind
	}
	if input.Address != nil {
		resource.Address = *input.Address
	}
	if input.Contact != nil {
		resource.Contact = *input.Contact
	}
	if input.Latitude != nil {
		resource.Latitude = *input.Latitude
	}
	if input.Longitude != nil {
		resource.Longitude = *input.Longitude
	}

	now := s.now()
	resource.UpdatedAt = &now
	if err := s.resources.Save(ctx, resource); err != nil {
		return models.Resource{}, err
	}
	return resource, nil
}

func (s *ResourceService) Delete(ctx context.Context, id string) error {
	if _, err := s.get(ctx, id); err != nil {
		return err
	}
	return s.resources.Delete(ctx, id)
}

func (s *ResourceService) get(ctx context.Context, id string) (models.Resource, error) {
	resource, err := s.resources.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrResourceNotFound) {
			return models.Resource{}, NewNotFoundError("Resource not found")
		}
		return models.Resource{}, err
	}
	return resource, nil
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
