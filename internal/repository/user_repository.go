package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"skillup/api/internal/kv"
	"skillup/api/internal/models"
)

var ErrUserNotFound = errors.New("user not found")

const userPrefix = "user:"

type UserRepository struct {
	records records[models.User]
}

func NewUserRepository(store kv.Store, log zerolog.Logger) *UserRepository {
	return &UserRepository{records: records[models.User]{store: store, log: log}}
}

func (r *UserRepository) Save(ctx context.Context, user models.User) error {
	return r.records.put(ctx, userPrefix+user.ID, user)
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (models.User, error) {
	user, err := r.records.get(ctx, userPrefix+id)
	if errors.Is(err, kv.ErrNotFound) {
		return models.User{}, ErrUserNotFound
	}
	return user, err
}

func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	items, err := r.records.list(ctx, userPrefix)
	if err != nil {
		return nil, err
	}
	return values(items), nil
}

// FindByID scans every user record. It catches records whose key and id drifted apart.
func (r *UserRepository) FindByID(ctx context.Context, id string) (models.User, error) {
	return r.find(ctx, func(u models.User) bool { return u.ID == id })
}

// FindByEmail matches case-insensitively. The optional filter narrows the
// candidates, e.g. to admins only.
func (r *UserRepository) FindByEmail(ctx context.Context, email string, filter func(models.User) bool) (models.User, error) {
	return r.find(ctx, func(u models.User) bool {
		if !strings.EqualFold(u.Email, email) {
			return false
		}
		return filter == nil || filter(u)
	})
}

func (r *UserRepository) find(ctx context.Context, match func(models.User) bool) (models.User, error) {
	users, err := r.List(ctx)
	if err != nil {
		return models.User{}, err
	}
	for _, user := range users {
		if match(user) {
			return user, nil
		}
	}
	return models.User{}, ErrUserNotFound
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	return r.records.store.Delete(ctx, userPrefix+id)
}
