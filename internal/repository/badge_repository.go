package repository

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"skillup/api/internal/kv"
	"skillup/api/internal/models"
)

const badgesPrefix = "badges:"

type BadgeRepository struct {
	records records[models.Badges]
}

func NewBadgeRepository(store kv.Store, log zerolog.Logger) *BadgeRepository {
	return &BadgeRepository{records: records[models.Badges]{
		store: store,
		log:   log,
		fill: func(key string, b *models.Badges) {
			if b.UserID == "" {
				b.UserID = suffix(key, badgesPrefix)
			}
		},
	}}
}

// Get returns an empty badge set for users without a record.
func (r *BadgeRepository) Get(ctx context.Context, userID string) (models.Badges, error) {
	badges, err := r.records.get(ctx, badgesPrefix+userID)
	if errors.Is(err, kv.ErrNotFound) {
		return models.Badges{UserID: userID, EarnedBadges: []string{}}, nil
	}
	if err != nil {
		return models.Badges{}, err
	}
	if badges.EarnedBadges == nil {
		badges.EarnedBadges = []string{}
	}
	return badges, nil
}

func (r *BadgeRepository) Save(ctx context.Context, badges models.Badges) error {
	if badges.EarnedBadges == nil {
		badges.EarnedBadges = []string{}
	}
	return r.records.put(ctx, badgesPrefix+badges.UserID, badges)
}

func (r *BadgeRepository) Delete(ctx context.Context, userID string) error {
	return r.records.store.Delete(ctx, badgesPrefix+userID)
}
