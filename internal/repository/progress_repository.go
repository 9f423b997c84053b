package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"skillup/api/internal/kv"
	"skillup/api/internal/models"
)

var ErrProgressNotFound = errors.New("progress not found")

const progressPrefix = "progress:"

type ProgressRepository struct {
	records records[models.Progress]
}

func NewProgressRepository(store kv.Store, log zerolog.Logger) *ProgressRepository {
	return &ProgressRepository{records: records[models.Progress]{
		store: store,
		log:   log,
		fill: func(key string, p *models.Progress) {
			// older clients stored unclamped percentages
			p.ProgressPercentage = min(max(p.ProgressPercentage, 0), 100)
			userID, moduleID, ok := strings.Cut(suffix(key, progressPrefix), ":")
			if !ok {
				return
			}
			if p.UserID == "" {
				p.UserID = userID
			}
			if p.ModuleID == "" {
				p.ModuleID = moduleID
			}
		},
	}}
}

func progressKey(userID, moduleID string) string {
	return progressPrefix + userID + ":" + moduleID
}

func (r *ProgressRepository) Get(ctx context.Context, userID, moduleID string) (models.Progress, error) {
	progress, err := r.records.get(ctx, progressKey(userID, moduleID))
	if errors.Is(err, kv.ErrNotFound) {
		return models.Progress{}, ErrProgressNotFound
	}
	return progress, err
}

func (r *ProgressRepository) Save(ctx context.Context, progress models.Progress) error {
	return r.records.put(ctx, progressKey(progress.UserID, progress.ModuleID), progress)
}

func (r *ProgressRepository) ListByUser(ctx context.Context, userID string) ([]models.Progress, error) {
	items, err := r.records.list(ctx, progressPrefix+userID+":")
	if err != nil {
		return nil, err
	}
	return values(items), nil
}

func (r *ProgressRepository) List(ctx context.Context) ([]models.Progress, error) {
	items, err := r.records.list(ctx, progressPrefix)
	if err != nil {
		return nil, err
	}
	return values(items), nil
}

// DeleteByUser removes every progress key under the user's prefix, including
// records that no longer decode.
func (r *ProgressRepository) DeleteByUser(ctx context.Context, userID string) (int, error) {
	entries, err := r.records.store.GetByPrefix(ctx, progressPrefix+userID+":")
	if err != nil {
		return 0, err
	}
	for i, entry := range entries {
		if err := r.records.store.Delete(ctx, entry.Key); err != nil {
			return i, err
		}
	}
	return len(entries), nil
}
