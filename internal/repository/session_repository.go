package repository

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"skillup/api/internal/kv"
	"skillup/api/internal/models"
)

var ErrSessionNotFound = errors.New("session not found")

const sessionPrefix = "session:"

type SessionRepository struct {
	records records[models.Session]
}

func NewSessionRepository(store kv.Store, log zerolog.Logger) *SessionRepository {
	return &SessionRepository{records: records[models.Session]{
		store: store,
		log:   log,
		fill: func(key string, s *models.Session) {
			if s.Token == "" {
				s.Token = suffix(key, sessionPrefix)
			}
		},
	}}
}

func (r *SessionRepository) Save(ctx context.Context, session models.Session) error {
	return r.records.put(ctx, sessionPrefix+session.Token, session)
}

func (r *SessionRepository) GetByToken(ctx context.Context, token string) (models.Session, error) {
	session, err := r.records.get(ctx, sessionPrefix+token)
	if errors.Is(err, kv.ErrNotFound) {
		return models.Session{}, ErrSessionNotFound
	}
	return session, err
}

func (r *SessionRepository) DeleteByToken(ctx context.Context, token string) error {
	return r.records.store.Delete(ctx, sessionPrefix+token)
}

func (r *SessionRepository) List(ctx context.Context) ([]models.Session, error) {
	items, err := r.records.list(ctx, sessionPrefix)
	if err != nil {
		return nil, err
	}
	return values(items), nil
}

// DeleteByUser removes every session owned by userID and reports how many went.
func (r *SessionRepository) DeleteByUser(ctx context.Context, userID string) (int, error) {
	sessions, err := r.List(ctx)
	if err != nil {
		return 0, err
	}

	deleted := 0
	for _, session := range sessions {
		if session.UserID != userID {
			continue
		}
		if err := r.DeleteByToken(ctx, session.Token); err != nil {
			return deleted, err
		}
		deleted++
	}
	return deleted, nil
}
