package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"skillup/api/internal/config"
	"skillup/api/internal/ids"
	"skillup/api/internal/models"
	"skillup/api/internal/repository"
	"skillup/api/internal/security"
)

const (
	msgInvalidLogin = "Invalid email or password"
	msgInvalidAdmin = "Invalid admin credentials"
)

type AuthService struct {
	users    *repository.UserRepository
	sessions *repository.SessionRepository
	badges   *repository.BadgeRepository
	cfg      *config.AppConfig
	log      zerolog.Logger
	now      func() time.Time
}

func NewAuthService(
	users *repository.UserRepository,
	sessions *repository.SessionRepository,
	badges *repository.BadgeRepository,
	cfg *config.AppConfig,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		badges:   badges,
		cfg:      cfg,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

type SignUpInput struct {
	FullName string
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthResult struct {
	SessionToken string
	User         models.User
}

func (s *AuthService) SignUp(ctx context.Context, input SignUpInput) (AuthResult, error) {
	input.Email = normalizeEmail(input.Email)
	input.FullName = strings.TrimSpace(input.FullName)
	if input.FullName == "" || input.Email == "" || input.Password == "" {
		return AuthResult{}, NewValidationError("Missing required fields")
	}

	if _, err := s.users.FindByEmail(ctx, input.Email, nil); err == nil {
		return AuthResult{}, NewConflictError("Email already registered")
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return AuthResult{}, err
	}

	passwordHash, err := security.HashPassword(input.Password)
	if err != nil {
		return AuthResult{}, err
	}

	user := models.User{
		ID:           ids.NewWithPrefix("user"),
		Email:        input.Email,
		FullName:     input.FullName,
		PasswordHash: passwordHash,
		CreatedAt:    s.now(),
		Level:        1,
	}
	if err := s.users.Save(ctx, user); err != nil {
		return AuthResult{}, err
	}
	if err := s.badges.Save(ctx, models.Badges{UserID: user.ID}); err != nil {
		return AuthResult{}, err
	}

	session, err := s.CreateSession(ctx, user)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{SessionToken: session.Token, User: user}, nil
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (AuthResult, error) {
	return s.login(ctx, input, false, msgInvalidLogin)
}

func (s *AuthService) AdminLogin(ctx context.Context, input LoginInput) (AuthResult, error) {
	return s.login(ctx, input, true, msgInvalidAdmin)
}

// login answers with the same message for an unknown email and a wrong password.
func (s *AuthService) login(ctx context.Context, input LoginInput, admin bool, failure string) (AuthResult, error) {
	input.Email = normalizeEmail(input.Email)
	if input.Email == "" || input.Password == "" {
		return AuthResult{}, NewValidationError("Missing email or password")
	}

	user, err := s.users.FindByEmail(ctx, input.Email, func(u models.User) bool { return u.IsAdmin == admin })
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return AuthResult{}, NewAuthError(failure)
		}
		return AuthResult{}, err
	}

	ok, err := security.VerifyPassword(input.Password, user.PasswordHash)
	if err != nil {
		s.log.Warn().Err(err).Str("user_id", user.ID).Msg("stored password hash unreadable")
	}
	if err != nil || !ok {
		return AuthResult{}, NewAuthError(failure)
	}

	if security.NeedsRehash(user.PasswordHash) {
		s.upgradeHash(ctx, user, input.Password)
	}

	session, err := s.CreateSession(ctx, user)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{SessionToken: session.Token, User: user}, nil
}

func (s *AuthService) upgradeHash(ctx context.Context, user models.User, password string) {
	hash, err := security.HashPassword(password)
	if err != nil {
		s.log.Warn().Err(err).Str("user_id", user.ID).Msg("rehash password failed")
		return
	}
	user.PasswordHash = hash
	if err := s.users.Save(ctx, user); err != nil {
		s.log.Warn().Err(err).Str("user_id", user.ID).Msg("store upgraded password hash failed")
	}
}

// CreateSession stores a fresh session for user. A user may hold any number of sessions.
func (s *AuthService) CreateSession(ctx context.Context, user models.User) (models.Session, error) {
	now := s.now()
	token, err := security.NewSessionToken(s.cfg.Security.SessionSecret, user.ID, now)
	if err != nil {
		return models.Session{}, err
	}

	session := models.Session{
		Token:     token,
		UserID:    user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		IsAdmin:   user.IsAdmin,
		CreatedAt: now,
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return models.Session{}, err
	}
	return session, nil
}

// VerifySession resolves token to its session, or nil when the token is empty,
// forged or unknown. Store failures are logged and also yield nil.
func (s *AuthService) VerifySession(ctx context.Context, token string) *models.Session {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}
	if security.IsSignedToken(token) {
		if _, err := security.ParseSessionToken(token, s.cfg.Security.SessionSecret); err != nil {
			return nil
		}
	}

	session, err := s.sessions.GetByToken(ctx, token)
	if err != nil {
		if !errors.Is(err, repository.ErrSessionNotFound) {
			s.log.Error().Err(err).Msg("load session failed")
		}
		return nil
	}
	return &session
}

// Logout is idempotent.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}
	return s.sessions.DeleteByToken(ctx, token)
}

type SeedResult struct {
	Email    string
	Password string
}

// SeedAdmin creates the configured default admin unless any admin exists.
func (s *AuthService) SeedAdmin(ctx context.Context) (SeedResult, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return SeedResult{}, err
	}
	for _, user := range users {
		if user.IsAdmin {
			return SeedResult{}, NewConflictError("Admin already exists")
		}
	}

	hash, err := security.HashPassword(s.cfg.Seed.AdminPassword)
	if err != nil {
		return SeedResult{}, err
	}

	admin := models.User{
		ID:           ids.NewWithPrefix("user"),
		Email:        normalizeEmail(s.cfg.Seed.AdminEmail),
		FullName:     s.cfg.Seed.AdminName,
		PasswordHash: hash,
		CreatedAt:    s.now(),
		Level:        1,
		IsAdmin:      true,
	}
	if err := s.users.Save(ctx, admin); err != nil {
		return SeedResult{}, err
	}

	s.log.Info().Str("user_id", admin.ID).Str("email", admin.Email).Msg("default admin created")
	return SeedResult{Email: admin.Email, Password: s.cfg.Seed.AdminPassword}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
