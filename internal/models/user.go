package models

import (
	"errors"
	"time"
)

// LastAccessedModule points at the module the user touched most recently.
type LastAccessedModule struct {
	ModuleID           string    `json:"module_id"`
	ModuleName         string    `json:"module_name"`
	ProgressPercentage float64   `json:"progress_percentage"`
	Completed          bool      `json:"completed"`
	AccessedAt         time.Time `json:"accessed_at"`
}

type User struct {
	ID                 string              `json:"id"`
	Email              string              `json:"email"`
	FullName           string              `json:"full_name"`
	PasswordHash       string              `json:"password_hash"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          *time.Time          `json:"updated_at,omitempty"`
	Level              int                 `json:"level"`
	XP                 int                 `json:"xp"`
	ModulesCompleted   int                 `json:"modules_completed"`
	IsAdmin            bool                `json:"is_admin"`
	LastAccessedModule *LastAccessedModule `json:"last_accessed_module,omitempty"`
}

func (u User) Validate() error {
	if u.ID == "" {
		return errors.New("missing id")
	}
	if u.Email == "" {
		return errors.New("missing email")
	}
	return nil
}

// Summary is the public projection of a user. It never carries the password hash.
type Summary struct {
	ID               string `json:"id"`
	Email            string `json:"email"`
	FullName         string `json:"full_name"`
	Level            int    `json:"level"`
	XP               int    `json:"xp"`
	ModulesCompleted int    `json:"modules_completed"`
}

func (u User) Summary() Summary {
	return Summary{
		ID:               u.ID,
		Email:            u.Email,
		FullName:         u.FullName,
		Level:            u.Level,
		XP:               u.XP,
		ModulesCompleted: u.ModulesCompleted,
	}
}

// AdminView is the user shape exposed to the admin console.
type AdminView struct {
	ID                 string              `json:"id"`
	Email              string              `json:"email"`
	FullName           string              `json:"full_name"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          *time.Time          `json:"updated_at,omitempty"`
	Level              int                 `json:"level"`
	XP                 int                 `json:"xp"`
	ModulesCompleted   int                 `json:"modules_completed"`
	IsAdmin            bool                `json:"is_admin"`
	LastAccessedModule *LastAccessedModule `json:"last_accessed_module,omitempty"`
}

func (u User) AdminView() AdminView {
	return AdminView{
		ID:                 u.ID,
		Email:              u.Email,
		FullName:           u.FullName,
		CreatedAt:          u.CreatedAt,
		UpdatedAt:          u.UpdatedAt,
		Level:              u.Level,
		XP:                 u.XP,
		ModulesCompleted:   u.ModulesCompleted,
		IsAdmin:            u.IsAdmin,
		LastAccessedModule: u.LastAccessedModule,
	}
}

type Session struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

// Validate accepts records written before the user id was denormalised as long as
// the email is present, so the profile lookup can still repair them.
func (s Session) Validate() error {
	if s.UserID == "" && s.Email == "" {
		return errors.New("missing user_id and email")
	}
	return nil
}

type Badges struct {
	UserID       string   `json:"user_id"`
	EarnedBadges []string `json:"earned_badges"`
}

func (b Badges) Validate() error {
	if b.UserID == "" {
		return errors.New("missing user_id")
	}
	return nil
}
