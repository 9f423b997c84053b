package models

import (
	"errors"
	"time"
)

type Progress struct {
	UserID             string     `json:"user_id"`
	ModuleID           string     `json:"module_id"`
	ModuleName         string     `json:"module_name"`
	Completed          bool       `json:"completed"`
	CompletedAt        *time.Time `json:"completed_at"`
	ProgressPercentage float64    `json:"progress_percentage"`
	UpdatedAt          time.Time  `json:"updated_at"`
	LastAccessed       time.Time  `json:"last_accessed"`
}

func (p Progress) Validate() error {
	if p.UserID == "" {
		return errors.New("missing user_id")
	}
	if p.ModuleID == "" {
		return errors.New("missing module_id")
	}
	if p.ProgressPercentage < 0 || p.ProgressPercentage > 100 {
		return errors.New("progress_percentage out of range")
	}
	return nil
}

// CompletedModule is the profile view of a finished module.
type CompletedModule struct {
	ModuleID    string     `json:"module_id"`
	ModuleName  string     `json:"module_name"`
	CompletedAt *time.Time `json:"completed_at"`
}
