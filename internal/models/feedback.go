package models

import (
	"errors"
	"time"
)

type FeedbackStatus string

const (
	FeedbackUnread   FeedbackStatus = "unread"
	FeedbackRead     FeedbackStatus = "read"
	FeedbackResolved FeedbackStatus = "resolved"
)

func (s FeedbackStatus) Valid() bool {
	switch s {
	case FeedbackUnread, FeedbackRead, FeedbackResolved:
		return true
	}
	return false
}

type Feedback struct {
	ID        string         `json:"id"`
	UserID    *string        `json:"user_id"`
	UserName  string         `json:"user_name"`
	UserEmail string         `json:"user_email"`
	Message   string         `json:"message"`
	Category  string         `json:"category"`
	Timestamp time.Time      `json:"timestamp"`
	Status    FeedbackStatus `json:"status"`
	UpdatedAt *time.Time     `json:"updated_at,omitempty"`
}

func (f Feedback) Validate() error {
	if f.ID == "" {
		return errors.New("missing id")
	}
	if f.Message == "" {
		return errors.New("missing message")
	}
	return nil
}

type ResourceType string

const (
	ResourceTrainingCenter ResourceType = "Training Center"
	ResourceJobFair        ResourceType = "Job Fair"
	ResourceWorkshop       ResourceType = "Workshop"
	ResourceGeneral        ResourceType = "General"
)

func (t ResourceType) Valid() bool {
	switch t {
	case ResourceTrainingCenter, ResourceJobFair, ResourceWorkshop, ResourceGeneral:
		return true
	}
	return false
}

type Resource struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Type      ResourceType `json:"type"`
	Address   string       `json:"address"`
	Contact   string       `json:"contact"`
	Latitude  float64      `json:"latitude"`
	Longitude float64      `json:"longitude"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt *time.Time   `json:"updated_at,omitempty"`
}

func (r Resource) Validate() error {
	if r.ID == "" {
		return errors.New("missing id")
	}
	if r.Name == "" {
		return errors.New("missing name")
	}
	return nil
}
