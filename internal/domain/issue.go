package domain

import (
	"time"

	"github.com/google/uuid"
)

type IssueStatus string

const (
	StatusPending    IssueStatus = "Pending"
	StatusInProgress IssueStatus = "In Progress"
	StatusResolved   IssueStatus = "Resolved"
)

func (s IssueStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusResolved:
		return true
	default:
		return false
	}
}

// CanTransitionTo enforces the one-directional lifecycle. A same-status
// update is allowed so an admin can amend notes without moving the issue.
func (s IssueStatus) CanTransitionTo(next IssueStatus) bool {
	if s == next {
		return true
	}
	switch s {
	case StatusPending:
		return next == StatusInProgress || next == StatusResolved
	case StatusInProgress:
		return next == StatusResolved
	default:
		return false
	}
}

type IssueCategory string

const (
	CategoryRoad        IssueCategory = "Road"
	CategoryWater       IssueCategory = "Water"
	CategoryElectricity IssueCategory = "Electricity"
	CategorySanitation  IssueCategory = "Sanitation"
	CategoryOther       IssueCategory = "Other"
)

func (c IssueCategory) IsValid() bool {
	switch c {
	case CategoryRoad, CategoryWater, CategoryElectricity, CategorySanitation, CategoryOther:
		return true
	default:
		return false
	}
}

type Issue struct {
	ID                  uuid.UUID     `json:"id" db:"issue_id"`
	CitizenID           uuid.UUID     `json:"citizen_id" db:"citizen_id"`
	Title               string        `json:"title" db:"title"`
	Description         string        `json:"description" db:"description"`
	Category            IssueCategory `json:"category" db:"category"`
	Location            string        `json:"location" db:"location"`
	Latitude            *float64      `json:"latitude,omitempty" db:"latitude"`
	Longitude           *float64      `json:"longitude,omitempty" db:"longitude"`
	Accuracy            *float64      `json:"accuracy,omitempty" db:"accuracy"`
	PhotoPath           *string       `json:"-" db:"photo_path"`
	PhotoURL            string        `json:"photo_url,omitempty" db:"-"`
	ResolutionPhotoPath *string       `json:"-" db:"resolution_photo_path"`
	ResolutionPhotoURL  string        `json:"resolution_photo_url,omitempty" db:"-"`
	Status              IssueStatus   `json:"status" db:"status"`
	AssignedTo          *uuid.UUID    `json:"assigned_to,omitempty" db:"assigned_to"`
	AdminNotes          *string       `json:"admin_notes,omitempty" db:"admin_notes"`
	CreatedAt           time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time     `json:"updated_at" db:"updated_at"`
}

type CreateIssueInput struct {
	Title       string        `json:"title" validate:"required,min=3"`
	Description string        `json:"description" validate:"required"`
	Category    IssueCategory `json:"category" validate:"required"`
	Location    string        `json:"location" validate:"required"`
	Latitude    *float64      `json:"latitude,omitempty"`
	Longitude   *float64      `json:"longitude,omitempty"`
	Accuracy    *float64      `json:"accuracy,omitempty"`
}

type UpdateIssueStatusInput struct {
	Status     IssueStatus `json:"status" validate:"required"`
	AdminNotes *string     `json:"admin_notes,omitempty"`
}

type IssueFilter struct {
	CitizenID  *uuid.UUID
	AssignedTo *uuid.UUID
	Status     *IssueStatus
	Category   *IssueCategory
}

// AdminIssueStats feeds the achievement evaluator. AvgResolutionHours is
// nil when the admin has no resolved issues.
type AdminIssueStats struct {
	Total              int64    `db:"total"`
	Resolved           int64    `db:"resolved"`
	AvgResolutionHours *float64 `db:"avg_resolution_hours"`
}

func (s AdminIssueStats) ResolutionRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Resolved) / float64(s.Total) * 100
}
