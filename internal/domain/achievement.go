package domain

import (
	"time"

	"github.com/google/uuid"
)

type AchievementType string

// Citizen badges.
const (
	AchFirstReporter AchievementType = "first_reporter"
	AchActiveCitizen AchievementType = "active_citizen"
	AchSuperCitizen  AchievementType = "super_citizen"
	AchPhotoChampion AchievementType = "photo_champion"
)

// Admin badges.
const (
	AchNewAdministrator AchievementType = "new_administrator"
	AchCommunityHelper  AchievementType = "community_helper"
	AchHighPerformer    AchievementType = "high_performer"
	AchFastResolver     AchievementType = "fast_resolver"
)

// Label returns the display name shown on the badge.
func (t AchievementType) Label() string {
	switch t {
	case AchFirstReporter:
		return "First Reporter"
	case AchActiveCitizen:
		return "Active Citizen"
	case AchSuperCitizen:
		return "Super Citizen"
	case AchPhotoChampion:
		return "Photo Champion"
	case AchNewAdministrator:
		return "New Administrator"
	case AchCommunityHelper:
		return "Community Helper"
	case AchHighPerformer:
		return "High Performer"
	case AchFastResolver:
		return "Fast Resolver"
	default:
		return string(t)
	}
}

// Achievement is awarded once per (owner, type) and never revoked.
// Uniqueness is a DB constraint; awards go through conflict-ignoring
// inserts rather than check-then-insert.
type Achievement struct {
	ID        uuid.UUID       `json:"id" db:"achievement_id"`
	OwnerID   uuid.UUID       `json:"owner_id" db:"owner_id"`
	Type      AchievementType `json:"type" db:"achievement_type"`
	AwardedAt time.Time       `json:"awarded_at" db:"awarded_at"`
}
