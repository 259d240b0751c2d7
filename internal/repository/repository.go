package repository

import (
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	Citizen      CitizenRepository
	Admin        AdminRepository
	SuperAdmin   SuperAdminRepository
	Issue        IssueRepository
	Notification NotificationRepository
	Template     TemplateRepository
	Achievement  AchievementRepository
	Session      SessionRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		Citizen:      NewCitizenRepository(db),
		Admin:        NewAdminRepository(db),
		SuperAdmin:   NewSuperAdminRepository(db),
		Issue:        NewIssueRepository(db),
		Notification: NewNotificationRepository(db),
		Template:     NewTemplateRepository(db),
		Achievement:  NewAchievementRepository(db),
		Session:      NewSessionRepository(db),
	}
}
