package domain

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotifIssueStatus       NotificationType = "issue_status"
	NotifIssueAssigned     NotificationType = "issue_assigned"
	NotifIssueResolved     NotificationType = "issue_resolved"
	NotifNewIssue          NotificationType = "new_issue"
	NotifAdminMessage      NotificationType = "admin_message"
	NotifSystemAlert       NotificationType = "system_alert"
	NotifAchievementEarned NotificationType = "achievement_earned"
)

func (t NotificationType) IsValid() bool {
	switch t {
	case NotifIssueStatus, NotifIssueAssigned, NotifIssueResolved, NotifNewIssue,
		NotifAdminMessage, NotifSystemAlert, NotifAchievementEarned:
		return true
	default:
		return false
	}
}

// RecipientKind is the typed replacement for the original portal's
// string-built role dispatch. A notification always belongs to exactly
// one kind of account.
type RecipientKind string

const (
	KindCitizen    RecipientKind = "citizen"
	KindAdmin      RecipientKind = "admin"
	KindSuperAdmin RecipientKind = "super_admin"
)

func (k RecipientKind) IsValid() bool {
	switch k {
	case KindCitizen, KindAdmin, KindSuperAdmin:
		return true
	default:
		return false
	}
}

// Kind maps a session role onto the notification recipient kind.
func (r Role) Kind() RecipientKind {
	switch r {
	case RoleCitizen:
		return KindCitizen
	case RoleAdmin:
		return KindAdmin
	case RoleSuperAdmin:
		return KindSuperAdmin
	default:
		return ""
	}
}

// RecipientRef addresses one account of one kind.
type RecipientRef struct {
	Kind RecipientKind
	ID   uuid.UUID
}

var ErrInvalidRecipient = errors.New("recipient kind must be one of citizen, admin, super_admin")

func (r RecipientRef) Validate() error {
	if !r.Kind.IsValid() || r.ID == uuid.Nil {
		return ErrInvalidRecipient
	}
	return nil
}

// Notification keeps exactly one of the three recipient columns
// non-null; the write path and a DB check constraint both enforce it.
type Notification struct {
	ID           uuid.UUID        `json:"id" db:"notification_id"`
	CitizenID    *uuid.UUID       `json:"citizen_id,omitempty" db:"citizen_id"`
	AdminID      *uuid.UUID       `json:"admin_id,omitempty" db:"admin_id"`
	SuperAdminID *uuid.UUID       `json:"super_admin_id,omitempty" db:"super_admin_id"`
	Type         NotificationType `json:"type" db:"type"`
	Title        string           `json:"title" db:"title"`
	Message      string           `json:"message" db:"message"`
	Data         json.RawMessage  `json:"data,omitempty" db:"data"`
	IsRead       bool             `json:"is_read" db:"is_read"`
	ReadAt       *time.Time       `json:"read_at,omitempty" db:"read_at"`
	CreatedAt    time.Time        `json:"created_at" db:"created_at"`
}

// Recipient reconstructs the typed ref from the row's populated column.
func (n *Notification) Recipient() RecipientRef {
	switch {
	case n.CitizenID != nil:
		return RecipientRef{Kind: KindCitizen, ID: *n.CitizenID}
	case n.AdminID != nil:
		return RecipientRef{Kind: KindAdmin, ID: *n.AdminID}
	case n.SuperAdminID != nil:
		return RecipientRef{Kind: KindSuperAdmin, ID: *n.SuperAdminID}
	default:
		return RecipientRef{}
	}
}

// NotificationTemplate is read-only reference data; {key} tokens in the
// title and message are substituted from caller-supplied data.
type NotificationTemplate struct {
	ID              uuid.UUID        `json:"id" db:"template_id"`
	Type            NotificationType `json:"type" db:"type"`
	TitleTemplate   string           `json:"title_template" db:"title_template"`
	MessageTemplate string           `json:"message_template" db:"message_template"`
	IsActive        bool             `json:"is_active" db:"is_active"`
	CreatedAt       time.Time        `json:"created_at" db:"created_at"`
}

// BroadcastResult records one admin's outcome during a fan-out; a
// failure for one admin never aborts the rest.
type BroadcastResult struct {
	AdminID        uuid.UUID  `json:"admin_id"`
	NotificationID *uuid.UUID `json:"notification_id,omitempty"`
	Err            error      `json:"-"`
}

type BroadcastInput struct {
	Title   string `json:"title" validate:"required"`
	Message string `json:"message" validate:"required"`
}
