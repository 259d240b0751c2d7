package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"gram-seva/internal/domain"
	"gram-seva/internal/repository"
	"gram-seva/internal/service/email"
)

var (
	ErrInvalidType      = errors.New("unknown notification type")
	ErrTemplateNotFound = errors.New("no active template for this notification type")
)

// Service is the durable event record for all three account variants.
// Callers treat creation failures as non-fatal: a broken notification
// must never fail the issue submission that triggered it.
type Service interface {
	Create(ctx context.Context, ref domain.RecipientRef, notifType domain.NotificationType, title, message string, data map[string]interface{}) (uuid.UUID, error)
	CreateFromTemplate(ctx context.Context, notifType domain.NotificationType, ref domain.RecipientRef, templateData map[string]string) (uuid.UUID, error)
	BroadcastToAdmins(ctx context.Context, notifType domain.NotificationType, title, message string, data map[string]interface{}) ([]domain.BroadcastResult, error)
	List(ctx context.Context, ref domain.RecipientRef, unreadOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error)
	MarkAsRead(ctx context.Context, id uuid.UUID, ref domain.RecipientRef) (bool, error)
	MarkAllAsRead(ctx context.Context, ref domain.RecipientRef) (int64, error)
	UnreadCount(ctx context.Context, ref domain.RecipientRef) int64
	Cleanup(ctx context.Context, retentionDays int) (int64, error)

	NotifyNewIssue(ctx context.Context, issue *domain.Issue, citizen *domain.Citizen)
	NotifyIssueAssigned(ctx context.Context, issue *domain.Issue, adminID uuid.UUID)
	NotifyIssueStatus(ctx context.Context, issue *domain.Issue)
	NotifyAchievement(ctx context.Context, ref domain.RecipientRef, achType domain.AchievementType)
}

type service struct {
	notifRepo    repository.NotificationRepository
	templateRepo repository.TemplateRepository
	adminRepo    repository.AdminRepository
	emailSvc     email.Service
}

func NewService(
	notifRepo repository.NotificationRepository,
	templateRepo repository.TemplateRepository,
	adminRepo repository.AdminRepository,
	emailSvc email.Service,
) Service {
	return &service{
		notifRepo:    notifRepo,
		templateRepo: templateRepo,
		adminRepo:    adminRepo,
		emailSvc:     emailSvc,
	}
}

func (s *service) Create(ctx context.Context, ref domain.RecipientRef, notifType domain.NotificationType, title, message string, data map[string]interface{}) (uuid.UUID, error) {
	if !notifType.IsValid() {
		return uuid.Nil, ErrInvalidType
	}
	if err := ref.Validate(); err != nil {
		return uuid.Nil, err
	}

	notif := &domain.Notification{
		ID:      uuid.New(),
		Type:    notifType,
		Title:   title,
		Message: message,
	}

	// Exactly one recipient column; the typed switch keeps the
	// exclusivity invariant out of the callers' hands.
	switch ref.Kind {
	case domain.KindCitizen:
		notif.CitizenID = &ref.ID
	case domain.KindAdmin:
		notif.AdminID = &ref.ID
	case domain.KindSuperAdmin:
		notif.SuperAdminID = &ref.ID
	}

	if data != nil {
		encoded, err := json.Marshal(data)
		if err != nil {
			return uuid.Nil, fmt.Errorf("failed to encode notification data: %w", err)
		}
		notif.Data = encoded
	}

	if err := s.notifRepo.Create(ctx, notif); err != nil {
		return uuid.Nil, fmt.Errorf("failed to persist notification: %w", err)
	}
	return notif.ID, nil
}

// CreateFromTemplate renders the active template for the type with
// plain {key} substring substitution and delegates to Create. This is
// deliberately not a templating language: no escaping, no conditionals.
func (s *service) CreateFromTemplate(ctx context.Context, notifType domain.NotificationType, ref domain.RecipientRef, templateData map[string]string) (uuid.UUID, error) {
	if !notifType.IsValid() {
		return uuid.Nil, ErrInvalidType
	}

	tmpl, err := s.templateRepo.GetActiveByType(ctx, notifType)
	if err != nil {
		return uuid.Nil, err
	}
	if tmpl == nil {
		return uuid.Nil, ErrTemplateNotFound
	}

	title := tmpl.TitleTemplate
	message := tmpl.MessageTemplate
	for key, value := range templateData {
		placeholder := "{" + key + "}"
		title = strings.ReplaceAll(title, placeholder, value)
		message = strings.ReplaceAll(message, placeholder, value)
	}

	data := make(map[string]interface{}, len(templateData))
	for key, value := range templateData {
		data[key] = value
	}

	return s.Create(ctx, ref, notifType, title, message, data)
}

// BroadcastToAdmins fans out one notification per active admin. A
// failure for one admin is recorded in its result and the loop goes on.
func (s *service) BroadcastToAdmins(ctx context.Context, notifType domain.NotificationType, title, message string, data map[string]interface{}) ([]domain.BroadcastResult, error) {
	admins, err := s.adminRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active admins: %w", err)
	}

	results := make([]domain.BroadcastResult, 0, len(admins))
	for _, admin := range admins {
		ref := domain.RecipientRef{Kind: domain.KindAdmin, ID: admin.ID}
		id, err := s.Create(ctx, ref, notifType, title, message, data)
		result := domain.BroadcastResult{AdminID: admin.ID, Err: err}
		if err == nil {
			result.NotificationID = &id
		} else {
			log.Printf("notification: broadcast to admin %s failed: %v", admin.ID, err)
		}
		results = append(results, result)
	}
	return results, nil
}

func (s *service) List(ctx context.Context, ref domain.RecipientRef, unreadOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error) {
	notifications, total, err := s.notifRepo.ListByRecipient(ctx, ref, unreadOnly, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Notification]{}, err
	}
	return domain.NewPaginatedResponse(notifications, params.Page, params.PageSize, total), nil
}

func (s *service) MarkAsRead(ctx context.Context, id uuid.UUID, ref domain.RecipientRef) (bool, error) {
	return s.notifRepo.MarkAsRead(ctx, id, ref)
}

func (s *service) MarkAllAsRead(ctx context.Context, ref domain.RecipientRef) (int64, error) {
	return s.notifRepo.MarkAllAsRead(ctx, ref)
}

// UnreadCount is fail-soft: the UI badge shows 0 rather than an error
// page when the lookup fails.
func (s *service) UnreadCount(ctx context.Context, ref domain.RecipientRef) int64 {
	count, err := s.notifRepo.CountUnread(ctx, ref)
	if err != nil {
		log.Printf("notification: unread count for %s %s failed: %v", ref.Kind, ref.ID, err)
		return 0
	}
	return count
}

func (s *service) Cleanup(ctx context.Context, retentionDays int) (int64, error) {
	if retentionDays <= 0 {
		retentionDays = 30
	}
	return s.notifRepo.DeleteOlderThan(ctx, retentionDays)
}

// NotifyNewIssue tells every active admin about a fresh issue and sends
// a fire-and-forget email alongside. Errors are logged, never returned:
// issue submission does not depend on the fan-out.
func (s *service) NotifyNewIssue(ctx context.Context, issue *domain.Issue, citizen *domain.Citizen) {
	tmpl, err := s.templateRepo.GetActiveByType(ctx, domain.NotifNewIssue)
	title := "New Issue Reported"
	message := fmt.Sprintf("%s reported a new %s issue: %q.", citizen.FullName, issue.Category, issue.Title)
	if err == nil && tmpl != nil {
		title, message = renderTemplate(tmpl, map[string]string{
			"citizen":  citizen.FullName,
			"category": string(issue.Category),
			"title":    issue.Title,
		})
	}

	data := map[string]interface{}{"issue_id": issue.ID.String()}
	if _, err := s.BroadcastToAdmins(ctx, domain.NotifNewIssue, title, message, data); err != nil {
		log.Printf("notification: new issue broadcast failed: %v", err)
		return
	}

	if s.emailSvc == nil {
		return
	}
	admins, err := s.adminRepo.ListActive(ctx)
	if err != nil {
		return
	}
	for _, admin := range admins {
		if admin.Email == "" {
			continue
		}
		go func(toEmail, adminName string) {
			ctx := context.Background()
			if err := s.emailSvc.SendNewIssueAlert(ctx, toEmail, adminName, citizen.FullName, issue.Title, string(issue.Category)); err != nil {
				log.Printf("notification: issue alert email to %s failed: %v", toEmail, err)
			}
		}(admin.Email, admin.FullName)
	}
}

func (s *service) NotifyIssueAssigned(ctx context.Context, issue *domain.Issue, adminID uuid.UUID) {
	ref := domain.RecipientRef{Kind: domain.KindAdmin, ID: adminID}
	_, err := s.CreateFromTemplate(ctx, domain.NotifIssueAssigned, ref, map[string]string{
		"title":    issue.Title,
		"issue_id": issue.ID.String(),
	})
	if err != nil {
		log.Printf("notification: assignment notice for issue %s failed: %v", issue.ID, err)
	}
}

// NotifyIssueStatus tells the owning citizen about a status change,
// using the resolved template when the issue reached Resolved.
func (s *service) NotifyIssueStatus(ctx context.Context, issue *domain.Issue) {
	ref := domain.RecipientRef{Kind: domain.KindCitizen, ID: issue.CitizenID}

	notifType := domain.NotifIssueStatus
	templateData := map[string]string{
		"title":    issue.Title,
		"status":   string(issue.Status),
		"issue_id": issue.ID.String(),
	}
	if issue.Status == domain.StatusResolved {
		notifType = domain.NotifIssueResolved
		notes := ""
		if issue.AdminNotes != nil {
			notes = *issue.AdminNotes
		}
		templateData["notes"] = notes
	}

	if _, err := s.CreateFromTemplate(ctx, notifType, ref, templateData); err != nil {
		log.Printf("notification: status notice for issue %s failed: %v", issue.ID, err)
	}
}

func (s *service) NotifyAchievement(ctx context.Context, ref domain.RecipientRef, achType domain.AchievementType) {
	_, err := s.CreateFromTemplate(ctx, domain.NotifAchievementEarned, ref, map[string]string{
		"badge": achType.Label(),
	})
	if err != nil {
		log.Printf("notification: achievement notice for %s %s failed: %v", ref.Kind, ref.ID, err)
	}
}

func renderTemplate(tmpl *domain.NotificationTemplate, data map[string]string) (string, string) {
	title := tmpl.TitleTemplate
	message := tmpl.MessageTemplate
	for key, value := range data {
		placeholder := "{" + key + "}"
		title = strings.ReplaceAll(title, placeholder, value)
		message = strings.ReplaceAll(message, placeholder, value)
	}
	return title, message
}
