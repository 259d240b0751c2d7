package achievement

import (
	"context"
	"log"

	"github.com/google/uuid"

	"gram-seva/internal/domain"
	"gram-seva/internal/repository"
	"gram-seva/internal/service/notification"
)

// Service re-evaluates badge thresholds after issue activity. Awards
// are idempotent (unique constraint + conflict-ignoring insert) and
// never revoked. Every error in here is logged and swallowed: the
// triggering flow must not fail because a badge did.
type Service interface {
	EvaluateCitizen(ctx context.Context, citizenID uuid.UUID)
	EvaluateAdmin(ctx context.Context, adminID uuid.UUID)
	ListCitizen(ctx context.Context, citizenID uuid.UUID) ([]domain.Achievement, error)
	ListAdmin(ctx context.Context, adminID uuid.UUID) ([]domain.Achievement, error)
}

type service struct {
	achievementRepo repository.AchievementRepository
	issueRepo       repository.IssueRepository
	notifSvc        notification.Service
}

func NewService(
	achievementRepo repository.AchievementRepository,
	issueRepo repository.IssueRepository,
	notifSvc notification.Service,
) Service {
	return &service{
		achievementRepo: achievementRepo,
		issueRepo:       issueRepo,
		notifSvc:        notifSvc,
	}
}

func (s *service) EvaluateCitizen(ctx context.Context, citizenID uuid.UUID) {
	total, err := s.issueRepo.CountByCitizen(ctx, citizenID)
	if err != nil {
		log.Printf("achievement: issue count for citizen %s failed: %v", citizenID, err)
		return
	}
	withPhoto, err := s.issueRepo.CountWithPhotoByCitizen(ctx, citizenID)
	if err != nil {
		log.Printf("achievement: photo count for citizen %s failed: %v", citizenID, err)
		return
	}

	// Thresholds are cumulative and re-checked on every call; the
	// award itself is the idempotent part.
	if total >= 1 {
		s.awardCitizen(ctx, citizenID, domain.AchFirstReporter)
	}
	if total >= 3 {
		s.awardCitizen(ctx, citizenID, domain.AchActiveCitizen)
	}
	if total >= 10 {
		s.awardCitizen(ctx, citizenID, domain.AchSuperCitizen)
	}
	if withPhoto >= 1 {
		s.awardCitizen(ctx, citizenID, domain.AchPhotoChampion)
	}
}

func (s *service) EvaluateAdmin(ctx context.Context, adminID uuid.UUID) {
	stats, err := s.issueRepo.AdminStats(ctx, adminID)
	if err != nil {
		log.Printf("achievement: stats for admin %s failed: %v", adminID, err)
		return
	}

	if stats.Total >= 1 {
		s.awardAdmin(ctx, adminID, domain.AchNewAdministrator)
	}
	if stats.Resolved >= 10 {
		s.awardAdmin(ctx, adminID, domain.AchCommunityHelper)
	}
	if stats.Total > 0 && stats.ResolutionRate() >= 90 {
		s.awardAdmin(ctx, adminID, domain.AchHighPerformer)
	}
	if stats.AvgResolutionHours != nil && *stats.AvgResolutionHours <= 24 {
		s.awardAdmin(ctx, adminID, domain.AchFastResolver)
	}
}

func (s *service) ListCitizen(ctx context.Context, citizenID uuid.UUID) ([]domain.Achievement, error) {
	return s.achievementRepo.ListByCitizen(ctx, citizenID)
}

func (s *service) ListAdmin(ctx context.Context, adminID uuid.UUID) ([]domain.Achievement, error) {
	return s.achievementRepo.ListByAdmin(ctx, adminID)
}

func (s *service) awardCitizen(ctx context.Context, citizenID uuid.UUID, achType domain.AchievementType) {
	awarded, err := s.achievementRepo.AwardCitizen(ctx, citizenID, achType)
	if err != nil {
		log.Printf("achievement: awarding %s to citizen %s failed: %v", achType, citizenID, err)
		return
	}
	if awarded && s.notifSvc != nil {
		ref := domain.RecipientRef{Kind: domain.KindCitizen, ID: citizenID}
		s.notifSvc.NotifyAchievement(ctx, ref, achType)
	}
}

func (s *service) awardAdmin(ctx context.Context, adminID uuid.UUID, achType domain.AchievementType) {
	awarded, err := s.achievementRepo.AwardAdmin(ctx, adminID, achType)
	if err != nil {
		log.Printf("achievement: awarding %s to admin %s failed: %v", achType, adminID, err)
		return
	}
	if awarded && s.notifSvc != nil {
		ref := domain.RecipientRef{Kind: domain.KindAdmin, ID: adminID}
		s.notifSvc.NotifyAchievement(ctx, ref, achType)
	}
}
