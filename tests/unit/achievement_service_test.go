package unit_test

import (
	"context"
	"testing"

	"gram-seva/internal/domain"
	"gram-seva/internal/service/achievement"
	"gram-seva/tests/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestAchievementService_EvaluateCitizen(t *testing.T) {
	ctx := context.Background()
	citizenID := uuid.New()

	t.Run("Thresholds Award Cumulatively", func(t *testing.T) {
		mockAch := new(mocks.AchievementRepository)
		mockIssues := new(mocks.IssueRepository)
		mockNotif := new(mocks.NotificationService)
		svc := achievement.NewService(mockAch, mockIssues, mockNotif)

		mockIssues.On("CountByCitizen", ctx, citizenID).Return(int64(3), nil).Once()
		mockIssues.On("CountWithPhotoByCitizen", ctx, citizenID).Return(int64(1), nil).Once()

		mockAch.On("AwardCitizen", ctx, citizenID, domain.AchFirstReporter).Return(false, nil).Once()
		mockAch.On("AwardCitizen", ctx, citizenID, domain.AchActiveCitizen).Return(true, nil).Once()
		mockAch.On("AwardCitizen", ctx, citizenID, domain.AchPhotoChampion).Return(false, nil).Once()

		ref := domain.RecipientRef{Kind: domain.KindCitizen, ID: citizenID}
		mockNotif.On("NotifyAchievement", ctx, ref, domain.AchActiveCitizen).Once()

		svc.EvaluateCitizen(ctx, citizenID)

		mockAch.AssertExpectations(t)
		mockAch.AssertNotCalled(t, "AwardCitizen", ctx, citizenID, domain.AchSuperCitizen)
		mockNotif.AssertExpectations(t)
	})

	t.Run("Count Failure Skips The Evaluation", func(t *testing.T) {
		mockAch := new(mocks.AchievementRepository)
		mockIssues := new(mocks.IssueRepository)
		svc := achievement.NewService(mockAch, mockIssues, nil)

		mockIssues.On("CountByCitizen", ctx, citizenID).Return(int64(0), assert.AnError).Once()

		svc.EvaluateCitizen(ctx, citizenID)

		mockAch.AssertNotCalled(t, "AwardCitizen", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Duplicate Award Is Silent", func(t *testing.T) {
		mockAch := new(mocks.AchievementRepository)
		mockIssues := new(mocks.IssueRepository)
		mockNotif := new(mocks.NotificationService)
		svc := achievement.NewService(mockAch, mockIssues, mockNotif)

		mockIssues.On("CountByCitizen", ctx, citizenID).Return(int64(1), nil).Once()
		mockIssues.On("CountWithPhotoByCitizen", ctx, citizenID).Return(int64(0), nil).Once()
		mockAch.On("AwardCitizen", ctx, citizenID, domain.AchFirstReporter).Return(false, nil).Once()

		svc.EvaluateCitizen(ctx, citizenID)

		mockNotif.AssertNotCalled(t, "NotifyAchievement", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestAchievementService_EvaluateAdmin(t *testing.T) {
	ctx := context.Background()
	adminID := uuid.New()

	t.Run("All Badges For A Strong Record", func(t *testing.T) {
		mockAch := new(mocks.AchievementRepository)
		mockIssues := new(mocks.IssueRepository)
		mockNotif := new(mocks.NotificationService)
		svc := achievement.NewService(mockAch, mockIssues, mockNotif)

		avg := 12.5
		mockIssues.On("AdminStats", ctx, adminID).Return(&domain.AdminIssueStats{
			Total:              10,
			Resolved:           10,
			AvgResolutionHours: &avg,
		}, nil).Once()

		for _, badge := range []domain.AchievementType{
			domain.AchNewAdministrator,
			domain.AchCommunityHelper,
			domain.AchHighPerformer,
			domain.AchFastResolver,
		} {
			mockAch.On("AwardAdmin", ctx, adminID, badge).Return(false, nil).Once()
		}

		svc.EvaluateAdmin(ctx, adminID)

		mockAch.AssertExpectations(t)
	})

	t.Run("Low Resolution Rate Withholds High Performer", func(t *testing.T) {
		mockAch := new(mocks.AchievementRepository)
		mockIssues := new(mocks.IssueRepository)
		svc := achievement.NewService(mockAch, mockIssues, nil)

		mockIssues.On("AdminStats", ctx, adminID).Return(&domain.AdminIssueStats{
			Total:    10,
			Resolved: 5,
		}, nil).Once()

		mockAch.On("AwardAdmin", ctx, adminID, domain.AchNewAdministrator).Return(false, nil).Once()

		svc.EvaluateAdmin(ctx, adminID)

		mockAch.AssertNotCalled(t, "AwardAdmin", ctx, adminID, domain.AchHighPerformer)
		mockAch.AssertNotCalled(t, "AwardAdmin", ctx, adminID, domain.AchCommunityHelper)
		mockAch.AssertNotCalled(t, "AwardAdmin", ctx, adminID, domain.AchFastResolver)
	})

	t.Run("No Resolved Issues Means No Average", func(t *testing.T) {
		mockAch := new(mocks.AchievementRepository)
		mockIssues := new(mocks.IssueRepository)
		svc := achievement.NewService(mockAch, mockIssues, nil)

		mockIssues.On("AdminStats", ctx, adminID).Return(&domain.AdminIssueStats{
			Total:              1,
			Resolved:           0,
			AvgResolutionHours: nil,
		}, nil).Once()

		mockAch.On("AwardAdmin", ctx, adminID, domain.AchNewAdministrator).Return(true, nil).Once()

		svc.EvaluateAdmin(ctx, adminID)

		mockAch.AssertNotCalled(t, "AwardAdmin", ctx, adminID, domain.AchFastResolver)
	})
}
