package service

import (
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"

	"gram-seva/internal/config"
	"gram-seva/internal/repository"
	"gram-seva/internal/service/achievement"
	"gram-seva/internal/service/admin"
	"gram-seva/internal/service/auth"
	"gram-seva/internal/service/email"
	"gram-seva/internal/service/issue"
	"gram-seva/internal/service/notification"
	"gram-seva/internal/service/otp"
	"gram-seva/internal/service/photo"
)

type Services struct {
	Auth         auth.Service
	OTP          otp.Service
	Issue        issue.Service
	Notification notification.Service
	Achievement  achievement.Service
	Admin        admin.Service
	Photo        photo.Service
	Email        email.Service
}

func NewServices(repos *repository.Repositories, redisClient *redis.Client, minioClient *minio.Client, cfg *config.Config) *Services {
	emailService := email.NewService(cfg)
	authService := auth.NewService(repos.Citizen, repos.Admin, repos.SuperAdmin, repos.Session, cfg)
	otpStore := repository.NewOTPStore(redisClient)
	otpService := otp.NewService(repos.Citizen, otpStore, authService, cfg)
	photoService := photo.NewService(minioClient, cfg)
	notificationService := notification.NewService(repos.Notification, repos.Template, repos.Admin, emailService)
	achievementService := achievement.NewService(repos.Achievement, repos.Issue, notificationService)
	issueService := issue.NewService(repos.Issue, repos.Admin, photoService, notificationService, achievementService)
	adminService := admin.NewService(repos.Admin, repos.Session, emailService)

	return &Services{
		Auth:         authService,
		OTP:          otpService,
		Issue:        issueService,
		Notification: notificationService,
		Achievement:  achievementService,
		Admin:        adminService,
		Photo:        photoService,
		Email:        emailService,
	}
}
