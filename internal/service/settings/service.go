package settings

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dheyaloali/dheya-backend-go/internal/domain/notification"
	"github.com/dheyaloali/dheya-backend-go/internal/domain/settings"
	"github.com/go-chi/jwtauth/v5"
)

type SettingsServiceImpl struct {
	repo     settings.Repository
	notifier notification.Service
}

func NewSettingsService(repo settings.Repository, notifier notification.Service) settings.Service {
	return &SettingsServiceImpl{repo: repo, notifier: notifier}
}

// Get implements settings.Service.
func (s *SettingsServiceImpl) Get(ctx context.Context) (settings.SettingsResponse, error) {
	cfg, err := s.repo.Get(ctx)
	if err != nil {
		return settings.SettingsResponse{}, err
	}
	return toResponse(cfg), nil
}

// Update implements settings.Service.
func (s *SettingsServiceImpl) Update(ctx context.Context, req settings.UpdateSettingsRequest) (settings.SettingsResponse, error) {
	if err := req.Validate(); err != nil {
		return settings.SettingsResponse{}, err
	}

	cfg := settings.AttendanceSettings{
		CheckInWindowStart:   req.CheckInWindowStart,
		CheckInWindowEnd:     req.CheckInWindowEnd,
		LateThresholdMinutes: req.LateThresholdMinutes,
	}

	if err := s.repo.Update(ctx, cfg); err != nil {
		return settings.SettingsResponse{}, err
	}

	// Audit-style confirmation to the acting admin.
	if _, claims, err := jwtauth.FromContext(ctx); err == nil {
		if userID, ok := claims["user_id"].(string); ok && userID != "" {
			err := s.notifier.QueueNotification(ctx, notification.CreateNotificationRequest{
				RecipientID: userID,
				Type:        notification.TypeAttendanceSettingsEdit,
				Title:       "Attendance settings updated",
				Message: fmt.Sprintf("Check-in window set to %s-%s, late threshold %d minute(s)",
					cfg.CheckInWindowStart, cfg.CheckInWindowEnd, cfg.LateThresholdMinutes),
			})
			if err != nil {
				slog.Warn("failed to queue settings notification", "error", err)
			}
		}
	}

	return toResponse(cfg), nil
}

func toResponse(cfg settings.AttendanceSettings) settings.SettingsResponse {
	return settings.SettingsResponse{
		CheckInWindowStart:   cfg.CheckInWindowStart,
		CheckInWindowEnd:     cfg.CheckInWindowEnd,
		LateThresholdMinutes: cfg.LateThresholdMinutes,
	}
}
