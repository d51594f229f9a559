package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/healthdost/kiosk-api/internal/email"
	"github.com/healthdost/kiosk-api/internal/model"
	"github.com/healthdost/kiosk-api/internal/repository"
)

const (
	channelEmail = "email"
	channelInApp = "in_app"
)

// Service delivers notifications fire-and-forget: Send persists the
// row and returns immediately, delivery happens in the background and
// its outcome never propagates to the caller.
type Service interface {
	Send(ctx context.Context, notification *model.Notification) error
}

type service struct {
	repo     repository.NotificationRepository
	emailSvc email.Service
}

func NewService(repo repository.NotificationRepository, emailSvc email.Service) Service {
	return &service{
		repo:     repo,
		emailSvc: emailSvc,
	}
}

func (s *service) Send(ctx context.Context, notification *model.Notification) error {
	if err := s.validate(notification); err != nil {
		return fmt.Errorf("invalid notification: %w", err)
	}

	notification.ID = uuid.New()
	notification.CreatedAt = time.Now()
	notification.UpdatedAt = time.Now()
	notification.Status = model.NotificationStatusPending

	if err := s.repo.Create(ctx, notification); err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	go s.deliver(context.Background(), notification)
	return nil
}

func (s *service) validate(notification *model.Notification) error {
	if notification == nil {
		return fmt.Errorf("notification is nil")
	}
	if notification.Recipient == "" {
		return fmt.Errorf("recipient is required")
	}
	switch notification.Channel {
	case channelEmail, channelInApp:
		return nil
	default:
		return fmt.Errorf("unsupported channel: %s", notification.Channel)
	}
}

func (s *service) deliver(ctx context.Context, notification *model.Notification) {
	var err error
	switch notification.Channel {
	case channelEmail:
		err = s.emailSvc.SendCustom(ctx, notification.Recipient, notification.Subject, notification.Content)
	case channelInApp:
		// In-app notifications are delivered by the persisted row itself.
	}

	if err != nil {
		notification.Status = model.NotificationStatusFailed
		notification.RetryCount++
		notification.LastError = err.Error()
		notification.UpdatedAt = time.Now()
		if updateErr := s.repo.Update(ctx, notification); updateErr != nil {
			log.Error().Err(updateErr).Str("notification_id", notification.ID.String()).Msg("failed to record notification failure")
		}
		log.Warn().Err(err).Str("recipient", notification.Recipient).Msg("notification delivery failed")
		return
	}

	notification.Status = model.NotificationStatusSent
	notification.SentAt = time.Now()
	notification.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, notification); err != nil {
		log.Error().Err(err).Str("notification_id", notification.ID.String()).Msg("failed to mark notification sent")
	}
}
