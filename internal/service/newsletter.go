package service

import (
	"context"
	"errors"
	"strings"

	"medishare-backend/internal/domain"
	"medishare-backend/internal/logger"
	"medishare-backend/internal/repository"
)

type newsletterService struct {
	subscriberRepo repository.SubscriberRepository
	emailSvc       EmailService
}

func NewNewsletterService(subscriberRepo repository.SubscriberRepository, emailSvc EmailService) NewsletterService {
	return &newsletterService{subscriberRepo: subscriberRepo, emailSvc: emailSvc}
}

func (s *newsletterService) Subscribe(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return domain.NewValidationError("email", "a valid email is required")
	}

	existing, err := s.subscriberRepo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	if existing != nil {
		if existing.IsActive {
			return domain.ErrAlreadyExists
		}
		// Re-subscribing a lapsed address reactivates it in place.
		if err := s.subscriberRepo.Reactivate(ctx, email); err != nil {
			return err
		}
	} else {
		sub := &domain.Subscriber{Email: email, IsActive: true}
		if err := s.subscriberRepo.Create(ctx, sub); err != nil {
			return err
		}
	}

	if s.emailSvc != nil {
		if err := s.emailSvc.SendWelcomeEmail(ctx, email); err != nil {
			logger.ErrorContext(ctx, "failed to send welcome email", "email", email, "error", err)
		}
	}
	return nil
}

func (s *newsletterService) Unsubscribe(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return domain.NewValidationError("email", "email is required")
	}
	return s.subscriberRepo.Deactivate(ctx, email)
}
