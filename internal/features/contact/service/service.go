package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	apperrors "church-platform-backend/internal/common/errors"
	"church-platform-backend/internal/common/logger"
	"church-platform-backend/internal/common/validation"
	"church-platform-backend/internal/features/contact/models"
	"church-platform-backend/internal/features/contact/repository"
)

const (
	messagesLimit    = 100
	subscribersLimit = 1000
)

type ContactService interface {
	SubmitMessage(ctx context.Context, req *models.CreateMessageRequest) (*models.ContactMessage, error)
	Messages(ctx context.Context) ([]*models.ContactMessage, error)
	Subscribe(ctx context.Context, req *models.SubscribeRequest) (*models.Subscriber, error)
	Subscribers(ctx context.Context) ([]*models.Subscriber, error)
}

type contactService struct {
	repo repository.ContactRepository
}

func NewContactService(repo repository.ContactRepository) ContactService {
	return &contactService{repo: repo}
}

func (s *contactService) SubmitMessage(ctx context.Context, req *models.CreateMessageRequest) (*models.ContactMessage, error) {
	if err := validation.ValidateEmail(req.Email); err != nil {
		return nil, apperrors.NewValidationError("email", err.Error())
	}
	if len(req.Message) > validation.MaxMessageLength {
		return nil, apperrors.NewValidationError("message", "message trop long")
	}

	message := &models.ContactMessage{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Subject:   req.Subject,
		Message:   req.Message,
		Status:    models.MessageStatusNew,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.CreateMessage(ctx, message); err != nil {
		return nil, apperrors.NewDatabaseError("create contact message", err)
	}

	logger.Info().
		Str("name", message.Name).
		Str("email", message.Email).
		Str("subject", message.Subject).
		Msg("New contact message")

	return message, nil
}

func (s *contactService) Messages(ctx context.Context) ([]*models.ContactMessage, error) {
	messages, err := s.repo.ListMessages(ctx, messagesLimit)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list contact messages", err)
	}
	return messages, nil
}

func (s *contactService) Subscribe(ctx context.Context, req *models.SubscribeRequest) (*models.Subscriber, error) {
	if err := validation.ValidateEmail(req.Email); err != nil {
		return nil, apperrors.NewValidationError("email", err.Error())
	}

	subscriber := &models.Subscriber{
		ID:           uuid.New().String(),
		Email:        req.Email,
		Name:         req.Name,
		Active:       true,
		SubscribedAt: time.Now().UTC(),
	}

	if err := s.repo.CreateSubscriber(ctx, subscriber); err != nil {
		if errors.Is(err, repository.ErrAlreadySubscribed) {
			return nil, apperrors.NewConflictError("Cette adresse e-mail est déjà inscrite à notre newsletter")
		}
		return nil, apperrors.NewDatabaseError("create subscriber", err)
	}

	logger.Info().Str("email", subscriber.Email).Msg("New newsletter subscription")

	return subscriber, nil
}

func (s *contactService) Subscribers(ctx context.Context) ([]*models.Subscriber, error) {
	subscribers, err := s.repo.ListSubscribers(ctx, subscribersLimit)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list subscribers", err)
	}
	return subscribers, nil
}
