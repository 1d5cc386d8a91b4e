package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"church-platform-backend/internal/common/cache"
	apperrors "church-platform-backend/internal/common/errors"
	"church-platform-backend/internal/common/logger"
	"church-platform-backend/internal/features/event/models"
	"church-platform-backend/internal/features/event/repository"
)

const (
	listCacheKey = "events:upcoming"
	listCacheTTL = 10 * time.Minute

	listLimit = 50
)

type EventService interface {
	List(ctx context.Context) ([]*models.Event, error)
	Get(ctx context.Context, id string) (*models.Event, error)
	Create(ctx context.Context, req *models.CreateEventRequest) (*models.Event, error)
}

type eventService struct {
	repo  repository.EventRepository
	cache *cache.CacheService
}

func NewEventService(repo repository.EventRepository, cacheService *cache.CacheService) EventService {
	return &eventService{
		repo:  repo,
		cache: cacheService,
	}
}

func (s *eventService) List(ctx context.Context) ([]*models.Event, error) {
	var events []*models.Event
	err := s.cache.GetOrSet(ctx, listCacheKey, &events, listCacheTTL, func() (interface{}, error) {
		return s.repo.List(ctx, listLimit)
	})
	if err != nil {
		return nil, apperrors.NewDatabaseError("list events", err)
	}

	if events == nil {
		events = []*models.Event{}
	}
	return events, nil
}

func (s *eventService) Get(ctx context.Context, id string) (*models.Event, error) {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return nil, apperrors.New(apperrors.ErrCodeEventNotFound, "Événement non trouvé")
		}
		return nil, apperrors.NewDatabaseError("get event", err)
	}
	return event, nil
}

func (s *eventService) Create(ctx context.Context, req *models.CreateEventRequest) (*models.Event, error) {
	category := req.Category
	if category == "" {
		category = models.CategoryCommunity
	}
	if !models.ValidCategory(category) {
		return nil, apperrors.NewValidationError("category", "catégorie inconnue")
	}

	now := time.Now().UTC()
	event := &models.Event{
		ID:          uuid.New().String(),
		Title:       req.Title,
		Date:        req.Date,
		Time:        req.Time,
		Description: req.Description,
		Location:    req.Location,
		Category:    category,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, event); err != nil {
		return nil, apperrors.NewDatabaseError("create event", err)
	}

	if err := s.cache.InvalidateEvents(ctx); err != nil {
		logger.Warn().Err(err).Msg("Failed to invalidate events cache")
	}

	logger.Info().
		Str("event_id", event.ID).
		Str("title", event.Title).
		Str("date", event.Date).
		Msg("Event created")

	return event, nil
}
