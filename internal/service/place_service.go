package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/pradyumyelame/EasyToStay/internal/auth"
	"github.com/pradyumyelame/EasyToStay/internal/cache"
	apperrors "github.com/pradyumyelame/EasyToStay/internal/errors"
	"github.com/pradyumyelame/EasyToStay/internal/events"
	"github.com/pradyumyelame/EasyToStay/internal/model"
	"github.com/pradyumyelame/EasyToStay/internal/repository"
)

// DefaultPlaceCacheTTL is used when no TTL is configured.
const DefaultPlaceCacheTTL = 5 * time.Minute

// PlaceService handles listings. Mutations are allowed to the owner only.
type PlaceService interface {
	Create(ctx context.Context, ownerID string, fields model.PlaceFields) (*model.Place, error)
	Get(ctx context.Context, id string) (*model.Place, error)
	GetWithOwner(ctx context.Context, id string) (*model.Place, error)
	ListAll(ctx context.Context) ([]model.Place, error)
	ListByOwner(ctx context.Context, ownerID string) ([]model.Place, error)
	Update(ctx context.Context, subjectID, placeID string, fields model.PlaceFields) (*model.Place, error)
	Delete(ctx context.Context, subjectID, placeID string) error
}

type placeService struct {
	places    repository.PlaceRepository
	cache     *cache.Client
	cacheTTL  time.Duration
	publisher events.Publisher
	log       *zap.Logger
}

// NewPlaceService creates a new place service.
func NewPlaceService(
	places repository.PlaceRepository,
	cacheClient *cache.Client,
	cacheTTL time.Duration,
	publisher events.Publisher,
	log *zap.Logger,
) PlaceService {
	if cacheTTL <= 0 {
		cacheTTL = DefaultPlaceCacheTTL
	}
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &placeService{
		places:    places,
		cache:     cacheClient,
		cacheTTL:  cacheTTL,
		publisher: publisher,
		log:       log,
	}
}

func placeCacheKey(id string) string {
	return "place:" + id
}

func validatePlaceFields(f model.PlaceFields) error {
	if f.MaxGuests < 0 {
		return fmt.Errorf("%w: maxGuests must not be negative", apperrors.ErrInvalidInput)
	}
	if f.Price.IsNegative() {
		return fmt.Errorf("%w: price must not be negative", apperrors.ErrInvalidInput)
	}
	return nil
}

// Create stores a new listing owned by ownerID.
func (s *placeService) Create(ctx context.Context, ownerID string, fields model.PlaceFields) (*model.Place, error) {
	if err := validatePlaceFields(fields); err != nil {
		return nil, err
	}
	place := &model.Place{OwnerID: ownerID}
	place.Apply(fields)
	if place.Photos == nil {
		place.Photos = []string{}
	}
	if place.Perks == nil {
		place.Perks = []string{}
	}

	if err := s.places.Create(ctx, place); err != nil {
		s.log.Error("create place", zap.String("owner_id", ownerID), zap.Error(err))
		return nil, fmt.Errorf("create place: %w", err)
	}

	publish(ctx, s.publisher, s.log, events.SubjectPlaceCreated, events.PlaceChanged{
		PlaceID: place.ID,
		OwnerID: place.OwnerID,
		Title:   place.Title,
		At:      time.Now().UTC(),
	})
	return place, nil
}

// Get returns a listing, served from the cache when possible.
func (s *placeService) Get(ctx context.Context, id string) (*model.Place, error) {
	var cached model.Place
	if s.cache.GetJSON(ctx, placeCacheKey(id), &cached) {
		return &cached, nil
	}

	place, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	_ = s.cache.SetJSON(ctx, placeCacheKey(id), place, s.cacheTTL)
	return place, nil
}

// GetWithOwner returns a listing with its owner's public profile.
func (s *placeService) GetWithOwner(ctx context.Context, id string) (*model.Place, error) {
	place, err := s.places.FindByIDWithOwner(ctx, id)
	if err != nil {
		return nil, s.lookupError(id, err)
	}
	return place, nil
}

func (s *placeService) ListAll(ctx context.Context) ([]model.Place, error) {
	places, err := s.places.ListAll(ctx)
	if err != nil {
		s.log.Error("list places", zap.Error(err))
		return nil, fmt.Errorf("list places: %w", err)
	}
	if places == nil {
		places = []model.Place{}
	}
	return places, nil
}

func (s *placeService) ListByOwner(ctx context.Context, ownerID string) ([]model.Place, error) {
	places, err := s.places.ListByOwner(ctx, ownerID)
	if err != nil {
		s.log.Error("list owner places", zap.String("owner_id", ownerID), zap.Error(err))
		return nil, fmt.Errorf("list places: %w", err)
	}
	if places == nil {
		places = []model.Place{}
	}
	return places, nil
}

// Update overwrites the listing's fields. The ownership check runs against a
// fresh read, before anything is written.
func (s *placeService) Update(ctx context.Context, subjectID, placeID string, fields model.PlaceFields) (*model.Place, error) {
	place, err := s.authorize(ctx, subjectID, placeID)
	if err != nil {
		return nil, err
	}
	if err := validatePlaceFields(fields); err != nil {
		return nil, err
	}

	place.Apply(fields)
	if err := s.places.Update(ctx, place); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("place %s: %w", placeID, apperrors.ErrNotFound)
		}
		s.log.Error("update place", zap.String("place_id", placeID), zap.Error(err))
		return nil, fmt.Errorf("update place: %w", err)
	}
	_ = s.cache.Delete(ctx, placeCacheKey(placeID))

	publish(ctx, s.publisher, s.log, events.SubjectPlaceUpdated, events.PlaceChanged{
		PlaceID: place.ID,
		OwnerID: place.OwnerID,
		Title:   place.Title,
		At:      time.Now().UTC(),
	})
	return place, nil
}

// Delete removes the listing if subjectID owns it.
func (s *placeService) Delete(ctx context.Context, subjectID, placeID string) error {
	place, err := s.authorize(ctx, subjectID, placeID)
	if err != nil {
		return err
	}
	if err := s.places.Delete(ctx, placeID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("place %s: %w", placeID, apperrors.ErrNotFound)
		}
		s.log.Error("delete place", zap.String("place_id", placeID), zap.Error(err))
		return fmt.Errorf("delete place: %w", err)
	}
	_ = s.cache.Delete(ctx, placeCacheKey(placeID))

	publish(ctx, s.publisher, s.log, events.SubjectPlaceDeleted, events.PlaceChanged{
		PlaceID: place.ID,
		OwnerID: place.OwnerID,
		At:      time.Now().UTC(),
	})
	return nil
}

// authorize loads the place bypassing the cache and applies the ownership guard.
func (s *placeService) authorize(ctx context.Context, subjectID, placeID string) (*model.Place, error) {
	place, err := s.find(ctx, placeID)
	if err != nil {
		return nil, err
	}
	if !auth.CanMutate(subjectID, place.OwnerID) {
		s.log.Info("ownership check failed",
			zap.String("place_id", placeID),
			zap.String("subject_id", subjectID))
		return nil, apperrors.ErrForbidden
	}
	return place, nil
}

func (s *placeService) find(ctx context.Context, id string) (*model.Place, error) {
	place, err := s.places.FindByID(ctx, id)
	if err != nil {
		return nil, s.lookupError(id, err)
	}
	return place, nil
}

func (s *placeService) lookupError(id string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("place %s: %w", id, apperrors.ErrNotFound)
	}
	s.log.Error("find place", zap.String("place_id", id), zap.Error(err))
	return fmt.Errorf("find place: %w", err)
}
