package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/pradyumyelame/EasyToStay/internal/model"
)

type placeRepository struct {
	db *gorm.DB
}

// NewPlaceRepository creates a new place repository.
func NewPlaceRepository(db *gorm.DB) PlaceRepository {
	return &placeRepository{db: db}
}

func (r *placeRepository) Create(ctx context.Context, place *model.Place) error {
	return r.db.WithContext(ctx).Omit("Owner").Create(place).Error
}

func (r *placeRepository) FindByID(ctx context.Context, id string) (*model.Place, error) {
	var place model.Place
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&place).Error; err != nil {
		return nil, translateGormError(err)
	}
	return &place, nil
}

// FindByIDWithOwner loads the place together with its owner's public fields.
func (r *placeRepository) FindByIDWithOwner(ctx context.Context, id string) (*model.Place, error) {
	var place model.Place
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Where("id = ?", id).
		First(&place).Error
	if err != nil {
		return nil, translateGormError(err)
	}
	return &place, nil
}

func (r *placeRepository) ListByOwner(ctx context.Context, ownerID string) ([]model.Place, error) {
	places := []model.Place{}
	if err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("created_at").Find(&places).Error; err != nil {
		return nil, err
	}
	return places, nil
}

func (r *placeRepository) ListAll(ctx context.Context) ([]model.Place, error) {
	places := []model.Place{}
	if err := r.db.WithContext(ctx).Order("created_at").Find(&places).Error; err != nil {
		return nil, err
	}
	return places, nil
}

// Update writes the editable fields of place. Owner and id never change.
func (r *placeRepository) Update(ctx context.Context, place *model.Place) error {
	res := r.db.WithContext(ctx).
		Model(&model.Place{}).
		Where("id = ?", place.ID).
		Select("title", "address", "photos", "description", "perks", "extra_info",
			"check_in", "check_out", "max_guests", "price", "updated_at").
		Updates(place)
	return translateGormError(res.Error)
}

func (r *placeRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Place{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
