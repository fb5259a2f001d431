package repository

import (
	"context"
	"marketplace-settlement/internal/model"

	"gorm.io/gorm"
)

type ListingRepository interface {
	FindByID(ctx context.Context, id string) (*model.Listing, error)
}

type listingRepoImpl struct {
	db *gorm.DB
}

func NewListingRepository(db *gorm.DB) ListingRepository {
	return &listingRepoImpl{db: db}
}

func (r *listingRepoImpl) FindByID(ctx context.Context, id string) (*model.Listing, error) {
	var listing model.Listing
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&listing).Error

	if err != nil {
		return nil, err
	}

	return &listing, nil
}
