package repository

import (
	"context"
	"time"

	"github.com/boxmate/backend/internal/model"
	"gorm.io/gorm"
)

type AdRepository interface {
	Create(ctx context.Context, ad *model.Ad) error
	FindByID(ctx context.Context, id string) (*model.Ad, error)
	List(ctx context.Context, limit, offset int) ([]model.Ad, int64, error)
	Save(ctx context.Context, ad *model.Ad) error
	Delete(ctx context.Context, id string) error
	PublishIfDraft(ctx context.Context, id string, publishedAt time.Time) (int64, error)
	SetDB(db *gorm.DB)
}

type adRepository struct {
	db *gorm.DB
}

func NewAdRepository(db *gorm.DB) AdRepository {
	return &adRepository{db: db}
}

func (r *adRepository) Create(ctx context.Context, ad *model.Ad) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Create(ad).Error
}

func (r *adRepository) FindByID(ctx context.Context, id string) (*model.Ad, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var ad model.Ad
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&ad).Error; err != nil {
		return nil, err
	}
	return &ad, nil
}

func (r *adRepository) List(ctx context.Context, limit, offset int) ([]model.Ad, int64, error) {
	if r.db == nil {
		return nil, 0, ErrDBNotReady
	}
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Ad{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ads []model.Ad
	if err := r.db.WithContext(ctx).
		Order("created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&ads).Error; err != nil {
		return nil, 0, err
	}
	return ads, total, nil
}

func (r *adRepository) Save(ctx context.Context, ad *model.Ad) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Save(ad).Error
}

func (r *adRepository) Delete(ctx context.Context, id string) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Ad{}).Error
}

// PublishIfDraft stamps published_at and flips the status in one statement;
// the affected-row count lets the caller distinguish a missing ad from one
// that is already published.
func (r *adRepository) PublishIfDraft(ctx context.Context, id string, publishedAt time.Time) (int64, error) {
	if r.db == nil {
		return 0, ErrDBNotReady
	}
	res := r.db.WithContext(ctx).
		Model(&model.Ad{}).
		Where("id = ? AND status = ?", id, model.AdStatusDraft).
		Updates(map[string]interface{}{
			"status":       model.AdStatusPublished,
			"published_at": publishedAt,
		})
	return res.RowsAffected, res.Error
}

func (r *adRepository) SetDB(db *gorm.DB) {
	r.db = db
}
