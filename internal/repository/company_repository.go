package repository

import (
	"context"

	"github.com/boxmate/backend/internal/model"
	"gorm.io/gorm"
)

type CompanyRepository interface {
	FindByUser(ctx context.Context, userID string) (*model.CompanySettings, error)
	Create(ctx context.Context, settings *model.CompanySettings) error
	Save(ctx context.Context, settings *model.CompanySettings) error
	SetDB(db *gorm.DB)
}

type companyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) CompanyRepository {
	return &companyRepository{db: db}
}

func (r *companyRepository) FindByUser(ctx context.Context, userID string) (*model.CompanySettings, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var settings model.CompanySettings
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&settings).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *companyRepository) Create(ctx context.Context, settings *model.CompanySettings) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Create(settings).Error
}

func (r *companyRepository) Save(ctx context.Context, settings *model.CompanySettings) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Save(settings).Error
}

func (r *companyRepository) SetDB(db *gorm.DB) {
	r.db = db
}
