package repository

import (
	"context"
	"errors"
	"time"

	"github.com/boxmate/backend/internal/model"
	"gorm.io/gorm"
)

var ErrDBNotReady = errors.New("database not initialized")

type ItemRepository interface {
	Create(ctx context.Context, item *model.Item) error
	FindByID(ctx context.Context, id string) (*model.Item, error)
	List(ctx context.Context, query string, limit, offset int) ([]model.Item, int64, error)
	Save(ctx context.Context, item *model.Item) error
	Delete(ctx context.Context, id string) error
	MarkSoldIfActive(ctx context.Context, id string, soldAt time.Time) (int64, error)
	SetDB(db *gorm.DB)
}

type itemRepository struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) Create(ctx context.Context, item *model.Item) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *itemRepository) FindByID(ctx context.Context, id string) (*model.Item, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var item model.Item
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *itemRepository) List(ctx context.Context, query string, limit, offset int) ([]model.Item, int64, error) {
	if r.db == nil {
		return nil, 0, ErrDBNotReady
	}
	tx := r.db.WithContext(ctx).Model(&model.Item{})
	if query != "" {
		like := "%" + query + "%"
		tx = tx.Where("name LIKE ? OR description LIKE ? OR lagerplats LIKE ?", like, like, like)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []model.Item
	if err := tx.
		Order("created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *itemRepository) Save(ctx context.Context, item *model.Item) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *itemRepository) Delete(ctx context.Context, id string) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Item{}).Error
}

// MarkSoldIfActive flips an active item to sold in one statement and reports
// the number of affected rows, so the caller can tell "missing" from
// "already sold".
func (r *itemRepository) MarkSoldIfActive(ctx context.Context, id string, soldAt time.Time) (int64, error) {
	if r.db == nil {
		return 0, ErrDBNotReady
	}
	res := r.db.WithContext(ctx).
		Model(&model.Item{}).
		Where("id = ? AND status = ?", id, model.ItemStatusActive).
		Updates(map[string]interface{}{
			"status":  model.ItemStatusSold,
			"sold_at": soldAt,
		})
	return res.RowsAffected, res.Error
}

func (r *itemRepository) SetDB(db *gorm.DB) {
	r.db = db
}
