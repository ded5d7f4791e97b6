package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/boxmate/backend/internal/blob"
	"github.com/boxmate/backend/internal/imaging"
	"github.com/boxmate/backend/internal/model"
	"github.com/boxmate/backend/internal/repository"
	"gorm.io/gorm"
)

// PhotoFile is a photo attached to a create or update request, read fully
// into memory by the handler.
type PhotoFile struct {
	Name string
	Data []byte
}

// ItemInput carries the editable item fields.
type ItemInput struct {
	Name        string
	Lagerplats  string
	Lokal       string
	Hyllplats   string
	Description string
	Value       *float64
	Category    string
	Subcategory string
	Condition   string
}

type ItemService interface {
	Create(ctx context.Context, in ItemInput, photos []PhotoFile) (*model.Item, error)
	Get(ctx context.Context, id string) (*model.Item, error)
	List(ctx context.Context, query string, limit, offset int) ([]model.Item, int64, error)
	Update(ctx context.Context, id string, in ItemInput, photos []PhotoFile) (*model.Item, error)
	Delete(ctx context.Context, id string) error
	MarkSold(ctx context.Context, id string) (*model.Item, error)
}

type itemService struct {
	repo  repository.ItemRepository
	store blob.Store
}

func NewItemService(repo repository.ItemRepository, store blob.Store) ItemService {
	return &itemService{repo: repo, store: store}
}

// validateItemInput normalizes and checks the editable fields. Subcategory is
// required for electronics and cleared for every other category, matching the
// form behavior of resetting it on category change.
func validateItemInput(in *ItemInput) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Lagerplats = strings.TrimSpace(in.Lagerplats)
	in.Category = strings.TrimSpace(in.Category)
	in.Subcategory = strings.TrimSpace(in.Subcategory)
	in.Condition = strings.TrimSpace(in.Condition)

	if in.Name == "" || len(in.Name) > 120 {
		return fmt.Errorf("%w: name is required", ErrInvalid)
	}
	if in.Lagerplats == "" {
		return fmt.Errorf("%w: lagerplats is required", ErrInvalid)
	}
	if in.Category == "" {
		in.Category = model.CategoryOther
	}
	if !model.ValidCategory(in.Category) {
		return fmt.Errorf("%w: unknown category %q", ErrInvalid, in.Category)
	}
	if in.Category == model.CategoryElectronics {
		if in.Subcategory == "" {
			return fmt.Errorf("%w: subcategory is required for electronics", ErrInvalid)
		}
		if !model.ValidSubcategory(in.Subcategory) {
			return fmt.Errorf("%w: unknown subcategory %q", ErrInvalid, in.Subcategory)
		}
	} else {
		in.Subcategory = ""
	}
	if in.Condition == "" {
		in.Condition = model.ConditionGood
	}
	if !model.ValidCondition(in.Condition) {
		return fmt.Errorf("%w: unknown condition %q", ErrInvalid, in.Condition)
	}
	if in.Value != nil && *in.Value < 0 {
		return fmt.Errorf("%w: value must not be negative", ErrInvalid)
	}
	return nil
}

// uploadPhotos processes and uploads the batch sequentially. Any failure
// aborts the remaining files and fails the whole operation before a row is
// written; blobs already uploaded in the batch are left behind.
func (s *itemService) uploadPhotos(ctx context.Context, photos []PhotoFile) ([]string, error) {
	urls := make([]string, 0, len(photos))
	for i, photo := range photos {
		processed, err := imaging.Process(photo.Data)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %s", ErrInvalid, photo.Name, err)
		}
		url, err := s.store.Upload(ctx, blob.NewKey(i), processed.Data, processed.ContentType)
		if err != nil {
			return nil, fmt.Errorf("upload %s: %w", photo.Name, err)
		}
		urls = append(urls, url)
	}
	return urls, nil
}

func (s *itemService) Create(ctx context.Context, in ItemInput, photos []PhotoFile) (*model.Item, error) {
	if err := validateItemInput(&in); err != nil {
		return nil, err
	}

	urls, err := s.uploadPhotos(ctx, photos)
	if err != nil {
		return nil, err
	}

	item := &model.Item{
		Name:        in.Name,
		Lagerplats:  in.Lagerplats,
		Lokal:       in.Lokal,
		Hyllplats:   in.Hyllplats,
		Description: in.Description,
		Value:       in.Value,
		Photos:      model.EncodePhotos(urls),
		Category:    in.Category,
		Condition:   in.Condition,
		Status:      model.ItemStatusActive,
	}
	if in.Subcategory != "" {
		item.Subcategory = &in.Subcategory
	}
	if len(urls) > 0 {
		item.PhotoURL = &urls[0]
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *itemService) Get(ctx context.Context, id string) (*model.Item, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return item, nil
}

func (s *itemService) List(ctx context.Context, query string, limit, offset int) ([]model.Item, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, strings.TrimSpace(query), limit, offset)
}

// Update overwrites the editable fields and appends newly uploaded photos to
// the stored list. Photos are never replaced here; losing a photo requires an
// explicit delete.
func (s *itemService) Update(ctx context.Context, id string, in ItemInput, photos []PhotoFile) (*model.Item, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if item.Status == model.ItemStatusSold {
		return nil, ErrItemSold
	}
	if err := validateItemInput(&in); err != nil {
		return nil, err
	}

	newURLs, err := s.uploadPhotos(ctx, photos)
	if err != nil {
		return nil, err
	}
	merged := append(item.PhotoList(), newURLs...)

	item.Name = in.Name
	item.Lagerplats = in.Lagerplats
	item.Lokal = in.Lokal
	item.Hyllplats = in.Hyllplats
	item.Description = in.Description
	item.Value = in.Value
	item.Category = in.Category
	item.Condition = in.Condition
	item.Subcategory = nil
	if in.Subcategory != "" {
		item.Subcategory = &in.Subcategory
	}
	item.Photos = model.EncodePhotos(merged)
	item.PhotoURL = nil
	if len(merged) > 0 {
		item.PhotoURL = &merged[0]
	}

	if err := s.repo.Save(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Delete removes the row after a best-effort deletion of the item's primary
// photo blob. A failed blob deletion is logged and must not block the row
// delete.
func (s *itemService) Delete(ctx context.Context, id string) error {
	item, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if item.PhotoURL != nil {
		if key := blob.KeyFromURL(*item.PhotoURL); key != "" {
			if err := s.store.Remove(ctx, []string{key}); err != nil {
				log.Printf("item %s: failed to remove photo blob: %v", id, err)
			}
		}
	}

	return s.repo.Delete(ctx, id)
}

// MarkSold is a one-way transition. There is no un-sell.
func (s *itemService) MarkSold(ctx context.Context, id string) (*model.Item, error) {
	rows, err := s.repo.MarkSoldIfActive(ctx, id, time.Now())
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		item, err := s.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if item.Status == model.ItemStatusSold {
			return nil, ErrAlreadySold
		}
		return nil, ErrNotFound
	}
	return s.Get(ctx, id)
}
