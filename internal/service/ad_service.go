package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/boxmate/backend/internal/blob"
	"github.com/boxmate/backend/internal/model"
	"github.com/boxmate/backend/internal/repository"
	"gorm.io/gorm"
)

// AdInput carries the fields of a listing draft. PhotoURLs are pre-uploaded
// blob URLs in the order computed by the photo set manager; the list is
// written verbatim on every save.
type AdInput struct {
	Name        string
	Lagerplats  string
	Description string
	Value       *float64
	PhotoURLs   []string
	Category    string
	Subcategory string
	Condition   string
	ItemID      string
}

type AdService interface {
	Create(ctx context.Context, in AdInput) (*model.Ad, error)
	Get(ctx context.Context, id string) (*model.Ad, error)
	List(ctx context.Context, limit, offset int) ([]model.Ad, int64, error)
	Update(ctx context.Context, id string, in AdInput) (*model.Ad, error)
	Publish(ctx context.Context, id string) (*model.Ad, error)
	Delete(ctx context.Context, id string) error
}

type adService struct {
	repo  repository.AdRepository
	store blob.Store
}

func NewAdService(repo repository.AdRepository, store blob.Store) AdService {
	return &adService{repo: repo, store: store}
}

func validateAdInput(in *AdInput) error {
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
		// Whatever the form held transiently, only electronics persists
		// a subcategory.
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

// Create persists a new draft. Two identical create calls yield two
// independent ads; there is no dedup against the source item.
func (s *adService) Create(ctx context.Context, in AdInput) (*model.Ad, error) {
	if err := validateAdInput(&in); err != nil {
		return nil, err
	}

	ad := &model.Ad{
		Name:        in.Name,
		Lagerplats:  in.Lagerplats,
		Description: in.Description,
		Value:       in.Value,
		Photos:      model.EncodePhotos(in.PhotoURLs),
		Category:    in.Category,
		Condition:   in.Condition,
		Status:      model.AdStatusDraft,
	}
	if in.Subcategory != "" {
		ad.Subcategory = &in.Subcategory
	}
	if len(in.PhotoURLs) > 0 {
		ad.PhotoURL = &in.PhotoURLs[0]
	}
	if in.ItemID != "" {
		itemID := in.ItemID
		ad.ItemID = &itemID
	}

	if err := s.repo.Create(ctx, ad); err != nil {
		return nil, err
	}
	return ad, nil
}

func (s *adService) Get(ctx context.Context, id string) (*model.Ad, error) {
	ad, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return ad, nil
}

func (s *adService) List(ctx context.Context, limit, offset int) ([]model.Ad, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, limit, offset)
}

// Update overwrites all mutable fields and the photo list wholesale. Unlike
// item updates there is no append guarantee: the draft is a disposable
// snapshot and the saved list is exactly what the composer computed.
func (s *adService) Update(ctx context.Context, id string, in AdInput) (*model.Ad, error) {
	ad, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validateAdInput(&in); err != nil {
		return nil, err
	}

	ad.Name = in.Name
	ad.Lagerplats = in.Lagerplats
	ad.Description = in.Description
	ad.Value = in.Value
	ad.Category = in.Category
	ad.Condition = in.Condition
	ad.Subcategory = nil
	if in.Subcategory != "" {
		ad.Subcategory = &in.Subcategory
	}
	ad.Photos = model.EncodePhotos(in.PhotoURLs)
	ad.PhotoURL = nil
	if len(in.PhotoURLs) > 0 {
		ad.PhotoURL = &in.PhotoURLs[0]
	}

	if err := s.repo.Save(ctx, ad); err != nil {
		return nil, err
	}
	return ad, nil
}

// Publish transitions draft → published and stamps published_at exactly once.
// Re-publishing is rejected rather than re-stamped.
func (s *adService) Publish(ctx context.Context, id string) (*model.Ad, error) {
	rows, err := s.repo.PublishIfDraft(ctx, id, time.Now())
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		ad, err := s.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if ad.Status == model.AdStatusPublished {
			return nil, ErrAlreadyPublished
		}
		return nil, ErrNotFound
	}
	return s.Get(ctx, id)
}

// Delete removes the ad row after a best-effort cleanup of every photo blob
// in its stored list. Blob failures are logged and never block the row
// deletion.
func (s *adService) Delete(ctx context.Context, id string) error {
	ad, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	var keys []string
	for _, url := range ad.PhotoList() {
		if key := blob.KeyFromURL(url); key != "" {
			keys = append(keys, key)
		}
	}
	if len(keys) > 0 {
		if err := s.store.Remove(ctx, keys); err != nil {
			log.Printf("ad %s: failed to remove photo blobs: %v", id, err)
		}
	}

	return s.repo.Delete(ctx, id)
}
