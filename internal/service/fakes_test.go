package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/boxmate/backend/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeBlobStore records uploads and removals in memory. failAfter limits how
// many uploads succeed before errors are returned, to exercise the
// abort-mid-batch paths.
type fakeBlobStore struct {
	mu        sync.Mutex
	objects   map[string][]byte
	removed   []string
	uploads   int
	failAfter int
	removeErr error
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{objects: make(map[string][]byte), failAfter: -1}
}

func (f *fakeBlobStore) Upload(_ context.Context, key string, data []byte, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAfter >= 0 && f.uploads >= f.failAfter {
		return "", errors.New("storage unavailable")
	}
	f.uploads++
	f.objects[key] = data
	return "https://blobs.test/" + key, nil
}

func (f *fakeBlobStore) Remove(_ context.Context, keys []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removed = append(f.removed, keys...)
	for _, key := range keys {
		delete(f.objects, key)
	}
	return f.removeErr
}

// fakeItemRepo is an in-memory ItemRepository.
type fakeItemRepo struct {
	mu    sync.Mutex
	items map[string]model.Item
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: make(map[string]model.Item)}
}

func (f *fakeItemRepo) Create(_ context.Context, item *model.Item) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	item.CreatedAt = time.Now()
	item.UpdatedAt = item.CreatedAt
	f.items[item.ID] = *item
	return nil
}

func (f *fakeItemRepo) FindByID(_ context.Context, id string) (*model.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &item, nil
}

func (f *fakeItemRepo) List(_ context.Context, query string, limit, offset int) ([]model.Item, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var items []model.Item
	for _, item := range f.items {
		if query == "" || contains(item.Name, query) || contains(item.Description, query) || contains(item.Lagerplats, query) {
			items = append(items, item)
		}
	}
	return items, int64(len(items)), nil
}

func (f *fakeItemRepo) Save(_ context.Context, item *model.Item) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[item.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	item.UpdatedAt = time.Now()
	f.items[item.ID] = *item
	return nil
}

func (f *fakeItemRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.items, id)
	return nil
}

func (f *fakeItemRepo) MarkSoldIfActive(_ context.Context, id string, soldAt time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.items[id]
	if !ok || item.Status != model.ItemStatusActive {
		return 0, nil
	}
	item.Status = model.ItemStatusSold
	item.SoldAt = &soldAt
	f.items[id] = item
	return 1, nil
}

func (f *fakeItemRepo) SetDB(*gorm.DB) {}

// fakeAdRepo is an in-memory AdRepository.
type fakeAdRepo struct {
	mu  sync.Mutex
	ads map[string]model.Ad
}

func newFakeAdRepo() *fakeAdRepo {
	return &fakeAdRepo{ads: make(map[string]model.Ad)}
}

func (f *fakeAdRepo) Create(_ context.Context, ad *model.Ad) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if ad.ID == "" {
		ad.ID = uuid.NewString()
	}
	ad.CreatedAt = time.Now()
	ad.UpdatedAt = ad.CreatedAt
	f.ads[ad.ID] = *ad
	return nil
}

func (f *fakeAdRepo) FindByID(_ context.Context, id string) (*model.Ad, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ad, ok := f.ads[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &ad, nil
}

func (f *fakeAdRepo) List(_ context.Context, limit, offset int) ([]model.Ad, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var ads []model.Ad
	for _, ad := range f.ads {
		ads = append(ads, ad)
	}
	return ads, int64(len(ads)), nil
}

func (f *fakeAdRepo) Save(_ context.Context, ad *model.Ad) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.ads[ad.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	ad.UpdatedAt = time.Now()
	f.ads[ad.ID] = *ad
	return nil
}

func (f *fakeAdRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.ads, id)
	return nil
}

func (f *fakeAdRepo) PublishIfDraft(_ context.Context, id string, publishedAt time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ad, ok := f.ads[id]
	if !ok || ad.Status != model.AdStatusDraft {
		return 0, nil
	}
	ad.Status = model.AdStatusPublished
	ad.PublishedAt = &publishedAt
	f.ads[id] = ad
	return 1, nil
}

func (f *fakeAdRepo) SetDB(*gorm.DB) {}

// fakeCompanyRepo is an in-memory CompanyRepository keyed by user.
type fakeCompanyRepo struct {
	mu       sync.Mutex
	settings map[string]model.CompanySettings
}

func newFakeCompanyRepo() *fakeCompanyRepo {
	return &fakeCompanyRepo{settings: make(map[string]model.CompanySettings)}
}

func (f *fakeCompanyRepo) FindByUser(_ context.Context, userID string) (*model.CompanySettings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.settings[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &s, nil
}

func (f *fakeCompanyRepo) Create(_ context.Context, s *model.CompanySettings) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	f.settings[s.UserID] = *s
	return nil
}

func (f *fakeCompanyRepo) Save(_ context.Context, s *model.CompanySettings) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.settings[s.UserID] = *s
	return nil
}

func (f *fakeCompanyRepo) SetDB(*gorm.DB) {}

func contains(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// testPhoto returns a valid in-memory PNG upload.
func testPhoto(t *testing.T, name string) PhotoFile {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4))))
	return PhotoFile{Name: name, Data: buf.Bytes()}
}

func floatPtr(v float64) *float64 { return &v }

func validItemInput() ItemInput {
	return ItemInput{
		Name:       "Drill",
		Lagerplats: "Stockholm",
		Category:   model.CategoryOther,
		Condition:  model.ConditionGood,
	}
}

func validAdInput() AdInput {
	return AdInput{
		Name:       "Drill",
		Lagerplats: "Stockholm",
		Category:   model.CategoryOther,
		Condition:  model.ConditionGood,
	}
}
