package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/boxmate/backend/internal/model"
	"github.com/boxmate/backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleItem() *model.Item {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	return &model.Item{
		ID:         "11111111-2222-3333-4444-555555555555",
		Name:       "Borrmaskin",
		Lagerplats: "Lager A",
		Category:   model.CategoryOther,
		Condition:  model.ConditionGood,
		Status:     model.ItemStatusActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// multipartRequest builds a multipart body with the given form fields and an
// optional photo attachment.
func multipartRequest(t *testing.T, method, target string, fields map[string]string, photoField string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if photoField != "" {
		fw, err := w.CreateFormFile(photoField, "photo.jpg")
		require.NoError(t, err)
		_, err = fw.Write([]byte("fake image bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(method, target, &body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return req
}

func TestItemHandlerCreate(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		var gotInput service.ItemInput
		var gotPhotos []service.PhotoFile
		h := NewItemHandler(&stubItemService{
			create: func(_ context.Context, in service.ItemInput, photos []service.PhotoFile) (*model.Item, error) {
				gotInput = in
				gotPhotos = photos
				return sampleItem(), nil
			},
		})

		req := multipartRequest(t, http.MethodPost, "/api/items", map[string]string{
			"name":       "Borrmaskin",
			"lagerplats": "Lager A",
			"value":      "250",
		}, "photos")
		rec := httptest.NewRecorder()
		c := echo.New().NewContext(req, rec)

		require.NoError(t, h.Create(c))
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "Borrmaskin", gotInput.Name)
		require.NotNil(t, gotInput.Value)
		assert.Equal(t, 250.0, *gotInput.Value)
		require.Len(t, gotPhotos, 1)
		assert.Equal(t, "photo.jpg", gotPhotos[0].Name)

		var resp ItemResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "Borrmaskin", resp.Name)
		assert.NotNil(t, resp.Photos, "photos must serialize as [] not null")
	})

	t.Run("malformed value field", func(t *testing.T) {
		h := NewItemHandler(&stubItemService{})
		req := multipartRequest(t, http.MethodPost, "/api/items", map[string]string{
			"name":  "Borrmaskin",
			"value": "abc",
		}, "")
		rec := httptest.NewRecorder()
		c := echo.New().NewContext(req, rec)

		require.NoError(t, h.Create(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "bad_request", decodeError(t, rec).Error.Code)
	})

	t.Run("validation error from service", func(t *testing.T) {
		h := NewItemHandler(&stubItemService{
			create: func(context.Context, service.ItemInput, []service.PhotoFile) (*model.Item, error) {
				return nil, fmt.Errorf("%w: name is required", service.ErrInvalid)
			},
		})
		req := multipartRequest(t, http.MethodPost, "/api/items", nil, "")
		rec := httptest.NewRecorder()
		c := echo.New().NewContext(req, rec)

		require.NoError(t, h.Create(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestItemHandlerGet(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		h := NewItemHandler(&stubItemService{
			get: func(_ context.Context, id string) (*model.Item, error) {
				assert.Equal(t, "abc", id)
				return sampleItem(), nil
			},
		})
		c, rec := newJSONContext(t, http.MethodGet, "/api/items/abc", "")
		c.SetParamNames("id")
		c.SetParamValues("abc")

		require.NoError(t, h.Get(c))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("not found", func(t *testing.T) {
		h := NewItemHandler(&stubItemService{
			get: func(context.Context, string) (*model.Item, error) {
				return nil, service.ErrNotFound
			},
		})
		c, rec := newJSONContext(t, http.MethodGet, "/api/items/missing", "")
		c.SetParamNames("id")
		c.SetParamValues("missing")

		require.NoError(t, h.Get(c))
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "not_found", decodeError(t, rec).Error.Code)
	})
}

func TestItemHandlerList(t *testing.T) {
	h := NewItemHandler(&stubItemService{
		list: func(_ context.Context, query string, limit, offset int) ([]model.Item, int64, error) {
			assert.Equal(t, "borr", query)
			assert.Equal(t, 10, limit)
			assert.Equal(t, 20, offset)
			return []model.Item{*sampleItem()}, 1, nil
		},
	})
	c, rec := newJSONContext(t, http.MethodGet, "/api/items?q=borr&limit=10&offset=20", "")

	require.NoError(t, h.List(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp ItemListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.Total)
	require.Len(t, resp.Items, 1)
}

func TestItemHandlerMarkSold(t *testing.T) {
	t.Run("sold", func(t *testing.T) {
		sold := sampleItem()
		sold.Status = model.ItemStatusSold
		at := time.Now()
		sold.SoldAt = &at
		h := NewItemHandler(&stubItemService{
			markSold: func(context.Context, string) (*model.Item, error) { return sold, nil },
		})
		c, rec := newJSONContext(t, http.MethodPost, "/api/items/abc/sold", "")
		c.SetParamNames("id")
		c.SetParamValues("abc")

		require.NoError(t, h.MarkSold(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp ItemResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, model.ItemStatusSold, resp.Status)
		assert.NotNil(t, resp.SoldAt)
	})

	t.Run("already sold", func(t *testing.T) {
		h := NewItemHandler(&stubItemService{
			markSold: func(context.Context, string) (*model.Item, error) { return nil, service.ErrAlreadySold },
		})
		c, rec := newJSONContext(t, http.MethodPost, "/api/items/abc/sold", "")
		c.SetParamNames("id")
		c.SetParamValues("abc")

		require.NoError(t, h.MarkSold(c))
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "already_sold", decodeError(t, rec).Error.Code)
	})
}

func TestItemHandlerUpdateSoldConflict(t *testing.T) {
	h := NewItemHandler(&stubItemService{
		update: func(context.Context, string, service.ItemInput, []service.PhotoFile) (*model.Item, error) {
			return nil, service.ErrItemSold
		},
	})
	req := multipartRequest(t, http.MethodPut, "/api/items/abc", map[string]string{"name": "x"}, "")
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("abc")

	require.NoError(t, h.Update(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "item_sold", decodeError(t, rec).Error.Code)
}

func TestItemHandlerDelete(t *testing.T) {
	h := NewItemHandler(&stubItemService{
		del: func(_ context.Context, id string) error {
			assert.Equal(t, "abc", id)
			return nil
		},
	})
	c, rec := newJSONContext(t, http.MethodDelete, "/api/items/abc", "")
	c.SetParamNames("id")
	c.SetParamValues("abc")

	require.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
