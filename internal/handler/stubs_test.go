package handler

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/boxmate/backend/internal/model"
	"github.com/boxmate/backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

// stubItemService routes every call to a function field so each test can
// script exactly the behavior it needs.
type stubItemService struct {
	create   func(ctx context.Context, in service.ItemInput, photos []service.PhotoFile) (*model.Item, error)
	get      func(ctx context.Context, id string) (*model.Item, error)
	list     func(ctx context.Context, query string, limit, offset int) ([]model.Item, int64, error)
	update   func(ctx context.Context, id string, in service.ItemInput, photos []service.PhotoFile) (*model.Item, error)
	del      func(ctx context.Context, id string) error
	markSold func(ctx context.Context, id string) (*model.Item, error)
}

func (s *stubItemService) Create(ctx context.Context, in service.ItemInput, photos []service.PhotoFile) (*model.Item, error) {
	return s.create(ctx, in, photos)
}

func (s *stubItemService) Get(ctx context.Context, id string) (*model.Item, error) {
	return s.get(ctx, id)
}

func (s *stubItemService) List(ctx context.Context, query string, limit, offset int) ([]model.Item, int64, error) {
	return s.list(ctx, query, limit, offset)
}

func (s *stubItemService) Update(ctx context.Context, id string, in service.ItemInput, photos []service.PhotoFile) (*model.Item, error) {
	return s.update(ctx, id, in, photos)
}

func (s *stubItemService) Delete(ctx context.Context, id string) error {
	return s.del(ctx, id)
}

func (s *stubItemService) MarkSold(ctx context.Context, id string) (*model.Item, error) {
	return s.markSold(ctx, id)
}

type stubAdService struct {
	create  func(ctx context.Context, in service.AdInput) (*model.Ad, error)
	get     func(ctx context.Context, id string) (*model.Ad, error)
	list    func(ctx context.Context, limit, offset int) ([]model.Ad, int64, error)
	update  func(ctx context.Context, id string, in service.AdInput) (*model.Ad, error)
	publish func(ctx context.Context, id string) (*model.Ad, error)
	del     func(ctx context.Context, id string) error
}

func (s *stubAdService) Create(ctx context.Context, in service.AdInput) (*model.Ad, error) {
	return s.create(ctx, in)
}

func (s *stubAdService) Get(ctx context.Context, id string) (*model.Ad, error) {
	return s.get(ctx, id)
}

func (s *stubAdService) List(ctx context.Context, limit, offset int) ([]model.Ad, int64, error) {
	return s.list(ctx, limit, offset)
}

func (s *stubAdService) Update(ctx context.Context, id string, in service.AdInput) (*model.Ad, error) {
	return s.update(ctx, id, in)
}

func (s *stubAdService) Publish(ctx context.Context, id string) (*model.Ad, error) {
	return s.publish(ctx, id)
}

func (s *stubAdService) Delete(ctx context.Context, id string) error {
	return s.del(ctx, id)
}

type stubUploadService struct {
	upload func(ctx context.Context, files []service.PhotoFile) ([]string, error)
	del    func(ctx context.Context, urls []string)
}

func (s *stubUploadService) UploadFiles(ctx context.Context, files []service.PhotoFile) ([]string, error) {
	return s.upload(ctx, files)
}

func (s *stubUploadService) DeleteFiles(ctx context.Context, urls []string) {
	s.del(ctx, urls)
}

type stubCompanyService struct {
	get  func(ctx context.Context) (*model.CompanySettings, error)
	save func(ctx context.Context, in service.CompanyInput) (*model.CompanySettings, error)
}

func (s *stubCompanyService) Get(ctx context.Context) (*model.CompanySettings, error) {
	return s.get(ctx)
}

func (s *stubCompanyService) Save(ctx context.Context, in service.CompanyInput) (*model.CompanySettings, error) {
	return s.save(ctx, in)
}

// newJSONContext builds an echo context around a JSON request body.
func newJSONContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}
