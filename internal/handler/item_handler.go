package handler

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/boxmate/backend/internal/imaging"
	"github.com/boxmate/backend/internal/model"
	"github.com/boxmate/backend/internal/service"
	"github.com/labstack/echo/v4"
)

type ItemHandler struct {
	svc service.ItemService
}

func NewItemHandler(svc service.ItemService) *ItemHandler {
	return &ItemHandler{svc: svc}
}

type ItemResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Lagerplats  string   `json:"lagerplats"`
	Lokal       string   `json:"lokal,omitempty"`
	Hyllplats   string   `json:"hyllplats,omitempty"`
	Description string   `json:"description,omitempty"`
	Value       *float64 `json:"value,omitempty"`
	PhotoURL    *string  `json:"photoUrl,omitempty"`
	Photos      []string `json:"photos"`
	Category    string   `json:"category"`
	Subcategory *string  `json:"subcategory,omitempty"`
	Condition   string   `json:"condition"`
	Status      string   `json:"status"`
	SoldAt      *string  `json:"soldAt,omitempty"`
	CreatedAt   string   `json:"createdAt"`
	UpdatedAt   string   `json:"updatedAt"`
}

type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Total int64          `json:"total"`
}

// itemInputFromForm reads the multipart form fields of a create or update
// request. Photo files travel in the same form under "photos".
func itemInputFromForm(c echo.Context) (service.ItemInput, error) {
	in := service.ItemInput{
		Name:        c.FormValue("name"),
		Lagerplats:  c.FormValue("lagerplats"),
		Lokal:       c.FormValue("lokal"),
		Hyllplats:   c.FormValue("hyllplats"),
		Description: c.FormValue("description"),
		Category:    c.FormValue("category"),
		Subcategory: c.FormValue("subcategory"),
		Condition:   c.FormValue("condition"),
	}
	if raw := c.FormValue("value"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return in, fmt.Errorf("invalid value %q", raw)
		}
		in.Value = &v
	}
	return in, nil
}

// photosFromForm reads every attached photo into memory, capped just above
// the per-file limit so oversized uploads fail validation instead of
// exhausting memory.
func photosFromForm(c echo.Context) ([]service.PhotoFile, error) {
	form, err := c.MultipartForm()
	if err != nil {
		if err == http.ErrNotMultipart {
			return nil, nil
		}
		return nil, err
	}
	var photos []service.PhotoFile
	for _, fh := range form.File["photos"] {
		data, err := readFormFile(fh)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", fh.Filename, err)
		}
		photos = append(photos, service.PhotoFile{Name: fh.Filename, Data: data})
	}
	return photos, nil
}

func readFormFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, imaging.MaxBytes+1))
}

func (h *ItemHandler) Create(c echo.Context) error {
	in, err := itemInputFromForm(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
	}
	photos, err := photosFromForm(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
	}
	item, err := h.svc.Create(c.Request().Context(), in, photos)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusCreated, toItemResponse(item))
}

func (h *ItemHandler) Get(c echo.Context) error {
	item, err := h.svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, toItemResponse(item))
}

func (h *ItemHandler) List(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	items, total, err := h.svc.List(c.Request().Context(), c.QueryParam("q"), limit, offset)
	if err != nil {
		return serviceError(c, err)
	}
	resp := ItemListResponse{
		Items: make([]ItemResponse, 0, len(items)),
		Total: total,
	}
	for i := range items {
		resp.Items = append(resp.Items, toItemResponse(&items[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *ItemHandler) Update(c echo.Context) error {
	in, err := itemInputFromForm(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
	}
	photos, err := photosFromForm(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
	}
	item, err := h.svc.Update(c.Request().Context(), c.Param("id"), in, photos)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, toItemResponse(item))
}

func (h *ItemHandler) Delete(c echo.Context) error {
	if err := h.svc.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return serviceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ItemHandler) MarkSold(c echo.Context) error {
	item, err := h.svc.MarkSold(c.Request().Context(), c.Param("id"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, toItemResponse(item))
}

func toItemResponse(item *model.Item) ItemResponse {
	resp := ItemResponse{
		ID:          item.ID,
		Name:        item.Name,
		Lagerplats:  item.Lagerplats,
		Lokal:       item.Lokal,
		Hyllplats:   item.Hyllplats,
		Description: item.Description,
		Value:       item.Value,
		PhotoURL:    item.PhotoURL,
		Photos:      item.PhotoList(),
		Category:    item.Category,
		Subcategory: item.Subcategory,
		Condition:   item.Condition,
		Status:      item.Status,
		CreatedAt:   item.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   item.UpdatedAt.Format(time.RFC3339),
	}
	if resp.Photos == nil {
		resp.Photos = []string{}
	}
	if item.SoldAt != nil {
		s := item.SoldAt.Format(time.RFC3339)
		resp.SoldAt = &s
	}
	return resp
}
