package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/boxmate/backend/internal/model"
	"github.com/boxmate/backend/internal/photoset"
	"github.com/boxmate/backend/internal/service"
	"github.com/labstack/echo/v4"
)

type AdHandler struct {
	svc service.AdService
}

func NewAdHandler(svc service.AdService) *AdHandler {
	return &AdHandler{svc: svc}
}

// AdRequest is the JSON body of create and update calls. Photos arrive as
// pre-uploaded URLs; the upload itself goes through the uploads endpoint
// first to keep this payload small. A client that tracked hidden photos or a
// primary selection in its composer sends the raw source list along with
// hiddenIndexes and primaryIndex, and the persisted order is computed here.
type AdRequest struct {
	Name          string   `json:"name"`
	Lagerplats    string   `json:"lagerplats"`
	Description   string   `json:"description"`
	Value         *float64 `json:"value"`
	PhotoURLs     []string `json:"photoUrls"`
	HiddenIndexes []int    `json:"hiddenIndexes"`
	PrimaryIndex  *int     `json:"primaryIndex"`
	Category      string   `json:"category"`
	Subcategory   string   `json:"subcategory"`
	Condition     string   `json:"condition"`
	ItemID        string   `json:"itemId"`
}

type AdResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Lagerplats  string   `json:"lagerplats"`
	Description string   `json:"description,omitempty"`
	Value       *float64 `json:"value,omitempty"`
	PhotoURL    *string  `json:"photoUrl,omitempty"`
	Photos      []string `json:"photos"`
	Category    string   `json:"category"`
	Subcategory *string  `json:"subcategory,omitempty"`
	Condition   string   `json:"condition"`
	Status      string   `json:"status"`
	ItemID      *string  `json:"itemId,omitempty"`
	CreatedAt   string   `json:"createdAt"`
	UpdatedAt   string   `json:"updatedAt"`
	PublishedAt *string  `json:"publishedAt,omitempty"`
}

type AdListResponse struct {
	Ads   []AdResponse `json:"ads"`
	Total int64        `json:"total"`
}

func (r AdRequest) toInput() service.AdInput {
	return service.AdInput{
		Name:        r.Name,
		Lagerplats:  r.Lagerplats,
		Description: r.Description,
		Value:       r.Value,
		PhotoURLs:   r.photoOrder(),
		Category:    r.Category,
		Subcategory: r.Subcategory,
		Condition:   r.Condition,
		ItemID:      r.ItemID,
	}
}

// photoOrder resolves the list to persist. Without hidden indexes or a
// primary selection the source list passes through untouched.
func (r AdRequest) photoOrder() []string {
	if len(r.HiddenIndexes) == 0 && r.PrimaryIndex == nil {
		return r.PhotoURLs
	}
	hidden := make(map[int]bool, len(r.HiddenIndexes))
	for _, i := range r.HiddenIndexes {
		hidden[i] = true
	}
	primary := 0
	if r.PrimaryIndex != nil {
		primary = *r.PrimaryIndex
	}
	return photoset.SaveOrder(r.PhotoURLs, hidden, primary)
}

func (h *AdHandler) Create(c echo.Context) error {
	var req AdRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	ad, err := h.svc.Create(c.Request().Context(), req.toInput())
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusCreated, toAdResponse(ad))
}

func (h *AdHandler) Get(c echo.Context) error {
	ad, err := h.svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, toAdResponse(ad))
}

func (h *AdHandler) List(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	ads, total, err := h.svc.List(c.Request().Context(), limit, offset)
	if err != nil {
		return serviceError(c, err)
	}
	resp := AdListResponse{
		Ads:   make([]AdResponse, 0, len(ads)),
		Total: total,
	}
	for i := range ads {
		resp.Ads = append(resp.Ads, toAdResponse(&ads[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *AdHandler) Update(c echo.Context) error {
	var req AdRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	ad, err := h.svc.Update(c.Request().Context(), c.Param("id"), req.toInput())
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, toAdResponse(ad))
}

func (h *AdHandler) Publish(c echo.Context) error {
	ad, err := h.svc.Publish(c.Request().Context(), c.Param("id"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, toAdResponse(ad))
}

func (h *AdHandler) Delete(c echo.Context) error {
	if err := h.svc.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return serviceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func toAdResponse(ad *model.Ad) AdResponse {
	resp := AdResponse{
		ID:          ad.ID,
		Name:        ad.Name,
		Lagerplats:  ad.Lagerplats,
		Description: ad.Description,
		Value:       ad.Value,
		PhotoURL:    ad.PhotoURL,
		Photos:      ad.PhotoList(),
		Category:    ad.Category,
		Subcategory: ad.Subcategory,
		Condition:   ad.Condition,
		Status:      ad.Status,
		ItemID:      ad.ItemID,
		CreatedAt:   ad.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   ad.UpdatedAt.Format(time.RFC3339),
	}
	if resp.Photos == nil {
		resp.Photos = []string{}
	}
	if ad.PublishedAt != nil {
		s := ad.PublishedAt.Format(time.RFC3339)
		resp.PublishedAt = &s
	}
	return resp
}
