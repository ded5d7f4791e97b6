package handler

import (
	"net/http"

	"github.com/boxmate/backend/internal/export"
	"github.com/labstack/echo/v4"
)

type ExportHandler struct {
	renderer *export.Renderer
}

func NewExportHandler(renderer *export.Renderer) *ExportHandler {
	return &ExportHandler{renderer: renderer}
}

// ExportRequest carries the draft currently in the composer form; the export
// works on unsaved state, not a persisted row.
type ExportRequest struct {
	Name        string   `json:"name"`
	Lagerplats  string   `json:"lagerplats"`
	Lokal       string   `json:"lokal"`
	Hyllplats   string   `json:"hyllplats"`
	Category    string   `json:"category"`
	Subcategory string   `json:"subcategory"`
	Condition   string   `json:"condition"`
	Value       *float64 `json:"value"`
	Description string   `json:"description"`
	Photos      []string `json:"photos"`
}

func (h *ExportHandler) ExportPDF(c echo.Context) error {
	var req ExportRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "name is required"))
	}

	pdf, err := h.renderer.Render(c.Request().Context(), export.Draft{
		Name:        req.Name,
		Lagerplats:  req.Lagerplats,
		Lokal:       req.Lokal,
		Hyllplats:   req.Hyllplats,
		Category:    req.Category,
		Subcategory: req.Subcategory,
		Condition:   req.Condition,
		Value:       req.Value,
		Description: req.Description,
		Photos:      req.Photos,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("export_failed", "failed to generate PDF"))
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="listing.pdf"`)
	return c.Blob(http.StatusOK, "application/pdf", pdf)
}
