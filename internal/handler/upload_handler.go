package handler

import (
	"fmt"
	"net/http"

	"github.com/boxmate/backend/internal/service"
	"github.com/labstack/echo/v4"
)

type UploadHandler struct {
	svc service.UploadService
}

func NewUploadHandler(svc service.UploadService) *UploadHandler {
	return &UploadHandler{svc: svc}
}

type UploadResponse struct {
	URLs []string `json:"urls"`
}

type DeleteFilesRequest struct {
	URLs []string `json:"urls"`
}

func (h *UploadHandler) Upload(c echo.Context) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "multipart form expected"))
	}
	var files []service.PhotoFile
	for _, fh := range form.File["files"] {
		data, err := readFormFile(fh)
		if err != nil {
			return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", fmt.Sprintf("read %s failed", fh.Filename)))
		}
		files = append(files, service.PhotoFile{Name: fh.Filename, Data: data})
	}
	if len(files) == 0 {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "no files attached"))
	}

	urls, err := h.svc.UploadFiles(c.Request().Context(), files)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, UploadResponse{URLs: urls})
}

func (h *UploadHandler) Delete(c echo.Context) error {
	var req DeleteFilesRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	h.svc.DeleteFiles(c.Request().Context(), req.URLs)
	return c.NoContent(http.StatusNoContent)
}
