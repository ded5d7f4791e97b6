package server

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/boxmate/backend/internal/blob"
	"github.com/boxmate/backend/internal/export"
	"github.com/boxmate/backend/internal/handler"
	"github.com/boxmate/backend/internal/repository"
	"github.com/boxmate/backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"
)

type Server struct {
	e           *echo.Echo
	itemRepo    repository.ItemRepository
	adRepo      repository.AdRepository
	companyRepo repository.CompanyRepository
	sha         string
	build       string
}

// New wires the full API. db may be nil at boot; SetDB injects the
// connection once it is ready and repos answer 503 until then.
func New(db *gorm.DB, store blob.Store, extraOrigins []string, sha, buildTime string) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		AllowOriginFunc: func(origin string) (bool, error) {
			low := strings.ToLower(origin)
			if strings.HasPrefix(low, "http://localhost:") || strings.HasPrefix(low, "http://127.0.0.1:") ||
				strings.HasPrefix(low, "https://localhost:") || strings.HasPrefix(low, "https://127.0.0.1:") {
				return true, nil
			}
			u, err := url.Parse(origin)
			if err != nil {
				return false, nil
			}
			if u.Scheme != "http" && u.Scheme != "https" {
				return false, nil
			}
			for _, allowed := range extraOrigins {
				if strings.EqualFold(u.Hostname(), allowed) || strings.EqualFold(origin, allowed) {
					return true, nil
				}
			}
			return false, nil
		},
	}))

	itemRepo := repository.NewItemRepository(db)
	itemSvc := service.NewItemService(itemRepo, store)
	itemHandler := handler.NewItemHandler(itemSvc)

	adRepo := repository.NewAdRepository(db)
	adSvc := service.NewAdService(adRepo, store)
	adHandler := handler.NewAdHandler(adSvc)

	uploadSvc := service.NewUploadService(store)
	uploadHandler := handler.NewUploadHandler(uploadSvc)

	companyRepo := repository.NewCompanyRepository(db)
	companySvc := service.NewCompanyService(companyRepo)
	companyHandler := handler.NewCompanyHandler(companySvc)

	exportHandler := handler.NewExportHandler(export.NewRenderer())

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"ok":         "true",
			"git_sha":    sha,
			"build_time": buildTime,
		})
	})

	api := e.Group("/api")
	api.POST("/items", itemHandler.Create)
	api.GET("/items", itemHandler.List)
	api.GET("/items/:id", itemHandler.Get)
	api.PUT("/items/:id", itemHandler.Update)
	api.DELETE("/items/:id", itemHandler.Delete)
	api.POST("/items/:id/sold", itemHandler.MarkSold)

	api.POST("/ads", adHandler.Create)
	api.GET("/ads", adHandler.List)
	api.GET("/ads/:id", adHandler.Get)
	api.PUT("/ads/:id", adHandler.Update)
	api.POST("/ads/:id/publish", adHandler.Publish)
	api.DELETE("/ads/:id", adHandler.Delete)

	api.POST("/uploads", uploadHandler.Upload)
	api.DELETE("/uploads", uploadHandler.Delete)

	api.POST("/export/pdf", exportHandler.ExportPDF)

	api.GET("/company/settings", companyHandler.Get)
	api.PUT("/company/settings", companyHandler.Save)

	return &Server{
		e:           e,
		itemRepo:    itemRepo,
		adRepo:      adRepo,
		companyRepo: companyRepo,
		sha:         sha,
		build:       buildTime,
	}
}

func (s *Server) Start(addr string) error {
	return s.e.Start(addr)
}

func (s *Server) SetDB(db *gorm.DB) {
	s.itemRepo.SetDB(db)
	s.adRepo.SetDB(db)
	s.companyRepo.SetDB(db)
}
