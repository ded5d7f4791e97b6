package handler

import (
	"net/http"

	"github.com/boxmate/backend/internal/model"
	"github.com/boxmate/backend/internal/service"
	"github.com/labstack/echo/v4"
)

type CompanyHandler struct {
	svc service.CompanyService
}

func NewCompanyHandler(svc service.CompanyService) *CompanyHandler {
	return &CompanyHandler{svc: svc}
}

type CompanySettingsPayload struct {
	CompanyDescription string `json:"companyDescription"`

	CompanyName   string `json:"companyName"`
	OrgNumber     string `json:"orgNumber"`
	StreetAddress string `json:"streetAddress"`
	PostalCode    string `json:"postalCode"`
	City          string `json:"city"`

	InfoPhone    string `json:"infoPhone"`
	InfoEmail    string `json:"infoEmail"`
	SalesPhone   string `json:"salesPhone"`
	SalesEmail   string `json:"salesEmail"`
	SupportPhone string `json:"supportPhone"`
	SupportEmail string `json:"supportEmail"`

	BillingCompanyName string `json:"billingCompanyName"`
	BillingOrgNumber   string `json:"billingOrgNumber"`
	BillingEmail       string `json:"billingEmail"`
}

func (h *CompanyHandler) Get(c echo.Context) error {
	settings, err := h.svc.Get(c.Request().Context())
	if err != nil {
		return serviceError(c, err)
	}
	if settings == nil {
		return c.JSON(http.StatusOK, CompanySettingsPayload{})
	}
	return c.JSON(http.StatusOK, toCompanyPayload(settings))
}

func (h *CompanyHandler) Save(c echo.Context) error {
	var req CompanySettingsPayload
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	settings, err := h.svc.Save(c.Request().Context(), service.CompanyInput{
		CompanyDescription: req.CompanyDescription,
		CompanyName:        req.CompanyName,
		OrgNumber:          req.OrgNumber,
		StreetAddress:      req.StreetAddress,
		PostalCode:         req.PostalCode,
		City:               req.City,
		InfoPhone:          req.InfoPhone,
		InfoEmail:          req.InfoEmail,
		SalesPhone:         req.SalesPhone,
		SalesEmail:         req.SalesEmail,
		SupportPhone:       req.SupportPhone,
		SupportEmail:       req.SupportEmail,
		BillingCompanyName: req.BillingCompanyName,
		BillingOrgNumber:   req.BillingOrgNumber,
		BillingEmail:       req.BillingEmail,
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, toCompanyPayload(settings))
}

func toCompanyPayload(s *model.CompanySettings) CompanySettingsPayload {
	return CompanySettingsPayload{
		CompanyDescription: s.CompanyDescription,
		CompanyName:        s.CompanyName,
		OrgNumber:          s.OrgNumber,
		StreetAddress:      s.StreetAddress,
		PostalCode:         s.PostalCode,
		City:               s.City,
		InfoPhone:          s.InfoPhone,
		InfoEmail:          s.InfoEmail,
		SalesPhone:         s.SalesPhone,
		SalesEmail:         s.SalesEmail,
		SupportPhone:       s.SupportPhone,
		SupportEmail:       s.SupportEmail,
		BillingCompanyName: s.BillingCompanyName,
		BillingOrgNumber:   s.BillingOrgNumber,
		BillingEmail:       s.BillingEmail,
	}
}
