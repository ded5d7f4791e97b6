package service

import (
	"context"
	"errors"

	"github.com/boxmate/backend/internal/model"
	"github.com/boxmate/backend/internal/repository"
	"gorm.io/gorm"
)

// DefaultUserID stands in for the authenticated user until a login system
// exists; the application is single-tenant in practice.
const DefaultUserID = "00000000-0000-0000-0000-000000000000"

// CompanyInput carries the organization settings form.
type CompanyInput struct {
	CompanyDescription string

	CompanyName   string
	OrgNumber     string
	StreetAddress string
	PostalCode    string
	City          string

	InfoPhone    string
	InfoEmail    string
	SalesPhone   string
	SalesEmail   string
	SupportPhone string
	SupportEmail string

	BillingCompanyName string
	BillingOrgNumber   string
	BillingEmail       string
}

type CompanyService interface {
	// Get returns the current settings, or nil when none were saved yet.
	Get(ctx context.Context) (*model.CompanySettings, error)
	// Save upserts the settings row for the current user.
	Save(ctx context.Context, in CompanyInput) (*model.CompanySettings, error)
}

type companyService struct {
	repo repository.CompanyRepository
}

func NewCompanyService(repo repository.CompanyRepository) CompanyService {
	return &companyService{repo: repo}
}

func (s *companyService) Get(ctx context.Context) (*model.CompanySettings, error) {
	settings, err := s.repo.FindByUser(ctx, DefaultUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return settings, nil
}

func (s *companyService) Save(ctx context.Context, in CompanyInput) (*model.CompanySettings, error) {
	settings, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		settings = &model.CompanySettings{UserID: DefaultUserID}
	}

	settings.CompanyDescription = in.CompanyDescription
	settings.CompanyName = in.CompanyName
	settings.OrgNumber = in.OrgNumber
	settings.StreetAddress = in.StreetAddress
	settings.PostalCode = in.PostalCode
	settings.City = in.City
	settings.InfoPhone = in.InfoPhone
	settings.InfoEmail = in.InfoEmail
	settings.SalesPhone = in.SalesPhone
	settings.SalesEmail = in.SalesEmail
	settings.SupportPhone = in.SupportPhone
	settings.SupportEmail = in.SupportEmail
	settings.BillingCompanyName = in.BillingCompanyName
	settings.BillingOrgNumber = in.BillingOrgNumber
	settings.BillingEmail = in.BillingEmail

	if settings.ID == "" {
		if err := s.repo.Create(ctx, settings); err != nil {
			return nil, err
		}
		return settings, nil
	}
	if err := s.repo.Save(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}
