package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CompanySettings holds per-user organization settings. One row per user,
// upserted on save.
type CompanySettings struct {
	ID     string `gorm:"primaryKey;size:36"`
	UserID string `gorm:"column:user_id;size:36;not null;uniqueIndex:uk_company_settings_user_id"`

	CompanyDescription string `gorm:"type:text"`

	CompanyName   string `gorm:"size:120"`
	OrgNumber     string `gorm:"size:32"`
	StreetAddress string `gorm:"size:255"`
	PostalCode    string `gorm:"size:16"`
	City          string `gorm:"size:120"`

	InfoPhone    string `gorm:"size:32"`
	InfoEmail    string `gorm:"size:255"`
	SalesPhone   string `gorm:"size:32"`
	SalesEmail   string `gorm:"size:255"`
	SupportPhone string `gorm:"size:32"`
	SupportEmail string `gorm:"size:255"`

	BillingCompanyName string `gorm:"size:120"`
	BillingOrgNumber   string `gorm:"size:32"`
	BillingEmail       string `gorm:"size:255"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (CompanySettings) TableName() string {
	return "company_settings"
}

func (c *CompanySettings) BeforeCreate(*gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
