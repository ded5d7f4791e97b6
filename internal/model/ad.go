package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	AdStatusDraft     = "draft"
	AdStatusPublished = "published"
)

// Ad is a publishable listing derived from an Item. Fields are a snapshot
// taken at creation time; ItemID is a traceability back-link only.
type Ad struct {
	ID          string `gorm:"primaryKey;size:36"`
	Name        string `gorm:"size:120;not null"`
	Lagerplats  string `gorm:"size:120;not null"`
	Description string `gorm:"type:text"`
	Value       *float64
	PhotoURL    *string `gorm:"column:photo_url;size:512"`
	Photos      *string `gorm:"type:text"`
	Category    string  `gorm:"size:32;not null"`
	Subcategory *string `gorm:"size:32"`
	Condition   string  `gorm:"size:32;not null"`
	Status      string  `gorm:"size:16;not null;default:draft"`
	ItemID      *string   `gorm:"column:item_id;size:36;index:idx_ads_item_id"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
	PublishedAt *time.Time
}

func (Ad) TableName() string {
	return "ads"
}

func (a *Ad) BeforeCreate(*gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

func (a *Ad) PhotoList() []string {
	return DecodePhotos(a.Photos)
}
