package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	CategoryBusiness    = "business"
	CategoryElectronics = "electronics"
	CategoryOther       = "other"
)

const (
	SubcategoryComputersGaming   = "computers-gaming"
	SubcategoryAudioVideo        = "audio-video"
	SubcategoryPhonesAccessories = "phones-accessories"
)

const (
	ConditionNew       = "new"
	ConditionExcellent = "excellent"
	ConditionGood      = "good"
	ConditionFair      = "fair"
	ConditionBroken    = "broken"
)

const (
	ItemStatusActive = "active"
	ItemStatusSold   = "sold"
)

// Item is a catalogued physical object. Photos holds the full ordered photo
// URL list as a JSON-encoded array; PhotoURL mirrors the first entry for
// legacy single-photo consumers.
type Item struct {
	ID          string `gorm:"primaryKey;size:36"`
	Name        string `gorm:"size:120;not null"`
	Lagerplats  string `gorm:"size:120;not null"`
	Lokal       string `gorm:"size:120"`
	Hyllplats   string `gorm:"size:120"`
	Description string `gorm:"type:text"`
	Value       *float64
	PhotoURL    *string `gorm:"column:photo_url;size:512"`
	Photos      *string `gorm:"type:text"`
	Category    string  `gorm:"size:32;not null"`
	Subcategory *string `gorm:"size:32"`
	Condition   string  `gorm:"size:32;not null"`
	Status      string  `gorm:"size:16;not null;default:active"`
	SoldAt      *time.Time
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (Item) TableName() string {
	return "items"
}

func (i *Item) BeforeCreate(*gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

// PhotoList returns the decoded photo URL list, empty when none are stored.
func (i *Item) PhotoList() []string {
	return DecodePhotos(i.Photos)
}

func ValidCategory(c string) bool {
	switch c {
	case CategoryBusiness, CategoryElectronics, CategoryOther:
		return true
	}
	return false
}

func ValidSubcategory(s string) bool {
	switch s {
	case SubcategoryComputersGaming, SubcategoryAudioVideo, SubcategoryPhonesAccessories:
		return true
	}
	return false
}

func ValidCondition(c string) bool {
	switch c {
	case ConditionNew, ConditionExcellent, ConditionGood, ConditionFair, ConditionBroken:
		return true
	}
	return false
}
