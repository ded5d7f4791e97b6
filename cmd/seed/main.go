// Seeds a handful of sample items for local development. Existing rows with
// the same name are left alone, so the tool is safe to run repeatedly.
package main

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/boxmate/backend/internal/config"
	"github.com/boxmate/backend/internal/db"
	"github.com/boxmate/backend/internal/model"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	conn, err := db.Connect(cfg)
	if err != nil {
		log.Fatalf("db connect error: %v", err)
	}
	if err := conn.AutoMigrate(&model.Item{}, &model.Ad{}, &model.CompanySettings{}); err != nil {
		log.Fatalf("auto migrate error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	value := func(v float64) *float64 { return &v }
	sub := model.SubcategoryComputersGaming

	samples := []model.Item{
		{
			Name:        "Nintendo Switch Lite",
			Lagerplats:  "Stockholm",
			Lokal:       "Lokal A",
			Hyllplats:   "Hyll A1",
			Description: "Sparsamt använd, laddare ingår.",
			Value:       value(1500),
			Category:    model.CategoryElectronics,
			Subcategory: &sub,
			Condition:   model.ConditionExcellent,
			Status:      model.ItemStatusActive,
		},
		{
			Name:       "Kontorsstol",
			Lagerplats: "Göteborg",
			Lokal:      "Lokal B",
			Value:      value(400),
			Category:   model.CategoryBusiness,
			Condition:  model.ConditionGood,
			Status:     model.ItemStatusActive,
		},
		{
			Name:        "Borrmaskin",
			Lagerplats:  "Stockholm",
			Description: "Fungerar men batteriet håller dåligt.",
			Value:       value(250),
			Category:    model.CategoryOther,
			Condition:   model.ConditionFair,
			Status:      model.ItemStatusActive,
		},
	}

	for _, sample := range samples {
		var existing model.Item
		err := conn.WithContext(ctx).Where("name = ?", sample.Name).First(&existing).Error
		if err == nil {
			log.Printf("skip %q, already seeded", sample.Name)
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Fatalf("lookup %q: %v", sample.Name, err)
		}
		if err := conn.WithContext(ctx).Create(&sample).Error; err != nil {
			log.Fatalf("seed %q: %v", sample.Name, err)
		}
		log.Printf("seeded %q", sample.Name)
	}

	log.Println("seed completed")
}
