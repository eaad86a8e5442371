package db

import (
	"github.com/shopspring/decimal"

	"github.com/artisell/artisell-backend/internal/app/model"
	"github.com/artisell/artisell-backend/pkg/logger"
)

// Migrate runs database migrations
func Migrate() error {
	logger.Info("Running database migrations...")

	models := []interface{}{
		&model.User{},
		&model.Product{},
		&model.ProductImage{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.Favorite{},
	}

	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	if err := seedInitialData(); err != nil {
		logger.Error("Failed to seed initial data during migration", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// Seed adds initial data to the database
func Seed() error {
	return seedInitialData()
}

// seedInitialData loads the starter catalog when the products table is empty.
func seedInitialData() error {
	var count int64
	if err := DB.Model(&model.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logger.Debug("Products already seeded, skipping", map[string]interface{}{
			"count": count,
		})
		return nil
	}

	logger.Info("Seeding initial artwork catalog...")

	sampleImages := []string{
		"https://images.unsplash.com/photo-1579783902614-a3fb3927b6a5?ixlib=rb-4.0.3&auto=format&fit=crop&w=1200&q=80",
		"https://images.unsplash.com/photo-1552083375-1447ce886485?ixlib=rb-4.0.3&auto=format&fit=crop&w=1200&q=80",
		"https://images.unsplash.com/photo-1518982380512-5cb02dedd6a0?ixlib=rb-4.0.3&auto=format&fit=crop&w=1200&q=80",
	}

	products := []model.Product{
		{
			Title:       "Vibrant Filipino Landscape",
			Artist:      "Maria Santos",
			Price:       decimal.NewFromInt(12500),
			Description: "A vibrant depiction of rural life in the Philippines, showcasing the lush landscapes and traditional farming methods. This artwork captures the essence of Filipino countryside with its rich colors and detailed brushwork.",
			Region:      "Visayas",
			Medium:      "Oil on Canvas",
			Dimensions:  "24 x 36 inches",
			Year:        2023,
			IsFeatured:  true,
		},
		{
			Title:       "Urban Manila",
			Artist:      "Juan Dela Cruz",
			Price:       decimal.NewFromInt(18500),
			Description: "A modern interpretation of Manila's urban landscape, blending traditional Filipino elements with contemporary city life.",
			Region:      "Luzon",
			Medium:      "Acrylic on Canvas",
			Dimensions:  "30 x 40 inches",
			Year:        2022,
			IsFeatured:  true,
		},
		{
			Title:       "Coastal Dreams",
			Artist:      "Ana Reyes",
			Price:       decimal.NewFromInt(12000),
			Description: "A serene portrayal of the beautiful coastal regions of Mindanao, capturing the tranquility of island life.",
			Region:      "Mindanao",
			Medium:      "Watercolor",
			Dimensions:  "18 x 24 inches",
			Year:        2023,
			IsFeatured:  true,
		},
		{
			Title:       "Manila Bay Sunset",
			Artist:      "Juan Reyes",
			Price:       decimal.NewFromInt(9800),
			Description: "A stunning sunset view over Manila Bay, showcasing the vibrant colors and reflections on the water.",
			Region:      "Luzon",
			Medium:      "Oil on Canvas",
			Dimensions:  "20 x 30 inches",
			Year:        2021,
		},
		{
			Title:       "Tribal Patterns",
			Artist:      "Ana Diaz",
			Price:       decimal.NewFromInt(15000),
			Description: "An abstract representation of traditional Filipino tribal patterns, celebrating the rich cultural heritage.",
			Region:      "Mindanao",
			Medium:      "Mixed Media",
			Dimensions:  "24 x 24 inches",
			Year:        2022,
		},
		{
			Title:       "Banaue Rice Terraces",
			Artist:      "Miguel Cruz",
			Price:       decimal.NewFromInt(18500),
			Description: "A detailed landscape painting of the famous Banaue Rice Terraces, showcasing this UNESCO World Heritage site.",
			Region:      "Luzon",
			Medium:      "Oil on Canvas",
			Dimensions:  "36 x 48 inches",
			Year:        2020,
		},
		{
			Title:       "Tarsier Portrait",
			Artist:      "Elena Gomez",
			Price:       decimal.NewFromInt(7500),
			Description: "A detailed portrait of the Philippine Tarsier, one of the smallest primates in the world and native to the Philippines.",
			Region:      "Visayas",
			Medium:      "Colored Pencil",
			Dimensions:  "16 x 20 inches",
			Year:        2023,
		},
		{
			Title:       "Mayon Volcano",
			Artist:      "Rafael Mendoza",
			Price:       decimal.NewFromInt(14200),
			Description: "A majestic view of the perfect cone-shaped Mayon Volcano in Albay, captured during sunset.",
			Region:      "Luzon",
			Medium:      "Acrylic on Canvas",
			Dimensions:  "24 x 36 inches",
			Year:        2021,
		},
	}

	for i := range products {
		products[i].InStock = true
		for j, url := range sampleImages {
			products[i].Images = append(products[i].Images, model.ProductImage{
				ImageURL:  url,
				IsPrimary: j == 0,
			})
		}
	}

	if err := DB.Create(&products).Error; err != nil {
		return err
	}

	logger.Info("Artwork catalog seeded", map[string]interface{}{
		"count": len(products),
	})
	return nil
}
