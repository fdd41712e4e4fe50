// Package seed loads the initial menu. It runs once at startup, before the
// server starts listening, and only when the category table is empty.
package seed

import (
	"context"
	"fmt"

	"restaurant-service/internal/models"
	"restaurant-service/internal/util"

	"go.uber.org/zap"
)

type seedStore interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	CreateCategory(ctx context.Context, input *models.InsertCategory) (*models.Category, error)
	CreateMenuItem(ctx context.Context, input *models.InsertMenuItem) (*models.MenuItem, error)
}

type category struct {
	models.InsertCategory
	items []models.InsertMenuItem
}

// Run seeds the menu when the store is empty. Returns true when data was
// written, so the caller knows to invalidate caches. Safe to call on every
// start: a non-empty category table makes it a no-op.
func Run(ctx context.Context, store seedStore) (bool, error) {
	logger := util.GetLogger()

	existing, err := store.ListCategories(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check existing categories: %w", err)
	}
	if len(existing) > 0 {
		logger.Info("Seed skipped, categories already present", zap.Int("count", len(existing)))
		return false, nil
	}

	logger.Info("Seeding database")

	for _, cat := range menu() {
		created, err := store.CreateCategory(ctx, &cat.InsertCategory)
		if err != nil {
			return false, fmt.Errorf("failed to seed category %q: %w", cat.Slug, err)
		}

		for _, item := range cat.items {
			item.CategoryID = created.ID
			if _, err := store.CreateMenuItem(ctx, &item); err != nil {
				return false, fmt.Errorf("failed to seed item %q: %w", item.Name, err)
			}
		}
	}

	logger.Info("Database seeded")
	return true, nil
}

// menu is the launch menu. Prices are in paise.
func menu() []category {
	return []category{
		{
			InsertCategory: models.InsertCategory{
				Name:     "Starters",
				Slug:     "starters",
				ImageURL: "https://images.unsplash.com/photo-1541529086526-db283c563270?auto=format&fit=crop&q=80&w=800",
			},
			items: []models.InsertMenuItem{
				{
					Name:        "Paneer Tikka Angare",
					Description: "Spiced cottage cheese cubes marinated in yogurt and grilled in a tandoor.",
					Price:       35000,
					ImageURL:    "https://images.unsplash.com/photo-1599487488170-d11ec9c172f0?auto=format&fit=crop&q=80&w=800",
					IsAvailable: true,
				},
				{
					Name:        "Hara Bhara Kabab",
					Description: "Delicate spinach and green pea patties stuffed with nuts and shallow fried.",
					Price:       28000,
					ImageURL:    "https://images.unsplash.com/photo-1626777553732-48993aba2d7e?auto=format&fit=crop&q=80&w=800",
					IsAvailable: true,
				},
				{
					Name:        "Chicken Malai Tikka",
					Description: "Succulent chicken chunks marinated in cream, cheese, and mild spices.",
					Price:       45000,
					ImageURL:    "https://images.unsplash.com/photo-1626074353765-517a681e40be?auto=format&fit=crop&q=80&w=800",
					IsAvailable: true,
				},
			},
		},
		{
			InsertCategory: models.InsertCategory{
				Name:     "Mains",
				Slug:     "mains",
				ImageURL: "https://images.unsplash.com/photo-1544025162-d76690b6d029?auto=format&fit=crop&q=80&w=800",
			},
			items: []models.InsertMenuItem{
				{
					Name:        "Dal Makhani Lumière",
					Description: "Slow-cooked black lentils with cream and butter, our signature recipe.",
					Price:       42500,
					ImageURL:    "https://images.unsplash.com/photo-1546833999-b9f581a1996d?auto=format&fit=crop&q=80&w=800",
					IsAvailable: true,
				},
				{
					Name:        "Butter Chicken",
					Description: "Tender chicken cooked in a rich, creamy tomato gravy with aromatic spices.",
					Price:       55000,
					ImageURL:    "https://images.unsplash.com/photo-1603894584134-f139f4007994?auto=format&fit=crop&q=80&w=800",
					IsAvailable: true,
				},
				{
					Name:        "Mutton Rogan Josh",
					Description: "Traditional Kashmiri slow-cooked lamb in a spicy red gravy.",
					Price:       65000,
					ImageURL:    "https://images.unsplash.com/photo-1631452180519-c014fe946bc7?auto=format&fit=crop&q=80&w=800",
					IsAvailable: true,
				},
				{
					Name:        "Paneer Butter Masala",
					Description: "Cottage cheese cubes in a rich and creamy tomato-based sauce.",
					Price:       48000,
					ImageURL:    "https://images.unsplash.com/photo-1631452180539-96ad4d304b4d?auto=format&fit=crop&q=80&w=800",
					IsAvailable: true,
				},
			},
		},
		{
			InsertCategory: models.InsertCategory{
				Name:     "Desserts",
				Slug:     "desserts",
				ImageURL: "https://images.unsplash.com/photo-1563729784474-d77dbb933a9e?auto=format&fit=crop&q=80&w=800",
			},
			items: []models.InsertMenuItem{
				{
					Name:        "Gulab Jamun with Rabri",
					Description: "Warm milk dumplings soaked in sugar syrup, served with creamy thickened milk.",
					Price:       25000,
					ImageURL:    "https://images.unsplash.com/photo-1589119908995-c6800ffca83c?auto=format&fit=crop&q=80&w=800",
					IsAvailable: true,
				},
				{
					Name:        "Kesar Pista Kulfi",
					Description: "Traditional Indian frozen dessert flavored with saffron and pistachios.",
					Price:       22000,
					ImageURL:    "https://images.unsplash.com/photo-1600353429815-46f414e21626?auto=format&fit=crop&q=80&w=800",
					IsAvailable: true,
				},
			},
		},
		{
			InsertCategory: models.InsertCategory{
				Name:     "Drinks",
				Slug:     "drinks",
				ImageURL: "https://images.unsplash.com/photo-1544145945-f90425340c7e?auto=format&fit=crop&q=80&w=800",
			},
			items: []models.InsertMenuItem{
				{
					Name:        "Mango Lassi",
					Description: "A thick and creamy yogurt-based drink with fresh mango pulp.",
					Price:       18000,
					ImageURL:    "https://images.unsplash.com/photo-1546173159-315724a31696?auto=format&fit=crop&q=80&w=800",
					IsAvailable: true,
				},
				{
					Name:        "Masala Chai",
					Description: "Traditional Indian tea brewed with aromatic spices and milk.",
					Price:       12000,
					ImageURL:    "https://images.unsplash.com/photo-1561336313-0bd5e0b27ec8?auto=format&fit=crop&q=80&w=800",
					IsAvailable: true,
				},
			},
		},
	}
}
