package seed

import (
	"context"
	"testing"

	"restaurant-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	categories []models.Category
	items      []models.MenuItem
	nextID     int64
}

func (s *fakeStore) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.categories, nil
}

func (s *fakeStore) CreateCategory(ctx context.Context, input *models.InsertCategory) (*models.Category, error) {
	s.nextID++
	c := models.Category{ID: s.nextID, Name: input.Name, Slug: input.Slug, ImageURL: input.ImageURL}
	s.categories = append(s.categories, c)
	return &c, nil
}

func (s *fakeStore) CreateMenuItem(ctx context.Context, input *models.InsertMenuItem) (*models.MenuItem, error) {
	s.nextID++
	i := models.MenuItem{
		ID:          s.nextID,
		CategoryID:  input.CategoryID,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		ImageURL:    input.ImageURL,
		IsAvailable: input.IsAvailable,
	}
	s.items = append(s.items, i)
	return &i, nil
}

func TestSeedPopulatesEmptyStore(t *testing.T) {
	db := &fakeStore{}

	seeded, err := Run(context.Background(), db)
	require.NoError(t, err)
	assert.True(t, seeded)

	assert.Len(t, db.categories, 4)
	assert.Len(t, db.items, 11)

	slugs := map[string]int64{}
	for _, c := range db.categories {
		slugs[c.Slug] = c.ID
	}
	assert.Contains(t, slugs, "starters")
	assert.Contains(t, slugs, "mains")
	assert.Contains(t, slugs, "desserts")
	assert.Contains(t, slugs, "drinks")

	// Every item lands in the category it was declared under
	for _, item := range db.items {
		assert.NotZero(t, item.CategoryID)
		assert.True(t, item.IsAvailable)
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	db := &fakeStore{}

	seeded, err := Run(context.Background(), db)
	require.NoError(t, err)
	require.True(t, seeded)

	seeded, err = Run(context.Background(), db)
	require.NoError(t, err)
	assert.False(t, seeded)
	assert.Len(t, db.categories, 4)
	assert.Len(t, db.items, 11)
}
