package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"restaurant-service/internal/models"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

//go:embed schema.sql
var schema string

// ErrNotFound is returned when the referenced row does not exist
var ErrNotFound = errors.New("not found")

type Store struct {
	db *sqlx.DB
}

// NewStore creates a new database store
func NewStore(databaseURL string) (*Store, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{db: db}, nil
}

// Migrate applies the embedded schema (CREATE TABLE IF NOT EXISTS only)
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// ListCategories retrieves all categories in creation order
func (s *Store) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories := []models.Category{}
	err := s.db.SelectContext(ctx, &categories, "SELECT * FROM categories ORDER BY id ASC")
	return categories, err
}

// GetCategoryBySlug retrieves a category by its unique slug.
// The lookup is exact and case-sensitive.
func (s *Store) GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var category models.Category
	err := s.db.GetContext(ctx, &category, "SELECT * FROM categories WHERE slug = $1", slug)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// CreateCategory creates a new category (seed loader only)
func (s *Store) CreateCategory(ctx context.Context, input *models.InsertCategory) (*models.Category, error) {
	var category models.Category
	err := s.db.GetContext(ctx, &category, `
		INSERT INTO categories (name, slug, image_url)
		VALUES ($1, $2, $3)
		RETURNING *`,
		input.Name, input.Slug, input.ImageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return &category, nil
}

// ListMenuItems retrieves all menu items ordered by id
func (s *Store) ListMenuItems(ctx context.Context) ([]models.MenuItem, error) {
	items := []models.MenuItem{}
	err := s.db.SelectContext(ctx, &items, "SELECT * FROM menu_items ORDER BY id ASC")
	return items, err
}

// ListMenuItemsByCategory retrieves the items of one category ordered by id
func (s *Store) ListMenuItemsByCategory(ctx context.Context, categoryID int64) ([]models.MenuItem, error) {
	items := []models.MenuItem{}
	err := s.db.SelectContext(ctx, &items,
		"SELECT * FROM menu_items WHERE category_id = $1 ORDER BY id ASC", categoryID)
	return items, err
}

// GetMenuItem retrieves a menu item by ID
func (s *Store) GetMenuItem(ctx context.Context, id int64) (*models.MenuItem, error) {
	var item models.MenuItem
	err := s.db.GetContext(ctx, &item, "SELECT * FROM menu_items WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// CreateMenuItem creates a new menu item (seed loader only)
func (s *Store) CreateMenuItem(ctx context.Context, input *models.InsertMenuItem) (*models.MenuItem, error) {
	var item models.MenuItem
	err := s.db.GetContext(ctx, &item, `
		INSERT INTO menu_items (category_id, name, description, price, image_url, is_available)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING *`,
		input.CategoryID, input.Name, input.Description, input.Price, input.ImageURL, input.IsAvailable)
	if err != nil {
		return nil, fmt.Errorf("failed to create menu item: %w", err)
	}
	return &item, nil
}
