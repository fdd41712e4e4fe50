package service

import (
	"context"
	"fmt"

	"restaurant-service/internal/models"
	"restaurant-service/internal/redisclient"
	"restaurant-service/internal/util"

	"go.uber.org/zap"
)

// menuStore is the slice of the persistence gateway the menu service reads
type menuStore interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error)
	ListMenuItems(ctx context.Context) ([]models.MenuItem, error)
	ListMenuItemsByCategory(ctx context.Context, categoryID int64) ([]models.MenuItem, error)
	GetMenuItem(ctx context.Context, id int64) (*models.MenuItem, error)
}

// MenuService serves the read-heavy catalog: categories and menu items.
// Reads go through Redis when available; cache failures fall back to the
// database so the menu stays reachable without Redis.
type MenuService struct {
	store  menuStore
	cache  *redisclient.Client
	logger *zap.Logger
}

// NewMenuService creates a new menu service. cache may be nil.
func NewMenuService(store menuStore, cache *redisclient.Client) *MenuService {
	return &MenuService{
		store:  store,
		cache:  cache,
		logger: util.GetLogger(),
	}
}

// ListCategories returns all categories in creation order
func (s *MenuService) ListCategories(ctx context.Context) ([]models.Category, error) {
	ctx, span := util.StartSpan(ctx, "MenuService.ListCategories")
	defer span.End()

	var categories []models.Category
	if s.cacheGet(ctx, redisclient.KeyCategories, &categories) {
		return categories, nil
	}

	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	s.cacheSet(ctx, redisclient.KeyCategories, categories)
	return categories, nil
}

// GetCategoryBySlug returns a category composed with its menu items.
// The join happens here so the store stays single-entity-focused.
func (s *MenuService) GetCategoryBySlug(ctx context.Context, slug string) (*models.CategoryWithItems, error) {
	ctx, span := util.StartSpan(ctx, "MenuService.GetCategoryBySlug")
	defer span.End()

	var cached models.CategoryWithItems
	if s.cacheGet(ctx, redisclient.CategoryKey(slug), &cached) {
		return &cached, nil
	}

	category, err := s.store.GetCategoryBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	items, err := s.store.ListMenuItemsByCategory(ctx, category.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list items for category %d: %w", category.ID, err)
	}

	result := &models.CategoryWithItems{Category: *category, Items: items}
	s.cacheSet(ctx, redisclient.CategoryKey(slug), result)
	return result, nil
}

// ListMenuItems returns all menu items ordered by id
func (s *MenuService) ListMenuItems(ctx context.Context) ([]models.MenuItem, error) {
	ctx, span := util.StartSpan(ctx, "MenuService.ListMenuItems")
	defer span.End()

	var items []models.MenuItem
	if s.cacheGet(ctx, redisclient.KeyMenuItems, &items) {
		return items, nil
	}

	items, err := s.store.ListMenuItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list menu items: %w", err)
	}

	s.cacheSet(ctx, redisclient.KeyMenuItems, items)
	return items, nil
}

// GetMenuItem returns one menu item by id
func (s *MenuService) GetMenuItem(ctx context.Context, id int64) (*models.MenuItem, error) {
	ctx, span := util.StartSpan(ctx, "MenuService.GetMenuItem")
	defer span.End()

	var cached models.MenuItem
	if s.cacheGet(ctx, redisclient.MenuItemKey(id), &cached) {
		return &cached, nil
	}

	item, err := s.store.GetMenuItem(ctx, id)
	if err != nil {
		return nil, err
	}

	s.cacheSet(ctx, redisclient.MenuItemKey(id), item)
	return item, nil
}

func (s *MenuService) cacheGet(ctx context.Context, key string, dest interface{}) bool {
	if s.cache == nil {
		return false
	}
	err := s.cache.GetJSON(ctx, key, dest)
	if err == nil {
		util.MenuCacheHitsTotal.Inc()
		return true
	}
	if err != redisclient.ErrCacheMiss {
		s.logger.Warn("Menu cache read failed, falling back to DB",
			zap.String("key", key),
			zap.Error(err))
	}
	util.MenuCacheMissesTotal.Inc()
	return false
}

func (s *MenuService) cacheSet(ctx context.Context, key string, value interface{}) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetJSON(ctx, key, value); err != nil {
		s.logger.Warn("Menu cache write failed",
			zap.String("key", key),
			zap.Error(err))
	}
}
