package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/franciscosanchezn/gin-menu-api/internal/menu"
	"github.com/franciscosanchezn/gin-menu-api/internal/models"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// PlaceholderImageHost marks stock placeholder images that were stored instead of a generated photo
const PlaceholderImageHost = "via.placeholder.com"

// MenuService provides methods to interact with the menu item store
type MenuService interface {
	// ListItems retrieves all items of an owner, finalized or not
	ListItems(ctx context.Context, ownerID uint) ([]models.MenuItem, error)
	// GetItem retrieves a single item of an owner
	GetItem(ctx context.Context, ownerID uint, id string) (models.MenuItem, error)
	// CreateItem stores a new item at the end of its category
	CreateItem(ctx context.Context, item models.MenuItem) (models.MenuItem, error)
	// UpdateItem applies a partial update to an item
	UpdateItem(ctx context.Context, ownerID uint, id string, patch models.ItemPatch) (models.MenuItem, error)
	// SetDisplayOrder persists the display order of a single item
	SetDisplayOrder(ctx context.Context, ownerID uint, id string, order int) error
	// DeleteItem removes an item
	DeleteItem(ctx context.Context, ownerID uint, id string) error
	// UsageSince sums the dishes and images an owner created at or after since, deleted items included
	UsageSince(ctx context.Context, ownerID uint, since time.Time) (models.UsageTotals, error)
	// FindPlaceholderImages retrieves the items of every owner that reference placeholder images
	FindPlaceholderImages(ctx context.Context) ([]models.MenuItem, error)
	// StripPlaceholderImages removes placeholder image references from an item
	StripPlaceholderImages(ctx context.Context, item models.MenuItem) (models.MenuItem, error)
}

// menuService is the gorm implementation of MenuService
type menuService struct {
	db *gorm.DB
}

// NewMenuService creates a new instance of MenuService
func NewMenuService(db *gorm.DB) MenuService {
	return &menuService{db: db}
}

func (s *menuService) ListItems(ctx context.Context, ownerID uint) ([]models.MenuItem, error) {
	var items []models.MenuItem
	err := s.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("display_order ASC").Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("list menu items: %w", err)
	}
	return items, nil
}

func (s *menuService) GetItem(ctx context.Context, ownerID uint, id string) (models.MenuItem, error) {
	var item models.MenuItem
	err := s.db.WithContext(ctx).Where("id = ? AND owner_id = ?", id, ownerID).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.MenuItem{}, menu.ErrItemNotFound
	}
	if err != nil {
		return models.MenuItem{}, fmt.Errorf("get menu item %s: %w", id, err)
	}
	return item, nil
}

func (s *menuService) CreateItem(ctx context.Context, item models.MenuItem) (models.MenuItem, error) {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	item.Category = item.Category.Normalize()
	item.DietaryInfo = models.NormalizeDietary(item.DietaryInfo)
	if item.GeneratedImages == nil {
		item.GeneratedImages = []string{}
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		last, err := lastDisplayOrder(tx, item.OwnerID, item.Category)
		if err != nil {
			return err
		}
		item.DisplayOrder = last + 1
		if err := tx.Create(&item).Error; err != nil {
			return err
		}
		return tx.Create(&models.UsageRecord{
			OwnerID:   item.OwnerID,
			ItemID:    item.ID,
			Dishes:    1,
			Images:    len(item.GeneratedImages),
			CreatedAt: item.CreatedAt,
		}).Error
	})
	if err != nil {
		return models.MenuItem{}, fmt.Errorf("create menu item: %w", err)
	}

	log.WithFields(logrus.Fields{
		"item_id":  item.ID,
		"owner_id": item.OwnerID,
		"category": item.Category,
		"order":    item.DisplayOrder,
	}).Info("Menu item created")
	return item, nil
}

func (s *menuService) UpdateItem(ctx context.Context, ownerID uint, id string, patch models.ItemPatch) (models.MenuItem, error) {
	var item models.MenuItem
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("id = ? AND owner_id = ?", id, ownerID).First(&item).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return menu.ErrItemNotFound
		}
		if err != nil {
			return err
		}

		previous := item
		applyPatch(&item, patch)

		// A moved item goes to the end of its new category unless the patch places it
		if item.Category != previous.Category && patch.DisplayOrder == nil {
			last, err := lastDisplayOrder(tx, ownerID, item.Category)
			if err != nil {
				return err
			}
			item.DisplayOrder = last + 1
		}

		if err := tx.Save(&item).Error; err != nil {
			return err
		}
		if added := len(item.GeneratedImages) - len(previous.GeneratedImages); added > 0 {
			return tx.Create(&models.UsageRecord{OwnerID: ownerID, ItemID: id, Images: added}).Error
		}
		return nil
	})
	if errors.Is(err, menu.ErrItemNotFound) {
		return models.MenuItem{}, err
	}
	if err != nil {
		return models.MenuItem{}, fmt.Errorf("update menu item %s: %w", id, err)
	}
	return item, nil
}

// lastDisplayOrder returns the highest display order in a category, or -1 when it is empty
func lastDisplayOrder(tx *gorm.DB, ownerID uint, category models.Category) (int, error) {
	var last int
	err := tx.Model(&models.MenuItem{}).
		Where("owner_id = ? AND category = ?", ownerID, category).
		Select("COALESCE(MAX(display_order), -1)").
		Scan(&last).Error
	return last, err
}

func applyPatch(item *models.MenuItem, patch models.ItemPatch) {
	if patch.Name != nil {
		item.Name = *patch.Name
	}
	if patch.ClearPrice {
		item.Price.Valid = false
	} else if patch.Price != nil {
		item.Price.Decimal = *patch.Price
		item.Price.Valid = true
	}
	if patch.Description != nil {
		item.Description = *patch.Description
	}
	if patch.Category != nil {
		item.Category = patch.Category.Normalize()
	}
	if patch.DietaryInfo != nil {
		item.DietaryInfo = models.NormalizeDietary(*patch.DietaryInfo)
	}
	if patch.GeneratedImages != nil {
		item.GeneratedImages = append([]string{}, *patch.GeneratedImages...)
	}
	if patch.DisplayOrder != nil {
		item.DisplayOrder = *patch.DisplayOrder
	}
}

func (s *menuService) SetDisplayOrder(ctx context.Context, ownerID uint, id string, order int) error {
	result := s.db.WithContext(ctx).Model(&models.MenuItem{}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Update("display_order", order)
	if result.Error != nil {
		return fmt.Errorf("set display order of %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return menu.ErrItemNotFound
	}
	return nil
}

func (s *menuService) DeleteItem(ctx context.Context, ownerID uint, id string) error {
	result := s.db.WithContext(ctx).Where("id = ? AND owner_id = ?", id, ownerID).Delete(&models.MenuItem{})
	if result.Error != nil {
		return fmt.Errorf("delete menu item %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return menu.ErrItemNotFound
	}
	return nil
}

func (s *menuService) UsageSince(ctx context.Context, ownerID uint, since time.Time) (models.UsageTotals, error) {
	var totals models.UsageTotals
	err := s.db.WithContext(ctx).Model(&models.UsageRecord{}).
		Select("COALESCE(SUM(dishes), 0) AS dishes, COALESCE(SUM(images), 0) AS images").
		Where("owner_id = ? AND created_at >= ?", ownerID, since).
		Scan(&totals).Error
	if err != nil {
		return models.UsageTotals{}, fmt.Errorf("sum usage since %s: %w", since.Format(time.RFC3339), err)
	}
	return totals, nil
}

func (s *menuService) FindPlaceholderImages(ctx context.Context) ([]models.MenuItem, error) {
	var candidates []models.MenuItem
	err := s.db.WithContext(ctx).
		Where("generated_images LIKE ?", "%"+PlaceholderImageHost+"%").
		Order("owner_id ASC").Order("created_at ASC").
		Find(&candidates).Error
	if err != nil {
		return nil, fmt.Errorf("find placeholder images: %w", err)
	}

	// LIKE runs over the serialized column; confirm against the decoded URLs
	items := candidates[:0]
	for _, item := range candidates {
		if len(PlaceholderURLs(item)) > 0 {
			items = append(items, item)
		}
	}
	return items, nil
}

func (s *menuService) StripPlaceholderImages(ctx context.Context, item models.MenuItem) (models.MenuItem, error) {
	kept := make([]string, 0, len(item.GeneratedImages))
	for _, image := range item.GeneratedImages {
		if !isPlaceholder(image) {
			kept = append(kept, image)
		}
	}
	if len(kept) == len(item.GeneratedImages) {
		return item, nil
	}
	return s.UpdateItem(ctx, item.OwnerID, item.ID, models.ItemPatch{GeneratedImages: &kept})
}

// PlaceholderURLs returns the placeholder image references of item
func PlaceholderURLs(item models.MenuItem) []string {
	var urls []string
	for _, image := range item.GeneratedImages {
		if isPlaceholder(image) {
			urls = append(urls, image)
		}
	}
	return urls
}

func isPlaceholder(image string) bool {
	return strings.Contains(image, PlaceholderImageHost)
}
