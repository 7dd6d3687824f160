package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/franciscosanchezn/gin-menu-api/internal/menu"
	"github.com/franciscosanchezn/gin-menu-api/internal/models"
	"github.com/sirupsen/logrus"
)

var (
	// ErrConfirmationRequired is returned when a destructive call was not confirmed by the user
	ErrConfirmationRequired = errors.New("deletion must be confirmed")
	// ErrInvalidCategory is returned when a category outside the canonical set is named
	ErrInvalidCategory = errors.New("invalid category")
)

// DashboardService derives the grouped menu of an owner and dispatches mutations back to the store.
// Derived views are cached per owner and dropped after every mutation.
type DashboardService interface {
	// LoadMenu returns the finalized, grouped and ordered menu of an owner
	LoadMenu(ctx context.Context, ownerID uint) (menu.View, error)
	// Usage returns the dish and image usage of the current month with the tier limits
	Usage(ctx context.Context, ownerID uint) (models.UsageSnapshot, error)
	// CreateItem stores a new item and invalidates the owner's cached data
	CreateItem(ctx context.Context, item models.MenuItem) (models.MenuItem, error)
	// UpdateItem patches an item and invalidates the owner's cached data
	UpdateItem(ctx context.Context, ownerID uint, id string, patch models.ItemPatch) (models.MenuItem, error)
	// DeleteItem deletes a confirmed item; store rejections are returned as *menu.DeletionError
	DeleteItem(ctx context.Context, ownerID uint, id string, confirmed bool) error
	// Reorder moves an item within its category and persists the new order of the whole category
	Reorder(ctx context.Context, ownerID uint, category models.Category, itemID string, targetIndex int) ([]models.MenuItem, error)
	// Invalidate drops the cached menu and usage of an owner
	Invalidate(ownerID uint)
}

type dashboardService struct {
	now   Clock
	store MenuService
	users UserService
	menus *ownerCache[menu.View]
	usage *ownerCache[models.UsageSnapshot]
}

// Clock returns the current time
type Clock func() time.Time

// NewDashboardService creates a dashboard over the given store; cached entries live for ttl
func NewDashboardService(store MenuService, users UserService, ttl time.Duration) DashboardService {
	return &dashboardService{
		now:   time.Now,
		store: store,
		users: users,
		menus: newOwnerCache[menu.View](ttl),
		usage: newOwnerCache[models.UsageSnapshot](ttl),
	}
}

func (s *dashboardService) LoadMenu(ctx context.Context, ownerID uint) (menu.View, error) {
	if view, ok := s.menus.Get(ownerID); ok {
		return view, nil
	}

	gen := s.menus.Generation(ownerID)
	items, err := s.store.ListItems(ctx, ownerID)
	if err != nil {
		return menu.View{}, err
	}
	view := menu.BuildView(items)
	cached := s.menus.SetIfGeneration(ownerID, gen, view)

	log.WithFields(logrus.Fields{
		"owner_id":   ownerID,
		"fetched":    len(items),
		"finalized":  view.Len(),
		"categories": len(view.Sections),
		"cached":     cached,
	}).Debug("Menu view rebuilt")
	return view, nil
}

func (s *dashboardService) Usage(ctx context.Context, ownerID uint) (models.UsageSnapshot, error) {
	if snapshot, ok := s.usage.Get(ownerID); ok {
		return snapshot, nil
	}

	gen := s.usage.Generation(ownerID)
	user, err := s.users.GetUserByID(ctx, ownerID)
	if err != nil {
		return models.UsageSnapshot{}, fmt.Errorf("load owner %d: %w", ownerID, err)
	}

	now := s.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	totals, err := s.store.UsageSince(ctx, ownerID, monthStart)
	if err != nil {
		return models.UsageSnapshot{}, err
	}

	limits := models.LimitsForTier(user.Tier)
	snapshot := models.UsageSnapshot{
		Tier:       user.Tier,
		Status:     user.SubscriptionStatus,
		DishesUsed: totals.Dishes,
		ImagesUsed: totals.Images,
		Limits:     limits,
	}
	snapshot.DishesRemaining = max(limits.DishesPerMonth-snapshot.DishesUsed, 0)

	s.usage.SetIfGeneration(ownerID, gen, snapshot)
	return snapshot, nil
}

func (s *dashboardService) CreateItem(ctx context.Context, item models.MenuItem) (models.MenuItem, error) {
	created, err := s.store.CreateItem(ctx, item)
	if err != nil {
		return models.MenuItem{}, err
	}
	s.Invalidate(item.OwnerID)
	return created, nil
}

func (s *dashboardService) UpdateItem(ctx context.Context, ownerID uint, id string, patch models.ItemPatch) (models.MenuItem, error) {
	updated, err := s.store.UpdateItem(ctx, ownerID, id, patch)
	if err != nil {
		return models.MenuItem{}, err
	}
	s.Invalidate(ownerID)
	return updated, nil
}

func (s *dashboardService) DeleteItem(ctx context.Context, ownerID uint, id string, confirmed bool) error {
	if !confirmed {
		return ErrConfirmationRequired
	}

	if err := s.store.DeleteItem(ctx, ownerID, id); err != nil {
		log.WithFields(logrus.Fields{
			"owner_id": ownerID,
			"item_id":  id,
		}).WithError(err).Warn("Menu store rejected deletion")
		return &menu.DeletionError{ItemID: id, Err: err}
	}

	s.Invalidate(ownerID)
	log.WithFields(logrus.Fields{
		"owner_id": ownerID,
		"item_id":  id,
	}).Info("Menu item deleted")
	return nil
}

func (s *dashboardService) Reorder(ctx context.Context, ownerID uint, category models.Category, itemID string, targetIndex int) ([]models.MenuItem, error) {
	if !category.Valid() {
		return nil, ErrInvalidCategory
	}

	// Reorder against the authoritative order, not a possibly stale cached view
	items, err := s.store.ListItems(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	current := menu.BuildView(items).Items(category)

	writer := menu.OrderWriterFunc(func(ctx context.Context, id string, order int) error {
		return s.store.SetDisplayOrder(ctx, ownerID, id, order)
	})
	reordered, err := menu.Reorder(ctx, writer, category, current, itemID, targetIndex)
	if reordered != nil {
		// Partial writes may have landed; the next load must re-read the store
		s.Invalidate(ownerID)
	}
	return reordered, err
}

func (s *dashboardService) Invalidate(ownerID uint) {
	s.menus.Invalidate(ownerID)
	s.usage.Invalidate(ownerID)
}
