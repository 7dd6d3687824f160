package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/franciscosanchezn/gin-menu-api/internal/menu"
	"github.com/franciscosanchezn/gin-menu-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingStore records calls made to the wrapped store
type countingStore struct {
	MenuService
	lists   int
	deletes int
	writes  []string
	failOn  map[string]error
}

func (s *countingStore) ListItems(ctx context.Context, ownerID uint) ([]models.MenuItem, error) {
	s.lists++
	return s.MenuService.ListItems(ctx, ownerID)
}

func (s *countingStore) DeleteItem(ctx context.Context, ownerID uint, id string) error {
	s.deletes++
	return s.MenuService.DeleteItem(ctx, ownerID, id)
}

func (s *countingStore) SetDisplayOrder(ctx context.Context, ownerID uint, id string, order int) error {
	s.writes = append(s.writes, id)
	if err, ok := s.failOn[id]; ok {
		return err
	}
	return s.MenuService.SetDisplayOrder(ctx, ownerID, id, order)
}

// interleavingStore runs afterList once, after the store read of a ListItems call
type interleavingStore struct {
	MenuService
	afterList func()
}

func (s *interleavingStore) ListItems(ctx context.Context, ownerID uint) ([]models.MenuItem, error) {
	items, err := s.MenuService.ListItems(ctx, ownerID)
	if hook := s.afterList; hook != nil {
		s.afterList = nil
		hook()
	}
	return items, err
}

type dashboardFixture struct {
	store     *countingStore
	dashboard DashboardService
	owner     *models.User
}

func setupDashboard(t *testing.T) dashboardFixture {
	db := setupTestDB(t)
	owner := createOwner(t, db, "owner@example.com")
	store := &countingStore{MenuService: NewMenuService(db)}
	return dashboardFixture{
		store:     store,
		dashboard: NewDashboardService(store, NewUserService(db), time.Minute),
		owner:     owner,
	}
}

// seedMains stores items named by ids with the given display orders in Mains
func (f dashboardFixture) seedMains(t *testing.T, orders map[string]int) map[string]string {
	ctx := context.Background()
	byName := make(map[string]string, len(orders))
	for name, order := range orders {
		created, err := f.store.MenuService.CreateItem(ctx, newItem(f.owner.ID, name, models.CategoryMains))
		require.NoError(t, err)
		require.NoError(t, f.store.MenuService.SetDisplayOrder(ctx, f.owner.ID, created.ID, order))
		byName[name] = created.ID
	}
	return byName
}

func names(items []models.MenuItem) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Name)
	}
	return out
}

func TestLoadMenuGroupsAndSorts(t *testing.T) {
	f := setupDashboard(t)
	f.seedMains(t, map[string]int{"A": 2, "B": 0, "C": 1})
	ctx := context.Background()

	draft := newItem(f.owner.ID, "Draft", models.CategoryMains)
	draft.GeneratedImages = nil
	_, err := f.store.MenuService.CreateItem(ctx, draft)
	require.NoError(t, err)

	view, err := f.dashboard.LoadMenu(ctx, f.owner.ID)

	require.NoError(t, err)
	assert.Equal(t, []string{"B", "C", "A"}, names(view.Items(models.CategoryMains)))
	assert.Equal(t, 3, view.Len(), "items without images are not part of the menu")
}

func TestLoadMenuIsCachedUntilMutation(t *testing.T) {
	f := setupDashboard(t)
	ids := f.seedMains(t, map[string]int{"A": 0, "B": 1})
	ctx := context.Background()

	_, err := f.dashboard.LoadMenu(ctx, f.owner.ID)
	require.NoError(t, err)
	_, err = f.dashboard.LoadMenu(ctx, f.owner.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, f.store.lists)

	require.NoError(t, f.dashboard.DeleteItem(ctx, f.owner.ID, ids["A"], true))

	view, err := f.dashboard.LoadMenu(ctx, f.owner.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, f.store.lists)
	assert.Equal(t, []string{"B"}, names(view.Items(models.CategoryMains)))
}

func TestDeleteItemRequiresConfirmation(t *testing.T) {
	f := setupDashboard(t)
	ids := f.seedMains(t, map[string]int{"A": 0})

	err := f.dashboard.DeleteItem(context.Background(), f.owner.ID, ids["A"], false)

	assert.ErrorIs(t, err, ErrConfirmationRequired)
	assert.Equal(t, 0, f.store.deletes, "the store must not be called before confirmation")
}

func TestDeleteItemStoreRejection(t *testing.T) {
	f := setupDashboard(t)

	err := f.dashboard.DeleteItem(context.Background(), f.owner.ID, "missing", true)

	var deletionErr *menu.DeletionError
	require.ErrorAs(t, err, &deletionErr)
	assert.Equal(t, "missing", deletionErr.ItemID)
	assert.ErrorIs(t, err, menu.ErrItemNotFound)
}

func TestReorderDragToFront(t *testing.T) {
	f := setupDashboard(t)
	ids := f.seedMains(t, map[string]int{"A": 2, "B": 0, "C": 1})
	ctx := context.Background()

	// warm the cache so the reorder has something to invalidate
	_, err := f.dashboard.LoadMenu(ctx, f.owner.ID)
	require.NoError(t, err)

	reordered, err := f.dashboard.Reorder(ctx, f.owner.ID, models.CategoryMains, ids["A"], 0)

	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, names(reordered))
	assert.Len(t, f.store.writes, 3, "every item of the category is persisted")

	view, err := f.dashboard.LoadMenu(ctx, f.owner.ID)
	require.NoError(t, err)
	mains := view.Items(models.CategoryMains)
	assert.Equal(t, []string{"A", "B", "C"}, names(mains))
	for i, item := range mains {
		assert.Equal(t, i, item.DisplayOrder)
	}
}

func TestReorderPartialFailure(t *testing.T) {
	f := setupDashboard(t)
	ids := f.seedMains(t, map[string]int{"A": 0, "B": 1, "C": 2})
	f.store.failOn = map[string]error{ids["B"]: errors.New("write timeout")}
	ctx := context.Background()

	_, err := f.dashboard.Reorder(ctx, f.owner.ID, models.CategoryMains, ids["C"], 0)

	var reorderErr *menu.ReorderError
	require.ErrorAs(t, err, &reorderErr)
	assert.Equal(t, []string{ids["B"]}, reorderErr.FailedIDs())
	assert.Len(t, f.store.writes, 3)

	// no rollback: C and A were written, B kept its old order
	view, err := f.dashboard.LoadMenu(ctx, f.owner.ID)
	require.NoError(t, err)
	orders := map[string]int{}
	for _, item := range view.Items(models.CategoryMains) {
		orders[item.Name] = item.DisplayOrder
	}
	assert.Equal(t, map[string]int{"C": 0, "A": 1, "B": 1}, orders)
}

func TestReorderValidation(t *testing.T) {
	f := setupDashboard(t)
	ids := f.seedMains(t, map[string]int{"A": 0, "B": 1})
	ctx := context.Background()

	_, err := f.dashboard.Reorder(ctx, f.owner.ID, "Brunch", ids["A"], 0)
	assert.ErrorIs(t, err, ErrInvalidCategory)

	_, err = f.dashboard.Reorder(ctx, f.owner.ID, models.CategorySoups, ids["A"], 0)
	assert.ErrorIs(t, err, menu.ErrItemNotInCategory)

	_, err = f.dashboard.Reorder(ctx, f.owner.ID, models.CategoryMains, ids["A"], 5)
	assert.ErrorIs(t, err, menu.ErrTargetOutOfRange)

	assert.Empty(t, f.store.writes)
}

func TestUsageSnapshot(t *testing.T) {
	f := setupDashboard(t)
	f.seedMains(t, map[string]int{"A": 0, "B": 1})
	ctx := context.Background()

	snapshot, err := f.dashboard.Usage(ctx, f.owner.ID)

	require.NoError(t, err)
	assert.Equal(t, models.TierFree, snapshot.Tier)
	assert.Equal(t, "active", snapshot.Status)
	assert.Equal(t, 2, snapshot.DishesUsed)
	assert.Equal(t, 2, snapshot.ImagesUsed)
	assert.Equal(t, 30, snapshot.Limits.DishesPerMonth)
	assert.Equal(t, 28, snapshot.DishesRemaining)

	_, err = f.dashboard.CreateItem(ctx, newItem(f.owner.ID, "C", models.CategorySides))
	require.NoError(t, err)

	snapshot, err = f.dashboard.Usage(ctx, f.owner.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, snapshot.DishesUsed, "usage is invalidated after a mutation")
}

func TestOwnerCacheExpires(t *testing.T) {
	cache := newOwnerCache[int](time.Minute)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }

	cache.SetIfGeneration(1, cache.Generation(1), 10)
	got, ok := cache.Get(1)
	assert.True(t, ok)
	assert.Equal(t, 10, got)

	now = now.Add(2 * time.Minute)
	_, ok = cache.Get(1)
	assert.False(t, ok)
}

func TestLoadMenuDropsFillRacedByMutation(t *testing.T) {
	db := setupTestDB(t)
	owner := createOwner(t, db, "owner@example.com")
	store := &interleavingStore{MenuService: NewMenuService(db)}
	// no TTL: a stale entry would be served forever
	dashboard := NewDashboardService(store, NewUserService(db), 0)
	ctx := context.Background()

	a, err := store.MenuService.CreateItem(ctx, newItem(owner.ID, "A", models.CategoryMains))
	require.NoError(t, err)
	_, err = store.MenuService.CreateItem(ctx, newItem(owner.ID, "B", models.CategoryMains))
	require.NoError(t, err)

	store.afterList = func() {
		require.NoError(t, dashboard.DeleteItem(ctx, owner.ID, a.ID, true))
	}

	view, err := dashboard.LoadMenu(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, names(view.Items(models.CategoryMains)), "the racing load returns what it read")

	view, err = dashboard.LoadMenu(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"B"}, names(view.Items(models.CategoryMains)))
}

func TestOwnerCacheRejectsStaleGeneration(t *testing.T) {
	cache := newOwnerCache[int](0)

	gen := cache.Generation(1)
	cache.Invalidate(1)
	assert.False(t, cache.SetIfGeneration(1, gen, 10))
	_, ok := cache.Get(1)
	assert.False(t, ok)

	assert.True(t, cache.SetIfGeneration(1, cache.Generation(1), 20))
	got, ok := cache.Get(1)
	assert.True(t, ok)
	assert.Equal(t, 20, got)

	// other owners are unaffected
	assert.True(t, cache.SetIfGeneration(2, gen, 30))
}

func TestUsageIgnoresDeletions(t *testing.T) {
	f := setupDashboard(t)
	ids := f.seedMains(t, map[string]int{"A": 0, "B": 1})
	ctx := context.Background()

	require.NoError(t, f.dashboard.DeleteItem(ctx, f.owner.ID, ids["A"], true))

	snapshot, err := f.dashboard.Usage(ctx, f.owner.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, snapshot.DishesUsed)
	assert.Equal(t, 28, snapshot.DishesRemaining)
}
