package controllers

import (
	"net/http"
	"strconv"

	"github.com/franciscosanchezn/gin-menu-api/internal/menu"
	"github.com/franciscosanchezn/gin-menu-api/internal/models"
	"github.com/franciscosanchezn/gin-menu-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// MenuController handles HTTP requests related to menu items and the grouped menu
type MenuController interface {
	// ListItems retrieves every item of the authenticated owner
	ListItems(c *gin.Context)
	// GetItem retrieves a single item by its ID
	GetItem(c *gin.Context)
	// CreateItem creates a new item at the end of its category
	CreateItem(c *gin.Context)
	// UpdateItem partially updates an item
	UpdateItem(c *gin.Context)
	// DeleteItem deletes an item once confirmed
	DeleteItem(c *gin.Context)
	// GetMenu retrieves the grouped menu of finalized items
	GetMenu(c *gin.Context)
	// ReorderCategory moves an item within its category
	ReorderCategory(c *gin.Context)
	// GetUsage retrieves the monthly usage and tier limits
	GetUsage(c *gin.Context)
	// GetPublicMenu retrieves the read-only menu linked from the QR code
	GetPublicMenu(c *gin.Context)
}

type menuController struct {
	store     services.MenuService
	dashboard services.DashboardService
}

// NewMenuController creates a new instance of MenuController
func NewMenuController(store services.MenuService, dashboard services.DashboardService) MenuController {
	return &menuController{store: store, dashboard: dashboard}
}

// CreateItemRequest is the payload accepted when storing a dish
type CreateItemRequest struct {
	Name            string                 `json:"name" binding:"required"`
	Price           *decimal.Decimal       `json:"price" swaggertype:"string"`
	Description     string                 `json:"description"`
	Category        models.Category        `json:"category"`
	DietaryInfo     []models.DietaryOption `json:"dietaryInfo"`
	GeneratedImages []string               `json:"generatedImages"`
}

// ReorderRequest is the payload of a drag and drop inside a category
type ReorderRequest struct {
	ItemID      string `json:"itemId" binding:"required"`
	TargetIndex *int   `json:"targetIndex" binding:"required"`
}

// ReorderResponse lists the category in its new order
type ReorderResponse struct {
	Category models.Category   `json:"category"`
	Items    []models.MenuItem `json:"items"`
}

// ListItems godoc
// @Summary List menu items
// @Description Get every menu item of the authenticated owner, including items without images
// @Tags items
// @Produce json
// @Success 200 {array} models.MenuItem
// @Failure 401 {object} models.APIError
// @Failure 500 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/protected/items [get]
func (c *menuController) ListItems(ctx *gin.Context) {
	ownerID, ok := currentOwner(ctx)
	if !ok {
		return
	}

	items, err := c.store.ListItems(ctx.Request.Context(), ownerID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, items)
}

// GetItem godoc
// @Summary Get menu item by ID
// @Description Get a single menu item of the authenticated owner
// @Tags items
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {object} models.MenuItem
// @Failure 401 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/protected/items/{id} [get]
func (c *menuController) GetItem(ctx *gin.Context) {
	ownerID, ok := currentOwner(ctx)
	if !ok {
		return
	}

	item, err := c.store.GetItem(ctx.Request.Context(), ownerID, ctx.Param("id"))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, item)
}

// CreateItem godoc
// @Summary Create a menu item
// @Description Store a dish at the end of its category. Unknown categories are filed under Mains.
// @Tags items
// @Accept json
// @Produce json
// @Param item body CreateItemRequest true "Menu item"
// @Success 201 {object} models.MenuItem
// @Failure 400 {object} models.APIError
// @Failure 401 {object} models.APIError
// @Failure 500 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/protected/items [post]
func (c *menuController) CreateItem(ctx *gin.Context) {
	ownerID, ok := currentOwner(ctx)
	if !ok {
		return
	}

	var req CreateItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, http.StatusBadRequest, models.ErrValidationFailed, err.Error())
		return
	}

	item := models.MenuItem{
		OwnerID:         ownerID,
		Name:            req.Name,
		Description:     req.Description,
		Category:        req.Category,
		DietaryInfo:     req.DietaryInfo,
		GeneratedImages: req.GeneratedImages,
	}
	if req.Price != nil {
		item.Price = decimal.NewNullDecimal(*req.Price)
	}

	created, err := c.dashboard.CreateItem(ctx.Request.Context(), item)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, created)
}

// UpdateItem godoc
// @Summary Update a menu item
// @Description Partially update a menu item. Only the fields present in the body change.
// @Tags items
// @Accept json
// @Produce json
// @Param id path string true "Item ID"
// @Param patch body models.ItemPatch true "Fields to change"
// @Success 200 {object} models.MenuItem
// @Failure 400 {object} models.APIError
// @Failure 401 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/protected/items/{id} [patch]
func (c *menuController) UpdateItem(ctx *gin.Context) {
	ownerID, ok := currentOwner(ctx)
	if !ok {
		return
	}

	var patch models.ItemPatch
	if err := ctx.ShouldBindJSON(&patch); err != nil {
		respondError(ctx, http.StatusBadRequest, models.ErrValidationFailed, err.Error())
		return
	}
	if patch.Empty() {
		respondError(ctx, http.StatusBadRequest, models.ErrValidationFailed, "The patch does not change any field")
		return
	}
	if patch.Category != nil && !patch.Category.Valid() {
		respondServiceError(ctx, services.ErrInvalidCategory)
		return
	}

	updated, err := c.dashboard.UpdateItem(ctx.Request.Context(), ownerID, ctx.Param("id"), patch)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, updated)
}

// DeleteItem godoc
// @Summary Delete a menu item
// @Description Delete a menu item. The deletion must be confirmed with confirm=true.
// @Tags items
// @Produce json
// @Param id path string true "Item ID"
// @Param confirm query bool true "Confirms the deletion"
// @Success 204 "Item deleted"
// @Failure 401 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Failure 428 {object} models.APIError
// @Failure 500 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/protected/items/{id} [delete]
func (c *menuController) DeleteItem(ctx *gin.Context) {
	ownerID, ok := currentOwner(ctx)
	if !ok {
		return
	}

	confirmed, _ := strconv.ParseBool(ctx.Query("confirm"))
	if err := c.dashboard.DeleteItem(ctx.Request.Context(), ownerID, ctx.Param("id"), confirmed); err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// GetMenu godoc
// @Summary Get the grouped menu
// @Description Get the finalized items of the authenticated owner grouped by category in menu order
// @Tags menu
// @Produce json
// @Success 200 {object} map[string][]models.MenuItem
// @Failure 401 {object} models.APIError
// @Failure 500 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/protected/menu [get]
func (c *menuController) GetMenu(ctx *gin.Context) {
	ownerID, ok := currentOwner(ctx)
	if !ok {
		return
	}

	view, err := c.dashboard.LoadMenu(ctx.Request.Context(), ownerID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, view)
}

// ReorderCategory godoc
// @Summary Reorder a category
// @Description Move an item to a new position inside its category and persist the order of the whole category
// @Tags menu
// @Accept json
// @Produce json
// @Param category path string true "Category" Enums(Appetizers, Soups, Salads, Mains, Sides, Desserts, Beverages)
// @Param move body ReorderRequest true "Item and target position"
// @Success 200 {object} ReorderResponse
// @Failure 400 {object} models.APIError
// @Failure 401 {object} models.APIError
// @Failure 502 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/protected/menu/categories/{category}/reorder [post]
func (c *menuController) ReorderCategory(ctx *gin.Context) {
	ownerID, ok := currentOwner(ctx)
	if !ok {
		return
	}

	var req ReorderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, http.StatusBadRequest, models.ErrReorderInvalidRequest, err.Error())
		return
	}

	category := models.Category(ctx.Param("category"))
	items, err := c.dashboard.Reorder(ctx.Request.Context(), ownerID, category, req.ItemID, *req.TargetIndex)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	log.WithFields(logrus.Fields{
		"owner_id": ownerID,
		"category": category,
		"item_id":  req.ItemID,
		"target":   *req.TargetIndex,
	}).Info("Category reordered")
	ctx.JSON(http.StatusOK, ReorderResponse{Category: category, Items: items})
}

// GetUsage godoc
// @Summary Get monthly usage
// @Description Get the dishes and images created this month with the limits of the owner's tier
// @Tags menu
// @Produce json
// @Success 200 {object} models.UsageSnapshot
// @Failure 401 {object} models.APIError
// @Failure 500 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/protected/usage [get]
func (c *menuController) GetUsage(ctx *gin.Context) {
	ownerID, ok := currentOwner(ctx)
	if !ok {
		return
	}

	snapshot, err := c.dashboard.Usage(ctx.Request.Context(), ownerID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, snapshot)
}

// GetPublicMenu godoc
// @Summary Get a public menu
// @Description Get the read-only grouped menu of a restaurant, the page the QR code links to
// @Tags menu
// @Produce json
// @Param userId path int true "Owner ID"
// @Success 200 {object} map[string][]models.MenuItem
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Router /api/v1/public/menus/{userId} [get]
func (c *menuController) GetPublicMenu(ctx *gin.Context) {
	ownerID, err := strconv.ParseUint(ctx.Param("userId"), 10, 32)
	if err != nil || ownerID == 0 {
		respondError(ctx, http.StatusBadRequest, models.ErrBadRequest, "Invalid user ID format")
		return
	}

	view, err := c.dashboard.LoadMenu(ctx.Request.Context(), uint(ownerID))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	if view.Empty() {
		respondError(ctx, http.StatusNotFound, models.ErrNotFound, "Menu not found")
		return
	}
	ctx.JSON(http.StatusOK, publicView(view))
}

// publicView hides owner bookkeeping from the public menu
func publicView(view menu.View) menu.View {
	public := menu.View{Sections: make([]menu.Section, 0, len(view.Sections))}
	for _, section := range view.Sections {
		items := make([]models.MenuItem, len(section.Items))
		for i, item := range section.Items {
			item.OwnerID = 0
			items[i] = item
		}
		public.Sections = append(public.Sections, menu.Section{Category: section.Category, Items: items})
	}
	return public
}
