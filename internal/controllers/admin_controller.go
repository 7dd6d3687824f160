package controllers

import (
	"net/http"

	"github.com/franciscosanchezn/gin-menu-api/internal/services"
	"github.com/gin-gonic/gin"
)

// AdminController serves maintenance endpoints restricted to administrators
type AdminController struct {
	store services.MenuService
}

func NewAdminController(store services.MenuService) *AdminController {
	return &AdminController{store: store}
}

// PlaceholderFinding is an item that still references placeholder images
type PlaceholderFinding struct {
	OwnerID uint     `json:"ownerId"`
	ItemID  string   `json:"itemId"`
	Name    string   `json:"name"`
	URLs    []string `json:"urls"`
}

// AuditPlaceholders godoc
// @Summary Audit placeholder images
// @Description List the items of every owner that still reference placeholder images
// @Tags admin
// @Produce json
// @Success 200 {array} PlaceholderFinding
// @Failure 403 {object} map[string]interface{}
// @Security BearerAuth
// @Router /api/v1/protected/admin/placeholders [get]
func (ac *AdminController) AuditPlaceholders(c *gin.Context) {
	items, err := ac.store.FindPlaceholderImages(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	findings := make([]PlaceholderFinding, 0, len(items))
	for _, item := range items {
		findings = append(findings, PlaceholderFinding{
			OwnerID: item.OwnerID,
			ItemID:  item.ID,
			Name:    item.Name,
			URLs:    services.PlaceholderURLs(item),
		})
	}
	c.JSON(http.StatusOK, findings)
}
