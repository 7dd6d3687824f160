package controllers

import (
	"errors"
	"net/http"

	"github.com/franciscosanchezn/gin-menu-api/internal/export"
	"github.com/franciscosanchezn/gin-menu-api/internal/menu"
	"github.com/franciscosanchezn/gin-menu-api/internal/middleware"
	"github.com/franciscosanchezn/gin-menu-api/internal/models"
	"github.com/franciscosanchezn/gin-menu-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.InfoLevel)
}

// SetLogLevel adjusts the verbosity of the controllers logger
func SetLogLevel(level logrus.Level) {
	log.SetLevel(level)
}

func respondError(ctx *gin.Context, status int, code, message string, details ...map[string]interface{}) {
	ctx.AbortWithStatusJSON(status, models.NewAPIError(code, message, details...))
}

// currentOwner returns the authenticated owner or responds 401
func currentOwner(ctx *gin.Context) (uint, bool) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		respondError(ctx, http.StatusUnauthorized, models.ErrNotAuthenticated, "A signed in user is required")
		return 0, false
	}
	return userID, true
}

// respondServiceError maps domain errors to API errors
func respondServiceError(ctx *gin.Context, err error) {
	var deletionErr *menu.DeletionError
	var reorderErr *menu.ReorderError
	var qrErr *export.QREncodingError

	switch {
	case errors.Is(err, services.ErrConfirmationRequired):
		respondError(ctx, http.StatusPreconditionRequired, models.ErrConfirmationRequired,
			"Deleting a menu item must be confirmed with confirm=true")
	case errors.As(err, &deletionErr):
		status := http.StatusInternalServerError
		if errors.Is(err, menu.ErrItemNotFound) {
			status = http.StatusNotFound
		}
		respondError(ctx, status, models.ErrDeletionFailed, deletionErr.Error(),
			map[string]interface{}{"itemId": deletionErr.ItemID})
	case errors.As(err, &reorderErr):
		respondError(ctx, http.StatusBadGateway, models.ErrReorderFailed, reorderErr.Error(),
			map[string]interface{}{"category": reorderErr.Category, "failedItemIds": reorderErr.FailedIDs()})
	case errors.Is(err, menu.ErrItemNotFound):
		respondError(ctx, http.StatusNotFound, models.ErrItemNotFound, "Menu item not found")
	case errors.Is(err, services.ErrInvalidCategory):
		respondError(ctx, http.StatusBadRequest, models.ErrInvalidCategory, "Unknown menu category",
			map[string]interface{}{"allowed": models.CanonicalCategories})
	case errors.Is(err, menu.ErrItemNotInCategory), errors.Is(err, menu.ErrTargetOutOfRange):
		respondError(ctx, http.StatusBadRequest, models.ErrReorderInvalidRequest, err.Error())
	case errors.Is(err, export.ErrNotAuthenticated):
		respondError(ctx, http.StatusUnauthorized, models.ErrNotAuthenticated, "A signed in user is required")
	case errors.Is(err, export.ErrEmptyMenu):
		respondError(ctx, http.StatusUnprocessableEntity, models.ErrEmptyMenu, "The menu has no finalized items to export")
	case errors.Is(err, export.ErrRenderFailed):
		log.WithError(err).Error("Menu PDF rendering failed")
		respondError(ctx, http.StatusInternalServerError, models.ErrPDFRenderFailed, "The menu PDF could not be rendered")
	case errors.As(err, &qrErr):
		respondError(ctx, http.StatusInternalServerError, models.ErrQREncodingFailed, qrErr.Error())
	default:
		log.WithError(err).WithField("path", ctx.FullPath()).Error("Request failed")
		respondError(ctx, http.StatusInternalServerError, models.ErrInternalServer, "Internal server error")
	}
}
