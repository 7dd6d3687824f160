package controllers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/franciscosanchezn/gin-menu-api/internal/models"
	"github.com/franciscosanchezn/gin-menu-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (a *testApp) clientRouter(userID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	controller := NewClientController(services.NewClientService(a.db))

	protected := router.Group("/api/v1/protected", authenticate(userID))
	protected.POST("/clients", controller.CreateClient)
	protected.GET("/clients", controller.ListClients)
	protected.DELETE("/clients/:id", controller.DeleteClient)
	return router
}

func TestClientLifecycle(t *testing.T) {
	app := setupTestApp(t)
	router := app.clientRouter(app.owner.ID)

	w := serve(router, http.MethodPost, "/api/v1/protected/clients", gin.H{"name": "POS integration"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created ClientResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ClientID)
	assert.NotEmpty(t, created.ClientSecret)
	assert.Equal(t, "client_credentials", created.GrantTypes)
	assert.Equal(t, "menu:read menu:write", created.Scopes)

	var stored models.OAuthClient
	require.NoError(t, app.db.First(&stored, "id = ?", created.ClientID).Error)
	assert.True(t, stored.VerifyPassword(created.ClientSecret))
	assert.Equal(t, app.owner.ID, stored.UserID)

	w = serve(router, http.MethodGet, "/api/v1/protected/clients", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listed []ClientResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.Empty(t, listed[0].ClientSecret, "secrets are only returned on creation")

	w = serve(router, http.MethodDelete, "/api/v1/protected/clients/"+created.ClientID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = serve(router, http.MethodDelete, "/api/v1/protected/clients/"+created.ClientID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateClientRequiresName(t *testing.T) {
	app := setupTestApp(t)
	router := app.clientRouter(app.owner.ID)

	w := serve(router, http.MethodPost, "/api/v1/protected/clients", gin.H{"domain": "https://pos.example.com"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateClientScopes(t *testing.T) {
	app := setupTestApp(t)
	router := app.clientRouter(app.owner.ID)

	w := serve(router, http.MethodPost, "/api/v1/protected/clients", gin.H{"name": "Display board", "scopes": "  menu:read "})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created ClientResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "menu:read", created.Scopes)

	w = serve(router, http.MethodPost, "/api/v1/protected/clients", gin.H{"name": "Rogue", "scopes": "menu:read billing:write"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, models.ErrValidationFailed, decodeAPIError(t, w).Code)
}
