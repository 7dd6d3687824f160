package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/franciscosanchezn/gin-menu-api/internal/models"
	"github.com/franciscosanchezn/gin-menu-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ClientController lets an owner manage the OAuth2 clients that act on their menu
type ClientController struct {
	clientService services.ClientService
}

func NewClientController(clientService services.ClientService) *ClientController {
	return &ClientController{clientService: clientService}
}

// CreateClientRequest is the payload for registering an API client
type CreateClientRequest struct {
	Name   string `json:"name" binding:"required"`
	Domain string `json:"domain"`
	Scopes string `json:"scopes"`
}

// ClientResponse describes a registered client; the secret is only present on creation
type ClientResponse struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret,omitempty"`
	Name         string `json:"name"`
	Domain       string `json:"domain,omitempty"`
	Scopes       string `json:"scopes"`
	GrantTypes   string `json:"grant_types"`
}

func toClientResponse(client models.OAuthClient) ClientResponse {
	return ClientResponse{
		ClientID:   client.ID,
		Name:       client.Name,
		Domain:     client.Domain,
		Scopes:     client.Scopes,
		GrantTypes: client.GrantTypes,
	}
}

// CreateClient godoc
// @Summary Create OAuth2 client
// @Description Create a new client_credentials client acting on the authenticated owner's menu
// @Tags OAuth2 Clients
// @Accept json
// @Produce json
// @Param client body CreateClientRequest true "Client details"
// @Success 201 {object} ClientResponse "Client created with client_id and client_secret"
// @Failure 400 {object} models.APIError "Invalid request"
// @Failure 500 {object} models.APIError "Client creation failed"
// @Security BearerAuth
// @Router /api/v1/protected/clients [post]
func (cc *ClientController) CreateClient(c *gin.Context) {
	userID, ok := currentOwner(c)
	if !ok {
		return
	}

	var req CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, models.ErrValidationFailed, err.Error())
		return
	}

	scopes := strings.Join(models.ParseScopes(req.Scopes), " ")
	if scopes == "" {
		scopes = models.DefaultClientScopes
	}
	if !models.ValidScopes(scopes) {
		respondError(c, http.StatusBadRequest, models.ErrValidationFailed, "Unknown scope requested",
			map[string]interface{}{"allowed": []string{models.ScopeMenuRead, models.ScopeMenuWrite}})
		return
	}

	// Generate client secret
	secret := uuid.New().String()
	hashedSecret, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		respondError(c, http.StatusInternalServerError, models.ErrInternalServer, "Secret generation failed")
		return
	}

	client := &models.OAuthClient{
		ID:         uuid.New().String(),
		Secret:     string(hashedSecret),
		Name:       req.Name,
		Domain:     req.Domain,
		Scopes:     scopes,
		GrantTypes: "client_credentials",
		UserID:     userID,
	}

	if err := cc.clientService.CreateClient(c.Request.Context(), client); err != nil {
		log.WithError(err).WithField("owner_id", userID).Error("Client creation failed")
		respondError(c, http.StatusInternalServerError, models.ErrInternalServer, "Client creation failed")
		return
	}

	response := toClientResponse(*client)
	response.ClientSecret = secret // Return plain secret only once
	c.JSON(http.StatusCreated, response)
}

// ListClients godoc
// @Summary List OAuth2 clients
// @Description Get all OAuth2 clients owned by the authenticated user
// @Tags OAuth2 Clients
// @Produce json
// @Success 200 {array} ClientResponse "List of clients"
// @Failure 500 {object} models.APIError "Failed to retrieve clients"
// @Security BearerAuth
// @Router /api/v1/protected/clients [get]
func (cc *ClientController) ListClients(c *gin.Context) {
	userID, ok := currentOwner(c)
	if !ok {
		return
	}

	clients, err := cc.clientService.GetClientsByUserID(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response := make([]ClientResponse, 0, len(clients))
	for _, client := range clients {
		response = append(response, toClientResponse(client))
	}
	c.JSON(http.StatusOK, response)
}

// DeleteClient godoc
// @Summary Delete OAuth2 client
// @Description Delete an OAuth2 client owned by the authenticated user
// @Tags OAuth2 Clients
// @Produce json
// @Param id path string true "Client ID"
// @Success 204 "Client deleted successfully"
// @Failure 404 {object} models.APIError "Client not found"
// @Security BearerAuth
// @Router /api/v1/protected/clients/{id} [delete]
func (cc *ClientController) DeleteClient(c *gin.Context) {
	userID, ok := currentOwner(c)
	if !ok {
		return
	}

	err := cc.clientService.DeleteClient(c.Request.Context(), c.Param("id"), userID)
	if errors.Is(err, services.ErrClientNotFound) {
		respondError(c, http.StatusNotFound, models.ErrNotFound, "Client not found")
		return
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
