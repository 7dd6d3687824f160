package auth

import (
	"net/http"

	"github.com/franciscosanchezn/gin-menu-api/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/go-oauth2/oauth2/v4"
	"github.com/sirupsen/logrus"
)

// HandleToken handles the token endpoint for the client credentials grant
// @Summary Token Endpoint
// @Description Obtain an access token for a menu owner's API client using the client credentials grant
// @Tags OAuth2
// @Accept application/x-www-form-urlencoded
// @Produce json
// @Param grant_type formData string true "Grant type: client_credentials"
// @Param client_id formData string true "Client ID"
// @Param client_secret formData string true "Client Secret"
// @Param scope formData string false "Requested scope"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} models.OAuth2Error
// @Failure 401 {object} models.OAuth2Error
// @Router /oauth/token [post]
func (o *OAuthService) HandleToken(c *gin.Context) {
	grantType := c.PostForm("grant_type")

	switch grantType {
	case string(oauth2.ClientCredentials):
		o.handleClientCredentials(c)
	case "":
		c.JSON(http.StatusBadRequest, models.NewOAuth2Error(models.ErrInvalidRequest, "grant_type is required"))
	default:
		c.JSON(http.StatusBadRequest, models.NewOAuth2Error(models.ErrUnsupportedGrantType,
			"only the client_credentials grant is supported"))
	}
}

func (o *OAuthService) handleClientCredentials(c *gin.Context) {
	clientID := c.PostForm("client_id")
	clientSecret := c.PostForm("client_secret")
	if clientID == "" || clientSecret == "" {
		c.JSON(http.StatusBadRequest, models.NewOAuth2Error(models.ErrInvalidRequest, "client_id and client_secret are required"))
		return
	}

	// Validate client
	info, err := o.clients.GetByID(c.Request.Context(), clientID)
	if err != nil {
		log.WithField("client_id", clientID).Warn("Token requested for unknown client")
		c.JSON(http.StatusUnauthorized, models.NewOAuth2Error(models.ErrInvalidClient, "client authentication failed"))
		return
	}
	client := info.(*models.OAuthClient)

	// Verify client secret against the bcrypt hash
	if !client.VerifyPassword(clientSecret) {
		log.WithField("client_id", clientID).Warn("Token requested with invalid client secret")
		c.JSON(http.StatusUnauthorized, models.NewOAuth2Error(models.ErrInvalidClient, "client authentication failed"))
		return
	}

	if client.UserID == 0 {
		c.JSON(http.StatusBadRequest, models.NewOAuth2Error(models.ErrInvalidGrant, "client is not bound to a menu owner"))
		return
	}

	scope := c.PostForm("scope")
	if scope == "" {
		scope = client.Scopes
	}
	if !models.ScopesAllowed(scope, client.Scopes) {
		c.JSON(http.StatusBadRequest, models.NewOAuth2Error(models.ErrInvalidScope, "requested scope exceeds the scope granted to the client"))
		return
	}

	// Generate token using OAuth2 server
	ti, err := o.server.Manager.GenerateAccessToken(c.Request.Context(), oauth2.ClientCredentials, &oauth2.TokenGenerateRequest{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Scope:        scope,
		Request:      c.Request,
	})
	if err != nil {
		log.WithFields(logrus.Fields{
			"client_id": clientID,
			"user_id":   client.UserID,
		}).WithError(err).Error("Token generation failed")
		c.JSON(http.StatusInternalServerError, models.NewOAuth2Error("server_error", "token generation failed"))
		return
	}

	log.WithFields(logrus.Fields{
		"client_id": clientID,
		"user_id":   client.UserID,
	}).Info("Access token issued")

	c.JSON(http.StatusOK, gin.H{
		"access_token": ti.GetAccess(),
		"token_type":   "Bearer",
		"expires_in":   int64(ti.GetAccessExpiresIn().Seconds()),
		"scope":        ti.GetScope(),
	})
}
