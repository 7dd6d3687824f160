package services

import (
	"context"
	"errors"

	"github.com/franciscosanchezn/gin-menu-api/internal/models"
	"gorm.io/gorm"
)

// ErrClientNotFound is returned when no client matches the id and owner
var ErrClientNotFound = errors.New("client_not_found")

type ClientService interface {
	CreateClient(ctx context.Context, client *models.OAuthClient) error
	GetClientsByUserID(ctx context.Context, userID uint) ([]models.OAuthClient, error)
	GetClientByID(ctx context.Context, id string) (*models.OAuthClient, error)
	DeleteClient(ctx context.Context, clientID string, userID uint) error
}

type clientService struct {
	db *gorm.DB
}

func NewClientService(db *gorm.DB) ClientService {
	return &clientService{db: db}
}

func (s *clientService) CreateClient(ctx context.Context, client *models.OAuthClient) error {
	return s.db.WithContext(ctx).Create(client).Error
}

func (s *clientService) GetClientsByUserID(ctx context.Context, userID uint) ([]models.OAuthClient, error) {
	var clients []models.OAuthClient
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

func (s *clientService) GetClientByID(ctx context.Context, id string) (*models.OAuthClient, error) {
	var client models.OAuthClient
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (s *clientService) DeleteClient(ctx context.Context, clientID string, userID uint) error {
	result := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", clientID, userID).Delete(&models.OAuthClient{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrClientNotFound
	}
	return nil
}
