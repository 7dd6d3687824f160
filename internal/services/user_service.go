package services

import (
	"context"
	"errors"

	"github.com/franciscosanchezn/gin-menu-api/internal/models"
	"gorm.io/gorm"
)

// ErrUserExists is returned when an account with the same email is already registered
var ErrUserExists = errors.New("user_already_exists")

type UserService interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
}

type userService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) UserService {
	return &userService{db: db}
}

func (s *userService) CreateUser(ctx context.Context, user *models.User) error {
	var existing models.User
	if err := s.db.WithContext(ctx).Where("email = ?", user.Email).First(&existing).Error; err == nil {
		return ErrUserExists
	}
	if user.Role == "" {
		user.Role = "user"
	}
	if user.Tier == "" {
		user.Tier = models.TierFree
	}
	if user.SubscriptionStatus == "" {
		user.SubscriptionStatus = "active"
	}

	return s.db.WithContext(ctx).Create(user).Error
}

func (s *userService) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *userService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
