package services

import (
	"errors"
	"fmt"

	"backend/models"
	"backend/utils"

	"gorm.io/gorm"
)

var (
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// AuthService handles account registration and login.
type AuthService struct {
	db  *gorm.DB
	jwt *utils.JWTManager
}

func NewAuthService(db *gorm.DB, jwt *utils.JWTManager) *AuthService {
	return &AuthService{db: db, jwt: jwt}
}

// Register creates a new account with a hashed password.
func (s *AuthService) Register(username, password string) error {
	var count int64
	if err := s.db.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return fmt.Errorf("checking username: %w", err)
	}
	if count > 0 {
		return ErrUsernameTaken
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	user := models.User{
		Username:     username,
		PasswordHash: hash,
		Role:         "Admin",
	}
	if err := s.db.Create(&user).Error; err != nil {
		return fmt.Errorf("creating user: %w", err)
	}
	return nil
}

// Login verifies credentials and returns a signed bearer token.
func (s *AuthService) Login(username, password string) (string, error) {
	var user models.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("fetching user: %w", err)
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return "", ErrInvalidCredentials
	}

	token, err := s.jwt.Generate(user.Username, user.Role)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return token, nil
}
