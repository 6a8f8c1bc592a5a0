package services

import (
	"fmt"

	"inkwell/app/models"
	"inkwell/app/repositories"
)

// UserService handles business logic for authoring accounts.
type UserService struct {
	repo repositories.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(repo repositories.UserRepository) *UserService {
	return &UserService{repo: repo}
}

// CreateUser hashes the password and stores the user.
func (s *UserService) CreateUser(username, password string) (*models.User, error) {
	user := &models.User{Username: username}
	if err := user.SetPassword(password); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := user.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := s.repo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetUser retrieves a user by id.
func (s *UserService) GetUser(id int) (*models.User, error) {
	return s.repo.GetByID(id)
}

// GetUserByUsername retrieves a user by username.
func (s *UserService) GetUserByUsername(username string) (*models.User, error) {
	return s.repo.GetByUsername(username)
}
