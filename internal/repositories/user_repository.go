package repositories

import "tamaravastra/internal/models"

// UserRepository defines the interface for operator account data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByUsername(username string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByID(id string) (*models.User, error)
	Count() (int, error)
}
