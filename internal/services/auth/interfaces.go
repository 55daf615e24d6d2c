package auth

import (
	"context"

	"github.com/scribeworks/transcriber-api/internal/models"
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *models.User) error

	// GetByEmail retrieves a user by email, returning (nil, nil) when absent
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// GetByID retrieves a user by primary key
	GetByID(ctx context.Context, id uint) (*models.User, error)
}
