package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/userboard/userboard/internal/domain/entity"
)

var (
	// ErrNotFound is returned when no user matches the given identifier.
	ErrNotFound = errors.New("user not found")
	// ErrDuplicateEmail is returned when a write violates the unique email index.
	ErrDuplicateEmail = errors.New("email already exists")
)

// UserRepository defines the interface for user-related store operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	List(ctx context.Context) ([]entity.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}
