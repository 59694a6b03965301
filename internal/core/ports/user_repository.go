package ports

import (
	"context"

	"github.com/mugstore/backoffice/internal/core/domain"
)

// ListUsersFilter carries the query parameters for the user listing.
// Search is a case-insensitive substring matched against username, first
// name, last name and email (OR-combined); empty means no filter.
type ListUsersFilter struct {
	Search string
	Page   int // 1-based
	Limit  int
}

// UserRepository defines persistence operations for back-office accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// List returns a page of users, newest first, and the total count.
	List(ctx context.Context, filter ListUsersFilter) ([]*domain.User, int64, error)
}
