package ports

import (
	"context"

	"github.com/mugstore/backoffice/internal/core/domain"
)

// CreateUserInput carries all data needed to create an account.
type CreateUserInput struct {
	Username      string
	Email         string
	FirstName     string
	LastName      string
	Password      string
	Role          domain.Role
	Phone         string
	IsActiveAdmin bool
}

// UpdateUserInput carries the admin-editable account fields.
type UpdateUserInput struct {
	Username      string
	Email         string
	FirstName     string
	LastName      string
	Role          domain.Role
	Phone         string
	IsActiveAdmin bool
	Avatar        *Upload // optional; replaces the stored avatar when present
}

// UpdateProfileInput carries the self-service profile fields. The role is
// deliberately absent: nobody escalates themselves through the profile form.
type UpdateProfileInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Avatar    *Upload // optional
}

// ListUsersResult is returned by the user listing.
type ListUsersResult struct {
	Items      []*domain.User
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// UserService defines use-case operations for account management. Mutations
// emit one audit entry each, attributed to the acting user.
type UserService interface {
	Create(ctx context.Context, actor Actor, input CreateUserInput) (*domain.User, error)
	Update(ctx context.Context, actor Actor, id string, input UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, actor Actor, id string) error
	Get(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context, filter ListUsersFilter) (*ListUsersResult, error)

	Profile(ctx context.Context, actorID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, actor Actor, input UpdateProfileInput) (*domain.User, error)
}
