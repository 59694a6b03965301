package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/mugstore/backoffice/internal/core/domain"
	"github.com/mugstore/backoffice/internal/core/ports"
)

const userPageSize = 20

// UserService implements account management and self-service profiles.
type UserService struct {
	repo      ports.UserRepository
	auditRepo ports.AuditRepository
	audit     ports.AuditService
	media     ports.MediaStore
	logger    zerolog.Logger
}

func NewUserService(repo ports.UserRepository, auditRepo ports.AuditRepository, audit ports.AuditService, media ports.MediaStore, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, auditRepo: auditRepo, audit: audit, media: media, logger: logger}
}

// Create registers a new back-office account and audits the creation.
func (s *UserService) Create(ctx context.Context, actor ports.Actor, input ports.CreateUserInput) (*domain.User, error) {
	if !input.Role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidInput, input.Role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:            uuid.NewString(),
		Username:      strings.TrimSpace(input.Username),
		Email:         strings.TrimSpace(strings.ToLower(input.Email)),
		FirstName:     strings.TrimSpace(input.FirstName),
		LastName:      strings.TrimSpace(input.LastName),
		PasswordHash:  string(hash),
		Role:          input.Role,
		Phone:         input.Phone,
		IsActiveAdmin: input.IsActiveAdmin,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, actor, domain.ActionCreate, "User", user.ID, "Created user: "+user.Username)
	s.logger.Info().Str("username", user.Username).Str("role", string(user.Role)).Msg("user created")
	return user, nil
}

// Update applies the admin-editable fields and audits the change.
func (s *UserService) Update(ctx context.Context, actor ports.Actor, id string, input ports.UpdateUserInput) (*domain.User, error) {
	if !input.Role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidInput, input.Role)
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Avatar != nil {
		path, err := s.media.Save(ctx, ports.MediaPrefixAvatars, *input.Avatar)
		if err != nil {
			return nil, err
		}
		user.AvatarPath = path
	}

	user.Username = strings.TrimSpace(input.Username)
	user.Email = strings.TrimSpace(strings.ToLower(input.Email))
	user.FirstName = strings.TrimSpace(input.FirstName)
	user.LastName = strings.TrimSpace(input.LastName)
	user.Role = input.Role
	user.Phone = input.Phone
	user.IsActiveAdmin = input.IsActiveAdmin
	user.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, actor, domain.ActionUpdate, "User", user.ID, "Updated user: "+user.Username)
	return user, nil
}

// Delete hard-deletes the account. The actor's audit entries cascade with it.
func (s *UserService) Delete(ctx context.Context, actor ports.Actor, id string) error {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.auditRepo.DeleteByActor(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("user_id", id).Msg("audit cascade after user delete failed")
	}

	s.audit.Record(ctx, actor, domain.ActionDelete, "User", id, "Deleted user: "+user.Username)
	return nil
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

// List returns a page of accounts, 20 per page, newest first. An empty search
// returns the unfiltered set.
func (s *UserService) List(ctx context.Context, filter ports.ListUsersFilter) (*ports.ListUsersResult, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	filter.Limit = userPageSize
	filter.Search = strings.TrimSpace(filter.Search)

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &ports.ListUsersResult{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages(total, filter.Limit),
	}, nil
}

func (s *UserService) Profile(ctx context.Context, actorID string) (*domain.User, error) {
	return s.repo.FindByID(ctx, actorID)
}

// UpdateProfile applies the self-service fields. Profile edits are not
// audited and can never touch the role.
func (s *UserService) UpdateProfile(ctx context.Context, actor ports.Actor, input ports.UpdateProfileInput) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	if input.Avatar != nil {
		path, err := s.media.Save(ctx, ports.MediaPrefixAvatars, *input.Avatar)
		if err != nil {
			return nil, err
		}
		user.AvatarPath = path
	}

	user.FirstName = strings.TrimSpace(input.FirstName)
	user.LastName = strings.TrimSpace(input.LastName)
	user.Email = strings.TrimSpace(strings.ToLower(input.Email))
	user.Phone = input.Phone
	user.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
