package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mugstore/backoffice/internal/core/domain"
	"github.com/mugstore/backoffice/internal/core/ports"
)

const auditPageSize = 50

// AuditService appends immutable audit entries and serves the admin trail.
type AuditService struct {
	repo   ports.AuditRepository
	logger zerolog.Logger
}

func NewAuditService(repo ports.AuditRepository, logger zerolog.Logger) *AuditService {
	return &AuditService{repo: repo, logger: logger}
}

// Record appends one entry for the given action. The write is independent of
// whatever mutation triggered it: a failure here is logged and swallowed, the
// mutation's outcome is already decided.
func (s *AuditService) Record(ctx context.Context, actor ports.Actor, action domain.AuditAction, modelName, objectID, description string) {
	entry := &domain.AuditEntry{
		ID:          uuid.NewString(),
		ActorID:     actor.ID,
		Actor:       actor.Username,
		Action:      action,
		ModelName:   modelName,
		ObjectID:    objectID,
		Description: description,
		IPAddress:   actor.IP,
		Timestamp:   time.Now().UTC(),
	}

	if err := s.repo.Insert(ctx, entry); err != nil {
		s.logger.Error().Err(err).
			Str("actor", actor.Username).
			Str("action", string(action)).
			Str("model", modelName).
			Msg("audit entry write failed")
	}
}

// List returns a page of the trail, newest first, 50 entries per page.
func (s *AuditService) List(ctx context.Context, filter ports.ListAuditFilter) (*ports.ListAuditResult, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	filter.Limit = auditPageSize

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &ports.ListAuditResult{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages(total, filter.Limit),
	}, nil
}

// totalPages is shared by every paginated listing.
func totalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	pages := int(total) / limit
	if int(total)%limit != 0 {
		pages++
	}
	return pages
}
