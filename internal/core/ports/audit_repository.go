package ports

import (
	"context"

	"github.com/mugstore/backoffice/internal/core/domain"
)

// ListAuditFilter carries the query parameters for the audit trail listing.
type ListAuditFilter struct {
	Page  int // 1-based
	Limit int
}

// AuditRepository persists audit entries. Entries are append-only; the only
// delete path is the actor cascade.
type AuditRepository interface {
	Insert(ctx context.Context, entry *domain.AuditEntry) error
	// List returns a page of entries, newest first, and the total count.
	List(ctx context.Context, filter ListAuditFilter) ([]*domain.AuditEntry, int64, error)
	// DeleteByActor removes all entries belonging to a deleted actor.
	DeleteByActor(ctx context.Context, actorID string) error
}
