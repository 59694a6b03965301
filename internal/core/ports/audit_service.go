package ports

import (
	"context"

	"github.com/mugstore/backoffice/internal/core/domain"
)

// ListAuditResult is returned by the audit trail listing.
type ListAuditResult struct {
	Items      []*domain.AuditEntry
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// AuditService writes and reads the audit trail.
//
// Record is fire-and-forget: the audit write is an independent statement from
// the entity write it accompanies, and a failure to record never fails the
// triggering mutation. Implementations log write failures instead of
// returning them.
type AuditService interface {
	Record(ctx context.Context, actor Actor, action domain.AuditAction, modelName, objectID, description string)
	List(ctx context.Context, filter ListAuditFilter) (*ListAuditResult, error)
}
