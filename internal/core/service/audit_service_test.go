package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/mugstore/backoffice/internal/core/domain"
	"github.com/mugstore/backoffice/internal/core/ports"
)

func TestAuditService_Record(t *testing.T) {
	repo := &stubAuditRepo{}
	svc := NewAuditService(repo, zerolog.Nop())

	actor := ports.Actor{ID: "u1", Username: "root", Role: domain.RoleAdmin, IP: "10.1.1.1"}
	svc.Record(context.Background(), actor, domain.ActionCreate, "Product", "p1", "Created product: Mug")

	if len(repo.entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(repo.entries))
	}
	e := repo.entries[0]
	if e.ID == "" || e.Timestamp.IsZero() {
		t.Fatalf("entry missing id or timestamp: %+v", e)
	}
	if e.ActorID != "u1" || e.Actor != "root" || e.IPAddress != "10.1.1.1" {
		t.Fatalf("actor fields wrong: %+v", e)
	}
}

func TestAuditService_Record_SwallowsWriteFailure(t *testing.T) {
	repo := &stubAuditRepo{failInsert: true}
	svc := NewAuditService(repo, zerolog.Nop())

	// must not panic or surface the error anywhere
	svc.Record(context.Background(), ports.Actor{ID: "u1"}, domain.ActionLogin, "", "", "")
	if len(repo.entries) != 0 {
		t.Fatalf("unexpected entry recorded")
	}
}

func TestAuditService_List_Pagination(t *testing.T) {
	repo := &stubAuditRepo{}
	for i := 0; i < 120; i++ {
		repo.entries = append(repo.entries, &domain.AuditEntry{
			ID:        fmt.Sprintf("e-%03d", i),
			Timestamp: time.Now().Add(time.Duration(i) * time.Second),
		})
	}
	svc := NewAuditService(repo, zerolog.Nop())

	result, err := svc.List(context.Background(), ports.ListAuditFilter{Page: 1})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if result.Limit != 50 || len(result.Items) != 50 {
		t.Fatalf("expected 50 per page, got limit=%d items=%d", result.Limit, len(result.Items))
	}
	if result.Total != 120 || result.TotalPages != 3 {
		t.Fatalf("unexpected totals: %+v", result)
	}
	if result.Items[0].ID != "e-119" {
		t.Fatalf("expected newest first, got %s", result.Items[0].ID)
	}

	last, _ := svc.List(context.Background(), ports.ListAuditFilter{Page: 3})
	if len(last.Items) != 20 {
		t.Fatalf("expected 20 on last page, got %d", len(last.Items))
	}
}
