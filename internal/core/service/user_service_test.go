package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/mugstore/backoffice/internal/core/domain"
	"github.com/mugstore/backoffice/internal/core/ports"
)

func newUserFixture(t *testing.T) (*UserService, *stubUserRepo, *stubAuditRepo, *stubMediaStore) {
	t.Helper()
	users := newStubUserRepo()
	auditRepo := &stubAuditRepo{}
	audit := NewAuditService(auditRepo, zerolog.Nop())
	media := &stubMediaStore{}
	svc := NewUserService(users, auditRepo, audit, media, zerolog.Nop())
	return svc, users, auditRepo, media
}

var testActor = ports.Actor{ID: "admin-1", Username: "root", Role: domain.RoleSuperAdmin, IP: "10.0.0.1"}

func TestUserService_Create_Success(t *testing.T) {
	svc, _, auditRepo, _ := newUserFixture(t)

	user, err := svc.Create(context.Background(), testActor, ports.CreateUserInput{
		Username:      "  ana ",
		Email:         "Ana@Example.COM",
		Password:      "hunter2hunter2",
		Role:          domain.RoleStaff,
		IsActiveAdmin: true,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if user.Username != "ana" {
		t.Fatalf("expected trimmed username, got %q", user.Username)
	}
	if user.Email != "ana@example.com" {
		t.Fatalf("expected lowered email, got %q", user.Email)
	}
	if user.PasswordHash == "hunter2hunter2" {
		t.Fatalf("password stored in clear")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("hunter2hunter2")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}

	if len(auditRepo.entries) != 1 {
		t.Fatalf("expected exactly one audit entry, got %d", len(auditRepo.entries))
	}
	e := auditRepo.entries[0]
	if e.Action != domain.ActionCreate || e.ModelName != "User" || e.ObjectID != user.ID {
		t.Fatalf("unexpected audit entry: %+v", e)
	}
	if e.ActorID != testActor.ID || e.IPAddress != testActor.IP {
		t.Fatalf("audit entry not attributed to actor: %+v", e)
	}
}

func TestUserService_Create_InvalidRole(t *testing.T) {
	svc, _, auditRepo, _ := newUserFixture(t)

	_, err := svc.Create(context.Background(), testActor, ports.CreateUserInput{
		Username: "bob",
		Email:    "bob@example.com",
		Password: "pw",
		Role:     "janitor",
	})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if len(auditRepo.entries) != 0 {
		t.Fatalf("rejected create must not be audited")
	}
}

func TestUserService_Create_Duplicate(t *testing.T) {
	svc, _, _, _ := newUserFixture(t)

	input := ports.CreateUserInput{Username: "bob", Email: "bob@example.com", Password: "pw", Role: domain.RoleStaff}
	if _, err := svc.Create(context.Background(), testActor, input); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if _, err := svc.Create(context.Background(), testActor, input); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestUserService_Create_AuditFailureDoesNotFailCreate(t *testing.T) {
	svc, users, auditRepo, _ := newUserFixture(t)
	auditRepo.failInsert = true

	user, err := svc.Create(context.Background(), testActor, ports.CreateUserInput{
		Username: "carla", Email: "carla@example.com", Password: "pw", Role: domain.RoleManager,
	})
	if err != nil {
		t.Fatalf("create must survive audit failure: %v", err)
	}
	if _, err := users.FindByID(context.Background(), user.ID); err != nil {
		t.Fatalf("user not persisted: %v", err)
	}
}

func TestUserService_Update_WithAvatar(t *testing.T) {
	svc, users, auditRepo, media := newUserFixture(t)
	seedUser(t, users, "ana", "pw", domain.RoleStaff, true)

	user, err := svc.Update(context.Background(), testActor, "user-ana", ports.UpdateUserInput{
		Username: "ana",
		Email:    "ana@example.com",
		Role:     domain.RoleManager,
		Avatar:   &ports.Upload{Filename: "me.png", Data: []byte("png")},
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if user.Role != domain.RoleManager {
		t.Fatalf("role not updated: %s", user.Role)
	}
	if user.AvatarPath != "avatars/me.png" {
		t.Fatalf("unexpected avatar path: %q", user.AvatarPath)
	}
	if len(media.saved) != 1 {
		t.Fatalf("expected one media save, got %d", len(media.saved))
	}

	updates := auditRepo.byAction(domain.ActionUpdate)
	if len(updates) != 1 {
		t.Fatalf("expected 1 update audit entry, got %d", len(updates))
	}
}

func TestUserService_Update_BadAvatarAbortsSave(t *testing.T) {
	svc, users, _, media := newUserFixture(t)
	seedUser(t, users, "ana", "pw", domain.RoleStaff, true)
	media.fail = domain.ErrBadImage

	_, err := svc.Update(context.Background(), testActor, "user-ana", ports.UpdateUserInput{
		Username: "renamed",
		Email:    "ana@example.com",
		Role:     domain.RoleStaff,
		Avatar:   &ports.Upload{Filename: "broken.bin", Data: []byte("not an image")},
	})
	if !errors.Is(err, domain.ErrBadImage) {
		t.Fatalf("expected ErrBadImage, got %v", err)
	}

	stored, _ := users.FindByID(context.Background(), "user-ana")
	if stored.Username != "ana" {
		t.Fatalf("entity persisted despite image failure: %+v", stored)
	}
}

func TestUserService_Delete_CascadesAuditEntries(t *testing.T) {
	svc, users, auditRepo, _ := newUserFixture(t)
	victim := seedUser(t, users, "vic", "pw", domain.RoleStaff, true)

	// trail entries written by the victim, plus one by someone else
	auditRepo.entries = append(auditRepo.entries,
		&domain.AuditEntry{ID: "e1", ActorID: victim.ID, Action: domain.ActionLogin, Timestamp: time.Now()},
		&domain.AuditEntry{ID: "e2", ActorID: victim.ID, Action: domain.ActionUpdate, Timestamp: time.Now()},
		&domain.AuditEntry{ID: "e3", ActorID: "other", Action: domain.ActionLogin, Timestamp: time.Now()},
	)

	if err := svc.Delete(context.Background(), testActor, victim.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := users.FindByID(context.Background(), victim.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("user still present after delete")
	}

	for _, e := range auditRepo.entries {
		if e.ActorID == victim.ID && e.Action != domain.ActionDelete {
			t.Fatalf("victim audit entry survived cascade: %+v", e)
		}
	}
	deletes := auditRepo.byAction(domain.ActionDelete)
	if len(deletes) != 1 || deletes[0].ObjectID != victim.ID {
		t.Fatalf("delete not audited: %+v", deletes)
	}
}

func TestUserService_List_Pagination(t *testing.T) {
	svc, users, _, _ := newUserFixture(t)
	for i := 0; i < 45; i++ {
		u := &domain.User{
			ID:        fmt.Sprintf("u-%02d", i),
			Username:  fmt.Sprintf("user%02d", i),
			Email:     fmt.Sprintf("user%02d@example.com", i),
			CreatedAt: time.Now().Add(time.Duration(i) * time.Minute),
		}
		users.users[u.ID] = u
	}

	result, err := svc.List(context.Background(), ports.ListUsersFilter{Page: 1})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if result.Limit != 20 || len(result.Items) != 20 {
		t.Fatalf("expected 20 per page, got limit=%d items=%d", result.Limit, len(result.Items))
	}
	if result.Total != 45 || result.TotalPages != 3 {
		t.Fatalf("unexpected totals: %+v", result)
	}
	// newest first
	if result.Items[0].Username != "user44" {
		t.Fatalf("expected newest first, got %s", result.Items[0].Username)
	}

	last, err := svc.List(context.Background(), ports.ListUsersFilter{Page: 3})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(last.Items) != 5 {
		t.Fatalf("expected 5 on last page, got %d", len(last.Items))
	}

	// page clamp
	clamped, err := svc.List(context.Background(), ports.ListUsersFilter{Page: 0})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if clamped.Page != 1 {
		t.Fatalf("expected page clamped to 1, got %d", clamped.Page)
	}
}

func TestUserService_List_Search(t *testing.T) {
	svc, users, _, _ := newUserFixture(t)
	users.users["u1"] = &domain.User{ID: "u1", Username: "anna", Email: "anna@example.com"}
	users.users["u2"] = &domain.User{ID: "u2", Username: "bob", FirstName: "Ann-Marie", Email: "bob@example.com"}
	users.users["u3"] = &domain.User{ID: "u3", Username: "carl", Email: "carl@example.com"}

	result, err := svc.List(context.Background(), ports.ListUsersFilter{Search: "ANN"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if result.Total != 2 {
		t.Fatalf("expected 2 matches across fields, got %d", result.Total)
	}
}

func TestUserService_UpdateProfile_NotAudited(t *testing.T) {
	svc, users, auditRepo, _ := newUserFixture(t)
	seedUser(t, users, "self", "pw", domain.RoleStaff, true)

	actor := ports.Actor{ID: "user-self", Username: "self", Role: domain.RoleStaff}
	user, err := svc.UpdateProfile(context.Background(), actor, ports.UpdateProfileInput{
		FirstName: "Selina",
		Email:     "self@example.com",
	})
	if err != nil {
		t.Fatalf("profile update failed: %v", err)
	}
	if user.FirstName != "Selina" {
		t.Fatalf("first name not applied")
	}
	if len(auditRepo.entries) != 0 {
		t.Fatalf("profile edits must not be audited")
	}
}
