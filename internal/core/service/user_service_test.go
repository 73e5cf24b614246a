package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/studentdiscount/marketplace-api/internal/core/domain"
	"github.com/studentdiscount/marketplace-api/internal/core/ports"
)

func strPtr(s string) *string { return &s }

func TestUserService_Update_Owner(t *testing.T) {
	repo := newStubUserRepo()
	repo.byID["usr_2"] = &domain.User{ID: "usr_2", Name: "Rahul Sharma", Role: domain.RoleStudent}
	audit := &stubEmitter{}
	svc := NewUserService(repo, audit, zerolog.Nop())

	updated, err := svc.Update(context.Background(), "usr_2", domain.RoleStudent, "usr_2", ports.UserUpdate{
		Name: strPtr("Rahul S."),
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Name != "Rahul S." {
		t.Errorf("name not patched: %q", updated.Name)
	}
	if len(audit.events) != 1 || audit.events[0].Action != domain.AuditUserUpdated {
		t.Errorf("expected one update audit event, got %+v", audit.events)
	}
}

func TestUserService_Update_ForeignRecord(t *testing.T) {
	repo := newStubUserRepo()
	repo.byID["usr_2"] = &domain.User{ID: "usr_2", Role: domain.RoleStudent}
	svc := NewUserService(repo, nil, zerolog.Nop())

	_, err := svc.Update(context.Background(), "usr_9", domain.RoleStudent, "usr_2", ports.UserUpdate{
		Name: strPtr("hijack"),
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestUserService_Update_AdminOnForeignRecord(t *testing.T) {
	repo := newStubUserRepo()
	repo.byID["usr_2"] = &domain.User{ID: "usr_2", Role: domain.RoleStudent, Verified: false}
	svc := NewUserService(repo, nil, zerolog.Nop())

	verified := true
	updated, err := svc.Update(context.Background(), "usr_1", domain.RoleAdmin, "usr_2", ports.UserUpdate{
		Verified: &verified,
	})
	if err != nil {
		t.Fatalf("admin update failed: %v", err)
	}
	if !updated.Verified {
		t.Errorf("admin should be able to set verified")
	}
}

func TestUserService_Update_NonAdminCannotEscalate(t *testing.T) {
	repo := newStubUserRepo()
	repo.byID["usr_2"] = &domain.User{ID: "usr_2", Role: domain.RoleStudent, Verified: false}
	svc := NewUserService(repo, nil, zerolog.Nop())

	admin := domain.RoleAdmin
	verified := true
	updated, err := svc.Update(context.Background(), "usr_2", domain.RoleStudent, "usr_2", ports.UserUpdate{
		Role:     &admin,
		Verified: &verified,
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Role != domain.RoleStudent {
		t.Errorf("role escalation must be stripped, got %s", updated.Role)
	}
	if updated.Verified {
		t.Errorf("self-verification must be stripped")
	}
}

func TestUserService_Update_UnknownID(t *testing.T) {
	svc := NewUserService(newStubUserRepo(), nil, zerolog.Nop())

	_, err := svc.Update(context.Background(), "usr_1", domain.RoleAdmin, "usr_404", ports.UserUpdate{
		Name: strPtr("ghost"),
	})
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_Get(t *testing.T) {
	repo := newStubUserRepo()
	repo.byID["usr_2"] = &domain.User{ID: "usr_2", Name: "Rahul Sharma"}
	svc := NewUserService(repo, nil, zerolog.Nop())

	user, err := svc.Get(context.Background(), "usr_2")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if user.Name != "Rahul Sharma" {
		t.Errorf("unexpected user: %+v", user)
	}

	if _, err := svc.Get(context.Background(), "usr_404"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}
