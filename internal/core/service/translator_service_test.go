package service

import (
	"context"
	"errors"
	"testing"

	"github.com/concertshift/timesheet/internal/core/domain"
	"github.com/concertshift/timesheet/internal/core/ports"
)

func TestTranslatorService_CreateAndList(t *testing.T) {
	repo := newStubUserRepo(&domain.User{ID: adminPrincipal.UserID, Name: "Ada Admin", Email: "ada@example.com", Role: domain.RoleAdmin})
	svc := NewTranslatorService(repo, discardLogger)
	ctx := context.Background()

	created, err := svc.CreateTranslator(ctx, adminPrincipal, ports.CreateTranslatorInput{
		Name: "Carla", Email: "Carla@Example.com", Password: "password1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.Role != domain.RoleTranslator || created.Email != "carla@example.com" {
		t.Fatalf("unexpected translator: %+v", created)
	}

	list, err := svc.ListTranslators(ctx, adminPrincipal)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].ID != created.ID {
		t.Fatalf("expected only the translator to be listed, got %+v", list)
	}
}

func TestTranslatorService_Create_Rejections(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewTranslatorService(repo, discardLogger)
	ctx := context.Background()

	in := ports.CreateTranslatorInput{Name: "Carla", Email: "carla@example.com", Password: "password1"}
	if _, err := svc.CreateTranslator(ctx, alice, in); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := svc.CreateTranslator(ctx, adminPrincipal, in); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := svc.CreateTranslator(ctx, adminPrincipal, in); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestTranslatorService_Delete(t *testing.T) {
	repo := newStubUserRepo(
		&domain.User{ID: "t-1", Name: "Carla", Email: "carla@example.com", Role: domain.RoleTranslator},
		&domain.User{ID: adminPrincipal.UserID, Name: "Ada Admin", Email: "ada@example.com", Role: domain.RoleAdmin},
	)
	svc := NewTranslatorService(repo, discardLogger)
	ctx := context.Background()

	if err := svc.DeleteTranslator(ctx, adminPrincipal, adminPrincipal.UserID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected admins to be undeletable, got %v", err)
	}
	if err := svc.DeleteTranslator(ctx, alice, "t-1"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := svc.DeleteTranslator(ctx, adminPrincipal, "t-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := repo.byID["t-1"]; ok {
		t.Fatalf("translator should be gone")
	}
}
