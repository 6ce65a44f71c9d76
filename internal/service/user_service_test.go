package service

import (
	"context"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/femcoders/pettrack/internal/domain"
)

func TestUserListRequiresVeterinarian(t *testing.T) {
	repo := newFakeUserRepo(veterinarian(4, "vet"), owner(2, "debora"))
	svc := NewUserService(repo, bcrypt.MinCost, nil, nil)

	if _, err := svc.List(context.Background(), nil); errCode(err) != "UNAUTHENTICATED" {
		t.Errorf("anonymous list: code = %s, want UNAUTHENTICATED", errCode(err))
	}
	if _, err := svc.List(context.Background(), owner(2, "debora")); errCode(err) != "FORBIDDEN" {
		t.Errorf("user list: code = %s, want FORBIDDEN", errCode(err))
	}

	users, err := svc.List(context.Background(), veterinarian(4, "vet"))
	if err != nil {
		t.Fatalf("veterinarian list: %v", err)
	}
	if len(users) != 2 {
		t.Errorf("listed %d users, want 2", len(users))
	}
}

func TestUserFilterByRole(t *testing.T) {
	repo := newFakeUserRepo(veterinarian(4, "vet"), owner(2, "debora"), owner(3, "marc"))
	svc := NewUserService(repo, bcrypt.MinCost, nil, nil)

	role := domain.RoleUser
	users, err := svc.FilterByRole(context.Background(), veterinarian(4, "vet"), &role)
	if err != nil {
		t.Fatalf("FilterByRole: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("filtered %d users, want 2", len(users))
	}
	for _, u := range users {
		if u.Role != domain.RoleUser {
			t.Errorf("filter leaked role %s", u.Role)
		}
	}

	if _, err := svc.FilterByRole(context.Background(), owner(2, "debora"), &role); errCode(err) != "FORBIDDEN" {
		t.Errorf("code = %s, want FORBIDDEN", errCode(err))
	}
}

func TestUserGetByIDScoping(t *testing.T) {
	repo := newFakeUserRepo(veterinarian(4, "vet"), owner(2, "debora"), owner(3, "marc"))
	svc := NewUserService(repo, bcrypt.MinCost, nil, nil)

	tests := []struct {
		name     string
		caller   *domain.User
		id       int64
		wantCode string
	}{
		{"veterinarian reads any", veterinarian(4, "vet"), 2, ""},
		{"owner reads self", owner(2, "debora"), 2, ""},
		{"owner reads other", owner(2, "debora"), 3, "FORBIDDEN"},
		{"anonymous", nil, 2, "UNAUTHENTICATED"},
		{"missing id", veterinarian(4, "vet"), 99, "NOT_FOUND"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.GetByID(context.Background(), tt.caller, tt.id)
			if code := errCode(err); code != tt.wantCode {
				t.Fatalf("code = %s, want %s", code, tt.wantCode)
			}
		})
	}
}

func TestUserCreateDeniedWithoutWrite(t *testing.T) {
	repo := newFakeUserRepo(owner(2, "debora"))
	svc := NewUserService(repo, bcrypt.MinCost, nil, nil)

	input := UserInput{Username: "new", Email: "new@user.com", Password: "x"}
	if _, err := svc.Create(context.Background(), owner(2, "debora"), input); errCode(err) != "FORBIDDEN" {
		t.Fatalf("code = %s, want FORBIDDEN", errCode(err))
	}
	if repo.saves != 0 {
		t.Errorf("denied create reached the repository %d times", repo.saves)
	}
}

func TestUserCreateConflicts(t *testing.T) {
	repo := newFakeUserRepo(owner(2, "debora"))
	svc := NewUserService(repo, bcrypt.MinCost, nil, nil)

	_, err := svc.Create(context.Background(), veterinarian(4, "vet"), UserInput{
		Username: "DEBORA", Email: "other@user.com", Password: "x",
	})
	if errCode(err) != "CONFLICT" {
		t.Fatalf("code = %s, want CONFLICT", errCode(err))
	}
	if err.Error() != "Username already exists" {
		t.Errorf("message = %q", err.Error())
	}
}

func TestUserUpdateChangesRole(t *testing.T) {
	repo := newFakeUserRepo(owner(2, "debora"))
	svc := NewUserService(repo, bcrypt.MinCost, nil, nil)

	updated, err := svc.Update(context.Background(), veterinarian(4, "vet"), 2, UserUpdateInput{
		Username: "debora",
		Email:    "debora@user.com",
		Password: "newpass",
		Role:     domain.RoleVeterinary,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Role != domain.RoleVeterinary {
		t.Errorf("role = %s, want %s", updated.Role, domain.RoleVeterinary)
	}
	if updated.PasswordHash == "newpass" {
		t.Error("password stored in plaintext")
	}

	if _, err := svc.Update(context.Background(), owner(2, "debora"), 2, UserUpdateInput{}); errCode(err) != "FORBIDDEN" {
		t.Errorf("self role change: code = %s, want FORBIDDEN", errCode(err))
	}
}

func TestUserUpdateDefaultsRole(t *testing.T) {
	repo := newFakeUserRepo(veterinarian(4, "vet"))
	svc := NewUserService(repo, bcrypt.MinCost, nil, nil)

	updated, err := svc.Update(context.Background(), veterinarian(5, "chief"), 4, UserUpdateInput{
		Username: "vet",
		Email:    "vet@clinic.test",
		Password: "x",
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Role != domain.RoleUser {
		t.Errorf("blank role resolved to %s, want %s", updated.Role, domain.RoleUser)
	}
}

func TestUserDelete(t *testing.T) {
	repo := newFakeUserRepo(owner(2, "debora"))
	svc := NewUserService(repo, bcrypt.MinCost, nil, nil)

	if _, err := svc.Delete(context.Background(), owner(2, "debora"), 2); errCode(err) != "FORBIDDEN" {
		t.Fatalf("code = %s, want FORBIDDEN", errCode(err))
	}
	if repo.deletes != 0 {
		t.Fatalf("denied delete reached the repository %d times", repo.deletes)
	}

	message, err := svc.Delete(context.Background(), veterinarian(4, "vet"), 2)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if message != "User with id: 2 has been deleted successfully" {
		t.Errorf("message = %q", message)
	}

	if _, err := svc.Delete(context.Background(), veterinarian(4, "vet"), 2); errCode(err) != "NOT_FOUND" {
		t.Errorf("second delete: code = %s, want NOT_FOUND", errCode(err))
	}
}
