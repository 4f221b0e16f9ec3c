package auth

import (
	"context"
	"errors"
	"testing"
)

func TestSignupAndLoginRoundTrip(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	creds, err := svc.Signup(ctx, "alice", "pw1")
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}
	if creds.UserID != 1 || creds.Username != "alice" {
		t.Fatalf("unexpected credentials: %+v", creds)
	}

	got, err := svc.Login(ctx, "alice", "pw1")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if got.UserID != creds.UserID || got.Username != "alice" {
		t.Fatalf("unexpected login result: %+v", got)
	}
}

func TestSignupDuplicateFailsOnce(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()

	if _, err := svc.Signup(ctx, "alice", "pw1"); err != nil {
		t.Fatalf("first Signup: %v", err)
	}
	if _, err := svc.Signup(ctx, "alice", "pw2"); !errors.Is(err, ErrDuplicateUser) {
		t.Fatalf("expected ErrDuplicateUser, got %v", err)
	}

	// Exactly one record remains.
	user, err := repo.GetByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("GetByUsername: %v", err)
	}
	if user.ID != 1 {
		t.Fatalf("expected single user with id 1, got %d", user.ID)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	if _, err := svc.Signup(ctx, "alice", "pw1"); err != nil {
		t.Fatalf("Signup: %v", err)
	}
	if _, err := svc.Login(ctx, "alice", "pw2"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginUnknownUser(t *testing.T) {
	svc := NewService(NewMemoryRepo())

	if _, err := svc.Login(context.Background(), "nobody", "pw"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestStoredHashIsNotPlaintext(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()

	if _, err := svc.Signup(ctx, "alice", "pw1"); err != nil {
		t.Fatalf("Signup: %v", err)
	}
	user, err := repo.GetByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("GetByUsername: %v", err)
	}
	if user.PasswordHash == "pw1" {
		t.Fatal("password stored in plaintext")
	}
	if user.PasswordHash == "" {
		t.Fatal("expected non-empty password hash")
	}
}

func TestSignupRejectsEmptyInput(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	if _, err := svc.Signup(ctx, "", "pw"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty username, got %v", err)
	}
	if _, err := svc.Signup(ctx, "alice", ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty password, got %v", err)
	}
}

func TestCheckUserDoesNotRevealHash(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	result, err := svc.CheckUser(ctx, "alice")
	if err != nil {
		t.Fatalf("CheckUser: %v", err)
	}
	if result.Exists {
		t.Fatal("expected missing user")
	}

	if _, err := svc.Signup(ctx, "alice", "pw1"); err != nil {
		t.Fatalf("Signup: %v", err)
	}

	result, err = svc.CheckUser(ctx, "alice")
	if err != nil {
		t.Fatalf("CheckUser: %v", err)
	}
	if !result.Exists || !result.PasswordHashPresent || result.UserID != 1 {
		t.Fatalf("unexpected check result: %+v", result)
	}
}
