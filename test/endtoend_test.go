//go:build integration
// +build integration

package test

import (
	"context"
	"errors"
	"testing"
	"time"

	meetauth "github.com/meetsdev/meetauth"
)

const (
	defaultAccessTTL  = 15 * time.Minute
	defaultRefreshTTL = 7 * 24 * time.Hour
)

func TestTokenLifecycle(t *testing.T) {
	service := newIntegrationService(t)
	ctx := context.Background()

	user, err := service.Register(ctx, "tony_lore", "correct-password-123")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	pair, err := service.Authenticate(ctx, "tony_lore", "correct-password-123")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}

	got, err := service.CurrentUser(ctx, pair.AccessToken)
	if err != nil {
		t.Fatalf("current user: %v", err)
	}
	if got.ID != user.ID {
		t.Fatalf("expected user %s, got %s", user.ID, got.ID)
	}

	rotated, err := service.Refresh(ctx, pair.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if rotated.RefreshToken == pair.RefreshToken {
		t.Fatal("refresh must rotate the refresh token")
	}

	// The first grant is burned; only the rotated token survives.
	if _, err := service.Refresh(ctx, pair.RefreshToken); !errors.Is(err, meetauth.ErrRefreshReuse) {
		t.Fatalf("expected ErrRefreshReuse, got %v", err)
	}
	if _, err := service.Refresh(ctx, rotated.RefreshToken); err != nil {
		t.Fatalf("rotated token must be redeemable: %v", err)
	}
}

func TestAuthenticateFailures(t *testing.T) {
	service := newIntegrationService(t)
	ctx := context.Background()

	if _, err := service.Register(ctx, "tony_lore", "correct-password-123"); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := service.Authenticate(ctx, "nobody", "whatever-password"); !errors.Is(err, meetauth.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if _, err := service.Authenticate(ctx, "tony_lore", "wrong-password-456"); !errors.Is(err, meetauth.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := service.Register(ctx, "tony_lore", "another-password-789"); !errors.Is(err, meetauth.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestAccessTokenRejectedAsRefresh(t *testing.T) {
	service := newIntegrationService(t)
	ctx := context.Background()

	if _, err := service.Register(ctx, "tony_lore", "correct-password-123"); err != nil {
		t.Fatalf("register: %v", err)
	}
	pair, err := service.Authenticate(ctx, "tony_lore", "correct-password-123")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}

	if _, err := service.Refresh(ctx, pair.AccessToken); !errors.Is(err, meetauth.ErrRefreshInvalid) {
		t.Fatalf("expected ErrRefreshInvalid, got %v", err)
	}
}
