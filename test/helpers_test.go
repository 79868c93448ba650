//go:build integration
// +build integration

package test

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"testing"

	meetauth "github.com/meetsdev/meetauth"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

type integrationProvider struct {
	mu     sync.Mutex
	byName map[string]meetauth.UserRecord
	byID   map[string]meetauth.UserRecord
	nextID int
}

func newIntegrationProvider() *integrationProvider {
	return &integrationProvider{
		byName: make(map[string]meetauth.UserRecord),
		byID:   make(map[string]meetauth.UserRecord),
	}
}

func (p *integrationProvider) GetUserByUsername(_ context.Context, username string) (meetauth.UserRecord, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	u, ok := p.byName[username]
	if !ok {
		return meetauth.UserRecord{}, meetauth.ErrUserNotFound
	}
	return u, nil
}

func (p *integrationProvider) GetUserByID(_ context.Context, userID string) (meetauth.UserRecord, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	u, ok := p.byID[userID]
	if !ok {
		return meetauth.UserRecord{}, meetauth.ErrUserNotFound
	}
	return u, nil
}

func (p *integrationProvider) CreateUser(_ context.Context, input meetauth.CreateUserInput) (meetauth.UserRecord, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.byName[input.Username]; ok {
		return meetauth.UserRecord{}, fmt.Errorf("%w: %s", meetauth.ErrProviderDuplicateUsername, input.Username)
	}

	p.nextID++
	u := meetauth.UserRecord{
		ID:           "user-" + strconv.Itoa(p.nextID),
		Username:     input.Username,
		PasswordHash: input.PasswordHash,
	}
	p.byName[u.Username] = u
	p.byID[u.ID] = u

	return u, nil
}

// newIntegrationService wires a full service against miniredis so the Redis
// redemption path is exercised end to end.
func newIntegrationService(t *testing.T) *meetauth.Service {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	cfg := meetauth.Config{}
	cfg.JWT.Secret = []byte("0123456789abcdef0123456789abcdef")
	cfg.JWT.AccessTTL = defaultAccessTTL
	cfg.JWT.RefreshTTL = defaultRefreshTTL
	cfg.Tokens.RedisPrefix = "mrt"
	cfg.Password.Cost = bcrypt.MinCost

	service, err := meetauth.New().
		WithConfig(cfg).
		WithRedis(rdb).
		WithUserProvider(newIntegrationProvider()).
		Build()
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	t.Cleanup(service.Close)

	return service
}
