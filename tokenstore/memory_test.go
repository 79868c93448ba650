package tokenstore

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestMemorySaveAndRedeem(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	record := Record{ID: "r1", UserID: "user-1", ExpiresAt: time.Now().Add(time.Hour)}
	if err := store.Save(ctx, record); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := store.Redeem(ctx, "r1")
	if err != nil {
		t.Fatalf("redeem: %v", err)
	}
	if got.UserID != "user-1" {
		t.Fatalf("expected user-1, got %q", got.UserID)
	}

	// Second redeem of the same id must fail.
	if _, err := store.Redeem(ctx, "r1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second redeem, got %v", err)
	}
}

func TestMemorySaveRejectsDuplicateID(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	record := Record{ID: "r1", UserID: "user-1", ExpiresAt: time.Now().Add(time.Hour)}
	if err := store.Save(ctx, record); err != nil {
		t.Fatalf("save: %v", err)
	}

	record.UserID = "user-2"
	if err := store.Save(ctx, record); !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}

	// The original record must be untouched.
	got, err := store.Redeem(ctx, "r1")
	if err != nil {
		t.Fatalf("redeem: %v", err)
	}
	if got.UserID != "user-1" {
		t.Fatalf("duplicate save overwrote record: got user %q", got.UserID)
	}
}

func TestMemorySaveValidatesRecord(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	cases := []Record{
		{UserID: "user-1", ExpiresAt: time.Now().Add(time.Hour)},
		{ID: "r1", ExpiresAt: time.Now().Add(time.Hour)},
		{ID: "r1", UserID: "user-1"},
	}
	for _, record := range cases {
		if err := store.Save(ctx, record); err == nil {
			t.Fatalf("expected record %+v to be rejected", record)
		}
	}
}

func TestMemoryRedeemExpiredRecord(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	record := Record{ID: "r1", UserID: "user-1", ExpiresAt: time.Now().Add(time.Minute)}
	if err := store.Save(ctx, record); err != nil {
		t.Fatalf("save: %v", err)
	}

	store.now = func() time.Time { return time.Now().Add(2 * time.Minute) }

	if _, err := store.Redeem(ctx, "r1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for expired record, got %v", err)
	}
	if store.Len() != 0 {
		t.Fatalf("expired record must be deleted on redeem, %d left", store.Len())
	}
}

func TestMemoryRedeemUnknownID(t *testing.T) {
	store := NewMemory()

	if _, err := store.Redeem(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := store.Redeem(context.Background(), ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for empty id, got %v", err)
	}
}

func TestMemoryConcurrentRedeemSingleWinner(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	record := Record{ID: "r1", UserID: "user-1", ExpiresAt: time.Now().Add(time.Hour)}
	if err := store.Save(ctx, record); err != nil {
		t.Fatalf("save: %v", err)
	}

	const n = 16
	var wg sync.WaitGroup
	wg.Add(n)

	results := make(chan error, n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, err := store.Redeem(ctx, "r1")
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	success := 0
	fail := 0
	for err := range results {
		if err == nil {
			success++
			continue
		}
		if errors.Is(err, ErrNotFound) {
			fail++
			continue
		}
		t.Fatalf("unexpected redeem error: %v", err)
	}

	if success != 1 {
		t.Fatalf("expected exactly one redeem success, got %d", success)
	}
	if fail != n-1 {
		t.Fatalf("expected %d redeem failures, got %d", n-1, fail)
	}
}

func TestMemoryPurgeExpired(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	base := time.Now()
	for _, record := range []Record{
		{ID: "live", UserID: "user-1", ExpiresAt: base.Add(time.Hour)},
		{ID: "dead-1", UserID: "user-1", ExpiresAt: base.Add(time.Minute)},
		{ID: "dead-2", UserID: "user-2", ExpiresAt: base.Add(2 * time.Minute)},
	} {
		if err := store.Save(ctx, record); err != nil {
			t.Fatalf("save %s: %v", record.ID, err)
		}
	}

	store.now = func() time.Time { return base.Add(30 * time.Minute) }

	if purged := store.PurgeExpired(ctx); purged != 2 {
		t.Fatalf("expected 2 purged records, got %d", purged)
	}
	if store.Len() != 1 {
		t.Fatalf("expected 1 record left, got %d", store.Len())
	}
}
