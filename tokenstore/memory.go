package tokenstore

import (
	"context"
	"sync"
	"time"
)

// Memory is an in-process [Store]. It is intended for tests and
// single-instance deployments; records do not survive restarts.
type Memory struct {
	mu      sync.Mutex
	records map[string]Record
	now     func() time.Time
}

// NewMemory describes the newmemory operation and its observable behavior.
//
// NewMemory may return an error when input validation, dependency calls, or security checks fail.
// NewMemory does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewMemory() *Memory {
	return &Memory{
		records: make(map[string]Record),
		now:     time.Now,
	}
}

// Save describes the save operation and its observable behavior.
//
// Save may return an error when input validation, dependency calls, or security checks fail.
// Save does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Memory) Save(_ context.Context, record Record) error {
	if err := validateRecord(record); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.records[record.ID]; ok {
		return ErrDuplicateID
	}
	m.records[record.ID] = record

	return nil
}

// Redeem describes the redeem operation and its observable behavior.
//
// Redeem may return an error when input validation, dependency calls, or security checks fail.
// Redeem does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Memory) Redeem(_ context.Context, id string) (*Record, error) {
	if id == "" {
		return nil, ErrNotFound
	}

	// Lookup and delete happen under one critical section so that only one
	// of N concurrent redeems can observe the record.
	m.mu.Lock()
	defer m.mu.Unlock()

	record, ok := m.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	delete(m.records, id)

	if !m.now().Before(record.ExpiresAt) {
		return nil, ErrNotFound
	}

	return &record, nil
}

// PurgeExpired removes every expired record and reports how many were
// dropped. Redeem already treats expired records as absent; this only frees
// memory.
func (m *Memory) PurgeExpired(_ context.Context) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	purged := 0
	for id, record := range m.records {
		if !now.Before(record.ExpiresAt) {
			delete(m.records, id)
			purged++
		}
	}

	return purged
}

// Len reports the number of stored records, including expired ones that have
// not been purged yet.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records)
}
