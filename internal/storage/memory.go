package storage

import (
	"context"
	"sync"
)

// memoryStore implements Store with an in-memory map. Used in tests and as a
// process-lifetime cache when no database path is configured.
type memoryStore struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemory creates an empty in-memory store.
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewMemory() Store {
	return &memoryStore{
		data: make(map[string]string),
	}
}

// Get retrieves the value stored under key.
func (s *memoryStore) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.data[key]
	if !ok {
		return "", ErrKeyNotFound
	}

	return value, nil
}

// Set stores value under key.
func (s *memoryStore) Set(_ context.Context, key string, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = value

	return nil
}

// Has checks whether key has a stored value.
func (s *memoryStore) Has(_ context.Context, key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.data[key]

	return ok, nil
}

// Close is a no-op for the in-memory store.
func (s *memoryStore) Close() error {
	return nil
}
