package docstore

import (
	"context"
	"errors"
	"sort"
	"sync"
)

type MemoryStore struct {
	mu   sync.Mutex
	data map[string]map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: map[string]map[string][]byte{}}
}

func (s *MemoryStore) Get(_ context.Context, collection, key string) ([]byte, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.data[collection][key]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(v), nil
}

func (s *MemoryStore) List(_ context.Context, collection string) ([]Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs := make([]Document, 0, len(s.data[collection]))
	for k, v := range s.data[collection] {
		docs = append(docs, Document{Key: k, Data: clone(v)})
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].Key < docs[j].Key })
	return docs, nil
}

func (s *MemoryStore) Set(_ context.Context, collection, key string, data []byte) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.put(collection, key, data)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, collection, key string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data[collection], key)
	return nil
}

func (s *MemoryStore) Update(_ context.Context, collection, key string, fn UpdateFunc) ([]byte, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var current []byte
	if v, ok := s.data[collection][key]; ok {
		current = clone(v)
	}

	next, err := fn(current)
	if errors.Is(err, ErrAbort) {
		return current, nil
	}
	if err != nil {
		return nil, err
	}
	if next == nil {
		delete(s.data[collection], key)
		return nil, nil
	}
	s.put(collection, key, next)
	return clone(next), nil
}

func (s *MemoryStore) put(collection, key string, data []byte) {
	col, ok := s.data[collection]
	if !ok {
		col = map[string][]byte{}
		s.data[collection] = col
	}
	col[key] = clone(data)
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
