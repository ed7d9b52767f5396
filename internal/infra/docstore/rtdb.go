package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"firebase.google.com/go/v4/db"
)

// RTDBStore keeps each collection under a top level node of a Firebase
// Realtime Database: /<collection>/<key>.
type RTDBStore struct {
	client *db.Client
}

func NewRTDBStore(client *db.Client) *RTDBStore {
	return &RTDBStore{client: client}
}

func (s *RTDBStore) ref(collection, key string) *db.Ref {
	return s.client.NewRef(collection).Child(key)
}

func (s *RTDBStore) Get(ctx context.Context, collection, key string) ([]byte, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}

	var raw json.RawMessage
	if err := s.ref(collection, key).Get(ctx, &raw); err != nil {
		return nil, fmt.Errorf("rtdb get %s/%s: %w", collection, key, err)
	}
	if isNull(raw) {
		return nil, ErrNotFound
	}
	return raw, nil
}

func (s *RTDBStore) List(ctx context.Context, collection string) ([]Document, error) {
	var raw json.RawMessage
	if err := s.client.NewRef(collection).Get(ctx, &raw); err != nil {
		return nil, fmt.Errorf("rtdb list %s: %w", collection, err)
	}
	if isNull(raw) {
		return []Document{}, nil
	}

	children := map[string]json.RawMessage{}
	if err := json.Unmarshal(raw, &children); err != nil {
		// Sequential integer keys come back as a JSON array.
		var arr []json.RawMessage
		if err2 := json.Unmarshal(raw, &arr); err2 != nil {
			return nil, fmt.Errorf("rtdb list %s: %w", collection, err)
		}
		for i, v := range arr {
			children[fmt.Sprint(i)] = v
		}
	}

	docs := make([]Document, 0, len(children))
	for k, v := range children {
		if isNull(v) {
			continue
		}
		docs = append(docs, Document{Key: k, Data: v})
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].Key < docs[j].Key })
	return docs, nil
}

func (s *RTDBStore) Set(ctx context.Context, collection, key string, data []byte) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	if err := s.ref(collection, key).Set(ctx, json.RawMessage(data)); err != nil {
		return fmt.Errorf("rtdb set %s/%s: %w", collection, key, err)
	}
	return nil
}

func (s *RTDBStore) Delete(ctx context.Context, collection, key string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	if err := s.ref(collection, key).Delete(ctx); err != nil {
		return fmt.Errorf("rtdb delete %s/%s: %w", collection, key, err)
	}
	return nil
}

// Update runs a Realtime Database transaction. The SDK retries fn when the
// node changed between read and write.
func (s *RTDBStore) Update(ctx context.Context, collection, key string, fn UpdateFunc) ([]byte, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}

	var result []byte
	err := s.ref(collection, key).Transaction(ctx, func(node db.TransactionNode) (interface{}, error) {
		var raw json.RawMessage
		if err := node.Unmarshal(&raw); err != nil {
			return nil, err
		}
		var current []byte
		if !isNull(raw) {
			current = raw
		}

		next, err := fn(current)
		if err != nil {
			return nil, err
		}
		result = next
		if next == nil {
			return nil, nil
		}
		return json.RawMessage(next), nil
	})
	if errors.Is(err, ErrAbort) {
		return s.currentOrNil(ctx, collection, key)
	}
	if err != nil {
		return nil, fmt.Errorf("rtdb update %s/%s: %w", collection, key, err)
	}
	return result, nil
}

func (s *RTDBStore) currentOrNil(ctx context.Context, collection, key string) ([]byte, error) {
	data, err := s.Get(ctx, collection, key)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return data, err
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}
