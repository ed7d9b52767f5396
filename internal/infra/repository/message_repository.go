package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	domain "github.com/BruksfildServices01/material-rental/internal/domain/messaging"
	"github.com/BruksfildServices01/material-rental/internal/fieldcrypt"
	"github.com/BruksfildServices01/material-rental/internal/infra/docstore"
	"github.com/BruksfildServices01/material-rental/internal/models"
)

type MessageRepository struct {
	store  docstore.Store
	cipher fieldcrypt.Cipher
}

func NewMessageRepository(store docstore.Store, cipher fieldcrypt.Cipher) *MessageRepository {
	return &MessageRepository{store: store, cipher: cipher}
}

func (r *MessageRepository) List(ctx context.Context) ([]models.Message, error) {
	docs, err := r.store.List(ctx, CollectionMessaging)
	if err != nil {
		return nil, err
	}

	out := make([]models.Message, 0, len(docs))
	for _, d := range docs {
		m, err := r.decode(d.Data)
		if err != nil {
			return nil, fmt.Errorf("message %s: %w", d.Key, err)
		}
		out = append(out, *m)
	}
	return out, nil
}

func (r *MessageRepository) Get(ctx context.Context, id string) (*models.Message, error) {
	data, err := r.store.Get(ctx, CollectionMessaging, id)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return r.decode(data)
}

func (r *MessageRepository) Save(ctx context.Context, m *models.Message) error {
	rec, err := messageToRecord(r.cipher, m)
	if err != nil {
		return err
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, CollectionMessaging, m.ID, data)
}

func (r *MessageRepository) Update(
	ctx context.Context,
	id string,
	fn domain.MutateFunc,
) (*models.Message, error) {

	data, err := r.store.Update(ctx, CollectionMessaging, id, func(current []byte) ([]byte, error) {
		if current == nil {
			return nil, domain.ErrNotFound
		}
		m, err := r.decode(current)
		if err != nil {
			return nil, err
		}
		if err := fn(m); err != nil {
			return nil, err
		}
		m.ID = id
		rec, err := messageToRecord(r.cipher, m)
		if err != nil {
			return nil, err
		}
		return json.Marshal(rec)
	})
	if err != nil {
		return nil, err
	}
	return r.decode(data)
}

func (r *MessageRepository) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, CollectionMessaging, id)
}

func (r *MessageRepository) decode(data []byte) (*models.Message, error) {
	var rec messageRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode message: %w", err)
	}
	return rec.toModel(r.cipher)
}
