package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	domain "github.com/BruksfildServices01/material-rental/internal/domain/material"
	"github.com/BruksfildServices01/material-rental/internal/infra/docstore"
	"github.com/BruksfildServices01/material-rental/internal/models"
)

type MaterialRepository struct {
	store docstore.Store
}

func NewMaterialRepository(store docstore.Store) *MaterialRepository {
	return &MaterialRepository{store: store}
}

func (r *MaterialRepository) List(ctx context.Context) ([]models.Material, error) {
	docs, err := r.store.List(ctx, CollectionMaterial)
	if err != nil {
		return nil, err
	}

	out := make([]models.Material, 0, len(docs))
	for _, d := range docs {
		m, err := decodeMaterial(d.Data)
		if err != nil {
			return nil, fmt.Errorf("material %s: %w", d.Key, err)
		}
		out = append(out, *m)
	}
	return out, nil
}

func (r *MaterialRepository) Get(ctx context.Context, id string) (*models.Material, error) {
	data, err := r.store.Get(ctx, CollectionMaterial, id)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return decodeMaterial(data)
}

func (r *MaterialRepository) Create(ctx context.Context, m *models.Material) error {
	_, err := r.store.Update(ctx, CollectionMaterial, m.ID, func(current []byte) ([]byte, error) {
		if current != nil {
			return nil, domain.ErrAlreadyExists
		}
		return json.Marshal(materialToRecord(m))
	})
	return err
}

func (r *MaterialRepository) Update(
	ctx context.Context,
	id string,
	fn domain.MutateFunc,
) (*models.Material, error) {

	data, err := r.store.Update(ctx, CollectionMaterial, id, func(current []byte) ([]byte, error) {
		if current == nil {
			return nil, domain.ErrNotFound
		}
		m, err := decodeMaterial(current)
		if err != nil {
			return nil, err
		}
		if err := fn(m); err != nil {
			if errors.Is(err, domain.ErrUnchanged) {
				return nil, docstore.ErrAbort
			}
			return nil, err
		}
		m.ID = id
		return json.Marshal(materialToRecord(m))
	})
	if err != nil {
		return nil, err
	}
	return decodeMaterial(data)
}

func (r *MaterialRepository) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, CollectionMaterial, id)
}

func decodeMaterial(data []byte) (*models.Material, error) {
	var rec materialRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode material: %w", err)
	}
	return rec.toModel(), nil
}
