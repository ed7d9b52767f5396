package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	domain "github.com/BruksfildServices01/material-rental/internal/domain/booking"
	"github.com/BruksfildServices01/material-rental/internal/fieldcrypt"
	"github.com/BruksfildServices01/material-rental/internal/infra/docstore"
	"github.com/BruksfildServices01/material-rental/internal/models"
)

type BookingRepository struct {
	store  docstore.Store
	cipher fieldcrypt.Cipher
}

func NewBookingRepository(store docstore.Store, cipher fieldcrypt.Cipher) *BookingRepository {
	return &BookingRepository{store: store, cipher: cipher}
}

func (r *BookingRepository) List(ctx context.Context) ([]models.Booking, error) {
	docs, err := r.store.List(ctx, CollectionBooking)
	if err != nil {
		return nil, err
	}

	out := make([]models.Booking, 0, len(docs))
	for _, d := range docs {
		b, err := r.decode(d.Data)
		if err != nil {
			return nil, fmt.Errorf("booking %s: %w", d.Key, err)
		}
		out = append(out, *b)
	}
	return out, nil
}

func (r *BookingRepository) Get(ctx context.Context, id string) (*models.Booking, error) {
	data, err := r.store.Get(ctx, CollectionBooking, id)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return r.decode(data)
}

func (r *BookingRepository) Create(ctx context.Context, b *models.Booking) error {
	data, err := r.encode(b)
	if err != nil {
		return err
	}
	_, err = r.store.Update(ctx, CollectionBooking, b.ID, func(current []byte) ([]byte, error) {
		if current != nil {
			return nil, domain.ErrAlreadyExists
		}
		return data, nil
	})
	return err
}

func (r *BookingRepository) Save(ctx context.Context, b *models.Booking) error {
	data, err := r.encode(b)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, CollectionBooking, b.ID, data)
}

func (r *BookingRepository) Update(
	ctx context.Context,
	id string,
	fn domain.MutateFunc,
) (*models.Booking, error) {

	data, err := r.store.Update(ctx, CollectionBooking, id, func(current []byte) ([]byte, error) {
		if current == nil {
			return nil, domain.ErrNotFound
		}
		b, err := r.decode(current)
		if err != nil {
			return nil, err
		}
		if err := fn(b); err != nil {
			return nil, err
		}
		b.ID = id
		return r.encode(b)
	})
	if err != nil {
		return nil, err
	}
	return r.decode(data)
}

func (r *BookingRepository) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, CollectionBooking, id)
}

func (r *BookingRepository) encode(b *models.Booking) ([]byte, error) {
	rec, err := bookingToRecord(r.cipher, b)
	if err != nil {
		return nil, err
	}
	return json.Marshal(rec)
}

func (r *BookingRepository) decode(data []byte) (*models.Booking, error) {
	var rec bookingRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode booking: %w", err)
	}
	return rec.toModel(r.cipher)
}
