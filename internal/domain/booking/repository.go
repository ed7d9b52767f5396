package booking

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/material-rental/internal/models"
)

var (
	ErrNotFound      = errors.New("booking not found")
	ErrAlreadyExists = errors.New("booking already exists")
)

type MutateFunc func(b *models.Booking) error

type Repository interface {
	List(ctx context.Context) ([]models.Booking, error)
	Get(ctx context.Context, id string) (*models.Booking, error)
	Create(ctx context.Context, b *models.Booking) error
	Save(ctx context.Context, b *models.Booking) error
	Update(ctx context.Context, id string, fn MutateFunc) (*models.Booking, error)
	Delete(ctx context.Context, id string) error
}
