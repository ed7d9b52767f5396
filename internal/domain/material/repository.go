package material

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/material-rental/internal/models"
)

var (
	ErrNotFound      = errors.New("material not found")
	ErrAlreadyExists = errors.New("material already exists")

	// ErrUnchanged is returned by a MutateFunc to skip the write.
	ErrUnchanged = errors.New("material unchanged")
)

// MutateFunc edits a material in place inside Repository.Update.
type MutateFunc func(m *models.Material) error

type Repository interface {
	List(ctx context.Context) ([]models.Material, error)
	Get(ctx context.Context, id string) (*models.Material, error)

	// Create fails with ErrAlreadyExists when the id is taken.
	Create(ctx context.Context, m *models.Material) error

	// Update applies fn atomically and returns the stored result.
	// ErrNotFound when the material does not exist.
	Update(ctx context.Context, id string, fn MutateFunc) (*models.Material, error)

	Delete(ctx context.Context, id string) error
}
