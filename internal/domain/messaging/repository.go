package messaging

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/material-rental/internal/models"
)

var ErrNotFound = errors.New("message not found")

type MutateFunc func(m *models.Message) error

type Repository interface {
	List(ctx context.Context) ([]models.Message, error)
	Get(ctx context.Context, id string) (*models.Message, error)
	Save(ctx context.Context, m *models.Message) error
	Update(ctx context.Context, id string, fn MutateFunc) (*models.Message, error)
	Delete(ctx context.Context, id string) error
}
