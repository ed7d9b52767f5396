package messaging

import (
	"context"

	"github.com/BruksfildServices01/material-rental/internal/models"
)

type ToggleRead struct {
	Deps
}

func NewToggleRead(deps Deps) *ToggleRead {
	return &ToggleRead{Deps: deps}
}

func (uc *ToggleRead) Execute(ctx context.Context, id string) (*models.Message, error) {
	m, err := uc.Messages.Update(ctx, id, func(m *models.Message) error {
		m.IsRead = !m.IsRead
		return nil
	})
	if err != nil {
		return nil, businessError(err)
	}
	return m, nil
}
