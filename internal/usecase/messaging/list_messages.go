package messaging

import (
	"context"

	domain "github.com/BruksfildServices01/material-rental/internal/domain/messaging"
	"github.com/BruksfildServices01/material-rental/internal/models"
)

type ListMessages struct {
	repo domain.Repository
}

func NewListMessages(repo domain.Repository) *ListMessages {
	return &ListMessages{repo: repo}
}

func (uc *ListMessages) Execute(ctx context.Context) ([]models.Message, error) {
	return uc.repo.List(ctx)
}

type GetMessage struct {
	repo domain.Repository
}

func NewGetMessage(repo domain.Repository) *GetMessage {
	return &GetMessage{repo: repo}
}

func (uc *GetMessage) Execute(ctx context.Context, id string) (*models.Message, error) {
	m, err := uc.repo.Get(ctx, id)
	if err != nil {
		return nil, businessError(err)
	}
	return m, nil
}
