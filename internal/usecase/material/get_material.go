package material

import (
	"context"

	domain "github.com/BruksfildServices01/material-rental/internal/domain/material"
	"github.com/BruksfildServices01/material-rental/internal/models"
)

type GetMaterial struct {
	repo domain.Repository
}

func NewGetMaterial(repo domain.Repository) *GetMaterial {
	return &GetMaterial{repo: repo}
}

func (uc *GetMaterial) Execute(ctx context.Context, id string) (*models.Material, error) {
	m, err := uc.repo.Get(ctx, id)
	if err != nil {
		return nil, businessError(err)
	}
	return m, nil
}
