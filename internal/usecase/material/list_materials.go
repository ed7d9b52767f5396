package material

import (
	"context"

	domain "github.com/BruksfildServices01/material-rental/internal/domain/material"
	"github.com/BruksfildServices01/material-rental/internal/models"
)

type ListMaterials struct {
	repo domain.Repository
}

func NewListMaterials(repo domain.Repository) *ListMaterials {
	return &ListMaterials{repo: repo}
}

func (uc *ListMaterials) Execute(ctx context.Context) ([]models.Material, error) {
	return uc.repo.List(ctx)
}
