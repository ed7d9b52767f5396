package material

import (
	"context"

	domain "github.com/BruksfildServices01/material-rental/internal/domain/material"
	"github.com/BruksfildServices01/material-rental/internal/models"
)

type SearchMaterials struct {
	repo domain.Repository
}

func NewSearchMaterials(repo domain.Repository) *SearchMaterials {
	return &SearchMaterials{repo: repo}
}

func (uc *SearchMaterials) Execute(ctx context.Context, query string) ([]models.Material, error) {
	all, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return domain.Search(all, query), nil
}
