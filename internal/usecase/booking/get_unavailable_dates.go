package booking

import (
	"context"

	materialDomain "github.com/BruksfildServices01/material-rental/internal/domain/material"
)

type GetUnavailableDates struct {
	materials materialDomain.Repository
}

func NewGetUnavailableDates(materials materialDomain.Repository) *GetUnavailableDates {
	return &GetUnavailableDates{materials: materials}
}

func (uc *GetUnavailableDates) Execute(ctx context.Context, materialID string) ([]string, error) {
	m, err := uc.materials.Get(ctx, materialID)
	if err != nil {
		return nil, businessError(err)
	}
	return m.UnavailableDates, nil
}
