package material

import (
	"context"

	"github.com/BruksfildServices01/material-rental/internal/audit"
	domain "github.com/BruksfildServices01/material-rental/internal/domain/material"
)

type DeleteMaterial struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteMaterial(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeleteMaterial {
	return &DeleteMaterial{
		repo:  repo,
		audit: audit,
	}
}

// Execute removes the material only. Bookings and messages pointing at it
// are left as they are.
func (uc *DeleteMaterial) Execute(ctx context.Context, actor, id string) error {
	if _, err := uc.repo.Get(ctx, id); err != nil {
		return businessError(err)
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		Actor:    actor,
		Action:   "material_deleted",
		Entity:   "material",
		EntityID: id,
	})
	return nil
}
