package material

import (
	"context"

	"github.com/BruksfildServices01/material-rental/internal/audit"
	domain "github.com/BruksfildServices01/material-rental/internal/domain/material"
	"github.com/BruksfildServices01/material-rental/internal/models"
)

type UpdateMaterialInput struct {
	Actor    string
	ID       string
	Material models.Material

	// KeepUnavailableDates is set when the body has no unavailableDates:
	// the stored ledger is kept instead of being cleared.
	KeepUnavailableDates bool
}

type UpdateMaterial struct {
	repo    domain.Repository
	gallery *GalleryResolver
	audit   *audit.Dispatcher
}

func NewUpdateMaterial(
	repo domain.Repository,
	gallery *GalleryResolver,
	audit *audit.Dispatcher,
) *UpdateMaterial {
	return &UpdateMaterial{
		repo:    repo,
		gallery: gallery,
		audit:   audit,
	}
}

func (uc *UpdateMaterial) Execute(
	ctx context.Context,
	in UpdateMaterialInput,
) (*models.Material, error) {

	// --------------------------------------------------
	// 1️⃣ Must exist (no storage listing for unknown ids)
	// --------------------------------------------------
	if _, err := uc.repo.Get(ctx, in.ID); err != nil {
		return nil, businessError(err)
	}

	// --------------------------------------------------
	// 2️⃣ Gallery
	// --------------------------------------------------
	next := in.Material
	next.ID = in.ID

	images, err := uc.gallery.Resolve(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	domain.ApplyGallery(&next, images, true)

	// --------------------------------------------------
	// 3️⃣ Atomic replace
	// --------------------------------------------------
	updated, err := uc.repo.Update(ctx, in.ID, func(m *models.Material) error {
		stored := m.UnavailableDates
		*m = next
		if in.KeepUnavailableDates {
			m.UnavailableDates = stored
		}
		return nil
	})
	if err != nil {
		return nil, businessError(err)
	}

	uc.audit.Dispatch(audit.Event{
		Actor:    in.Actor,
		Action:   "material_updated",
		Entity:   "material",
		EntityID: in.ID,
	})

	return updated, nil
}
