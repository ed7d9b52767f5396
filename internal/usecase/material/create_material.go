package material

import (
	"context"

	"github.com/BruksfildServices01/material-rental/internal/audit"
	domain "github.com/BruksfildServices01/material-rental/internal/domain/material"
	"github.com/BruksfildServices01/material-rental/internal/httperr"
	"github.com/BruksfildServices01/material-rental/internal/models"
)

type CreateMaterialInput struct {
	Actor    string
	Material models.Material
}

type CreateMaterial struct {
	repo    domain.Repository
	gallery *GalleryResolver
	audit   *audit.Dispatcher
}

func NewCreateMaterial(
	repo domain.Repository,
	gallery *GalleryResolver,
	audit *audit.Dispatcher,
) *CreateMaterial {
	return &CreateMaterial{
		repo:    repo,
		gallery: gallery,
		audit:   audit,
	}
}

func (uc *CreateMaterial) Execute(
	ctx context.Context,
	in CreateMaterialInput,
) (*models.Material, error) {

	m := in.Material

	// --------------------------------------------------
	// 1️⃣ Images are uploaded under the id before creation
	// --------------------------------------------------
	if m.ID == "" {
		return nil, httperr.ErrBusiness("material_id_required")
	}

	// --------------------------------------------------
	// 2️⃣ Gallery
	// --------------------------------------------------
	images, err := uc.gallery.Resolve(ctx, m.ID)
	if err != nil {
		return nil, err
	}
	domain.ApplyGallery(&m, images, false)

	// --------------------------------------------------
	// 3️⃣ Persist
	// --------------------------------------------------
	if err := uc.repo.Create(ctx, &m); err != nil {
		return nil, businessError(err)
	}

	uc.audit.Dispatch(audit.Event{
		Actor:    in.Actor,
		Action:   "material_created",
		Entity:   "material",
		EntityID: m.ID,
	})

	created, err := uc.repo.Get(ctx, m.ID)
	if err != nil {
		return nil, businessError(err)
	}
	return created, nil
}
