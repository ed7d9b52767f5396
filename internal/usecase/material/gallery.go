package material

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/BruksfildServices01/material-rental/internal/infra/gallery"
	"github.com/BruksfildServices01/material-rental/internal/models"
)

const maxConcurrentURLLookups = 8

type GalleryResolver struct {
	lister gallery.Lister
}

func NewGalleryResolver(lister gallery.Lister) *GalleryResolver {
	return &GalleryResolver{lister: lister}
}

// Resolve lists the images stored for a material and resolves their URLs
// concurrently, keeping the listing order.
func (g *GalleryResolver) Resolve(ctx context.Context, materialID string) ([]models.Picture, error) {
	names, err := g.lister.List(ctx, gallery.Prefix(materialID))
	if err != nil {
		return nil, fmt.Errorf("gallery %s: %w", materialID, err)
	}
	if len(names) == 0 {
		return nil, nil
	}

	pictures := make([]models.Picture, len(names))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(maxConcurrentURLLookups)
	for i, name := range names {
		eg.Go(func() error {
			u, err := g.lister.URL(ctx, name)
			if err != nil {
				return err
			}
			pictures[i] = models.Picture{
				Src: u,
				ID:  gallery.ExtractImageID(u, materialID),
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("gallery %s: %w", materialID, err)
	}
	return pictures, nil
}
