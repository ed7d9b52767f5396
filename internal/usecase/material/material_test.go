package material

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/material-rental/internal/httperr"
	"github.com/BruksfildServices01/material-rental/internal/infra/docstore"
	"github.com/BruksfildServices01/material-rental/internal/infra/gallery"
	"github.com/BruksfildServices01/material-rental/internal/infra/repository"
	"github.com/BruksfildServices01/material-rental/internal/models"
)

type fakeLister struct {
	objects map[string][]string
	urlErr  error
}

func (f *fakeLister) List(_ context.Context, prefix string) ([]string, error) {
	return f.objects[prefix], nil
}

func (f *fakeLister) URL(_ context.Context, name string) (string, error) {
	if f.urlErr != nil {
		return "", f.urlErr
	}
	return "https://cdn.example.com/" + name + "?v=1", nil
}

func setup(objects map[string][]string) (*repository.MaterialRepository, *GalleryResolver) {
	repo := repository.NewMaterialRepository(docstore.NewMemoryStore())
	return repo, NewGalleryResolver(&fakeLister{objects: objects})
}

func TestGalleryResolverKeepsOrder(t *testing.T) {
	var names []string
	for i := 0; i < 20; i++ {
		names = append(names, fmt.Sprintf("material/m1/%02d.jpg", i))
	}
	g := NewGalleryResolver(&fakeLister{objects: map[string][]string{gallery.Prefix("m1"): names}})

	pics, err := g.Resolve(context.Background(), "m1")
	require.NoError(t, err)
	require.Len(t, pics, 20)
	for i, p := range pics {
		assert.Equal(t, fmt.Sprintf("%02d.jpg", i), p.ID)
	}
}

func TestGalleryResolverError(t *testing.T) {
	g := NewGalleryResolver(&fakeLister{
		objects: map[string][]string{gallery.Prefix("m1"): {"material/m1/a.jpg"}},
		urlErr:  errors.New("denied"),
	})
	_, err := g.Resolve(context.Background(), "m1")
	assert.Error(t, err)
}

func TestCreateMaterial(t *testing.T) {
	ctx := context.Background()
	repo, g := setup(map[string][]string{
		gallery.Prefix("m1"): {"material/m1/a.jpg", "material/m1/b.jpg"},
	})
	uc := NewCreateMaterial(repo, g, nil)

	_, err := uc.Execute(ctx, CreateMaterialInput{})
	assert.True(t, httperr.IsBusiness(err, "material_id_required"))

	m, err := uc.Execute(ctx, CreateMaterialInput{
		Material: models.Material{ID: "m1", Name: "Tente", PresentationPicture: "b.jpg"},
	})
	require.NoError(t, err)
	assert.Len(t, m.ArrayPicture, 2)
	assert.Equal(t, "https://cdn.example.com/material/m1/b.jpg?v=1", m.PresentationPicture)
	assert.Equal(t, []string{}, m.UnavailableDates)

	_, err = uc.Execute(ctx, CreateMaterialInput{Material: models.Material{ID: "m1"}})
	assert.True(t, httperr.IsBusiness(err, "material_exists"))
}

func TestUpdateMaterial(t *testing.T) {
	ctx := context.Background()
	repo, g := setup(nil)
	uc := NewUpdateMaterial(repo, g, nil)

	_, err := uc.Execute(ctx, UpdateMaterialInput{ID: "m1"})
	assert.True(t, httperr.IsBusiness(err, "material_not_found"))

	require.NoError(t, repo.Create(ctx, &models.Material{
		ID:                  "m1",
		Name:                "Tente",
		UnavailableDates:    []string{"2024-01-01"},
		ArrayPicture:        []models.Picture{{Src: "s", ID: "i"}},
		PresentationPicture: "s",
	}))

	m, err := uc.Execute(ctx, UpdateMaterialInput{
		ID:                   "m1",
		Material:             models.Material{Name: "Grande tente"},
		KeepUnavailableDates: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "m1", m.ID)
	assert.Equal(t, "Grande tente", m.Name)
	assert.Equal(t, []string{"2024-01-01"}, m.UnavailableDates)
	// no images in storage: gallery cleared on update
	assert.Empty(t, m.ArrayPicture)
	assert.Equal(t, "", m.PresentationPicture)

	m, err = uc.Execute(ctx, UpdateMaterialInput{
		ID:       "m1",
		Material: models.Material{Name: "Grande tente", UnavailableDates: []string{}},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{}, m.UnavailableDates)
}

func TestSearchAndDelete(t *testing.T) {
	ctx := context.Background()
	repo, _ := setup(nil)
	require.NoError(t, repo.Create(ctx, &models.Material{ID: "m1", Name: "Super Tent"}))

	found, err := NewSearchMaterials(repo).Execute(ctx, "super-tent")
	require.NoError(t, err)
	require.Len(t, found, 1)

	del := NewDeleteMaterial(repo, nil)
	require.NoError(t, del.Execute(ctx, "op", "m1"))
	assert.True(t, httperr.IsBusiness(del.Execute(ctx, "op", "m1"), "material_not_found"))

	_, err = NewGetMaterial(repo).Execute(ctx, "m1")
	assert.True(t, httperr.IsBusiness(err, "material_not_found"))
}
