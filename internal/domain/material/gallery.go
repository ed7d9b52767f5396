package material

import (
	"strings"

	"github.com/BruksfildServices01/material-rental/internal/models"
)

// ApplyGallery sets the pictures of m from the images found in storage.
//
// With images: arrayPicture becomes images, an empty presentation picture
// defaults to the first image, otherwise the submitted value is an image id
// resolved against images ("" when unknown). On update a value that is
// already a URL is kept.
//
// Without images: create keeps what was submitted, update clears both fields.
func ApplyGallery(m *models.Material, images []models.Picture, updating bool) {
	if len(images) == 0 {
		if updating {
			m.ArrayPicture = []models.Picture{}
			m.PresentationPicture = ""
		}
		return
	}

	m.ArrayPicture = images

	switch {
	case m.PresentationPicture == "":
		m.PresentationPicture = images[0].Src
	case updating && strings.Contains(m.PresentationPicture, "https"):
	default:
		m.PresentationPicture = pictureSrc(images, m.PresentationPicture)
	}
}

func pictureSrc(images []models.Picture, id string) string {
	for _, img := range images {
		if img.ID == id {
			return img.Src
		}
	}
	return ""
}
