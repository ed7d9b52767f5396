package material

import (
	"strings"

	"github.com/gosimple/slug"

	"github.com/BruksfildServices01/material-rental/internal/models"
)

// Fold lower-cases s, drops accents and strips every separator, so
// "Super Tent", "super-tent" and "Supér tent" all fold to "supertent".
func Fold(s string) string {
	return strings.ReplaceAll(slug.Make(s), "-", "")
}

func Search(materials []models.Material, query string) []models.Material {
	q := Fold(query)

	out := []models.Material{}
	for _, m := range materials {
		if strings.Contains(Fold(m.Name), q) {
			out = append(out, m)
		}
	}
	return out
}
