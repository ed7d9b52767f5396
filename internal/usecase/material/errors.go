package material

import (
	"errors"

	domain "github.com/BruksfildServices01/material-rental/internal/domain/material"
	"github.com/BruksfildServices01/material-rental/internal/httperr"
)

func businessError(err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return httperr.ErrBusiness("material_not_found")
	case errors.Is(err, domain.ErrAlreadyExists):
		return httperr.ErrBusiness("material_exists")
	}
	return err
}
