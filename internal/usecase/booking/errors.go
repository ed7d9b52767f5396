package booking

import (
	"errors"

	domain "github.com/BruksfildServices01/material-rental/internal/domain/booking"
	materialDomain "github.com/BruksfildServices01/material-rental/internal/domain/material"
	"github.com/BruksfildServices01/material-rental/internal/httperr"
)

func businessError(err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return httperr.ErrBusiness("booking_not_found")
	case errors.Is(err, domain.ErrAlreadyExists):
		return httperr.ErrBusiness("booking_exists")
	case errors.Is(err, materialDomain.ErrNotFound):
		return httperr.ErrBusiness("material_not_found")
	}
	return err
}
