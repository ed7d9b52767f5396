package messaging

import (
	"errors"

	bookingDomain "github.com/BruksfildServices01/material-rental/internal/domain/booking"
	materialDomain "github.com/BruksfildServices01/material-rental/internal/domain/material"
	domain "github.com/BruksfildServices01/material-rental/internal/domain/messaging"
	"github.com/BruksfildServices01/material-rental/internal/httperr"
)

func businessError(err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return httperr.ErrBusiness("message_not_found")
	case errors.Is(err, bookingDomain.ErrAlreadyExists):
		return httperr.ErrBusiness("booking_exists")
	case errors.Is(err, materialDomain.ErrNotFound):
		return httperr.ErrBusiness("material_not_found")
	}
	return err
}
