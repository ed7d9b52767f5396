package booking

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/material-rental/internal/audit"
	materialDomain "github.com/BruksfildServices01/material-rental/internal/domain/material"
	"github.com/BruksfildServices01/material-rental/internal/models"
)

type DeleteBooking struct {
	Deps
}

func NewDeleteBooking(deps Deps) *DeleteBooking {
	return &DeleteBooking{Deps: deps}
}

// Execute returns the material with the booking's dates released, or nil
// when the material no longer exists.
func (uc *DeleteBooking) Execute(ctx context.Context, actor, id string) (*models.Material, error) {

	// --------------------------------------------------
	// 1️⃣ Booking
	// --------------------------------------------------
	b, err := uc.Bookings.Get(ctx, id)
	if err != nil {
		return nil, businessError(err)
	}

	// --------------------------------------------------
	// 2️⃣ Remove the booking
	// --------------------------------------------------
	if err := uc.Bookings.Delete(ctx, id); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 3️⃣ Release its dates
	// --------------------------------------------------
	material, err := uc.Availability.Retract(ctx, b.IDMaterial, b.BookingDates)
	if err != nil && !errors.Is(err, materialDomain.ErrNotFound) {
		uc.Availability.Compensate(ctx, "restore booking "+id, func(ctx context.Context) error {
			return uc.Bookings.Save(ctx, b)
		})
		return nil, err
	}

	uc.Audit.Dispatch(audit.Event{
		Actor:    actor,
		Action:   "booking_deleted",
		Entity:   "booking",
		EntityID: id,
	})

	return material, nil
}
