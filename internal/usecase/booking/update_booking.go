package booking

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/material-rental/internal/audit"
	materialDomain "github.com/BruksfildServices01/material-rental/internal/domain/material"
	"github.com/BruksfildServices01/material-rental/internal/models"
)

type UpdateBookingInput struct {
	Actor   string
	ID      string
	Booking models.Booking
}

type UpdateBookingResult struct {
	Booking  *models.Booking
	Material *models.Material
}

type UpdateBooking struct {
	Deps
}

func NewUpdateBooking(deps Deps) *UpdateBooking {
	return &UpdateBooking{Deps: deps}
}

func (uc *UpdateBooking) Execute(
	ctx context.Context,
	in UpdateBookingInput,
) (*UpdateBookingResult, error) {

	// --------------------------------------------------
	// 1️⃣ Previous state
	// --------------------------------------------------
	old, err := uc.Bookings.Get(ctx, in.ID)
	if err != nil {
		return nil, businessError(err)
	}

	next := in.Booking
	next.ID = in.ID
	if next.IDMaterial == "" {
		next.IDMaterial = old.IDMaterial
	}

	// --------------------------------------------------
	// 2️⃣ Move the dates on the material(s).
	// A missing material is not an error: the booking is
	// still updated, availability untouched.
	// --------------------------------------------------
	var (
		material *models.Material
		undo     []func(ctx context.Context) error
	)

	if next.IDMaterial == old.IDMaterial {
		material, err = uc.Availability.Replace(ctx, next.IDMaterial, old.BookingDates, next.BookingDates)
		switch {
		case err == nil:
			undo = append(undo, func(ctx context.Context) error {
				_, err := uc.Availability.Replace(ctx, next.IDMaterial, next.BookingDates, old.BookingDates)
				return err
			})
		case !errors.Is(err, materialDomain.ErrNotFound):
			return nil, err
		}
	} else {
		_, err = uc.Availability.Retract(ctx, old.IDMaterial, old.BookingDates)
		switch {
		case err == nil:
			undo = append(undo, func(ctx context.Context) error {
				_, err := uc.Availability.Reserve(ctx, old.IDMaterial, old.BookingDates)
				return err
			})
		case !errors.Is(err, materialDomain.ErrNotFound):
			return nil, err
		}

		material, err = uc.Availability.Reserve(ctx, next.IDMaterial, next.BookingDates)
		switch {
		case err == nil:
			undo = append(undo, func(ctx context.Context) error {
				_, err := uc.Availability.Retract(ctx, next.IDMaterial, next.BookingDates)
				return err
			})
		case !errors.Is(err, materialDomain.ErrNotFound):
			uc.rollback(ctx, in.ID, undo)
			return nil, err
		}
	}

	// --------------------------------------------------
	// 3️⃣ Write the booking
	// --------------------------------------------------
	if err := uc.Bookings.Save(ctx, &next); err != nil {
		uc.rollback(ctx, in.ID, undo)
		return nil, err
	}

	uc.Audit.Dispatch(audit.Event{
		Actor:    in.Actor,
		Action:   "booking_updated",
		Entity:   "booking",
		EntityID: in.ID,
		Metadata: map[string]any{"from": old.BookingDates, "to": next.BookingDates},
	})

	updated, err := uc.Bookings.Get(ctx, in.ID)
	if err != nil {
		return nil, businessError(err)
	}
	return &UpdateBookingResult{Booking: updated, Material: material}, nil
}

func (uc *UpdateBooking) rollback(ctx context.Context, id string, undo []func(ctx context.Context) error) {
	for i := len(undo) - 1; i >= 0; i-- {
		uc.Availability.Compensate(ctx, "restore dates of booking "+id, undo[i])
	}
}
