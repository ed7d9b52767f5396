package booking

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/material-rental/internal/audit"
	domain "github.com/BruksfildServices01/material-rental/internal/domain/booking"
	"github.com/BruksfildServices01/material-rental/internal/httperr"
	"github.com/BruksfildServices01/material-rental/internal/infra/events"
	"github.com/BruksfildServices01/material-rental/internal/models"
	"github.com/BruksfildServices01/material-rental/internal/timezone"
)

type CreateBookingInput struct {
	Actor   string
	Booking models.Booking
}

type CreateBooking struct {
	Deps
}

func NewCreateBooking(deps Deps) *CreateBooking {
	return &CreateBooking{Deps: deps}
}

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Booking, error) {

	b := in.Booking

	// --------------------------------------------------
	// 1️⃣ Identity
	// --------------------------------------------------
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.IDMaterial == "" {
		return nil, httperr.ErrBusiness("material_id_required")
	}
	if b.Timestamp == 0 {
		b.Timestamp = timezone.Now().UnixMilli()
	}

	if _, err := uc.Bookings.Get(ctx, b.ID); err == nil {
		return nil, httperr.ErrBusiness("booking_exists")
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	// --------------------------------------------------
	// 2️⃣ Reserve the dates on the material
	// --------------------------------------------------
	if _, err := uc.Availability.Reserve(ctx, b.IDMaterial, b.BookingDates); err != nil {
		return nil, businessError(err)
	}

	// --------------------------------------------------
	// 3️⃣ Write the booking, undo the reservation on failure
	// --------------------------------------------------
	if err := uc.Bookings.Create(ctx, &b); err != nil {
		uc.Availability.Compensate(ctx, "retract dates of booking "+b.ID, func(ctx context.Context) error {
			_, err := uc.Availability.Retract(ctx, b.IDMaterial, b.BookingDates)
			return err
		})
		return nil, businessError(err)
	}

	uc.Audit.Dispatch(audit.Event{
		Actor:    in.Actor,
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: b.ID,
		Metadata: map[string]any{"idMaterial": b.IDMaterial, "bookingDates": b.BookingDates},
	})
	publishConfirmed(ctx, uc.Deps, &b, "booking")

	created, err := uc.Bookings.Get(ctx, b.ID)
	if err != nil {
		return nil, businessError(err)
	}
	return created, nil
}

func publishConfirmed(ctx context.Context, deps Deps, b *models.Booking, source string) {
	if deps.Events == nil {
		return
	}
	err := deps.Events.PublishBookingConfirmed(ctx, events.BookingConfirmed{
		BookingID:    b.ID,
		MaterialID:   b.IDMaterial,
		MaterialName: b.MaterialName,
		BookingDates: b.BookingDates,
		Total:        b.Total,
		Source:       source,
		ConfirmedAt:  timezone.Now(),
	})
	if err != nil {
		deps.Log.Warn("publish booking.confirmed %s: %v", b.ID, err)
	}
}
