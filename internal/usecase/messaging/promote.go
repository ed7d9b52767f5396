package messaging

import (
	"context"

	"github.com/BruksfildServices01/material-rental/internal/audit"
	"github.com/BruksfildServices01/material-rental/internal/infra/events"
	"github.com/BruksfildServices01/material-rental/internal/models"
	"github.com/BruksfildServices01/material-rental/internal/timezone"
)

type PromoteInput struct {
	Actor string
	ID    string
}

// Promote turns a pending message into a booking. The dates were reserved
// when the message was posted, so availability is left alone.
type Promote struct {
	Deps
}

func NewPromote(deps Deps) *Promote {
	return &Promote{Deps: deps}
}

func (uc *Promote) Execute(ctx context.Context, in PromoteInput) (*models.Booking, error) {

	// --------------------------------------------------
	// 1️⃣ The stored message is the source of truth
	// --------------------------------------------------
	m, err := uc.Messages.Get(ctx, in.ID)
	if err != nil {
		return nil, businessError(err)
	}
	b := m.ToBooking()

	// --------------------------------------------------
	// 2️⃣ Write the booking
	// --------------------------------------------------
	if err := uc.Bookings.Create(ctx, &b); err != nil {
		return nil, businessError(err)
	}

	// --------------------------------------------------
	// 3️⃣ Remove the message, drop the booking on failure
	// --------------------------------------------------
	if err := uc.Messages.Delete(ctx, in.ID); err != nil {
		uc.Availability.Compensate(ctx, "delete promoted booking "+b.ID, func(ctx context.Context) error {
			return uc.Bookings.Delete(ctx, b.ID)
		})
		return nil, err
	}

	uc.Audit.Dispatch(audit.Event{
		Actor:    in.Actor,
		Action:   "message_promoted",
		Entity:   "booking",
		EntityID: b.ID,
	})

	if uc.Events != nil {
		err := uc.Events.PublishBookingConfirmed(ctx, events.BookingConfirmed{
			BookingID:    b.ID,
			MaterialID:   b.IDMaterial,
			MaterialName: b.MaterialName,
			BookingDates: b.BookingDates,
			Total:        b.Total,
			Source:       "message",
			ConfirmedAt:  timezone.Now(),
		})
		if err != nil {
			uc.Log.Warn("publish booking.confirmed %s: %v", b.ID, err)
		}
	}

	created, err := uc.Bookings.Get(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	return created, nil
}
