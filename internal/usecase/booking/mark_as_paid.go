package booking

import (
	"context"

	"github.com/BruksfildServices01/material-rental/internal/audit"
	"github.com/BruksfildServices01/material-rental/internal/models"
)

type MarkAsPaid struct {
	Deps
}

func NewMarkAsPaid(deps Deps) *MarkAsPaid {
	return &MarkAsPaid{Deps: deps}
}

func (uc *MarkAsPaid) Execute(ctx context.Context, actor, id string) (*models.Booking, error) {
	b, err := uc.Bookings.Update(ctx, id, func(b *models.Booking) error {
		b.IsCompleted = true
		return nil
	})
	if err != nil {
		return nil, businessError(err)
	}

	uc.Audit.Dispatch(audit.Event{
		Actor:    actor,
		Action:   "booking_paid",
		Entity:   "booking",
		EntityID: id,
	})
	return b, nil
}
