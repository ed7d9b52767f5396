package messaging

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/material-rental/internal/audit"
	materialDomain "github.com/BruksfildServices01/material-rental/internal/domain/material"
	domain "github.com/BruksfildServices01/material-rental/internal/domain/messaging"
	"github.com/BruksfildServices01/material-rental/internal/httperr"
	"github.com/BruksfildServices01/material-rental/internal/models"
)

type DeleteMessage struct {
	Deps
}

func NewDeleteMessage(deps Deps) *DeleteMessage {
	return &DeleteMessage{Deps: deps}
}

// Execute rejects a request: its tentative dates are released and the
// message removed. Returns the material, or nil when it no longer exists.
func (uc *DeleteMessage) Execute(ctx context.Context, actor, id string) (*models.Material, error) {

	// --------------------------------------------------
	// 1️⃣ Message
	// --------------------------------------------------
	m, err := uc.Messages.Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, httperr.ErrBusiness("booking_not_found")
	}
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2️⃣ Remove the message
	// --------------------------------------------------
	if err := uc.Messages.Delete(ctx, id); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 3️⃣ Release the tentative reservation
	// --------------------------------------------------
	material, err := uc.Availability.Retract(ctx, m.IDMaterial, m.BookingDates)
	if err != nil && !errors.Is(err, materialDomain.ErrNotFound) {
		uc.Availability.Compensate(ctx, "restore message "+id, func(ctx context.Context) error {
			return uc.Messages.Save(ctx, m)
		})
		return nil, err
	}

	uc.Audit.Dispatch(audit.Event{
		Actor:    actor,
		Action:   "message_deleted",
		Entity:   "message",
		EntityID: id,
	})

	return material, nil
}
