package messaging

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/material-rental/internal/audit"
	"github.com/BruksfildServices01/material-rental/internal/models"
	"github.com/BruksfildServices01/material-rental/internal/timezone"
)

type PostMessage struct {
	Deps
}

func NewPostMessage(deps Deps) *PostMessage {
	return &PostMessage{Deps: deps}
}

// Execute stores a public reservation request. The input is expected to be
// validated already.
func (uc *PostMessage) Execute(ctx context.Context, in models.Message) (*models.Message, error) {

	// --------------------------------------------------
	// 1️⃣ Server-owned fields
	// --------------------------------------------------
	m := in
	m.ID = uuid.NewString()
	m.IsRead = false
	m.IsCompleted = false
	if m.Timestamp == 0 {
		m.Timestamp = timezone.Now().UnixMilli()
	}

	// --------------------------------------------------
	// 2️⃣ Hold the dates on the material
	// --------------------------------------------------
	if _, err := uc.Availability.Reserve(ctx, m.IDMaterial, m.BookingDates); err != nil {
		return nil, businessError(err)
	}

	// --------------------------------------------------
	// 3️⃣ Write the message, release the dates on failure
	// --------------------------------------------------
	if err := uc.Messages.Save(ctx, &m); err != nil {
		uc.Availability.Compensate(ctx, "retract dates of message "+m.ID, func(ctx context.Context) error {
			_, err := uc.Availability.Retract(ctx, m.IDMaterial, m.BookingDates)
			return err
		})
		return nil, err
	}

	uc.Audit.Dispatch(audit.Event{
		Actor:    "public",
		Action:   "message_received",
		Entity:   "message",
		EntityID: m.ID,
		Metadata: map[string]any{"idMaterial": m.IDMaterial, "bookingDates": m.BookingDates},
	})

	return &m, nil
}
