package booking

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/material-rental/internal/domain/booking"
	materialDomain "github.com/BruksfildServices01/material-rental/internal/domain/material"
	messagingDomain "github.com/BruksfildServices01/material-rental/internal/domain/messaging"
	"github.com/BruksfildServices01/material-rental/internal/logging"
	"github.com/BruksfildServices01/material-rental/internal/metrics"
	"github.com/BruksfildServices01/material-rental/internal/models"
)

type ReconcileReport struct {
	MaterialsChecked  int `json:"materialsChecked"`
	MaterialsRepaired int `json:"materialsRepaired"`
	DatesRestored     int `json:"datesRestored"`
}

// Reconcile adds back booked dates missing from a material's unavailable
// dates. It never removes a date: operators block days by hand.
type Reconcile struct {
	materials materialDomain.Repository
	bookings  booking.Repository
	messages  messagingDomain.Repository
	metrics   *metrics.Metrics
	log       logging.Logger
}

func NewReconcile(
	materials materialDomain.Repository,
	bookings booking.Repository,
	messages messagingDomain.Repository,
	m *metrics.Metrics,
	log logging.Logger,
) *Reconcile {
	return &Reconcile{
		materials: materials,
		bookings:  bookings,
		messages:  messages,
		metrics:   m,
		log:       log,
	}
}

func (uc *Reconcile) Execute(ctx context.Context) (ReconcileReport, error) {
	var report ReconcileReport

	// --------------------------------------------------
	// 1️⃣ Dates held by bookings and pending messages
	// --------------------------------------------------
	booked, err := uc.bookedDates(ctx)
	if err != nil {
		return report, err
	}

	// --------------------------------------------------
	// 2️⃣ Repair materials one by one
	// --------------------------------------------------
	materials, err := uc.materials.List(ctx)
	if err != nil {
		return report, err
	}

	for _, m := range materials {
		report.MaterialsChecked++

		if len(booking.Missing(m.UnavailableDates, booked[m.ID])) == 0 {
			continue
		}

		restored, err := uc.repair(ctx, m.ID)
		if err != nil {
			uc.log.Error("reconcile material %s: %v", m.ID, err)
			continue
		}

		if restored > 0 {
			report.MaterialsRepaired++
			report.DatesRestored += restored
			uc.log.Warn("reconcile material %s: restored %d dates", m.ID, restored)
		}
	}

	uc.metrics.DatesRestored(report.DatesRestored)
	return report, nil
}

// repair restores the dates missing from one material and returns how many
// are still restored once it is done.
//
// Bookings and messages are read again right before the write. A record
// deleted between that read and the write may already have released its
// dates, so after the write the records are read once more and every
// restored date whose record disappeared is retracted.
func (uc *Reconcile) repair(ctx context.Context, materialID string) (int, error) {

	// --------------------------------------------------
	// 1️⃣ Fresh view of what this material holds
	// --------------------------------------------------
	before, err := uc.bookedDates(ctx)
	if err != nil {
		return 0, err
	}
	dates := before[materialID]

	// --------------------------------------------------
	// 2️⃣ Restore what is missing
	// --------------------------------------------------
	var restored []string
	_, err = uc.materials.Update(ctx, materialID, func(current *models.Material) error {
		restored = booking.Missing(current.UnavailableDates, dates)
		if len(restored) == 0 {
			return materialDomain.ErrUnchanged
		}
		current.UnavailableDates = booking.Reserve(current.UnavailableDates, restored)
		return nil
	})
	switch {
	case errors.Is(err, materialDomain.ErrNotFound):
		return 0, nil
	case err != nil:
		return 0, err
	case len(restored) == 0:
		return 0, nil
	}

	// --------------------------------------------------
	// 3️⃣ Drop restored dates released meanwhile
	// --------------------------------------------------
	after, err := uc.bookedDates(ctx)
	if err != nil {
		return len(restored), err
	}
	gone := booking.Missing(after[materialID], dates)
	stale := booking.Intersect(restored, gone)
	if len(stale) == 0 {
		return len(restored), nil
	}

	_, err = uc.materials.Update(ctx, materialID, func(current *models.Material) error {
		current.UnavailableDates = booking.Retract(current.UnavailableDates, stale)
		return nil
	})
	if err != nil && !errors.Is(err, materialDomain.ErrNotFound) {
		return len(restored), err
	}
	uc.log.Warn("reconcile material %s: %d dates released during repair", materialID, len(stale))
	return len(restored) - len(stale), nil
}

// bookedDates groups the dates of every booking and pending message by
// material.
func (uc *Reconcile) bookedDates(ctx context.Context) (map[string][]string, error) {
	booked := map[string][]string{}

	bookings, err := uc.bookings.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, b := range bookings {
		booked[b.IDMaterial] = append(booked[b.IDMaterial], b.BookingDates...)
	}

	messages, err := uc.messages.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, m := range messages {
		booked[m.IDMaterial] = append(booked[m.IDMaterial], m.BookingDates...)
	}
	return booked, nil
}
