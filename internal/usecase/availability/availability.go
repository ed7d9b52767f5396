// Package availability applies ledger changes to a material's unavailable
// dates and runs the compensating actions of the booking sagas.
package availability

import (
	"context"
	"time"

	ledger "github.com/BruksfildServices01/material-rental/internal/domain/booking"
	domain "github.com/BruksfildServices01/material-rental/internal/domain/material"
	"github.com/BruksfildServices01/material-rental/internal/logging"
	"github.com/BruksfildServices01/material-rental/internal/metrics"
	"github.com/BruksfildServices01/material-rental/internal/models"
)

const compensationTimeout = 10 * time.Second

type Service struct {
	materials domain.Repository
	metrics   *metrics.Metrics
	log       logging.Logger
}

func NewService(
	materials domain.Repository,
	m *metrics.Metrics,
	log logging.Logger,
) *Service {
	return &Service{
		materials: materials,
		metrics:   m,
		log:       log,
	}
}

// Reserve adds dates to the material. domain.ErrNotFound when it is absent.
func (s *Service) Reserve(ctx context.Context, materialID string, dates []string) (*models.Material, error) {
	return s.apply(ctx, "reserve", materialID, func(unavailable []string) []string {
		return ledger.Reserve(unavailable, dates)
	})
}

func (s *Service) Retract(ctx context.Context, materialID string, dates []string) (*models.Material, error) {
	return s.apply(ctx, "retract", materialID, func(unavailable []string) []string {
		return ledger.Retract(unavailable, dates)
	})
}

func (s *Service) Replace(ctx context.Context, materialID string, old, new []string) (*models.Material, error) {
	return s.apply(ctx, "replace", materialID, func(unavailable []string) []string {
		return ledger.Replace(unavailable, old, new)
	})
}

func (s *Service) apply(
	ctx context.Context,
	op string,
	materialID string,
	change func([]string) []string,
) (*models.Material, error) {

	m, err := s.materials.Update(ctx, materialID, func(m *models.Material) error {
		m.UnavailableDates = change(m.UnavailableDates)
		return nil
	})
	s.metrics.LedgerOperation(op, err)
	return m, err
}

// Compensate runs undo even when the request context is already cancelled.
// A failure is logged and counted; the reconciler repairs what is left.
func (s *Service) Compensate(ctx context.Context, what string, undo func(ctx context.Context) error) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), compensationTimeout)
	defer cancel()

	if err := undo(ctx); err != nil {
		s.metrics.CompensationFailed()
		s.log.Error("compensation %s failed: %v", what, err)
		return
	}
	s.log.Warn("compensation %s applied", what)
}
