package booking

import (
	"github.com/BruksfildServices01/material-rental/internal/audit"
	domain "github.com/BruksfildServices01/material-rental/internal/domain/booking"
	"github.com/BruksfildServices01/material-rental/internal/infra/events"
	"github.com/BruksfildServices01/material-rental/internal/logging"
	"github.com/BruksfildServices01/material-rental/internal/usecase/availability"
)

// Deps are shared by the booking use cases.
type Deps struct {
	Bookings     domain.Repository
	Availability *availability.Service
	Audit        *audit.Dispatcher
	Events       events.Publisher
	Log          logging.Logger
}
