package messaging

import (
	"github.com/BruksfildServices01/material-rental/internal/audit"
	bookingDomain "github.com/BruksfildServices01/material-rental/internal/domain/booking"
	domain "github.com/BruksfildServices01/material-rental/internal/domain/messaging"
	"github.com/BruksfildServices01/material-rental/internal/infra/events"
	"github.com/BruksfildServices01/material-rental/internal/logging"
	"github.com/BruksfildServices01/material-rental/internal/usecase/availability"
)

// Deps are shared by the inbox use cases.
type Deps struct {
	Messages     domain.Repository
	Bookings     bookingDomain.Repository
	Availability *availability.Service
	Audit        *audit.Dispatcher
	Events       events.Publisher
	Log          logging.Logger
}
