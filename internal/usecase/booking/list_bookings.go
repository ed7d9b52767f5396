package booking

import (
	"context"

	domain "github.com/BruksfildServices01/material-rental/internal/domain/booking"
	"github.com/BruksfildServices01/material-rental/internal/models"
)

type ListBookings struct {
	repo domain.Repository
}

func NewListBookings(repo domain.Repository) *ListBookings {
	return &ListBookings{repo: repo}
}

func (uc *ListBookings) Execute(ctx context.Context) ([]models.Booking, error) {
	return uc.repo.List(ctx)
}

type GetBooking struct {
	repo domain.Repository
}

func NewGetBooking(repo domain.Repository) *GetBooking {
	return &GetBooking{repo: repo}
}

func (uc *GetBooking) Execute(ctx context.Context, id string) (*models.Booking, error) {
	b, err := uc.repo.Get(ctx, id)
	if err != nil {
		return nil, businessError(err)
	}
	return b, nil
}
