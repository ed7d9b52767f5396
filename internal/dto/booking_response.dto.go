package dto

import "github.com/BruksfildServices01/material-rental/internal/models"

type BookingUpdateResponse struct {
	BookingRes  *models.Booking  `json:"bookingRes"`
	MaterialRes *models.Material `json:"materialRes,omitempty"`
}
