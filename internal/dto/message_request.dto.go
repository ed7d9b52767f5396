package dto

import "github.com/BruksfildServices01/material-rental/internal/models"

type ProvidedMaterialBookingRequest struct {
	ID           string  `json:"id" binding:"required"`
	MaterialName string  `json:"materialName" binding:"required"`
	Price        float64 `json:"price" binding:"gte=0"`
	Quantity     int     `json:"quantity" binding:"gte=0"`
	Total        float64 `json:"total" binding:"gte=0"`
}

// MessageRequest is the public reservation form. Server-owned fields (id,
// isRead, isCompleted) are not bound.
type MessageRequest struct {
	IDMaterial   string `json:"idMaterial" binding:"required"`
	MaterialName string `json:"materialName" binding:"required"`

	FirstName string `json:"firstName" binding:"required,min=3,max=30"`
	LastName  string `json:"lastName" binding:"required,min=3,max=30"`
	Phone     string `json:"phone" binding:"required,frphone"`
	Email     string `json:"email" binding:"omitempty,email"`
	City      string `json:"city" binding:"required,min=2,max=30"`
	Street    string `json:"street" binding:"max=50"`

	BookingDates             []string                         `json:"bookingDates" binding:"required,min=1,dive,required"`
	UnavailableDates         []string                         `json:"unavailableDates"`
	ProvidedMaterialsBooking []ProvidedMaterialBookingRequest `json:"providedMaterialsBooking" binding:"omitempty,dive"`

	PricePerDay       float64 `json:"pricePerDay" binding:"gte=0"`
	CoachingPriceHour float64 `json:"coachingPriceHour" binding:"gte=0"`
	CoachingTime      float64 `json:"coachingTime" binding:"gte=0"`
	Total             float64 `json:"total" binding:"gte=0"`
	DownPayment       float64 `json:"downPayment" binding:"gte=0"`
	Timestamp         int64   `json:"timestamp"`
}

func (r MessageRequest) ToModel() models.Message {
	items := make([]models.ProvidedMaterialBooking, 0, len(r.ProvidedMaterialsBooking))
	for _, it := range r.ProvidedMaterialsBooking {
		items = append(items, models.ProvidedMaterialBooking(it))
	}

	var m models.Message
	m.IDMaterial = r.IDMaterial
	m.MaterialName = r.MaterialName
	m.Customer = models.Customer{
		Street:    r.Street,
		City:      r.City,
		Email:     r.Email,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Phone:     r.Phone,
	}
	m.BookingDates = r.BookingDates
	m.UnavailableDates = r.UnavailableDates
	m.ProvidedMaterialsBooking = items
	m.PricePerDay = r.PricePerDay
	m.CoachingPriceHour = r.CoachingPriceHour
	m.CoachingTime = r.CoachingTime
	m.Total = r.Total
	m.DownPayment = r.DownPayment
	m.Timestamp = r.Timestamp
	return m
}

type PromoteRequest struct {
	ID string `json:"id" binding:"required"`
}
