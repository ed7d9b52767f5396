package models

type ProvidedMaterialBooking struct {
	ID           string  `json:"id"`
	MaterialName string  `json:"materialName"`
	Price        float64 `json:"price"`
	Quantity     int     `json:"quantity"`
	Total        float64 `json:"total"`
}

// Customer holds the fields encrypted at rest.
type Customer struct {
	Street    string `json:"street"`
	City      string `json:"city"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
}

type Booking struct {
	ID           string `json:"id"`
	IDMaterial   string `json:"idMaterial"`
	MaterialName string `json:"materialName"`

	Customer

	BookingDates             []string                  `json:"bookingDates"`
	UnavailableDates         []string                  `json:"unavailableDates"`
	ProvidedMaterialsBooking []ProvidedMaterialBooking `json:"providedMaterialsBooking"`

	PricePerDay       float64 `json:"pricePerDay"`
	CoachingPriceHour float64 `json:"coachingPriceHour"`
	CoachingTime      float64 `json:"coachingTime"`
	Total             float64 `json:"total"`
	DownPayment       float64 `json:"downPayment"`
	IsCompleted       bool    `json:"isCompleted"`
	Timestamp         int64   `json:"timestamp"`
}
