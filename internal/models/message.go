package models

// Message is a public reservation request waiting for the operator.
type Message struct {
	Booking

	IsRead bool `json:"isRead"`
}

// ToBooking drops the inbox-only fields.
func (m Message) ToBooking() Booking {
	return m.Booking
}
