package repository

import (
	"fmt"

	"github.com/BruksfildServices01/material-rental/internal/fieldcrypt"
	"github.com/BruksfildServices01/material-rental/internal/models"
	"github.com/BruksfildServices01/material-rental/internal/sentinel"
)

const (
	CollectionMaterial  = "material"
	CollectionBooking   = "booking"
	CollectionMessaging = "messaging"
)

// --------------------------------------------------
// Stored shapes. An empty list is written as ["emptyArray"] and never read
// back as such: date lists through sentinel.ForStorage/ForRead, typed lists
// through sentinel.List.
// --------------------------------------------------

type materialRecord struct {
	ID                  string                                 `json:"id"`
	Name                string                                 `json:"name"`
	PricePerDay         float64                                `json:"pricePerDay"`
	CoachingPriceHour   float64                                `json:"coachingPriceHour"`
	ProvidedMaterials   sentinel.List[models.ProvidedMaterial] `json:"providedMaterials"`
	UnavailableDates    []string                               `json:"unavailableDates"`
	ArrayPicture        sentinel.List[models.Picture]          `json:"arrayPicture"`
	PresentationPicture string                                 `json:"presentationPicture"`
}

type bookingRecord struct {
	ID           string `json:"id"`
	IDMaterial   string `json:"idMaterial"`
	MaterialName string `json:"materialName"`

	Street    string `json:"street"`
	City      string `json:"city"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`

	BookingDates             []string                                      `json:"bookingDates"`
	UnavailableDates         []string                                      `json:"unavailableDates"`
	ProvidedMaterialsBooking sentinel.List[models.ProvidedMaterialBooking] `json:"providedMaterialsBooking"`

	PricePerDay       float64 `json:"pricePerDay"`
	CoachingPriceHour float64 `json:"coachingPriceHour"`
	CoachingTime      float64 `json:"coachingTime"`
	Total             float64 `json:"total"`
	DownPayment       float64 `json:"downPayment"`
	IsCompleted       bool    `json:"isCompleted"`
	Timestamp         int64   `json:"timestamp"`
}

type messageRecord struct {
	bookingRecord

	IsRead bool `json:"isRead"`
}

// --------------------------------------------------
// Material
// --------------------------------------------------

func materialToRecord(m *models.Material) materialRecord {
	return materialRecord{
		ID:                  m.ID,
		Name:                m.Name,
		PricePerDay:         m.PricePerDay,
		CoachingPriceHour:   m.CoachingPriceHour,
		ProvidedMaterials:   m.ProvidedMaterials,
		UnavailableDates:    sentinel.ForStorage(m.UnavailableDates),
		ArrayPicture:        m.ArrayPicture,
		PresentationPicture: m.PresentationPicture,
	}
}

func (r materialRecord) toModel() *models.Material {
	return &models.Material{
		ID:                  r.ID,
		Name:                r.Name,
		PricePerDay:         r.PricePerDay,
		CoachingPriceHour:   r.CoachingPriceHour,
		ProvidedMaterials:   r.ProvidedMaterials.Slice(),
		UnavailableDates:    sentinel.ForRead(r.UnavailableDates),
		ArrayPicture:        r.ArrayPicture.Slice(),
		PresentationPicture: r.PresentationPicture,
	}
}

// --------------------------------------------------
// Booking (PII encrypted at rest)
// --------------------------------------------------

func bookingToRecord(c fieldcrypt.Cipher, b *models.Booking) (bookingRecord, error) {
	rec := bookingRecord{
		ID:                       b.ID,
		IDMaterial:               b.IDMaterial,
		MaterialName:             b.MaterialName,
		BookingDates:             sentinel.ForStorage(b.BookingDates),
		UnavailableDates:         sentinel.ForStorage(b.UnavailableDates),
		ProvidedMaterialsBooking: b.ProvidedMaterialsBooking,
		PricePerDay:              b.PricePerDay,
		CoachingPriceHour:        b.CoachingPriceHour,
		CoachingTime:             b.CoachingTime,
		Total:                    b.Total,
		DownPayment:              b.DownPayment,
		IsCompleted:              b.IsCompleted,
		Timestamp:                b.Timestamp,
	}

	fields := []struct {
		dst *string
		src string
	}{
		{&rec.Street, b.Street},
		{&rec.City, b.City},
		{&rec.Email, b.Email},
		{&rec.FirstName, b.FirstName},
		{&rec.LastName, b.LastName},
		{&rec.Phone, b.Phone},
	}
	for _, f := range fields {
		v, err := c.Encrypt(f.src)
		if err != nil {
			return bookingRecord{}, fmt.Errorf("encrypt booking %s: %w", b.ID, err)
		}
		*f.dst = v
	}
	return rec, nil
}

func (r bookingRecord) toModel(c fieldcrypt.Cipher) (*models.Booking, error) {
	b := &models.Booking{
		ID:                       r.ID,
		IDMaterial:               r.IDMaterial,
		MaterialName:             r.MaterialName,
		BookingDates:             sentinel.ForRead(r.BookingDates),
		UnavailableDates:         sentinel.ForRead(r.UnavailableDates),
		ProvidedMaterialsBooking: r.ProvidedMaterialsBooking.Slice(),
		PricePerDay:              r.PricePerDay,
		CoachingPriceHour:        r.CoachingPriceHour,
		CoachingTime:             r.CoachingTime,
		Total:                    r.Total,
		DownPayment:              r.DownPayment,
		IsCompleted:              r.IsCompleted,
		Timestamp:                r.Timestamp,
	}

	fields := []struct {
		dst *string
		src string
	}{
		{&b.Street, r.Street},
		{&b.City, r.City},
		{&b.Email, r.Email},
		{&b.FirstName, r.FirstName},
		{&b.LastName, r.LastName},
		{&b.Phone, r.Phone},
	}
	for _, f := range fields {
		v, err := c.Decrypt(f.src)
		if err != nil {
			return nil, fmt.Errorf("decrypt booking %s: %w", r.ID, err)
		}
		*f.dst = v
	}
	return b, nil
}

func messageToRecord(c fieldcrypt.Cipher, m *models.Message) (messageRecord, error) {
	rec, err := bookingToRecord(c, &m.Booking)
	if err != nil {
		return messageRecord{}, err
	}
	return messageRecord{bookingRecord: rec, IsRead: m.IsRead}, nil
}

func (r messageRecord) toModel(c fieldcrypt.Cipher) (*models.Message, error) {
	b, err := r.bookingRecord.toModel(c)
	if err != nil {
		return nil, err
	}
	return &models.Message{Booking: *b, IsRead: r.IsRead}, nil
}
