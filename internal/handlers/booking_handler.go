package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/material-rental/internal/dto"
	"github.com/BruksfildServices01/material-rental/internal/httpresp"
	"github.com/BruksfildServices01/material-rental/internal/middleware"
	"github.com/BruksfildServices01/material-rental/internal/models"
	ucBooking "github.com/BruksfildServices01/material-rental/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	list             *ucBooking.ListBookings
	get              *ucBooking.GetBooking
	unavailableDates *ucBooking.GetUnavailableDates
	create           *ucBooking.CreateBooking
	update           *ucBooking.UpdateBooking
	markAsPaid       *ucBooking.MarkAsPaid
	delete           *ucBooking.DeleteBooking
}

func NewBookingHandler(
	list *ucBooking.ListBookings,
	get *ucBooking.GetBooking,
	unavailableDates *ucBooking.GetUnavailableDates,
	create *ucBooking.CreateBooking,
	update *ucBooking.UpdateBooking,
	markAsPaid *ucBooking.MarkAsPaid,
	remove *ucBooking.DeleteBooking,
) *BookingHandler {
	return &BookingHandler{
		list:             list,
		get:              get,
		unavailableDates: unavailableDates,
		create:           create,
		update:           update,
		markAsPaid:       markAsPaid,
		delete:           remove,
	}
}

// ======================================================
// READS
// ======================================================

func (h *BookingHandler) List(c *gin.Context) {
	bookings, err := h.list.Execute(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.OK(c, bookings)
}

func (h *BookingHandler) Get(c *gin.Context) {
	b, err := h.get.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.OK(c, b)
}

func (h *BookingHandler) UnavailableDates(c *gin.Context) {
	dates, err := h.unavailableDates.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.OK(c, dates)
}

// ======================================================
// WRITES
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	var req models.Booking
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	created, err := h.create.Execute(c.Request.Context(), ucBooking.CreateBookingInput{
		Actor:   c.GetString(middleware.ContextUserID),
		Booking: req,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.Created(c, created)
}

func (h *BookingHandler) Update(c *gin.Context) {
	var req models.Booking
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	res, err := h.update.Execute(c.Request.Context(), ucBooking.UpdateBookingInput{
		Actor:   c.GetString(middleware.ContextUserID),
		ID:      c.Param("id"),
		Booking: req,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.OK(c, dto.BookingUpdateResponse{
		BookingRes:  res.Booking,
		MaterialRes: res.Material,
	})
}

func (h *BookingHandler) MarkAsPaid(c *gin.Context) {
	_, err := h.markAsPaid.Execute(
		c.Request.Context(),
		c.GetString(middleware.ContextUserID),
		c.Param("id"),
	)
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.Text(c, "Marqué comme payé")
}

func (h *BookingHandler) Delete(c *gin.Context) {
	material, err := h.delete.Execute(
		c.Request.Context(),
		c.GetString(middleware.ContextUserID),
		c.Param("id"),
	)
	if err != nil {
		writeError(c, err)
		return
	}
	if material == nil {
		httpresp.Text(c, "Réservation supprimée")
		return
	}
	httpresp.OK(c, material)
}
