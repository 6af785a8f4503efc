package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/ironpeak-gym/internal/dto"
	"github.com/BruksfildServices01/ironpeak-gym/internal/httperr"
	ucBooking "github.com/BruksfildServices01/ironpeak-gym/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	submit *ucBooking.SubmitBooking
	update *ucBooking.UpdateBookingStatus
	remove *ucBooking.DeleteBooking
	list   *ucBooking.ListBookings
}

func NewBookingHandler(
	submit *ucBooking.SubmitBooking,
	update *ucBooking.UpdateBookingStatus,
	remove *ucBooking.DeleteBooking,
	list *ucBooking.ListBookings,
) *BookingHandler {
	return &BookingHandler{
		submit: submit,
		update: update,
		remove: remove,
		list:   list,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	ClassID    string `json:"classId"`
	ScheduleID string `json:"scheduleId"`
	MemberID   string `json:"memberId"`
	GuestName  string `json:"guestName" binding:"max=100"`
	GuestEmail string `json:"guestEmail" binding:"omitempty,gym_email"`
	GuestPhone string `json:"guestPhone" binding:"max=30"`
	Date       string `json:"date"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status"`
}

// ======================================================
// CREATE
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid booking request.")
		return
	}

	res, err := h.submit.Execute(c.Request.Context(), ucBooking.SubmitBookingInput{
		ClassID:    req.ClassID,
		ScheduleID: req.ScheduleID,
		MemberID:   req.MemberID,
		GuestName:  req.GuestName,
		GuestEmail: req.GuestEmail,
		GuestPhone: req.GuestPhone,
		Date:       req.Date,
	})
	if err != nil {
		respondError(c, err, "failed_to_create_booking", "Failed to create booking")
		return
	}

	out := dto.FromBooking(res.Booking)
	out.GymClass = &dto.ClassSummary{Name: res.ClassName}
	out.Waitlisted = res.Waitlisted

	c.JSON(http.StatusCreated, out)
}

// ======================================================
// LIST
// ======================================================

func (h *BookingHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	bookings, err := h.list.Execute(c.Request.Context(), ucBooking.ListBookingsInput{
		Status:  c.Query("status"),
		ClassID: c.Query("classId"),
		Limit:   limit,
	})
	if err != nil {
		respondListError(c, err, "failed_to_fetch_bookings", "Failed to fetch bookings")
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// ======================================================
// UPDATE STATUS
// ======================================================

func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	var req UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid status update.")
		return
	}

	b, err := h.update.Execute(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		respondError(c, err, "failed_to_update_booking", "Failed to update booking")
		return
	}

	c.JSON(http.StatusOK, dto.FromBooking(b))
}

// ======================================================
// DELETE
// ======================================================

func (h *BookingHandler) Delete(c *gin.Context) {
	if err := h.remove.Execute(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "failed_to_delete_booking", "Failed to delete booking")
		return
	}

	success(c)
}
