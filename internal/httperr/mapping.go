package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type mapped struct {
	status  int
	message string
}

// known maps business codes raised by use cases to a response.
var known = map[string]mapped{
	"invalid_request":           {http.StatusBadRequest, "Invalid request body"},
	"class_id_required":         {http.StatusBadRequest, "Class ID is required"},
	"identity_required":         {http.StatusBadRequest, "Either member ID or guest info is required"},
	"invalid_date":              {http.StatusBadRequest, "Date must be RFC 3339 or YYYY-MM-DD"},
	"invalid_status":            {http.StatusBadRequest, "Unknown status"},
	"email_required":            {http.StatusBadRequest, "Email is required"},
	"invalid_plan":              {http.StatusBadRequest, "Unknown plan"},
	"invalid_image":             {http.StatusBadRequest, "Image must be a JPEG, PNG or WebP file"},
	"invalid_category":          {http.StatusBadRequest, "Unknown category"},
	"invalid_time_range":        {http.StatusBadRequest, "End time must be after start time"},
	"image_too_large":           {http.StatusRequestEntityTooLarge, "Image must be at most 8 MiB"},
	"class_not_found":           {http.StatusNotFound, "Class not found"},
	"schedule_not_found":        {http.StatusNotFound, "Schedule not found for this class"},
	"member_not_found":          {http.StatusNotFound, "Member not found"},
	"booking_not_found":         {http.StatusNotFound, "Booking not found"},
	"trainer_not_found":         {http.StatusNotFound, "Trainer not found"},
	"contact_not_found":         {http.StatusNotFound, "Contact not found"},
	"no_membership":             {http.StatusForbidden, "No membership found for this member"},
	"membership_inactive":       {http.StatusForbidden, "Membership is not active"},
	"membership_expired":        {http.StatusForbidden, "Membership has expired"},
	"email_already_registered":  {http.StatusConflict, "Email already registered"},
	"schedule_in_use":           {http.StatusConflict, "Schedule still has bookings"},
	"verification_failed":       {http.StatusInternalServerError, "Verification failed. Please try again."},
	"payments_unavailable":      {http.StatusServiceUnavailable, "Online payments are not configured"},
	"image_storage_unavailable": {http.StatusServiceUnavailable, "Image storage is not configured"},
}

// Lookup returns the status and message registered for code.
func Lookup(code string) (int, string, bool) {
	m, ok := known[code]
	return m.status, m.message, ok
}

// FromError writes the response matching err's business code, or a generic 500.
func FromError(c *gin.Context, err error, fallbackCode, fallbackMessage string) {
	code := CodeOf(err)
	if m, ok := known[code]; ok {
		Write(c, m.status, code, m.message)
		return
	}
	Internal(c, fallbackCode, fallbackMessage)
}
