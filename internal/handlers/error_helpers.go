package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/salonsuite/salon-scheduler/internal/httperr"
)

// writeBusinessError maps a usecase business code to its HTTP shape.
// Anything unclassified is an opaque internal error.
func writeBusinessError(c *gin.Context, err error) {
	code, ok := httperr.BusinessCode(err)
	if !ok {
		httperr.Internal(c, "internal_error", "Something went wrong.")
		return
	}

	switch code {
	case "time_conflict":
		httperr.Conflict(c, code, "That time is no longer available. Please pick another slot.")
	case "slot_busy":
		httperr.Conflict(c, code, "Someone else is booking this calendar right now. Please retry.")
	case "appointment_not_found",
		"service_not_found",
		"option_not_found",
		"practitioner_not_found":
		httperr.NotFound(c, code, "The requested record does not exist.")
	case "not_allowed":
		httperr.Forbidden(c, code, "You are not allowed to do that.")
	case "payment_declined":
		httperr.Write(c, http.StatusPaymentRequired, code, "The payment was declined.")
	case "past_start":
		httperr.BadRequest(c, code, "The requested start time is in the past.")
	case "past_appointment":
		httperr.BadRequest(c, code, "This appointment has already started.")
	case "invalid_state":
		httperr.BadRequest(c, code, "The appointment is not in a state that allows this.")
	default:
		httperr.BadRequest(c, code, "Invalid request.")
	}
}
