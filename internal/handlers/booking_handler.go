package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/salonsuite/salon-scheduler/internal/domain/appointment"
	"github.com/salonsuite/salon-scheduler/internal/httperr"
	"github.com/salonsuite/salon-scheduler/internal/middleware"
	"github.com/salonsuite/salon-scheduler/internal/models"
	ucAppointment "github.com/salonsuite/salon-scheduler/internal/usecase/appointment"
)

// BookingHandler is the client-facing booking surface: pick a slot from
// the availability view, pay, book; cancel while still in the future.
type BookingHandler struct {
	createUC *ucAppointment.CreateAppointment
	cancelUC *ucAppointment.CancelAppointment
}

func NewBookingHandler(
	createUC *ucAppointment.CreateAppointment,
	cancelUC *ucAppointment.CancelAppointment,
) *BookingHandler {
	return &BookingHandler{
		createUC: createUC,
		cancelUC: cancelUC,
	}
}

type CreateBookingRequest struct {
	ServiceID       uint   `json:"service_id" binding:"required"`
	ServiceOptionID *uint  `json:"service_option_id"`
	PractitionerID  uint   `json:"practitioner_id" binding:"required"`
	StartAt         string `json:"start_at" binding:"required"`
	CardToken       string `json:"card_token"`
	PayerEmail      string `json:"payer_email"`
}

func (h *BookingHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid payload.")
		return
	}

	startAt, err := parseStartAt(req.StartAt)
	if err != nil {
		httperr.BadRequest(c, "invalid_start_at", "start_at must be an ISO-8601 instant.")
		return
	}

	ap, err := h.createUC.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		PractitionerID: req.PractitionerID,
		Selection:      domain.CatalogSelection(req.ServiceID, req.ServiceOptionID),
		StartAt:        startAt,
		ClientUserID:   userID,
		EnforceFuture:  true,
		CardToken:      req.CardToken,
		PayerEmail:     req.PayerEmail,
		ActorUserID:    &userID,
	})
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ap)
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	ap, err := h.cancelUC.Execute(c.Request.Context(), uint(id), ucAppointment.Actor{
		UserID: userID,
		Role:   models.RoleClient,
	})
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}
