package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/salonsuite/salon-scheduler/internal/domain/appointment"
	"github.com/salonsuite/salon-scheduler/internal/httperr"
	"github.com/salonsuite/salon-scheduler/internal/httpresp"
	"github.com/salonsuite/salon-scheduler/internal/middleware"
	ucAppointment "github.com/salonsuite/salon-scheduler/internal/usecase/appointment"
)

// PlanningHandler is the staff-side daily grid: walk-in bookings with
// custom services, reschedules, cancellations and completions.
type PlanningHandler struct {
	createUC   *ucAppointment.CreateAppointment
	updateUC   *ucAppointment.UpdateAppointment
	cancelUC   *ucAppointment.CancelAppointment
	completeUC *ucAppointment.CompleteAppointment
	byDateUC   *ucAppointment.ListAppointmentsByDate
	byMonthUC  *ucAppointment.ListAppointmentsByMonth
	tz         string
}

func NewPlanningHandler(
	createUC *ucAppointment.CreateAppointment,
	updateUC *ucAppointment.UpdateAppointment,
	cancelUC *ucAppointment.CancelAppointment,
	completeUC *ucAppointment.CompleteAppointment,
	byDateUC *ucAppointment.ListAppointmentsByDate,
	byMonthUC *ucAppointment.ListAppointmentsByMonth,
	tz string,
) *PlanningHandler {
	return &PlanningHandler{
		createUC:   createUC,
		updateUC:   updateUC,
		cancelUC:   cancelUC,
		completeUC: completeUC,
		byDateUC:   byDateUC,
		byMonthUC:  byMonthUC,
		tz:         tz,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type PlanningCreateRequest struct {
	PractitionerID uint `json:"practitioner_id" binding:"required"`

	// catalog booking
	ServiceID       *uint `json:"service_id"`
	ServiceOptionID *uint `json:"service_option_id"`

	// or an ad-hoc custom entry
	CustomServiceName string `json:"custom_service_name"`
	CustomPriceCents  int    `json:"custom_price_cents"`
	CustomDurationMin int    `json:"custom_duration_min"`

	// registered client or walk-in details
	ClientUserID uint   `json:"client_user_id"`
	ClientName   string `json:"client_name"`
	ClientPhone  string `json:"client_phone"`
	ClientEmail  string `json:"client_email"`

	StartAt string `json:"start_at" binding:"required"`
	Notes   string `json:"notes"`
}

type PlanningUpdateRequest struct {
	ServiceID         *uint   `json:"service_id"`
	ServiceOptionID   *uint   `json:"service_option_id"`
	CustomServiceName *string `json:"custom_service_name"`
	CustomPriceCents  *int    `json:"custom_price_cents"`
	CustomDurationMin *int    `json:"custom_duration_min"`
	StartAt           *string `json:"start_at"`
	Notes             *string `json:"notes"`
}

// ======================================================
// CREATE
// ======================================================

func (h *PlanningHandler) Create(c *gin.Context) {
	staffID := c.MustGet(middleware.ContextUserID).(uint)

	var req PlanningCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid payload.")
		return
	}

	startAt, err := parseStartAt(req.StartAt)
	if err != nil {
		httperr.BadRequest(c, "invalid_start_at", "start_at must be an ISO-8601 instant.")
		return
	}

	var selection domain.ServiceSelection
	switch {
	case req.ServiceID != nil:
		selection = domain.CatalogSelection(*req.ServiceID, req.ServiceOptionID)
	case req.CustomServiceName != "":
		selection = domain.CustomSelection(req.CustomServiceName, req.CustomPriceCents, req.CustomDurationMin)
	default:
		httperr.BadRequest(c, "missing_service", "Provide a service or a custom entry.")
		return
	}

	in := ucAppointment.CreateAppointmentInput{
		PractitionerID: req.PractitionerID,
		Selection:      selection,
		StartAt:        startAt,
		Notes:          req.Notes,
		ActorUserID:    &staffID,
		// staff may backdate to log same-day visits
		EnforceFuture: false,
	}

	if req.ClientUserID != 0 {
		in.ClientUserID = req.ClientUserID
	} else {
		in.WalkIn = &ucAppointment.WalkInClient{
			Name:  req.ClientName,
			Phone: req.ClientPhone,
			Email: req.ClientEmail,
		}
	}

	ap, err := h.createUC.Execute(c.Request.Context(), in)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ap)
}

// ======================================================
// LIST
// ======================================================

func (h *PlanningHandler) ListByDate(c *gin.Context) {
	practitionerID, ok := h.practitionerParam(c)
	if !ok {
		return
	}

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Date is required.")
		return
	}

	date, err := parseDateIn(h.tz, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid date.")
		return
	}

	out, err := h.byDateUC.Execute(c.Request.Context(), practitionerID, date)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.List(c, out)
}

func (h *PlanningHandler) ListByMonth(c *gin.Context) {
	practitionerID, ok := h.practitionerParam(c)
	if !ok {
		return
	}

	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 2000 || year > 2100 {
		httperr.BadRequest(c, "invalid_year", "Invalid year.")
		return
	}

	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "Invalid month.")
		return
	}

	out, err := h.byMonthUC.Execute(c.Request.Context(), practitionerID, year, month)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.List(c, out)
}

// ======================================================
// UPDATE / CANCEL / COMPLETE
// ======================================================

func (h *PlanningHandler) Update(c *gin.Context) {
	staffID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	var req PlanningUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid payload.")
		return
	}

	in := ucAppointment.UpdateAppointmentInput{
		AppointmentID: uint(id),
		Notes:         req.Notes,
		ActorUserID:   &staffID,
	}

	switch {
	case req.ServiceID != nil:
		sel := domain.CatalogSelection(*req.ServiceID, req.ServiceOptionID)
		in.Selection = &sel
	case req.CustomServiceName != nil:
		price, duration := 0, 0
		if req.CustomPriceCents != nil {
			price = *req.CustomPriceCents
		}
		if req.CustomDurationMin != nil {
			duration = *req.CustomDurationMin
		}
		sel := domain.CustomSelection(*req.CustomServiceName, price, duration)
		in.Selection = &sel
	}

	if req.StartAt != nil {
		startAt, err := parseStartAt(*req.StartAt)
		if err != nil {
			httperr.BadRequest(c, "invalid_start_at", "start_at must be an ISO-8601 instant.")
			return
		}
		in.StartAt = &startAt
	}

	ap, err := h.updateUC.Execute(c.Request.Context(), in)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

func (h *PlanningHandler) Cancel(c *gin.Context) {
	staffID := c.MustGet(middleware.ContextUserID).(uint)
	role := c.MustGet(middleware.ContextUserRole).(string)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	ap, err := h.cancelUC.Execute(c.Request.Context(), uint(id), ucAppointment.Actor{
		UserID: staffID,
		Role:   role,
	})
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

func (h *PlanningHandler) Complete(c *gin.Context) {
	staffID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	ap, err := h.completeUC.Execute(c.Request.Context(), uint(id), staffID)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

// practitionerParam reads the target calendar. Staff default to their own
// calendar; an explicit practitioner_id switches it.
func (h *PlanningHandler) practitionerParam(c *gin.Context) (uint, bool) {
	if pStr := c.Query("practitioner_id"); pStr != "" {
		pID, err := strconv.ParseUint(pStr, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_practitioner_id", "Invalid practitioner.")
			return 0, false
		}
		return uint(pID), true
	}
	return c.MustGet(middleware.ContextUserID).(uint), true
}
