package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/salonsuite/salon-scheduler/internal/domain/appointment"
	"github.com/salonsuite/salon-scheduler/internal/httperr"
	"github.com/salonsuite/salon-scheduler/internal/models"
	ucAppointment "github.com/salonsuite/salon-scheduler/internal/usecase/appointment"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	db             *gorm.DB
	availabilityUC *ucAppointment.GetAvailability
	tz             string
}

func NewPublicHandler(
	db *gorm.DB,
	availabilityUC *ucAppointment.GetAvailability,
	tz string,
) *PublicHandler {
	return &PublicHandler{
		db:             db,
		availabilityUC: availabilityUC,
		tz:             tz,
	}
}

////////////////////////////////////////////////////////
// CATALOG
////////////////////////////////////////////////////////

func (h *PublicHandler) ListServices(c *gin.Context) {
	category := strings.TrimSpace(strings.ToLower(c.Query("category")))
	query := strings.TrimSpace(strings.ToLower(c.Query("query")))

	q := h.db.
		Preload("Options").
		Preload("Category").
		Where("active = true")

	if category != "" {
		q = q.Joins("LEFT JOIN categories ON categories.id = services.category_id").
			Where("LOWER(categories.slug) = ?", category)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(services.name) LIKE ? OR LOWER(services.description) LIKE ?", like, like)
	}

	var services []models.Service
	if err := q.Order("services.id ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Could not list services.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"services": services})
}

func (h *PublicHandler) ListCategories(c *gin.Context) {
	var categories []models.Category
	if err := h.db.Order("name ASC").Find(&categories).Error; err != nil {
		httperr.Internal(c, "failed_to_list_categories", "Could not list categories.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

func (h *PublicHandler) ListPractitioners(c *gin.Context) {
	var practitioners []models.User
	if err := h.db.
		Select("id", "name").
		Where("role = ? AND bookable = true AND active = true", models.RoleStaff).
		Order("name ASC").
		Find(&practitioners).Error; err != nil {
		httperr.Internal(c, "failed_to_list_practitioners", "Could not list practitioners.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"practitioners": practitioners})
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	dateStr := c.Query("date")
	serviceIDStr := c.Query("service_id")

	if dateStr == "" || serviceIDStr == "" {
		httperr.BadRequest(c, "missing_params", "Date and service are required.")
		return
	}

	serviceID, err := strconv.ParseUint(serviceIDStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "Invalid service.")
		return
	}

	in := domain.AvailabilityInput{
		ServiceID: uint(serviceID),
	}

	if optStr := c.Query("service_option_id"); optStr != "" {
		optID, err := strconv.ParseUint(optStr, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_option_id", "Invalid service option.")
			return
		}
		id := uint(optID)
		in.ServiceOptionID = &id
	}

	if pStr := c.Query("practitioner_id"); pStr != "" {
		pID, err := strconv.ParseUint(pStr, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_practitioner_id", "Invalid practitioner.")
			return
		}
		in.PractitionerID = uint(pID)
	}

	day, err := parseDateIn(h.tz, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid date.")
		return
	}
	in.Day = day

	availability, err := h.availabilityUC.Execute(c.Request.Context(), in)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":          dateStr,
		"practitioners": availability,
	})
}
