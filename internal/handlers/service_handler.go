package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/salonsuite/salon-scheduler/internal/httperr"
	"github.com/salonsuite/salon-scheduler/internal/httpresp"
	"github.com/salonsuite/salon-scheduler/internal/models"
)

// ServiceHandler is the admin-side catalog management: services, their
// options, and categories.
type ServiceHandler struct {
	db *gorm.DB
}

func NewServiceHandler(db *gorm.DB) *ServiceHandler {
	return &ServiceHandler{db: db}
}

// ======================================================
// SERVICES
// ======================================================

type ServiceRequest struct {
	CategoryID  *uint  `json:"category_id"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	DurationMin int    `json:"duration_min" binding:"required,min=1"`
	PriceCents  int    `json:"price_cents" binding:"min=0"`
	Active      *bool  `json:"active"`
}

func (h *ServiceHandler) List(c *gin.Context) {
	var services []models.Service
	if err := h.db.
		Preload("Options").
		Preload("Category").
		Order("id ASC").
		Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Could not list services.")
		return
	}

	httpresp.List(c, services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid payload.")
		return
	}

	svc := models.Service{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		DurationMin: req.DurationMin,
		PriceCents:  req.PriceCents,
		Active:      true,
	}
	if req.Active != nil {
		svc.Active = *req.Active
	}

	if err := h.db.Create(&svc).Error; err != nil {
		httperr.Internal(c, "failed_to_create_service", "Could not create service.")
		return
	}

	c.JSON(http.StatusCreated, svc)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid service id.")
		return
	}

	var svc models.Service
	if err := h.db.First(&svc, id).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Service not found.")
		return
	}

	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid payload.")
		return
	}

	svc.CategoryID = req.CategoryID
	svc.Name = req.Name
	svc.Description = req.Description
	svc.DurationMin = req.DurationMin
	svc.PriceCents = req.PriceCents
	if req.Active != nil {
		svc.Active = *req.Active
	}

	if err := h.db.Save(&svc).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", "Could not update service.")
		return
	}

	httpresp.OK(c, svc)
}

// ======================================================
// OPTIONS
// ======================================================

type ServiceOptionRequest struct {
	Name             string `json:"name" binding:"required"`
	ExtraDurationMin int    `json:"extra_duration_min" binding:"min=0"`
	ExtraPriceCents  int    `json:"extra_price_cents" binding:"min=0"`
}

func (h *ServiceHandler) CreateOption(c *gin.Context) {
	serviceID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid service id.")
		return
	}

	var svc models.Service
	if err := h.db.First(&svc, serviceID).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Service not found.")
		return
	}

	var req ServiceOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid payload.")
		return
	}

	opt := models.ServiceOption{
		ServiceID:        svc.ID,
		Name:             req.Name,
		ExtraDurationMin: req.ExtraDurationMin,
		ExtraPriceCents:  req.ExtraPriceCents,
	}

	if err := h.db.Create(&opt).Error; err != nil {
		httperr.Internal(c, "failed_to_create_option", "Could not create option.")
		return
	}

	c.JSON(http.StatusCreated, opt)
}

func (h *ServiceHandler) DeleteOption(c *gin.Context) {
	serviceID, err1 := strconv.ParseUint(c.Param("id"), 10, 64)
	optionID, err2 := strconv.ParseUint(c.Param("option_id"), 10, 64)
	if err1 != nil || err2 != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid id.")
		return
	}

	res := h.db.
		Where("id = ? AND service_id = ?", optionID, serviceID).
		Delete(&models.ServiceOption{})
	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_option", "Could not delete option.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "option_not_found", "Option not found.")
		return
	}

	c.Status(http.StatusNoContent)
}

// ======================================================
// CATEGORIES
// ======================================================

type CategoryRequest struct {
	Name string `json:"name" binding:"required"`
	Slug string `json:"slug" binding:"required"`
}

func (h *ServiceHandler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid payload.")
		return
	}

	cat := models.Category{Name: req.Name, Slug: req.Slug}
	if err := h.db.Create(&cat).Error; err != nil {
		httperr.Internal(c, "failed_to_create_category", "Could not create category.")
		return
	}

	c.JSON(http.StatusCreated, cat)
}
