package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/salonsuite/salon-scheduler/internal/httperr"
	"github.com/salonsuite/salon-scheduler/internal/httpresp"
	"github.com/salonsuite/salon-scheduler/internal/models"
)

// UserHandler is the admin-side user management surface.
type UserHandler struct {
	db *gorm.DB
}

func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{db: db}
}

func (h *UserHandler) List(c *gin.Context) {
	q := h.db.Model(&models.User{})

	if role := c.Query("role"); role != "" {
		q = q.Where("role = ?", role)
	}

	var users []models.User
	if err := q.Order("id ASC").Find(&users).Error; err != nil {
		httperr.Internal(c, "failed_to_list_users", "Could not list users.")
		return
	}

	httpresp.List(c, users)
}

type UpdateUserRequest struct {
	Role     *string `json:"role"`
	Bookable *bool   `json:"bookable"`
	Active   *bool   `json:"active"`
}

func (h *UserHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid user id.")
		return
	}

	var user models.User
	if err := h.db.First(&user, id).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "User not found.")
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid payload.")
		return
	}

	if req.Role != nil {
		switch *req.Role {
		case models.RoleClient, models.RoleStaff, models.RoleAdmin:
			user.Role = *req.Role
		default:
			httperr.BadRequest(c, "invalid_role", "Unknown role.")
			return
		}
	}
	if req.Bookable != nil {
		user.Bookable = *req.Bookable
	}
	if req.Active != nil {
		user.Active = *req.Active
	}

	if err := h.db.Save(&user).Error; err != nil {
		httperr.Internal(c, "failed_to_update_user", "Could not update user.")
		return
	}

	httpresp.OK(c, user)
}
