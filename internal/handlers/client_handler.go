package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/salonsuite/salon-scheduler/internal/httperr"
	"github.com/salonsuite/salon-scheduler/internal/httpresp"
	"github.com/salonsuite/salon-scheduler/internal/models"
)

type ClientHandler struct {
	db *gorm.DB
}

func NewClientHandler(db *gorm.DB) *ClientHandler {
	return &ClientHandler{db: db}
}

// List returns the client directory (registered and walk-in), optionally
// filtered by a name/phone search.
func (h *ClientHandler) List(c *gin.Context) {
	search := strings.TrimSpace(strings.ToLower(c.Query("query")))

	q := h.db.Model(&models.Client{})
	if search != "" {
		like := "%" + search + "%"
		q = q.Where("LOWER(name) LIKE ? OR phone LIKE ?", like, like)
	}

	var clients []models.Client
	if err := q.Order("name ASC").Limit(200).Find(&clients).Error; err != nil {
		httperr.Internal(c, "failed_to_list_clients", "Could not list clients.")
		return
	}

	httpresp.List(c, clients)
}
