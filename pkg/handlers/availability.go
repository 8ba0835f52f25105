package handlers

import (
	"net/http"

	"github.com/arnavshah/shiftdesk-api-go/pkg/models"
	"github.com/arnavshah/shiftdesk-api-go/pkg/scheduler"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CreateAvailability declares a new availability window.
func (h *Handler) CreateAvailability(c *gin.Context) {
	var req scheduler.AvailabilityCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	a, err := h.Availability.Create(req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

// ListAvailabilities returns all availability windows.
func (h *Handler) ListAvailabilities(c *gin.Context) {
	out, err := h.Availability.List()
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GetAvailability returns one availability by id.
func (h *Handler) GetAvailability(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	a, err := h.Availability.GetByID(id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// GetAvailabilitiesByUser returns a worker's availability windows.
func (h *Handler) GetAvailabilitiesByUser(c *gin.Context) {
	userID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	out, err := h.Availability.GetByUser(userID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GetAvailabilitiesByUserAndDate returns a worker's windows on one date.
func (h *Handler) GetAvailabilitiesByUserAndDate(c *gin.Context) {
	userID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	out, err := h.Availability.GetByUserAndDate(userID, c.Param("date"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GetAvailabilitiesByDate returns every worker's windows on one date.
func (h *Handler) GetAvailabilitiesByDate(c *gin.Context) {
	out, err := h.Availability.GetByDate(c.Param("date"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// UpdateAvailability changes an availability's note.
func (h *Handler) UpdateAvailability(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req scheduler.AvailabilityUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	a, err := h.Availability.Update(id, req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// DeleteAvailability removes an availability window. Workers may only delete
// their own; managers and admins may delete anyone's.
func (h *Handler) DeleteAvailability(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	a, err := h.Availability.GetByID(id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	callerID, _ := c.Get("userID")
	role := c.GetString("role")
	if a.UserID != callerID.(uuid.UUID) && role != models.RoleManager && role != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Cannot delete another user's availability"})
		return
	}

	if err := h.Availability.Delete(id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}
