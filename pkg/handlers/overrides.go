package handlers

import (
	"net/http"

	"github.com/arnavshah/shiftdesk-api-go/pkg/scheduler"
	"github.com/gin-gonic/gin"
)

// CreateOverride offers part of a shift for coverage.
func (h *Handler) CreateOverride(c *gin.Context) {
	var req scheduler.OverrideCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	o, err := h.Overrides.Create(req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, o)
}

// ListOverrides returns all overrides.
func (h *Handler) ListOverrides(c *gin.Context) {
	out, err := h.Overrides.List()
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// ListOpenOverrides returns overrides that are still claimable.
func (h *Handler) ListOpenOverrides(c *gin.Context) {
	out, err := h.Overrides.ListOpen()
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GetOverridesByShift returns the overrides offered for one shift.
func (h *Handler) GetOverridesByShift(c *gin.Context) {
	shiftID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	out, err := h.Overrides.GetByShift(shiftID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GetOverride returns one override by id.
func (h *Handler) GetOverride(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	o, err := h.Overrides.GetByID(id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

// TakeOverride claims an open override, splitting the underlying shift.
func (h *Handler) TakeOverride(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req scheduler.OverrideTake
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.Overrides.Take(id, req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
