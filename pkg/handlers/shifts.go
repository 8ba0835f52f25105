package handlers

import (
	"net/http"

	"github.com/arnavshah/shiftdesk-api-go/pkg/scheduler"
	"github.com/gin-gonic/gin"
)

// CreateShift assigns a shift to a worker.
func (h *Handler) CreateShift(c *gin.Context) {
	var req scheduler.ShiftCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	shift, err := h.Shifts.Create(req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, shift)
}

// CreateShiftsBulk assigns a batch of shifts, best-effort per item.
func (h *Handler) CreateShiftsBulk(c *gin.Context) {
	var reqs []scheduler.ShiftCreate
	if err := c.ShouldBindJSON(&reqs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	results := h.Shifts.CreateBulk(reqs)
	created := 0
	for _, r := range results {
		if r.Shift != nil {
			created++
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"results": results,
		"created": created,
		"failed":  len(results) - created,
	})
}

// ListShifts returns all shifts.
func (h *Handler) ListShifts(c *gin.Context) {
	out, err := h.Shifts.List()
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GetShiftsByDate returns all shifts on one date.
func (h *Handler) GetShiftsByDate(c *gin.Context) {
	out, err := h.Shifts.GetByDate(c.Param("date"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GetShiftsByUser returns a worker's shifts.
func (h *Handler) GetShiftsByUser(c *gin.Context) {
	userID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	out, err := h.Shifts.GetByUser(userID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GetShiftsByUserAndDate returns a worker's shifts on one date.
func (h *Handler) GetShiftsByUserAndDate(c *gin.Context) {
	userID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	out, err := h.Shifts.GetByUserAndDate(userID, c.Param("date"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GetShift returns one shift by id.
func (h *Handler) GetShift(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	shift, err := h.Shifts.GetByID(id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, shift)
}

// UpdateShift applies a partial shift change.
func (h *Handler) UpdateShift(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req scheduler.ShiftUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	shift, err := h.Shifts.Update(id, req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, shift)
}

// DeleteShift removes a shift and its overrides.
func (h *Handler) DeleteShift(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.Shifts.Delete(id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

// CreateSlot adds a slot template.
func (h *Handler) CreateSlot(c *gin.Context) {
	var req scheduler.SlotCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	slot, err := h.Shifts.CreateSlot(req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, slot)
}

// ListSlots returns every slot template.
func (h *Handler) ListSlots(c *gin.Context) {
	out, err := h.Shifts.GetSlots()
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// ListSlotsByOrg returns an organization's slot templates.
func (h *Handler) ListSlotsByOrg(c *gin.Context) {
	orgID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	out, err := h.Shifts.GetSlotsByOrg(orgID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GetSlot returns one slot template.
func (h *Handler) GetSlot(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	slot, err := h.Shifts.GetSlotByID(id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, slot)
}

// UpdateSlot applies a partial slot change.
func (h *Handler) UpdateSlot(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req scheduler.SlotUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	slot, err := h.Shifts.UpdateSlot(id, req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, slot)
}

// DeleteSlot removes a slot template.
func (h *Handler) DeleteSlot(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.Shifts.DeleteSlot(id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

// CalculateShifts previews a coverage plan for a date without persisting it.
func (h *Handler) CalculateShifts(c *gin.Context) {
	var req scheduler.ShiftCalculationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	results, err := h.Shifts.CalculateShifts(req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"date":        req.Date,
		"assignments": results,
	})
}
