package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/arnavshah/shiftdesk-api-go/pkg/auth"
	"github.com/arnavshah/shiftdesk-api-go/pkg/database"
	"github.com/arnavshah/shiftdesk-api-go/pkg/scheduler"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CalculateShiftsAPI is the machine-facing planning endpoint; calls are
// metered per key and day.
func (h *Handler) CalculateShiftsAPI(c *gin.Context) {
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

	slotCount := 0
	if slots, err := h.Shifts.GetSlotsByOrg(req.OrganizationID); err != nil {
		h.Logger.Warn("could not count slots for usage metering", zap.Error(err))
	} else {
		slotCount = len(slots)
	}
	h.RecordUsage(c, slotCount, len(results))

	c.JSON(http.StatusOK, gin.H{
		"date":        req.Date,
		"assignments": results,
	})
}

// RecordUsage records API usage in the database using an efficient upsert
func (h *Handler) RecordUsage(c *gin.Context, slotCount, assignmentCount int) {
	apiKeyRaw, exists := c.Get("apiKey")
	if !exists {
		return
	}
	apiKey := apiKeyRaw.(*database.APIKey)

	today := time.Now().Format("2006-01-02")

	// OnConflict gives a single-query upsert on both Postgres and SQLite
	h.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key_id"}, {Name: "date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"request_count":     gorm.Expr("request_count + ?", 1),
			"total_slots":       gorm.Expr("total_slots + ?", slotCount),
			"total_assignments": gorm.Expr("total_assignments + ?", assignmentCount),
		}),
	}).Create(&database.APIUsage{
		KeyID:            apiKey.ID,
		Date:             today,
		RequestCount:     1,
		TotalSlots:       slotCount,
		TotalAssignments: assignmentCount,
	})

	now := time.Now()
	h.DB.Model(apiKey).Update("last_used", now)
}

// GetMyUsage returns usage stats for the authenticated API key
func (h *Handler) GetMyUsage(c *gin.Context) {
	apiKeyRaw, exists := c.Get("apiKey")
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "API Key context missing"})
		return
	}
	apiKey := apiKeyRaw.(*database.APIKey)

	var usage []database.APIUsage
	if err := h.DB.Where("key_id = ?", apiKey.ID).Order("date desc").Limit(30).Find(&usage).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch usage details"})
		return
	}

	var totalRequests, totalSlots, totalAssignments int64
	for _, u := range usage {
		totalRequests += int64(u.RequestCount)
		totalSlots += int64(u.TotalSlots)
		totalAssignments += int64(u.TotalAssignments)
	}

	c.JSON(http.StatusOK, gin.H{
		"key_name":      apiKey.Name,
		"rate_limit":    apiKey.RateLimit,
		"usage_history": usage,
		"totals": gin.H{
			"requests":    totalRequests,
			"slots":       totalSlots,
			"assignments": totalAssignments,
		},
	})
}

// GenerateKey mints a new HMAC API key for a named service caller.
func (h *Handler) GenerateKey(c *gin.Context) {
	var req struct {
		Name      string `json:"name" binding:"required"`
		RateLimit int    `json:"rate_limit"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	key := auth.GenerateHMACKey(req.Name)
	rateLimit := req.RateLimit
	if rateLimit <= 0 {
		rateLimit = 10000
	}

	record := database.APIKey{
		Key:        key,
		Name:       req.Name,
		KeyPreview: key[:8] + "...",
		RateLimit:  rateLimit,
	}
	if err := h.DB.Create(&record).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Key already exists for this name"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"key": key, "name": req.Name, "rate_limit": rateLimit})
}

// ListKeys returns all issued API keys without the secret material.
func (h *Handler) ListKeys(c *gin.Context) {
	var keys []database.APIKey
	if err := h.DB.Order("created_at desc").Find(&keys).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch keys"})
		return
	}

	out := make([]gin.H, 0, len(keys))
	for _, k := range keys {
		out = append(out, gin.H{
			"id":          k.ID,
			"name":        k.Name,
			"key_preview": k.KeyPreview,
			"rate_limit":  k.RateLimit,
			"created_at":  k.CreatedAt,
			"last_used":   k.LastUsed,
		})
	}
	c.JSON(http.StatusOK, out)
}

// UpdateKeyLimit changes a key's daily rate limit.
func (h *Handler) UpdateKeyLimit(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req struct {
		RateLimit int `json:"rate_limit" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res := h.DB.Model(&database.APIKey{}).Where("id = ?", id).Update("rate_limit", req.RateLimit)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update key"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Key not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "rate_limit": req.RateLimit})
}

// RevokeKey deletes an API key.
func (h *Handler) RevokeKey(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	res := h.DB.Delete(&database.APIKey{}, id)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not revoke key"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Key not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"revoked": id})
}

// GetUsage returns usage history for one key (admin view).
func (h *Handler) GetUsage(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var usage []database.APIUsage
	if err := h.DB.Where("key_id = ?", id).Order("date desc").Limit(90).Find(&usage).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch usage details"})
		return
	}
	c.JSON(http.StatusOK, usage)
}
