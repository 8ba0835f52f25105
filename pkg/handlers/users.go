package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Me returns the authenticated user.
func (h *Handler) Me(c *gin.Context) {
	userID, ok := c.Get("userID")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	user, err := h.Users.GetByID(userID.(uuid.UUID))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// ListUsers returns the caller's organization members.
func (h *Handler) ListUsers(c *gin.Context) {
	orgID, ok := c.Get("organizationID")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	out, err := h.Users.ListByOrg(orgID.(uuid.UUID))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GetUsersByRole returns the caller's organization members with one role.
func (h *Handler) GetUsersByRole(c *gin.Context) {
	orgID, ok := c.Get("organizationID")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	out, err := h.Users.ListByRole(orgID.(uuid.UUID), c.Param("role"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GetUser returns one user by id.
func (h *Handler) GetUser(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	user, err := h.Users.GetByID(id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// DeleteUser removes an organization member.
func (h *Handler) DeleteUser(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.Users.Delete(id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}
