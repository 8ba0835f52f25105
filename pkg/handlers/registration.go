package handlers

import (
	"net/http"

	"github.com/arnavshah/shiftdesk-api-go/pkg/auth"
	"github.com/arnavshah/shiftdesk-api-go/pkg/scheduler"
	"github.com/gin-gonic/gin"
)

// RegisterOrganization creates an organization and its first manager, and
// logs the manager straight in.
func (h *Handler) RegisterOrganization(c *gin.Context) {
	var req scheduler.OrgRegistration
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.Registration.RegisterOrganization(req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	token, err := auth.CreateToken(result.User)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"organization": result.Organization,
		"user":         result.User,
		"token":        token,
	})
}

// JoinOrganization creates a worker account from an organization join code.
func (h *Handler) JoinOrganization(c *gin.Context) {
	var req scheduler.OrgJoin
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.Registration.JoinOrganization(req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	token, err := auth.CreateToken(result.User)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"organization": result.Organization,
		"user":         result.User,
		"token":        token,
	})
}

// Login exchanges credentials for a JWT.
func (h *Handler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.Stores.Users.GetByEmail(req.Email)
	if err != nil || !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}
	if !user.IsActive {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account disabled"})
		return
	}

	token, err := auth.CreateToken(user)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}
