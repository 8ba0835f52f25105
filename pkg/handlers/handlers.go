package handlers

import (
	"errors"
	"net/http"

	"github.com/arnavshah/shiftdesk-api-go/pkg/auth"
	"github.com/arnavshah/shiftdesk-api-go/pkg/database"
	"github.com/arnavshah/shiftdesk-api-go/pkg/models"
	"github.com/arnavshah/shiftdesk-api-go/pkg/scheduler"
	"github.com/arnavshah/shiftdesk-api-go/pkg/store"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Handler contains dependencies for the route handlers
type Handler struct {
	DB     *gorm.DB
	Stores store.Stores
	Logger *zap.Logger

	Availability *scheduler.AvailabilityService
	Shifts       *scheduler.ShiftService
	Overrides    *scheduler.OverrideService
	Registration *scheduler.RegistrationService
	Users        *scheduler.UserService
}

// New wires the service layer over a gorm connection.
func New(db *gorm.DB, logger *zap.Logger) *Handler {
	g := store.NewGorm(db)
	stores := g.Stores()

	return &Handler{
		DB:           db,
		Stores:       stores,
		Logger:       logger,
		Availability: scheduler.NewAvailabilityService(stores, g, logger),
		Shifts:       scheduler.NewShiftService(stores, g, logger),
		Overrides:    scheduler.NewOverrideService(stores, g, logger),
		Registration: scheduler.NewRegistrationService(stores, g, logger),
		Users:        scheduler.NewUserService(stores, logger),
	}
}

// AuthMiddleware verifies the JWT token and stores the caller's identity in
// the request context.
func (h *Handler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("Authorization")
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		// Strip "Bearer " if present
		if len(token) > 7 && token[:7] == "Bearer " {
			token = token[7:]
		}

		claims, err := auth.VerifyToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("organizationID", claims.OrganizationID)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// RequireManager allows only managers and admins through.
func (h *Handler) RequireManager() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		if role != models.RoleManager && role != models.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Manager role required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// APIKeyMiddleware verifies the HMAC-signed API key for machine callers of
// the planning endpoint.
func (h *Handler) APIKeyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader("Authorization")
		if key == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "API Key required"})
			c.Abort()
			return
		}

		if len(key) > 7 && key[:7] == "Bearer " {
			key = key[7:]
		}

		name, err := auth.VerifyHMACKey(key)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid API Key signature"})
			c.Abort()
			return
		}

		// Fetch or create the key record to track usage
		var apiKey database.APIKey
		h.DB.Where(database.APIKey{Key: key}).FirstOrCreate(&apiKey, database.APIKey{
			Key:       key,
			Name:      name,
			RateLimit: 10000,
		})

		c.Set("apiKey", &apiKey)
		c.Set("keyName", name)
		c.Next()
	}
}

// respondError maps domain errors onto HTTP statuses with a stable code
// string per error kind.
func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "code": "not_found"})
	case errors.Is(err, models.ErrInvalidRange):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "invalid_range"})
	case errors.Is(err, models.ErrInvalidAvailability):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "invalid_availability"})
	case errors.Is(err, models.ErrOverlappingShift):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "overlapping_shift"})
	case errors.Is(err, models.ErrInvalidOverride):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "invalid_override"})
	case errors.Is(err, models.ErrConflict):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "conflict"})
	default:
		h.Logger.Error("request failed", zap.Error(err), zap.String("path", c.FullPath()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error", "code": "internal"})
	}
}

// uuidParam parses a path parameter as a UUID, replying 400 on failure.
func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}
