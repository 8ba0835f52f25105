package main

import (
	"log"
	"os"

	"github.com/arnavshah/shiftdesk-api-go/pkg/auth"
	"github.com/arnavshah/shiftdesk-api-go/pkg/database"
	"github.com/arnavshah/shiftdesk-api-go/pkg/handlers"
	"github.com/arnavshah/shiftdesk-api-go/pkg/logging"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env if it exists
	// Try root and parent directories for flexibility
	envPaths := []string{".env", "../.env", "../../.env"}
	for _, p := range envPaths {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
			break
		}
	}

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	logger := logging.New(os.Getenv("ENV"))
	defer logger.Sync()

	db := database.InitDB()
	h := handlers.New(db, logger)
	if err := auth.EnsureAdminExists(h.Stores); err != nil {
		log.Fatalf("could not bootstrap admin account: %v", err)
	}

	r := handlers.NewRouter(h)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	log.Printf("Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("could not run server: %v", err)
	}
}
