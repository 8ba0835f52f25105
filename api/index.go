package handler

import (
	"net/http"
	"os"

	"github.com/arnavshah/shiftdesk-api-go/pkg/auth"
	"github.com/arnavshah/shiftdesk-api-go/pkg/database"
	"github.com/arnavshah/shiftdesk-api-go/pkg/handlers"
	"github.com/arnavshah/shiftdesk-api-go/pkg/logging"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

var r *gin.Engine

func init() {
	// Load .env if it exists (for local testing with vercel dev)
	_ = godotenv.Load(".env")
	_ = godotenv.Load("../.env")

	gin.SetMode(gin.ReleaseMode)
	logger := logging.New(os.Getenv("ENV"))

	db := database.InitDB()
	h := handlers.New(db, logger)
	_ = auth.EnsureAdminExists(h.Stores)

	r = handlers.NewRouter(h)
}

// Handler is the entry point for Vercel Go Runtime
func Handler(w http.ResponseWriter, req *http.Request) {
	r.ServeHTTP(w, req)
}
