package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/kn-labs/keepnotes-backend/internal/config"
	"github.com/kn-labs/keepnotes-backend/internal/handlers"
	"github.com/kn-labs/keepnotes-backend/internal/middleware"
	"github.com/kn-labs/keepnotes-backend/internal/routes"
	"github.com/kn-labs/keepnotes-backend/internal/services"
	"github.com/kn-labs/keepnotes-backend/internal/storage"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	// Load configuration
	cfg := config.Load()

	// Storage: one CSV table of users, one directory of note files per user
	users := storage.NewCredentialStore(cfg.UsersFile)
	notes, err := storage.NewNoteStore(cfg.DataDir)
	if err != nil {
		log.Fatal("Failed to prepare notes directory:", err)
	}
	log.Printf("✅ User table: %s", cfg.UsersFile)
	log.Printf("✅ Notes directory: %s", cfg.DataDir)

	// In-memory sessions
	sessions := services.NewSessionStore(cfg.SessionTTL)

	if cfg.AdminEnabled() {
		log.Println("✅ Admin inspection login enabled")
	} else {
		log.Println("Admin inspection login disabled (set ADMIN_USERNAME and ADMIN_PASSWORD to enable)")
	}

	handlers.Init(users, notes, sessions, cfg)

	// Setup router
	r := chi.NewRouter()

	// Custom CORS: set headers and respond to OPTIONS with 200 so preflight never gets 403
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	// Production: SecurityHeaders → GlobalRateLimit → LoginRateLimit
	if cfg.IsProduction() {
		for _, mw := range middleware.ProductionSecurity() {
			r.Use(mw)
		}
		log.Println("✅ Production security enabled (security headers, per-IP + login rate limiting)")
	}

	// Health check (no auth)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Setup routes
	routes.SetupRoutes(r)

	// Log registered routes for debugging
	log.Println("📋 Registered routes:")
	log.Println("  GET  /health")
	log.Println("  POST /register")
	log.Println("  POST /login")
	log.Println("  POST /logout")
	log.Println("  POST /create_note")
	log.Println("  DELETE /delete_note")
	log.Println("  GET  /get_notes/{username}")
	log.Println("  GET  /admin/users")

	log.Printf("🚀 Keep-notes backend running on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
