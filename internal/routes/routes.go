package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/kn-labs/keepnotes-backend/internal/handlers"
)

func SetupRoutes(r *chi.Mux) {
	// Auth routes
	r.Post("/register", handlers.Register)
	r.Post("/login", handlers.Login)
	r.Post("/logout", handlers.Logout)

	// Note routes (require a Bearer session token)
	r.Post("/create_note", handlers.CreateNote)
	r.Delete("/delete_note", handlers.DeleteNote)
	r.Get("/get_notes/{username}", handlers.GetNotes)

	// Admin routes
	r.Get("/admin/users", handlers.GetUsers)
}
