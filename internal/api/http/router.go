package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/femcoders/pettrack/internal/api/http/handlers"
	"github.com/femcoders/pettrack/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Pets           *handlers.PetsHandler
	MedicalRecords *handlers.MedicalRecordsHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes. Identity resolution runs on every /api
// route; everything except registration and login additionally requires an
// authenticated caller. Finer role checks live in the services.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	api := app.Group("/api", cfg.AuthMiddleware.Handle)

	authGroup := api.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)

	users := api.Group("/users", auth.RequireAuthenticated())
	users.Get("/", cfg.Users.List)
	users.Get("/filter", cfg.Users.Filter)
	users.Get("/:id", cfg.Users.Get)
	users.Post("/", cfg.Users.Create)
	users.Put("/:id", cfg.Users.Update)
	users.Delete("/:id", cfg.Users.Delete)

	pets := api.Group("/pets", auth.RequireAuthenticated())
	pets.Get("/", cfg.Pets.List)
	pets.Get("/filter", cfg.Pets.Filter)
	pets.Get("/:id", cfg.Pets.Get)
	pets.Post("/", cfg.Pets.Create)
	pets.Put("/:id", cfg.Pets.Update)
	pets.Delete("/:id", cfg.Pets.Delete)

	records := api.Group("/medical-records", auth.RequireAuthenticated())
	records.Get("/", cfg.MedicalRecords.List)
	records.Get("/pet/:petName", cfg.MedicalRecords.ByPetName)
	records.Get("/:id", cfg.MedicalRecords.Get)
	records.Post("/", cfg.MedicalRecords.Create)
	records.Put("/:id", cfg.MedicalRecords.Update)
	records.Delete("/:id", cfg.MedicalRecords.Delete)
}
