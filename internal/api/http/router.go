package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/shift-roster/internal/api/http/handlers"
	"github.com/spec-kit/shift-roster/internal/auth"
	"github.com/spec-kit/shift-roster/internal/domain"
)

// APIPrefix is the versioned mount point. Every route is also served at the root.
const APIPrefix = "/api/v1"

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Shifts         *handlers.ShiftsHandler
	Requests       *handlers.RequestsHandler
	Employees      *handlers.EmployeesHandler
	Messages       *handlers.MessagesHandler
	Analytics      *handlers.AnalyticsHandler
	AuthMiddleware *auth.AuthMiddleware

	LoginLimiter  RateLimiter
	LoginAttempts int
	LoginWindow   time.Duration
	Logger        *zap.Logger
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	mountAPI(app.Group(APIPrefix), cfg)
	mountAPI(app, cfg)
}

func mountAPI(r fiber.Router, cfg RouteConfig) {
	authenticated := cfg.AuthMiddleware.Handle
	managerOnly := auth.RequireRole(domain.RoleManager)

	authGroup := r.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", loginRateLimit(cfg.LoginLimiter, cfg.LoginAttempts, cfg.LoginWindow, cfg.Logger), cfg.Auth.Login)
	authGroup.Get("/profile", authenticated, cfg.Auth.Profile)
	authGroup.Put("/profile", authenticated, cfg.Auth.UpdateProfile)

	shifts := r.Group("/shifts", authenticated)
	shifts.Get("/", cfg.Shifts.ListShifts)
	shifts.Post("/", cfg.Shifts.CreateShift)
	shifts.Post("/ai-generate", cfg.Shifts.GenerateRoster)
	shifts.Get("/:id", cfg.Shifts.GetShift)
	shifts.Put("/:id/status", cfg.Shifts.UpdateStatus)

	requests := r.Group("/requests", authenticated)
	requests.Get("/", cfg.Requests.ListRequests)
	requests.Get("/pending", cfg.Requests.ListPending)
	requests.Post("/swap", cfg.Requests.CreateSwap)
	requests.Post("/leave", cfg.Requests.CreateLeave)
	requests.Post("/:id/approve", cfg.Requests.Approve)
	requests.Post("/:id/deny", cfg.Requests.Deny)

	r.Get("/employees", authenticated, managerOnly, cfg.Employees.ListEmployees)

	messages := r.Group("/messages", authenticated)
	messages.Get("/", cfg.Messages.ListMessages)
	messages.Post("/broadcast", managerOnly, cfg.Messages.Broadcast)

	r.Get("/analytics/dashboard", authenticated, managerOnly, cfg.Analytics.Dashboard)
}
