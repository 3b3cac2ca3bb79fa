package http

import (
	"net/http"

	"github.com/SabrinaLamprecht/Mechanic-Shop-API-Development/internal/delivery/http/middleware"
	"github.com/SabrinaLamprecht/Mechanic-Shop-API-Development/internal/domain"
	"github.com/SabrinaLamprecht/Mechanic-Shop-API-Development/internal/pkg/config"
	"github.com/SabrinaLamprecht/Mechanic-Shop-API-Development/internal/pkg/jwt"
	"github.com/SabrinaLamprecht/Mechanic-Shop-API-Development/internal/pkg/logger"
	"github.com/SabrinaLamprecht/Mechanic-Shop-API-Development/internal/pkg/redis"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// Router holds every dependency of the HTTP surface
type Router struct {
	customerHandler  *CustomerHandler
	mechanicHandler  *MechanicHandler
	inventoryHandler *InventoryHandler
	ticketHandler    *TicketHandler
	tokenService     *jwt.TokenService
	cache            *redis.Client
	config           *config.Config
	logger           logger.Logger
}

// NewRouter creates a new HTTP router
func NewRouter(
	customerHandler *CustomerHandler,
	mechanicHandler *MechanicHandler,
	inventoryHandler *InventoryHandler,
	ticketHandler *TicketHandler,
	tokenService *jwt.TokenService,
	cache *redis.Client,
	config *config.Config,
	logger logger.Logger,
) *Router {
	return &Router{
		customerHandler:  customerHandler,
		mechanicHandler:  mechanicHandler,
		inventoryHandler: inventoryHandler,
		ticketHandler:    ticketHandler,
		tokenService:     tokenService,
		cache:            cache,
		config:           config,
		logger:           logger,
	}
}

// Setup wires all routes
func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.RecoveryMiddleware(rt.logger))
	r.Use(middleware.LoggingMiddleware(rt.logger))
	r.Use(middleware.CORSMiddleware(middleware.CORSConfig{
		AllowedOrigins: rt.config.CORS.AllowedOrigins,
		AllowedMethods: rt.config.CORS.AllowedMethods,
		AllowedHeaders: rt.config.CORS.AllowedHeaders,
	}))

	requireAuth := middleware.AuthMiddleware(rt.tokenService)
	customerOnly := middleware.RequireRole(domain.RoleCustomer)
	mechanicOnly := middleware.RequireRole(domain.RoleMechanic)

	limitCreate := middleware.RateLimitMiddleware(
		rt.cache, rt.logger, "create",
		rt.config.RateLimit.CreateLimit, rt.config.RateLimit.CreateWindow,
	)
	limitMutate := middleware.RateLimitMiddleware(
		rt.cache, rt.logger, "mutate",
		rt.config.RateLimit.MutateLimit, rt.config.RateLimit.MutateWindow,
	)

	// Health check endpoint (public)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{
			"status": "healthy",
		})
	})

	r.Route("/customers", func(r chi.Router) {
		r.With(limitCreate).Post("/", rt.customerHandler.CreateCustomer)
		r.Get("/", rt.customerHandler.ListCustomers)
		r.Get("/search", rt.customerHandler.SearchCustomers)
		r.Post("/login", rt.customerHandler.Login)
		r.Get("/{id}", rt.customerHandler.GetCustomerByID)

		// Self-service routes: the target account comes from the token
		r.Group(func(r chi.Router) {
			r.Use(requireAuth, customerOnly, limitMutate)
			r.Put("/", rt.customerHandler.UpdateCustomer)
			r.Delete("/", rt.customerHandler.DeleteCustomer)
		})
	})

	r.Route("/mechanics", func(r chi.Router) {
		r.Post("/", rt.mechanicHandler.CreateMechanic)
		r.Get("/", rt.mechanicHandler.ListMechanics)
		r.Get("/popular", rt.mechanicHandler.PopularMechanics)
		r.Post("/login", rt.mechanicHandler.Login)
		r.Get("/{id}", rt.mechanicHandler.GetMechanicByID)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth, mechanicOnly)
			r.Put("/{id}", rt.mechanicHandler.UpdateMechanic)
			r.Delete("/{id}", rt.mechanicHandler.DeleteMechanic)
			r.Post("/{id}/add-ticket/{ticket_id}", rt.mechanicHandler.AssignToTicket)
			r.Delete("/{id}/remove-ticket/{ticket_id}", rt.mechanicHandler.RemoveFromTicket)
		})
	})

	r.Route("/inventory", func(r chi.Router) {
		r.With(limitCreate).Post("/", rt.inventoryHandler.CreatePart)
		r.Get("/", rt.inventoryHandler.ListParts)
		r.Get("/search", rt.inventoryHandler.SearchParts)
		r.Get("/{id}", rt.inventoryHandler.GetPartByID)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth, mechanicOnly)
			r.Put("/{id}", rt.inventoryHandler.UpdatePart)
			r.Delete("/{id}", rt.inventoryHandler.DeletePart)
		})
	})

	r.Route("/service_tickets", func(r chi.Router) {
		r.Post("/", rt.ticketHandler.CreateTicket)
		r.Get("/", rt.ticketHandler.ListTickets)
		r.With(requireAuth, customerOnly).Get("/my-tickets", rt.ticketHandler.GetMyTickets)
		r.Get("/{id}", rt.ticketHandler.GetTicketByID)
		r.Put("/{id}", rt.ticketHandler.EditMechanics)
		r.Put("/{id}/add-part", rt.ticketHandler.AttachPart)
		r.Put("/{id}/remove-part", rt.ticketHandler.DetachPart)
	})

	return r
}
