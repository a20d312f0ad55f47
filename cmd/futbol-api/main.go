package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dimitrije/futbol-api/internal/config"
	"github.com/dimitrije/futbol-api/internal/database"
	"github.com/dimitrije/futbol-api/internal/events"
	"github.com/dimitrije/futbol-api/internal/handlers"
	authmw "github.com/dimitrije/futbol-api/internal/middleware"
	"github.com/dimitrije/futbol-api/internal/services"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/m1z23r/drift/pkg/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	jwtService := services.NewJWTService(cfg.JWTSecret, cfg.JWTAccessExpiry)
	userService := services.NewUserService(db)
	teamService := services.NewTeamService(db)
	invitationService := services.NewInvitationService(db)
	matchService := services.NewMatchService(db)
	venueService := services.NewVenueService(db)
	emailService := services.NewEmailService(cfg.SMTP)

	if !emailService.IsConfigured() {
		log.Println("SMTP is not configured, invitation emails are disabled")
	}

	hub := events.NewHub()
	go hub.Run()

	userHandler := handlers.NewUserHandler(userService)
	teamHandler := handlers.NewTeamHandler(teamService, hub)
	invitationHandler := handlers.NewInvitationHandler(invitationService, emailService, hub, cfg.InvitationsURL())
	matchHandler := handlers.NewMatchHandler(matchService, hub)
	venueHandler := handlers.NewVenueHandler(venueService)
	eventsHandler := handlers.NewEventsHandler(hub)

	app := drift.New()

	if cfg.IsProduction() {
		app.SetMode(drift.ReleaseMode)
	} else {
		app.SetMode(drift.DebugMode)
	}

	app.Use(middleware.Recovery())
	app.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		MaxAge:       86400,
	}))
	app.Use(middleware.BodyParser())

	api := app.Group("/api/v1")

	api.Get("/health", func(c *drift.Context) {
		if err := db.Pool.Ping(c.Request.Context()); err != nil {
			_ = c.JSON(503, map[string]string{"status": "unavailable"})
			return
		}
		_ = c.JSON(200, map[string]string{"status": "ok"})
	})

	protected := api.Group("")
	protected.Use(authmw.Auth(jwtService))

	protected.Get("/users/me", userHandler.GetMe)
	protected.Patch("/users/me/visibility", userHandler.SetVisibility)
	protected.Get("/users/available", userHandler.ListAvailable)

	protected.Get("/venues", venueHandler.List)
	protected.Get("/venues/:id", venueHandler.Get)

	protected.Post("/teams", teamHandler.Create)
	protected.Get("/teams/:id", teamHandler.Get)
	protected.Patch("/teams/:id", teamHandler.Update)
	protected.Delete("/teams/:id", teamHandler.Delete)
	protected.Get("/teams/:id/members", teamHandler.GetMembers)
	protected.Delete("/teams/:id/members/:memberId", teamHandler.RemoveMember)
	protected.Post("/teams/:id/leave", teamHandler.Leave)
	protected.Get("/teams/:id/invitations", invitationHandler.ListTeamPending)
	protected.Post("/teams/:id/invitations", invitationHandler.Send)
	protected.Delete("/teams/:id/invitations/:invitationId", invitationHandler.Cancel)

	protected.Get("/invitations", invitationHandler.ListReceived)
	protected.Post("/invitations/:id/accept", invitationHandler.Accept)
	protected.Post("/invitations/:id/reject", invitationHandler.Reject)

	protected.Get("/matches", matchHandler.List)
	protected.Post("/matches", matchHandler.Create)
	protected.Get("/matches/:id", matchHandler.Get)
	protected.Delete("/matches/:id", matchHandler.Delete)
	protected.Post("/matches/:id/join", matchHandler.Join)
	protected.Post("/matches/:id/leave", matchHandler.Leave)
	protected.Post("/matches/:id/result", matchHandler.SubmitResult)
	protected.Post("/matches/:id/confirm", matchHandler.Confirm)
	protected.Post("/matches/:id/reject", matchHandler.Reject)

	protected.Get("/events", eventsHandler.Connect)

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Port)
		log.Printf("Server starting on %s", addr)
		if err := app.Run(addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
}
