package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m1z23r/drift/pkg/drift"
	"github.com/m1z23r/drift/pkg/middleware"
	"github.com/taskforge/taskforge-api/internal/config"
	"github.com/taskforge/taskforge-api/internal/database"
	"github.com/taskforge/taskforge-api/internal/handlers"
	authmw "github.com/taskforge/taskforge-api/internal/middleware"
	"github.com/taskforge/taskforge-api/internal/services"
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

	jwtService := services.NewJWTService(cfg.JWTSecret, cfg.JWTAccessExpiry, cfg.JWTRefreshExpiry)
	userService := services.NewUserService(db)
	tokenService := services.NewTokenService(db)
	projectService := services.NewProjectService(db)
	invitationService := services.NewInvitationService(db)
	taskService := services.NewTaskService(db)
	taskStatusService := services.NewTaskStatusService(db)
	statisticsService := services.NewStatisticsService(db)

	authHandler := handlers.NewAuthHandler(userService, tokenService, jwtService)
	projectHandler := handlers.NewProjectHandler(projectService)
	invitationHandler := handlers.NewInvitationHandler(invitationService)
	taskHandler := handlers.NewTaskHandler(taskService)
	taskStatusHandler := handlers.NewTaskStatusHandler(taskStatusService)
	statisticsHandler := handlers.NewStatisticsHandler(statisticsService)

	app := drift.New()

	if cfg.IsProduction() {
		app.SetMode(drift.ReleaseMode)
	} else {
		app.SetMode(drift.DebugMode)
	}

	app.Use(middleware.Recovery())
	app.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		MaxAge:       86400,
	}))
	app.Use(middleware.BodyParser())

	api := app.Group("/api/v1")

	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)
	auth.Post("/logout", authHandler.Logout)

	protected := api.Group("")
	protected.Use(authmw.Auth(jwtService))

	protected.Post("/auth/logout-all", authHandler.LogoutAll)
	protected.Get("/auth/profile", authHandler.Profile)

	protected.Get("/projects", projectHandler.List)
	protected.Post("/projects", projectHandler.Create)
	protected.Get("/projects/:id", projectHandler.Get)
	protected.Patch("/projects/:id", projectHandler.Update)
	protected.Delete("/projects/:id", projectHandler.Delete)
	protected.Post("/projects/:id/assign", projectHandler.AssignUser)
	protected.Delete("/projects/:id/unassign/:userId", projectHandler.UnassignUser)

	protected.Get("/invitations", invitationHandler.List)
	protected.Post("/invitations", invitationHandler.Send)
	protected.Patch("/invitations/:id/approve", invitationHandler.Approve)
	protected.Patch("/invitations/:id/reject", invitationHandler.Reject)

	protected.Get("/tasks", taskHandler.List)
	protected.Post("/tasks", taskHandler.Create)
	protected.Get("/tasks/:id", taskHandler.Get)
	protected.Patch("/tasks/:id", taskHandler.Update)
	protected.Delete("/tasks/:id", taskHandler.Delete)
	protected.Get("/tasks/project/:projectId", taskHandler.ListByProject)

	protected.Get("/task-statuses", taskStatusHandler.List)
	protected.Post("/task-statuses", taskStatusHandler.Create)
	protected.Get("/task-statuses/:id", taskStatusHandler.Get)
	protected.Patch("/task-statuses/:id", taskStatusHandler.Update)
	protected.Delete("/task-statuses/:id", taskStatusHandler.Delete)

	protected.Get("/statistics", statisticsHandler.Get)

	api.Get("/health", func(c *drift.Context) {
		_ = c.JSON(200, map[string]string{"status": "ok"})
	})

	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go tokenService.StartCleanupLoop(sweepCtx, 1*time.Hour)

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
