package cmd

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"keyless-stay/config"
	"keyless-stay/database"
	"keyless-stay/logger"
	"keyless-stay/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/spf13/cobra"
)

func ServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(loadConfig())
		},
	}
}

// NewApp returns the fiber app with the server-wide settings and CORS.
func NewApp(cfg *config.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadBufferSize:  32768,
		WriteBufferSize: 32768,
		ReadTimeout:     time.Second * 30,
		WriteTimeout:    time.Second * 30,
		BodyLimit:       4 * 1024 * 1024,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.FrontendURL,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: cfg.FrontendURL != "*",
	}))
	return app
}

func runServe(cfg *config.Config) error {
	db, err := database.InitDB(cfg)
	if err != nil {
		return err
	}

	app := NewApp(cfg)
	shutdown := routes.SetupRoutes(app, db, cfg)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-quit
		logger.Info("Shutting down server")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			logger.Error("Server shutdown failed", err)
		}
	}()

	logger.Success("Server is running on ip: " + cfg.AppHost + " port: " + cfg.AppPort)
	if err := app.Listen(cfg.ListenAddr()); err != nil {
		return err
	}

	shutdown()
	logger.Success("Server stopped")
	return nil
}
