// Command api runs the Pressroom HTTP server and its schema migrations.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"

	"github.com/pressroomhq/pressroom/internal/config"
	"github.com/pressroomhq/pressroom/internal/database"
	"github.com/pressroomhq/pressroom/internal/handler"
	"github.com/pressroomhq/pressroom/internal/logger"
	"github.com/pressroomhq/pressroom/internal/middleware"
	"github.com/pressroomhq/pressroom/internal/repository"
	"github.com/pressroomhq/pressroom/internal/router"
	"github.com/pressroomhq/pressroom/internal/server"
	"github.com/pressroomhq/pressroom/internal/service"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pressroom",
		Short: "Pressroom content and trials API",
	}

	rootCmd.AddCommand(serveCmd(), migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			log, loggerService, err := logger.New(cfg)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}

			s, err := server.New(cfg, log, loggerService)
			if err != nil {
				return fmt.Errorf("failed to initialize server: %w", err)
			}

			repos := repository.NewRepositories(s)

			services, err := service.NewService(s, repos)
			if err != nil {
				return fmt.Errorf("failed to initialize services: %w", err)
			}

			handlers := handler.NewHandlers(s, services)
			middlewares := middleware.NewMiddlewares(s)

			e := router.New(s, handlers, middlewares)
			s.SetupHTTPServer(e)

			// Serve in the background so the main goroutine can wait for
			// shutdown signals.
			errCh := make(chan error, 1)
			go func() {
				if err := s.Start(); err != nil && err != http.ErrServerClosed {
					errCh <- err
				}
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

			select {
			case err := <-errCh:
				return fmt.Errorf("server error: %w", err)
			case sig := <-quit:
				log.Info().Str("signal", sig.String()).Msg("shutting down")
			}

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if err := s.Shutdown(ctx); err != nil {
				return fmt.Errorf("failed to shutdown cleanly: %w", err)
			}

			if loggerService != nil {
				loggerService.Shutdown(10 * time.Second)
			}

			log.Info().Msg("shutdown complete")
			return nil
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			log, _, err := logger.New(cfg)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}

			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
			defer cancel()

			if err := database.Migrate(ctx, log, cfg); err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			log.Info().Msg("migrations applied")
			return nil
		},
	}
}
