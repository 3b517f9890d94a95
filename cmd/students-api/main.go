// main is the entry point of the students REST API.
//
// STARTUP SEQUENCE:
//  1. Load configuration from a YAML file (plus .env / env overrides)
//  2. Initialise the logger
//  3. Connect to (and set up) the SQLite database
//  4. Seed the admin account so the token endpoint has credentials
//  5. Register all HTTP routes
//  6. Start the HTTP server in a separate goroutine
//  7. Block until an OS signal (Ctrl+C / kill) arrives
//  8. Gracefully shut down: finish in-flight requests, then exit
//
// RUNNING THE SERVER:
//
//	go run ./cmd/students-api --config=config/local.yaml
//
// or (with the environment variable):
//
//	CONFIG_PATH=config/local.yaml go run ./cmd/students-api
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/EmmaAtom00/students-rest-api/internal/auth"
	"github.com/EmmaAtom00/students-rest-api/internal/config"
	"github.com/EmmaAtom00/students-rest-api/internal/http/handlers/overview"
	"github.com/EmmaAtom00/students-rest-api/internal/http/handlers/student"
	"github.com/EmmaAtom00/students-rest-api/internal/http/handlers/token"
	"github.com/EmmaAtom00/students-rest-api/internal/http/middleware"
	"github.com/EmmaAtom00/students-rest-api/internal/storage"
	"github.com/EmmaAtom00/students-rest-api/internal/storage/sqlite"
)

func main() {
	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	log.Info("starting students-api",
		slog.String("env", cfg.Env),
		slog.String("version", "1.0.0"),
	)

	// The handlers only ever see the storage.Storage interface, so the
	// concrete backend is decided on this one line.
	store, err := sqlite.New(cfg)
	if err != nil {
		log.Error("failed to initialise storage",
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("storage initialised",
		slog.String("path", cfg.StoragePath))

	// Provision the admin account before the server accepts traffic.
	// Without at least one user the token endpoint can never succeed.
	if err := seedAdmin(store, cfg.Admin); err != nil {
		log.Error("failed to seed admin account",
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("admin account ready", slog.String("username", cfg.Admin.Username))

	// Route table:
	//   GET    /                    → fixed overview payload (open)
	//   POST   /api/token/          → exchange credentials for a token (open)
	//   POST   /api/students        → create a student        (token required)
	//   GET    /api/students        → list all students       (token required)
	//   GET    /api/students/{id}   → get one student         (token required)
	//   PUT    /api/students/{id}   → update a student        (token required)
	//   DELETE /api/students/{id}   → delete a student        (token required)
	router := http.NewServeMux()
	guard := middleware.TokenAuth(store)

	router.HandleFunc("GET /{$}", overview.Get())
	router.HandleFunc("POST /api/token/", token.Obtain(store))

	router.HandleFunc("POST /api/students", guard(student.New(store)))
	router.HandleFunc("GET /api/students", guard(student.GetList(store)))
	router.HandleFunc("GET /api/students/{id}", guard(student.GetByID(store)))
	router.HandleFunc("PUT /api/students/{id}", guard(student.Update(store)))
	router.HandleFunc("DELETE /api/students/{id}", guard(student.Delete(store)))

	server := &http.Server{
		Addr:    cfg.HTTPServer.Addr,
		Handler: router,

		// Timeouts guard against slow-client attacks.
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// ListenAndServe blocks, so it runs in its own goroutine and the
	// main goroutine waits for the shutdown signal below.
	go func() {
		log.Info("server started", slog.String("address", cfg.HTTPServer.Addr))

		if err := server.ListenAndServe(); err != nil &&
			err != http.ErrServerClosed {
			log.Error("server encountered an error",
				slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	<-done

	log.Info("shutdown signal received, stopping server...")

	// In-flight requests get five seconds to finish.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("failed to shutdown server gracefully",
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}

// seedAdmin makes sure the configured admin account exists, hashing the
// configured password on first creation. Idempotent: an existing account
// is left untouched, so a changed config password does not rotate the
// stored hash.
func seedAdmin(store storage.Storage, admin config.Admin) error {
	_, err := store.GetUserByUsername(admin.Username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, storage.ErrUserNotFound) {
		return err
	}

	hash, err := auth.HashPassword(admin.Password)
	if err != nil {
		return err
	}

	_, err = store.CreateUser(admin.Username, hash)
	return err
}

// setupLogger returns a *slog.Logger configured for the environment:
// human-readable text at DEBUG in dev, JSON for log aggregators in
// staging and prod.
func setupLogger(env string) *slog.Logger {
	switch env {
	case "prod":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	case "staging":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	default: // "dev" and anything unrecognised
		return slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	}
}
