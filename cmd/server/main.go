package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"github.com/inamate/rigidgroup/internal/auth"
	"github.com/inamate/rigidgroup/internal/boardapi"
	"github.com/inamate/rigidgroup/internal/collab"
	"github.com/inamate/rigidgroup/internal/config"
	"github.com/inamate/rigidgroup/internal/export"
	"github.com/inamate/rigidgroup/internal/logging"
	mw "github.com/inamate/rigidgroup/internal/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(1)
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logging.Install(logging.New(os.Stderr, level))

	boards := collab.NewRegistry(collab.DirLoader(cfg.BoardDir))
	boards.SnapSize = cfg.SnapSize
	boards.ForceAllUpdates = cfg.ForceAllUpdate

	hub := collab.NewHub(boards)
	go hub.Run()

	authService := auth.NewService(cfg.JWTSecret)
	authHandler := auth.NewHandler(authService)

	boardHandler := boardapi.NewHandler(boardapi.NewService(boards, hub))
	exportHandler := export.NewHandler(boards)

	r := mux.NewRouter()

	// Global middleware
	r.Use(mw.Recovery)
	r.Use(mw.Logger)
	r.Use(mw.CORS(cfg.Origins()))

	r.HandleFunc("/auth/token", authHandler.Token).Methods("POST", "OPTIONS")

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	boardHandler.Routes(api, authService.AuthMiddleware)
	api.HandleFunc("/boards/{boardId}/export", exportHandler.ExportBoard).Methods("GET")

	r.Handle("/ws/board/{boardId}", collab.NewHandler(hub, authService, cfg.OriginPatterns()))

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down server")
		hub.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		srv.Shutdown(shutdownCtx)
	}()

	slog.Info("server starting", "addr", addr, "boards", cfg.BoardDir)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}
