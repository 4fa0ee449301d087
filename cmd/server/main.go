package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/inamate/trackexport/internal/asset"
	"github.com/inamate/trackexport/internal/auth"
	"github.com/inamate/trackexport/internal/config"
	"github.com/inamate/trackexport/internal/db"
	"github.com/inamate/trackexport/internal/document"
	"github.com/inamate/trackexport/internal/engine"
	"github.com/inamate/trackexport/internal/export"
	"github.com/inamate/trackexport/internal/history"
	"github.com/inamate/trackexport/internal/live"
	mw "github.com/inamate/trackexport/internal/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	level, _ := config.ParseLevel(cfg.LogLevel)
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// History lives in Postgres when configured, in memory otherwise.
	var store history.Store
	if cfg.DatabaseURL != "" {
		pool, err := db.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			slog.Error("connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		pgStore := history.NewPGStore(pool)
		if err := pgStore.Migrate(ctx); err != nil {
			slog.Error("migrate database", "error", err)
			os.Exit(1)
		}
		store = pgStore
	} else {
		slog.Warn("DATABASE_URL not set, export history is kept in memory")
		store = history.NewMemoryStore()
	}

	policy, err := engine.ParsePolicy(cfg.DegeneratePolicy)
	if err != nil {
		slog.Error("parse policy", "error", err)
		os.Exit(1)
	}

	hub := live.NewHub()
	go hub.Run()

	exporter := export.NewExporter(export.Options{
		OutputDir: cfg.OutputDir,
		AssetBase: cfg.AssetBase,
		Format:    document.Format{Precision: cfg.CoordPrecision},
		Policy:    policy,
	}, store, hub)

	authService := auth.NewService(cfg.JWTSecret, cfg.AdminPasswordHash)
	authHandler := auth.NewHandler(authService)
	exportHandler := export.NewHandler(exporter, store)
	assetHandler := asset.NewHandler(cfg.ModelDir, cfg.OutputDir)

	r := mux.NewRouter()

	// Global middleware
	r.Use(mw.Recovery)
	r.Use(mw.Logger)
	r.Use(mw.CORS(cfg.Origins()))

	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Runtime-facing files (public)
	r.PathPrefix("/models/tracks/").Handler(assetHandler.ServeModels()).Methods("GET")
	r.PathPrefix("/data/").Handler(assetHandler.ServeData()).Methods("GET")

	// Live reload (public, read-only)
	r.HandleFunc("/ws/tracks/{name}", func(w http.ResponseWriter, r *http.Request) {
		handleWebSocket(w, r, hub, cfg.Origins())
	})

	// Protected API routes
	api := r.PathPrefix("/api").Subrouter()
	api.Use(authService.AuthMiddleware)

	api.HandleFunc("/exports", exportHandler.Export).Methods("POST")
	api.HandleFunc("/exports/report", exportHandler.Report).Methods("POST")
	api.HandleFunc("/exports/{exportId}", exportHandler.Get).Methods("GET")
	api.HandleFunc("/tracks/{name}/exports", exportHandler.ListByTrack).Methods("GET")
	api.HandleFunc("/models", assetHandler.Upload).Methods("POST")
	api.HandleFunc("/models/{name}", func(w http.ResponseWriter, r *http.Request) {
		if err := assetHandler.Delete(mux.Vars(r)["name"]); err != nil {
			if errors.Is(err, asset.ErrInvalidName) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			if errors.Is(err, os.ErrNotExist) {
				http.Error(w, "not found", http.StatusNotFound)
				return
			}
			slog.Error("delete model", "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}).Methods("DELETE")

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 120 * time.Second,
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

	slog.Info("server starting", "addr", addr, "output", cfg.OutputDir)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

func handleWebSocket(w http.ResponseWriter, r *http.Request, hub *live.Hub, origins []string) {
	track := mux.Vars(r)["name"]

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: originPatterns(origins),
	})
	if err != nil {
		slog.Error("websocket accept", "error", err)
		return
	}

	client := live.NewClient(hub, conn, track, uuid.New().String())
	hub.Register(client)

	ctx := r.Context()
	go client.WritePump(ctx)
	client.ReadPump(ctx)
}

// originPatterns strips schemes; websocket origin patterns match hosts.
func originPatterns(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, o := range origins {
		if u, err := url.Parse(o); err == nil && u.Host != "" {
			out = append(out, u.Host)
			continue
		}
		out = append(out, o)
	}
	return out
}
