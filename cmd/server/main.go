package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/vytor/flashdeck/internal/api"
	"github.com/vytor/flashdeck/internal/config"
	"github.com/vytor/flashdeck/internal/db"
	"github.com/vytor/flashdeck/internal/logger"
	"github.com/vytor/flashdeck/internal/repository"
	"github.com/vytor/flashdeck/internal/repository/kvdeck"
	"github.com/vytor/flashdeck/internal/repository/memory"
	"github.com/vytor/flashdeck/internal/repository/sqlite"
	"github.com/vytor/flashdeck/internal/services"
)

func main() {
	cfg := config.Load()

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithFormat(logger.ParseFormat(cfg.LogFormat)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}

	log.Info("===========================================")
	log.Info("flashdeck server starting")
	log.Info("===========================================")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("store_backend=%s", cfg.StoreBackend)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("templates_dir=%s", cfg.TemplatesDir)

	store, closeStore, err := openStore(cfg)
	if err != nil {
		log.Error("failed to open store: %v", err)
		os.Exit(1)
	}
	defer closeStore()

	log.Debug("loading templates")
	tmpl, err := api.LoadTemplates(cfg.TemplatesDir)
	if err != nil {
		log.Error("failed to load templates: %v", err)
		os.Exit(1)
	}

	studyService := services.NewStudyService(kvdeck.NewDeckRepository(store))

	// A deck that cannot be read keeps the server up on the class entry screen.
	if err := studyService.Restore(context.Background()); err != nil {
		log.Warn("previous session not restored: %v", err)
	}

	srv := &api.Server{
		StudyService: studyService,
		Store:        store,
		Templates:    tmpl,
		StaticDir:    filepath.Join(filepath.Dir(cfg.TemplatesDir), "static"),
	}

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownTimeout)*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Info("===========================================")
	log.Info("flashdeck server stopped")
	log.Info("===========================================")
}

// openStore builds the key-value store selected by STORE_BACKEND and returns
// a function releasing its resources.
func openStore(cfg config.Config) (repository.KeyValueStore, func(), error) {
	log := logger.Default()

	if cfg.StoreBackend == config.StoreBackendMemory {
		log.Warn("using in-memory store, decks are lost on exit")
		return memory.NewKeyValueStore(), func() {}, nil
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}
	closeDB := func() {
		log.Debug("closing database connection")
		if err := database.Close(); err != nil {
			log.Error("failed to close database: %v", err)
		}
	}
	return sqlite.NewKeyValueStore(database.DB), closeDB, nil
}
