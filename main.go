package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/danielhkuo/seatsim/cliparse"
	"github.com/danielhkuo/seatsim/dataset"
	"github.com/danielhkuo/seatsim/db"
	"github.com/danielhkuo/seatsim/middleware"
	"github.com/danielhkuo/seatsim/router"
)

func main() {
	var err error

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Connect to SQLite or PostgreSQL
	dbConn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err, "type", cfg.DatabaseType)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Create schema (tables)
	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready", "type", cfg.DatabaseType)

	// Seed the baseline dataset on first start
	store := db.NewStore(dbConn, cfg.DatabaseType)
	if err := seedDataset(store, cfg.DatasetPath); err != nil {
		slog.Error("dataset seeding failed", "error", err, "path", cfg.DatasetPath)
		os.Exit(1)
	}

	// Metrics registry
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// Create router
	mux := router.NewRouter(store, cfg, reg)

	// Create server
	server := http.Server{
		Handler:           middleware.CORS(cfg.AllowedOrigins)(mux),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port, "workers", cfg.Workers)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}

// seedDataset stores the dataset at path, or the embedded one, if the store is empty.
func seedDataset(store *db.Store, path string) error {
	ds := dataset.Default()
	if path != "" {
		var err error
		ds, err = dataset.LoadFile(path)
		if err != nil {
			return err
		}
	}

	seeded, err := store.Seed(context.Background(), ds)
	if err != nil {
		return err
	}
	if seeded {
		slog.Info("Dataset seeded",
			"name", ds.Name,
			"constituencies", len(ds.Constituencies),
			"total_seats", ds.TotalSeats(),
		)
	} else {
		slog.Info("Using stored dataset")
	}
	return nil
}
