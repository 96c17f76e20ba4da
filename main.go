package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/coreybb/libris/api"
	"github.com/coreybb/libris/datastore"
	"github.com/coreybb/libris/library"
	rh "github.com/coreybb/libris/route-handlers"
)

const (
	defaultPort           = "3000"
	defaultBackend        = datastore.BackendFile
	defaultDataFile       = "data/data.json"
	defaultSQLitePath     = "data/libris.db"
	defaultDatabaseURL    = "user=postgres password=password dbname=libris host=localhost port=5432 sslmode=disable"
	defaultAllowedOrigins = "*"
	storeOpenTimeout      = 10 * time.Second
	shutdownTimeout       = 15 * time.Second
)

type config struct {
	port            string
	store           datastore.Config
	serializeWrites bool
	strictStorage   bool
	allowedOrigins  []string
}

func main() {
	cfg := loadConfig(os.Getenv)

	openCtx, cancelOpen := context.WithTimeout(context.Background(), storeOpenTimeout)
	store, err := datastore.Open(openCtx, cfg.store)
	cancelOpen()
	if err != nil {
		log.Fatalf("Store setup failed: %v", err)
	}
	defer store.Close()

	var opts []library.Option
	if cfg.serializeWrites {
		opts = append(opts, library.WithSerializedWrites())
	}
	if cfg.strictStorage {
		opts = append(opts, library.WithStrictStorage())
	}
	svc := library.NewService(store, opts...)

	router := api.SetupRoutes(
		rh.NewDocumentHandler(svc),
		rh.NewBookHandler(svc),
		rh.NewReaderHandler(svc),
		api.Options{AllowedOrigins: cfg.allowedOrigins},
	)

	startServer(cfg.port, router)
}

// loadConfig reads settings through getenv so tests can supply their own environment.
func loadConfig(getenv func(string) string) config {
	envOr := func(key, fallback string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return fallback
	}

	backend := envOr("STORE_BACKEND", defaultBackend)

	dbURL := getenv("DB_CONNECTION_STRING")
	if dbURL == "" {
		dbURL = defaultDatabaseURL
		if backend == datastore.BackendPostgres {
			log.Println("WARNING: DB_CONNECTION_STRING not set, using default local connection string.")
		}
	}

	envBool := func(key, warning string) bool {
		raw := getenv(key)
		if raw == "" {
			return false
		}
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			log.Printf("WARNING: invalid %s value %q, %s", key, raw, warning)
			return false
		}
		return parsed
	}

	var origins []string
	for _, o := range strings.Split(envOr("CORS_ALLOWED_ORIGINS", defaultAllowedOrigins), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}

	return config{
		port: envOr("PORT", defaultPort),
		store: datastore.Config{
			Backend:        backend,
			DataFile:       envOr("DATA_FILE", defaultDataFile),
			SQLitePath:     envOr("SQLITE_PATH", defaultSQLitePath),
			DatabaseURL:    dbURL,
			PostgresDriver: envOr("PG_DRIVER", datastore.DriverPQ),
		},
		serializeWrites: envBool("SERIALIZE_WRITES", "writes stay unsynchronized."),
		strictStorage:   envBool("STRICT_STORAGE_ERRORS", "storage faults stay masked."),
		allowedOrigins:  origins,
	}
}

func startServer(port string, router http.Handler) {
	server := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	shutdownSignal := make(chan os.Signal, 1)
	signal.Notify(shutdownSignal, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Server is running on http://localhost:%s", port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-shutdownSignal // Block until signal received
	log.Println("Shutdown signal received, initiating graceful shutdown...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Graceful shutdown failed: %v", err)
	}

	log.Println("Server gracefully stopped")
}
