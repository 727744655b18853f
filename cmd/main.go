package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rating_of_titles/internal/handlers"
	"rating_of_titles/internal/logger"
	"rating_of_titles/internal/repository"
	"rating_of_titles/internal/repository/db"
	"rating_of_titles/internal/server"
	"rating_of_titles/internal/service"

	"github.com/spf13/viper"

	_ "rating_of_titles/docs"
)

// @title           rating of titles
// @version         v1
// @description     REST API for tracking personal ratings of media titles.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// load config.yml
	cfgErr := loadConfig()

	// init logger (level from config when available)
	lvl := viper.GetString("log.level")
	if lvl == "" {
		lvl = logger.InfoLevel
	}
	log := logger.Get(lvl)
	if cfgErr != nil {
		log.Fatalw("error reading config", "err", cfgErr)
	}

	// open DB
	store, err := openDB(log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			log.Fatalw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(store)
	services := service.NewService(repos, service.AuthConfig{
		SigningKey:   signingKey(log),
		TokenTTLDays: viper.GetInt("auth.token_ttl_days"),
	})
	apiHandler := handlers.NewHandler(services, log)

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)

	// graceful shutdown
	waitForShutdown(srv, log)
}

func loadConfig() error {
	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")
	return viper.ReadInConfig()
}

// signingKey prefers the environment over the config file so the token
// secret does not have to live next to the code.
func signingKey(log *logger.Logger) string {
	if key := os.Getenv("SECRET_KEY"); key != "" {
		return key
	}
	key := viper.GetString("auth.signing_key")
	if key == "" {
		log.Fatalw("no signing key configured; set SECRET_KEY or auth.signing_key")
	}
	return key
}

// openDB initializes the SQLite database using configuration.
func openDB(log *logger.Logger) (*sql.DB, error) {
	dbPath := viper.GetString("db.path")
	if dbPath == "" {
		log.Infow("db.path not set in config; using default file", "default", "ratings.db")
		dbPath = "ratings.db"
	}
	return db.InitDB(dbPath)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8080"
		}
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
