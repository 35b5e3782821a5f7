package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"frutaria/config"
	"frutaria/controllers"
	"frutaria/db"
	"frutaria/router"
	"frutaria/tools"

	"github.com/gin-gonic/gin"
)

func main() {
	configPath := getenv("CONFIG_PATH", "config.json")
	cfg := config.Get(configPath)

	db.SetConfigurations(cfg)
	database, err := db.Connect()
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	defer database.Close()

	if getenv("SEED", "0") == "1" {
		if err := db.SeedProducts(database, getenv("SEED_PATH", "data.json")); err != nil {
			log.Fatalf("seed products: %v", err)
		}
	}

	mailer := tools.NewMailer(
		cfg.Smtp.Host, cfg.Smtp.Port, cfg.Smtp.User, cfg.Smtp.Pass,
		cfg.Smtp.From, cfg.PublicURL,
		time.Duration(cfg.Smtp.TimeoutSeconds)*time.Second,
	)
	search := tools.NewSearchIndexClient(
		cfg.Search.AppID, cfg.Search.ApiKey, cfg.Search.Index, cfg.Search.BaseURL,
		time.Duration(cfg.Search.TimeoutSeconds)*time.Second,
	)
	env := &controllers.Env{Cfg: cfg, Mailer: mailer, Search: search}

	// full resync no boot: o índice é derivado e eventualmente consistente,
	// então falha aqui não derruba o servidor, só fica no log
	syncCtx, cancelSync := context.WithTimeout(context.Background(), 30*time.Second)
	if err := controllers.SyncCatalog(syncCtx, database, search); err != nil {
		log.Printf("catalog sync failed (search will degrade to local filter): %v", err)
	}
	cancelSync()

	r := gin.New()
	r.Use(db.SetDBtoContext(database))
	r.Use(controllers.SetEnvToContext(env))
	router.Initialize(r)

	srv := &http.Server{
		Addr:              ":" + cfg.ApiPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("Frutaria listening on :%s", cfg.ApiPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server run failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("http shutdown failed: %v", err)
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
