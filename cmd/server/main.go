package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"promolink/config"
	"promolink/internal/database"
	"promolink/internal/logging"
	"promolink/internal/router"
	"promolink/internal/scheduler"
)

func main() {
	cfg := config.Load()
	log := logging.Logger

	db, err := database.NewDB(&cfg.Database)
	if err != nil {
		log.WithField("error", err.Error()).Fatal("database connection failed")
	}
	if err := database.AutoMigrate(db); err != nil {
		log.WithField("error", err.Error()).Fatal("migration failed")
	}
	if err := database.SeedPerkPackages(db); err != nil {
		log.WithField("error", err.Error()).Fatal("seeding perk packages failed")
	}

	engine, leaderboardSvc, perkSvc, subscriptionSvc := router.Setup(cfg, db)

	sched := scheduler.New(&cfg.Scheduler, leaderboardSvc, perkSvc, subscriptionSvc)
	sched.Start()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.WithField("port", cfg.Server.Port).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithField("error", err.Error()).Fatal("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	sched.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithField("error", err.Error()).Error("forced shutdown")
	}
	log.Info("server stopped")
}
