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

	"github.com/GregMSThompson/covid-tracker/internal/bootstrap"
	"github.com/GregMSThompson/covid-tracker/internal/config"
	"github.com/GregMSThompson/covid-tracker/internal/handlers"
	"github.com/GregMSThompson/covid-tracker/internal/response"
	"github.com/GregMSThompson/covid-tracker/internal/router"
	"github.com/GregMSThompson/covid-tracker/internal/services"
	"github.com/GregMSThompson/covid-tracker/internal/store"
	"github.com/GregMSThompson/covid-tracker/pkg/logger"
)

func exitOnError(message string, err error, log *slog.Logger) {
	if err != nil {
		log.Error(message, "error", err)
		os.Exit(1)
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// bootstrap
	cfg := config.New()
	bs, err := bootstrap.Run(cfg)
	exitOnError("bootstrap failed", err, bs.Log)
	defer bs.Close()
	ctx = logger.ToContext(ctx, bs.Log)

	// stores
	vstore := store.NewViewStore(bs.Firestore)

	// services
	crepo := services.NewCovidRepository(bs.CovidAdapter)
	tserv := services.NewTrackerService(crepo)
	cserv := services.NewChartService(tserv)
	vserv := services.NewViewService(vstore, cserv, tserv)

	// initial load, then keep the snapshot fresh
	tserv.Refresh(ctx)
	go tserv.RunRefreshLoop(ctx, cfg.RefreshInterval)

	// response handler
	rh := response.New(bs.Log)

	// dependancies
	deps := new(handlers.Deps)
	deps.Log = bs.Log
	deps.ResponseHandler = rh
	deps.Firebase = bs.Firebase
	deps.TrackerSvc = tserv
	deps.ChartSvc = cserv
	deps.ViewSvc = vserv

	// router
	r := router.NewRouter(deps)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			bs.Log.Warn("server shutdown failed", "error", err)
		}
	}()

	bs.Log.Info("server listening", "port", cfg.Port)
	err = srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return
	}
	exitOnError("server start failed", err, bs.Log)
}
