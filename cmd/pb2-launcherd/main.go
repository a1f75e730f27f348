package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Guilhem-Bonnet/PB2-Launcher/internal/adapters/httpapi"
	"github.com/Guilhem-Bonnet/PB2-Launcher/internal/bootstrap"
	"github.com/Guilhem-Bonnet/PB2-Launcher/internal/buildinfo"
	"github.com/Guilhem-Bonnet/PB2-Launcher/internal/config"
	"github.com/Guilhem-Bonnet/PB2-Launcher/internal/singleinstance"
)

const mutexName = "PB2Launcher"

func main() {
	exeDir, err := config.ExecutableDir()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to locate executable")
	}
	dir := flag.String("dir", exeDir, "Dossier du launcher (auth, marqueur, swf, lecteur)")
	addr := flag.String("addr", "", "Adresse d'écoute (ex: 127.0.0.1:8765)")
	flag.Parse()

	cfg, err := config.Load(*dir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if *addr != "" {
		cfg.Addr = *addr
	}

	logger := bootstrap.NewLogger(cfg, "pb2-launcherd")
	log.Logger = logger

	logger.Info().Interface("build", buildinfo.Current()).Str("dir", cfg.DataDir).Msg("starting")

	release, ok, err := singleinstance.Acquire(mutexName)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to acquire instance lock")
	}
	if !ok {
		logger.Warn().Msg("another launcher is already running")
		os.Exit(1)
	}
	defer release()

	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	launcher, err := bootstrap.New(shutdownCtx, cfg, logger)
	if err != nil {
		// Plateforme non supportée: fatal, aucune requête n'a été émise.
		logger.Fatal().Err(err).Msg("failed to start launcher")
	}
	defer launcher.Close()

	launcher.TrackSession(shutdownCtx)

	srv := httpapi.NewServer(shutdownCtx, logger, httpapi.Services{
		Login:   launcher.Dispatcher,
		Session: launcher.Session,
		Update:  launcher.Update,
		Launch:  launcher.Launch,
		News:    launcher.News,
	}, launcher.Bus, cfg.AllowedOrigins)

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", cfg.Addr).Msg("listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("http server crashed")
			stop()
		}
	}()

	<-shutdownCtx.Done()
	logger.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = httpServer.Shutdown(ctx)
	logger.Info().Msg("bye")
}
