// Package bootstrap assemble les adapters et services partagés par la CLI et le serveur local.
package bootstrap

import (
	"context"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Guilhem-Bonnet/PB2-Launcher/internal/adapters/authfile"
	"github.com/Guilhem-Bonnet/PB2-Launcher/internal/adapters/httpfetch"
	"github.com/Guilhem-Bonnet/PB2-Launcher/internal/adapters/memorybus"
	"github.com/Guilhem-Bonnet/PB2-Launcher/internal/adapters/pb2web"
	"github.com/Guilhem-Bonnet/PB2-Launcher/internal/adapters/process"
	"github.com/Guilhem-Bonnet/PB2-Launcher/internal/app"
	"github.com/Guilhem-Bonnet/PB2-Launcher/internal/config"
	"github.com/Guilhem-Bonnet/PB2-Launcher/internal/domain"
	"github.com/Guilhem-Bonnet/PB2-Launcher/internal/platform"
)

type Launcher struct {
	Config config.Config
	Target domain.PlatformTarget
	Player domain.DownloadInfo

	Bus        *memorybus.Bus
	Store      *authfile.Store
	Login      *app.LoginService
	Dispatcher *app.Dispatcher
	Session    *app.SessionTracker
	Update     *app.UpdateService
	Launch     *app.LaunchService
	News       *app.NewsService
}

// NewLogger construit le logger racine; PB2_LOG_PRETTY / log_pretty active la sortie console.
func NewLogger(cfg config.Config, name string) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil {
		level = zerolog.InfoLevel
	}
	var logger zerolog.Logger
	if cfg.LogPretty {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		logger = zerolog.New(os.Stdout)
	}
	return logger.Level(level).With().Timestamp().Str("app", name).Logger()
}

// New résout la plateforme avant toute construction de client HTTP:
// une plateforme non supportée échoue sans activité réseau.
func New(ctx context.Context, cfg config.Config, logger zerolog.Logger) (*Launcher, error) {
	target, player, err := platform.Detect()
	if err != nil {
		return nil, err
	}

	bus := memorybus.New()
	store := authfile.NewStore(authfile.Path(cfg.DataDir))

	web := pb2web.NewClient(cfg.HTTPTimeout()).
		WithWebsiteURL(cfg.Endpoints.Website).
		WithLoaderURL(cfg.Endpoints.Loader).
		WithLogger(logger.With().Str("component", "pb2web").Logger())

	// Le téléchargement du swf peut dépasser le timeout des requêtes de login.
	fetcher := httpfetch.New(0).WithLogger(logger.With().Str("component", "fetch").Logger())

	login := app.NewLoginService(logger.With().Str("component", "login").Logger(), store,
		app.NewWebsiteStrategy(web),
		app.NewLoaderStrategy(web),
	)

	l := &Launcher{
		Config:     cfg,
		Target:     target,
		Player:     player,
		Bus:        bus,
		Store:      store,
		Login:      login,
		Dispatcher: app.NewDispatcher(ctx, logger.With().Str("component", "dispatcher").Logger(), login, bus),
		Session:    app.NewSessionTracker(logger.With().Str("component", "session").Logger(), bus),
		Update: app.NewUpdateService(logger.With().Str("component", "update").Logger(), fetcher, bus, app.UpdateOptions{
			Dir:         cfg.DataDir,
			Player:      player,
			MarkerURL:   cfg.Endpoints.Marker,
			GameDataURL: cfg.Endpoints.GameData,
		}),
		Launch: app.NewLaunchService(logger.With().Str("component", "launch").Logger(), store,
			process.NewSpawner(logger.With().Str("component", "process").Logger()), bus, cfg.DataDir, player),
		News: app.NewNewsService(web),
	}

	creds, ok, err := store.Load(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to read auth file")
	}
	l.Session.Seed(creds, ok)

	logger.Info().Str("platform", target.String()).Str("player", player.LocalFileName).Str("dir", cfg.DataDir).Msg("launcher ready")
	return l, nil
}

// TrackSession démarre le suivi de session et ne rend la main qu'une fois
// abonné au bus: aucun événement de login publié ensuite n'est perdu.
func (l *Launcher) TrackSession(ctx context.Context) {
	ready := make(chan struct{})
	go l.Session.Run(ctx, ready)
	<-ready
}

// Close attend les logins en cours puis ferme le bus.
func (l *Launcher) Close() {
	l.Dispatcher.Wait()
	l.Bus.Close()
}
