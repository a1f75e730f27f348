package httpapi

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/Guilhem-Bonnet/PB2-Launcher/internal/app"
	"github.com/Guilhem-Bonnet/PB2-Launcher/internal/domain"
	"github.com/Guilhem-Bonnet/PB2-Launcher/internal/ports"
)

type LoginDispatcher interface {
	Submit(creds domain.Credentials) string
}

type SessionSource interface {
	Snapshot() domain.Session
}

type Updater interface {
	Check(ctx context.Context) ([]domain.AssetStatus, error)
	Start(ctx context.Context) *app.UpdateRun
}

type Launcher interface {
	Play(ctx context.Context) (int, error)
}

type NewsReader interface {
	Page(ctx context.Context, page int) (app.NewsPage, error)
	PageCount(ctx context.Context) (int, error)
}

// Services regroupe ce que l'API expose; un champ nil désactive ses routes.
type Services struct {
	Login   LoginDispatcher
	Session SessionSource
	Update  Updater
	Launch  Launcher
	News    NewsReader
}

type Server struct {
	logger   zerolog.Logger
	svc      Services
	bus      ports.EventBus
	validate *validator.Validate
	origins  []string
	// base borne les tâches de fond lancées par une requête (login, mise à jour):
	// elles survivent à la fin de la requête.
	base context.Context
}

func NewServer(base context.Context, logger zerolog.Logger, svc Services, bus ports.EventBus, allowedOrigins []string) *Server {
	if base == nil {
		base = context.Background()
	}
	return &Server{
		logger:   logger,
		svc:      svc,
		bus:      bus,
		validate: validator.New(),
		origins:  allowedOrigins,
		base:     base,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(hlog.NewHandler(s.logger))
	r.Use(hlog.RequestIDHandler("request_id", "Request-Id"))
	r.Use(hlog.RemoteAddrHandler("remote_ip"))
	r.Use(hlog.UserAgentHandler("user_agent"))
	r.Use(hlog.AccessHandler(accessLogFn))
	if len(s.origins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.origins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		// Le flux SSE reste ouvert: pas de timeout.
		r.Get("/events", s.handleEvents)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(defaultRequestTimeout))
			r.Get("/health", s.handleHealth)
			r.Get("/version", s.handleVersion)
			r.Get("/openapi.json", s.handleOpenAPI)

			if s.svc.Login != nil {
				r.Post("/login", s.handleLogin)
			}
			if s.svc.Session != nil {
				r.Get("/session", s.handleSession)
			}
			if s.svc.Update != nil {
				r.Get("/assets", s.handleAssets)
				r.Post("/update", s.handleUpdate)
			}
			if s.svc.Launch != nil {
				r.Post("/play", s.handlePlay)
			}
			if s.svc.News != nil {
				r.Get("/news", s.handleNews)
				r.Get("/news/pages", s.handleNewsPages)
			}
		})
	})

	return r
}
