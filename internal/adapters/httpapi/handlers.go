package httpapi

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/hlog"

	"github.com/Guilhem-Bonnet/PB2-Launcher/internal/app"
	"github.com/Guilhem-Bonnet/PB2-Launcher/internal/buildinfo"
	"github.com/Guilhem-Bonnet/PB2-Launcher/internal/httpjson"
)

const defaultRequestTimeout = 60 * time.Second

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	httpjson.Write(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	httpjson.Write(w, http.StatusOK, buildinfo.Current())
}

// writeAppError traduit les codes d'erreur applicatifs en statut HTTP.
func writeAppError(w http.ResponseWriter, err error) {
	code := app.ErrorCode(err)
	status := http.StatusInternalServerError
	if app.IsTransport(err) {
		status = http.StatusBadGateway
	}
	httpjson.WriteCodedError(w, status, code, err.Error())
}

func accessLogFn(r *http.Request, status, size int, duration time.Duration) {
	logger := hlog.FromRequest(r)
	logger.Info().
		Int("status", status).
		Int("size", size).
		Dur("duration", duration).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Msg("http")
}
