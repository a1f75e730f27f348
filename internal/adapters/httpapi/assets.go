package httpapi

import (
	"net/http"

	"github.com/Guilhem-Bonnet/PB2-Launcher/internal/httpjson"
)

func (s *Server) handleAssets(w http.ResponseWriter, r *http.Request) {
	status, err := s.svc.Update.Check(r.Context())
	if err != nil {
		writeAppError(w, err)
		return
	}
	httpjson.Write(w, http.StatusOK, status)
}

// handleUpdate lance un cycle et répond tout de suite; les résultats
// arrivent en download.completed / download.failed.
func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	run := s.svc.Update.Start(s.base)
	httpjson.Write(w, http.StatusAccepted, map[string]string{"runId": run.ID})
}

func (s *Server) handlePlay(w http.ResponseWriter, r *http.Request) {
	pid, err := s.svc.Launch.Play(r.Context())
	if err != nil {
		writeAppError(w, err)
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]int{"pid": pid})
}
