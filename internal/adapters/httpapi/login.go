package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/Guilhem-Bonnet/PB2-Launcher/internal/domain"
	"github.com/Guilhem-Bonnet/PB2-Launcher/internal/httpjson"
)

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginAccepted struct {
	AttemptID string `json:"attemptId"`
	State     string `json:"state"`
}

// handleLogin ne fait que soumettre la tentative: le résultat arrive sur
// /events (login.completed / login.failed) et dans /session.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.WriteError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		httpjson.WriteError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	id := s.svc.Login.Submit(domain.Credentials{Username: req.Username, Password: req.Password})
	httpjson.Write(w, http.StatusAccepted, loginAccepted{AttemptID: id, State: "pending"})
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	httpjson.Write(w, http.StatusOK, s.svc.Session.Snapshot())
}
