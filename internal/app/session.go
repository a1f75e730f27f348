package app

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"

	"github.com/Guilhem-Bonnet/PB2-Launcher/internal/domain"
	"github.com/Guilhem-Bonnet/PB2-Launcher/internal/ports"
)

// SessionTracker reconstruit l'état de session à partir des événements de login.
type SessionTracker struct {
	logger zerolog.Logger
	bus    ports.EventBus

	mu      sync.RWMutex
	session domain.Session
}

func NewSessionTracker(logger zerolog.Logger, bus ports.EventBus) *SessionTracker {
	return &SessionTracker{logger: logger, bus: bus}
}

// Seed initialise la session depuis le fichier d'identifiants au démarrage.
func (t *SessionTracker) Seed(creds domain.Credentials, ok bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if ok {
		t.session.SignedIn = true
		t.session.SignedInAs = creds.Username
	}
}

func (t *SessionTracker) Snapshot() domain.Session {
	t.mu.RLock()
	defer t.mu.RUnlock()
	s := t.session
	if s.LastOutcome != nil {
		o := *s.LastOutcome
		s.LastOutcome = &o
	}
	return s
}

// Run consomme le bus jusqu'à l'annulation de ctx. ready est fermé une fois abonné.
func (t *SessionTracker) Run(ctx context.Context, ready chan<- struct{}) {
	if t == nil || t.bus == nil {
		if ready != nil {
			close(ready)
		}
		return
	}
	ch, cancel := t.bus.Subscribe("login")
	defer cancel()
	if ready != nil {
		close(ready)
	}

	for {
		select {
		case <-ctx.Done():
			t.logger.Debug().Msg("session tracker stopped")
			return
		case evt, ok := <-ch:
			if !ok {
				return
			}
			t.handleEvent(evt)
		}
	}
}

func (t *SessionTracker) handleEvent(evt ports.Event) {
	var e LoginEvent
	if err := json.Unmarshal(evt.Payload, &e); err != nil {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	switch evt.Topic {
	case TopicLoginStarted:
		t.session.Pending = true
		t.session.AttemptID = e.AttemptID
		t.session.LastError = ""
	case TopicLoginCompleted:
		if e.Outcome == nil {
			return
		}
		t.finishLocked(e.AttemptID)
		outcome := *e.Outcome
		t.session.LastOutcome = &outcome
		t.session.SignedIn = outcome.Succeeded
		t.session.SignedInAs = ""
		if outcome.Succeeded {
			t.session.SignedInAs = e.Username
		}
	case TopicLoginFailed:
		t.finishLocked(e.AttemptID)
		t.session.LastError = e.Error
	}
}

// finishLocked ne lève Pending que si la tentative terminée est la dernière soumise.
func (t *SessionTracker) finishLocked(id string) {
	if t.session.AttemptID == id {
		t.session.Pending = false
	}
}
