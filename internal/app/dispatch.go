package app

import (
	"context"
	"sync"

	"github.com/rs/xid"
	"github.com/rs/zerolog"

	"github.com/Guilhem-Bonnet/PB2-Launcher/internal/domain"
	"github.com/Guilhem-Bonnet/PB2-Launcher/internal/ports"
)

// retainedAttempts borne le nombre de tentatives terminées gardées pour Await.
const retainedAttempts = 32

type LoginRunner interface {
	Login(ctx context.Context, creds domain.Credentials) (domain.LoginOutcome, error)
}

type LoginResult struct {
	AttemptID string
	Username  string
	Outcome   domain.LoginOutcome
	Err       error
}

type attempt struct {
	// prev est fermé quand la tentative soumise juste avant est terminée.
	prev   <-chan struct{}
	done   chan struct{}
	result LoginResult
}

// Dispatcher rend Submit non bloquant: la tentative tourne en arrière-plan,
// son résultat est publié sur le bus et reste disponible via Await.
// Les tentatives s'exécutent une par une, dans l'ordre de soumission: chacune
// attend la fermeture du done de la précédente.
type Dispatcher struct {
	parent context.Context
	logger zerolog.Logger
	login  LoginRunner
	bus    ports.EventBus

	mu       sync.Mutex
	attempts map[string]*attempt
	order    []string
	tail     <-chan struct{}
	wg       sync.WaitGroup
}

func NewDispatcher(parent context.Context, logger zerolog.Logger, login LoginRunner, bus ports.EventBus) *Dispatcher {
	if parent == nil {
		parent = context.Background()
	}
	return &Dispatcher{
		parent:   parent,
		logger:   logger,
		login:    login,
		bus:      bus,
		attempts: make(map[string]*attempt),
	}
}

// Submit enregistre une tentative et renvoie son id sans attendre.
func (d *Dispatcher) Submit(creds domain.Credentials) string {
	id := xid.New().String()
	a := &attempt{done: make(chan struct{})}

	d.mu.Lock()
	a.prev = d.tail
	d.tail = a.done
	d.attempts[id] = a
	d.order = append(d.order, id)
	// Publié sous le verrou pour que les login.started suivent l'ordre de la file.
	publishJSON(d.bus, TopicLoginStarted, LoginEvent{AttemptID: id, Username: creds.Username})
	d.mu.Unlock()

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		d.run(id, creds, a)
	}()
	return id
}

func (d *Dispatcher) run(id string, creds domain.Credentials, a *attempt) {
	res := LoginResult{AttemptID: id, Username: creds.Username}
	defer func() {
		d.mu.Lock()
		a.result = res
		close(a.done)
		d.pruneLocked()
		d.mu.Unlock()
	}()

	if a.prev != nil {
		select {
		case <-d.parent.Done():
			res.Err = d.parent.Err()
			d.publishFailure(res)
			return
		case <-a.prev:
		}
	}

	outcome, err := d.login.Login(d.parent, creds)
	if err != nil {
		res.Err = err
		d.publishFailure(res)
		return
	}
	res.Outcome = outcome
	publishJSON(d.bus, TopicLoginCompleted, LoginEvent{AttemptID: id, Username: creds.Username, Outcome: &outcome})
}

func (d *Dispatcher) publishFailure(res LoginResult) {
	d.logger.Warn().Err(res.Err).Str("attempt_id", res.AttemptID).Msg("login attempt failed")
	publishJSON(d.bus, TopicLoginFailed, LoginEvent{
		AttemptID: res.AttemptID,
		Username:  res.Username,
		ErrorCode: ErrorCode(res.Err),
		Error:     res.Err.Error(),
	})
}

// pruneLocked oublie les tentatives terminées les plus anciennes.
func (d *Dispatcher) pruneLocked() {
	for len(d.order) > retainedAttempts {
		oldest := d.attempts[d.order[0]]
		select {
		case <-oldest.done:
		default:
			return
		}
		delete(d.attempts, d.order[0])
		d.order = d.order[1:]
	}
}

// Await bloque jusqu'au résultat de la tentative id.
func (d *Dispatcher) Await(ctx context.Context, id string) (LoginResult, error) {
	d.mu.Lock()
	a, ok := d.attempts[id]
	d.mu.Unlock()
	if !ok {
		return LoginResult{}, ErrNotFound
	}

	select {
	case <-ctx.Done():
		return LoginResult{}, ctx.Err()
	case <-a.done:
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	return a.result, nil
}

// Pending vaut true tant qu'une tentative tourne ou attend son tour.
func (d *Dispatcher) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, a := range d.attempts {
		select {
		case <-a.done:
		default:
			return true
		}
	}
	return false
}

// Wait attend la fin de toutes les tentatives soumises (arrêt propre).
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
