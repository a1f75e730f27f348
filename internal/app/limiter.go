package app

import (
	"context"
	"sync"
)

// Limiter borne le nombre d'opérations en vol. Le launcher l'utilise avec un
// seul slot pour sérialiser les cycles de mise à jour.
// Acquire respecte le contexte.
type Limiter struct {
	mu       sync.Mutex
	limit    int
	inFlight int
	notify   chan struct{}
}

func NewLimiter(limit int) *Limiter {
	if limit <= 0 {
		limit = 1
	}
	return &Limiter{limit: limit, notify: make(chan struct{})}
}

func (l *Limiter) InFlight() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inFlight
}

// Busy vaut true quand tous les slots sont pris.
func (l *Limiter) Busy() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inFlight >= l.limit
}

func (l *Limiter) Acquire(ctx context.Context) error {
	for {
		l.mu.Lock()
		if l.inFlight < l.limit {
			l.inFlight++
			l.mu.Unlock()
			return nil
		}
		ch := l.notify
		l.mu.Unlock()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ch:
		}
	}
}

func (l *Limiter) Release() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.inFlight > 0 {
		l.inFlight--
	}
	// Réveille tous les waiters; le premier qui reprend le verrou gagne le slot.
	close(l.notify)
	l.notify = make(chan struct{})
}
