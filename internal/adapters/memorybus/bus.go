package memorybus

import (
	"strings"
	"sync"

	"github.com/Guilhem-Bonnet/PB2-Launcher/internal/ports"
)

// Bus diffuse les résultats des tâches de fond (login, téléchargements, lancement)
// vers les abonnés: UI locale, flux SSE, suivi de session.
type Bus struct {
	mu    sync.Mutex
	subs  map[chan ports.Event]subscription
	alive bool
}

type subscription struct {
	// préfixes de topics acceptés; vide = tout.
	prefixes []string
}

func (s subscription) accepts(topic string) bool {
	if len(s.prefixes) == 0 {
		return true
	}
	for _, p := range s.prefixes {
		if topic == p || strings.HasPrefix(topic, p+".") {
			return true
		}
	}
	return false
}

func New() *Bus {
	return &Bus{subs: make(map[chan ports.Event]subscription), alive: true}
}

func (b *Bus) Publish(topic string, payload []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.alive {
		return
	}
	evt := ports.Event{Topic: topic, Payload: payload}
	for ch, sub := range b.subs {
		if !sub.accepts(topic) {
			continue
		}
		select {
		case ch <- evt:
		default:
			// drop si l'abonné est trop lent
		}
	}
}

// Subscribe accepte des topics exacts ("login.completed") ou des familles ("login").
func (b *Bus) Subscribe(topics ...string) (<-chan ports.Event, func()) {
	ch := make(chan ports.Event, 64)
	b.mu.Lock()
	if !b.alive {
		close(ch)
		b.mu.Unlock()
		return ch, func() {}
	}
	b.subs[ch] = subscription{prefixes: append([]string(nil), topics...)}
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		if _, ok := b.subs[ch]; ok {
			delete(b.subs, ch)
			close(ch)
		}
		b.mu.Unlock()
	}

	return ch, cancel
}

// Close ferme tous les abonnements; les Publish suivants sont ignorés.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.alive {
		return
	}
	b.alive = false
	for ch := range b.subs {
		close(ch)
	}
	b.subs = nil
}
