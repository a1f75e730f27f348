package app

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/Guilhem-Bonnet/PB2-Launcher/internal/adapters/memorybus"
	"github.com/Guilhem-Bonnet/PB2-Launcher/internal/domain"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met before deadline")
}

func TestSessionTracker_FollowsLoginEvents(t *testing.T) {
	bus := memorybus.New()
	defer bus.Close()
	tracker := NewSessionTracker(zerolog.Nop(), bus)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ready := make(chan struct{})
	go tracker.Run(ctx, ready)
	<-ready

	publishJSON(bus, TopicLoginStarted, LoginEvent{AttemptID: "a1", Username: "alice"})
	waitFor(t, func() bool { return tracker.Snapshot().Pending })

	outcome := domain.NewLoginOutcome("Welcome back, alice!", domain.LoginWebsitePassword)
	publishJSON(bus, TopicLoginCompleted, LoginEvent{AttemptID: "a1", Username: "alice", Outcome: &outcome})
	waitFor(t, func() bool { return !tracker.Snapshot().Pending })

	s := tracker.Snapshot()
	if !s.SignedIn || s.SignedInAs != "alice" || s.LastOutcome == nil {
		t.Fatalf("unexpected session %+v", s)
	}

	publishJSON(bus, TopicLoginStarted, LoginEvent{AttemptID: "a2", Username: "bob"})
	rejected := domain.NewLoginOutcome("Wrong password", domain.LoginWebsitePassword)
	publishJSON(bus, TopicLoginCompleted, LoginEvent{AttemptID: "a2", Username: "bob", Outcome: &rejected})
	waitFor(t, func() bool { s := tracker.Snapshot(); return s.AttemptID == "a2" && !s.Pending })

	s = tracker.Snapshot()
	if s.SignedIn || s.SignedInAs != "" {
		t.Fatalf("failed login must clear the signed-in identity: %+v", s)
	}
}

func TestSessionTracker_FailureKeepsIdentity(t *testing.T) {
	tracker := NewSessionTracker(zerolog.Nop(), nil)
	tracker.Seed(domain.Credentials{Username: "alice", Password: "x"}, true)

	tracker.handleEvent(mustEvent(t, TopicLoginStarted, LoginEvent{AttemptID: "a1", Username: "alice"}))
	tracker.handleEvent(mustEvent(t, TopicLoginFailed, LoginEvent{AttemptID: "a1", ErrorCode: CodeNetwork, Error: "refused"}))

	s := tracker.Snapshot()
	if s.Pending || !s.SignedIn || s.SignedInAs != "alice" || s.LastError != "refused" {
		t.Fatalf("unexpected session %+v", s)
	}
}

func TestSessionTracker_StaleCompletionKeepsPending(t *testing.T) {
	tracker := NewSessionTracker(zerolog.Nop(), nil)
	tracker.handleEvent(mustEvent(t, TopicLoginStarted, LoginEvent{AttemptID: "a1"}))
	tracker.handleEvent(mustEvent(t, TopicLoginStarted, LoginEvent{AttemptID: "a2"}))
	tracker.handleEvent(mustEvent(t, TopicLoginFailed, LoginEvent{AttemptID: "a1", Error: "x"}))

	if !tracker.Snapshot().Pending {
		t.Fatalf("a2 is still running")
	}
}
