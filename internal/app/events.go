package app

import (
	"encoding/json"

	"github.com/Guilhem-Bonnet/PB2-Launcher/internal/domain"
	"github.com/Guilhem-Bonnet/PB2-Launcher/internal/ports"
)

const (
	TopicLoginStarted   = "login.started"
	TopicLoginCompleted = "login.completed"
	TopicLoginFailed    = "login.failed"

	TopicUpdateStarted     = "update.started"
	TopicUpdateFinished    = "update.finished"
	TopicDownloadCompleted = "download.completed"
	TopicDownloadFailed    = "download.failed"

	TopicLaunchStarted = "launch.started"
	TopicLaunchFailed  = "launch.failed"
)

type LoginEvent struct {
	AttemptID string               `json:"attemptId"`
	Username  string               `json:"username"`
	Outcome   *domain.LoginOutcome `json:"outcome,omitempty"`
	ErrorCode string               `json:"errorCode,omitempty"`
	Error     string               `json:"error,omitempty"`
}

type DownloadEvent struct {
	RunID     string `json:"runId"`
	Name      string `json:"name"`
	URL       string `json:"url"`
	Path      string `json:"path,omitempty"`
	Bytes     int64  `json:"bytes,omitempty"`
	Size      string `json:"size,omitempty"`
	ErrorCode string `json:"errorCode,omitempty"`
	Error     string `json:"error,omitempty"`
}

type UpdateEvent struct {
	RunID     string `json:"runId"`
	Completed int    `json:"completed"`
	Failed    int    `json:"failed"`
}

// LaunchEvent ne contient jamais l'argument complet: il porte le mot de passe.
type LaunchEvent struct {
	Player    string `json:"player"`
	PID       int    `json:"pid,omitempty"`
	Guest     bool   `json:"guest"`
	ErrorCode string `json:"errorCode,omitempty"`
	Error     string `json:"error,omitempty"`
}

func publishJSON(bus ports.EventBus, topic string, v any) {
	if bus == nil {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	bus.Publish(topic, b)
}
