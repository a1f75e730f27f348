package domain

// Session est l'état côté UI, reconstruit à partir des événements de login.
type Session struct {
	SignedIn    bool          `json:"signedIn"`
	SignedInAs  string        `json:"signedInAs,omitempty"`
	Pending     bool          `json:"pending"`
	AttemptID   string        `json:"attemptId,omitempty"`
	LastOutcome *LoginOutcome `json:"lastOutcome,omitempty"`
	LastError   string        `json:"lastError,omitempty"`
}
