package session

import "synergysphere/internal/models"

// State is where the session is in its login lifecycle.
type State string

const (
	StateUnauthenticated State = "unauthenticated"
	StateAuthenticating  State = "authenticating"
	StateAuthenticated   State = "authenticated"
)

// Snapshot is a copy of the session state safe to hand to callers.
type Snapshot struct {
	State State        `json:"state"`
	User  *models.User `json:"user"`
}

// Authenticated reports whether a user is logged in.
func (s Snapshot) Authenticated() bool {
	return s.State == StateAuthenticated && s.User != nil
}

type eventKind int

const (
	evLoginStart eventKind = iota
	evLoginSuccess
	evLoginFailure
	evLogout
	evSetLoading
)

type event struct {
	kind    eventKind
	user    *models.User
	loading bool
}

// reduce returns the state that follows ev. It never mutates its input.
func reduce(s Snapshot, ev event) Snapshot {
	switch ev.kind {
	case evLoginStart:
		return Snapshot{State: StateAuthenticating, User: s.User}
	case evLoginSuccess:
		u := *ev.user
		return Snapshot{State: StateAuthenticated, User: &u}
	case evLoginFailure, evLogout:
		return Snapshot{State: StateUnauthenticated}
	case evSetLoading:
		if ev.loading {
			return Snapshot{State: StateAuthenticating, User: s.User}
		}
		if s.User != nil {
			return Snapshot{State: StateAuthenticated, User: s.User}
		}
		return Snapshot{State: StateUnauthenticated}
	}
	return s
}
