package encounter

import (
	"time"

	"github.com/google/uuid"
)

// LogEntry records one resolved action in the encounter's combat log.
type LogEntry struct {
	ID        string
	Action    Action
	Result    string
	Timestamp time.Time
}

// Session is the transient per-encounter record the engine owns for UI
// bookkeeping. It is created when an encounter begins and discarded when
// the encounter ends; all durable state lives on the commander session.
type Session struct {
	ID     string
	Type   Type
	Active bool
	// Turn counts resolved rounds, starting at 0.
	Turn int
	// BribeLevel is the local government's bribery factor, >= 1. The
	// surrounding dispatcher sets it from the current system.
	BribeLevel int
	// Log is the append-only record of resolved actions.
	Log []LogEntry
}

// NewSession creates an active Session for the given encounter type.
//
// Postcondition: Returns a Session with a fresh uuid, Active == true,
// Turn == 0, BribeLevel == 1, and an empty log.
func NewSession(t Type) *Session {
	return &Session{
		ID:         uuid.New().String(),
		Type:       t,
		Active:     true,
		BribeLevel: 1,
	}
}

// record appends a log entry for a resolved action and bumps the turn
// counter.
func (s *Session) record(a Action, result string) {
	s.Log = append(s.Log, LogEntry{
		ID:        uuid.New().String(),
		Action:    a,
		Result:    result,
		Timestamp: time.Now(),
	})
	s.Turn++
}

// end deactivates the session.
func (s *Session) end() {
	s.Active = false
}
