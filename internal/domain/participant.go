package domain

import "time"

// Participant represents a member currently present in the room.
// Name is the identity: unique, case-sensitive, trimmed, non-empty.
type Participant struct {
	Name     string    `json:"name"`
	LastSeen time.Time `json:"last_seen"`
}

func NewParticipant(name string, now time.Time) *Participant {
	return &Participant{
		Name:     name,
		LastSeen: now,
	}
}

// Stale reports whether the participant missed its heartbeat window.
// A participant exactly at the threshold is still live.
func (p *Participant) Stale(now time.Time, staleAfter time.Duration) bool {
	return now.Sub(p.LastSeen) > staleAfter
}
