// Package registry implements the in-memory registry of users, events, and
// event participation, including temporal status computation.
package registry

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// DateTimeLayout is the minute-precision layout used whenever an event start
// time crosses the console boundary (parsing flags, rendering listings).
const DateTimeLayout = "2006-01-02 15:04"

// DefaultEventDuration is how long an event is assumed to run. Events carry
// no end time, so status computation treats every event as lasting exactly
// this long from its start.
const DefaultEventDuration = 2 * time.Hour

var emailFolder = cases.Fold()

// NormalizeEmail trims and case-folds an email address. Two emails that fold
// to the same string are the same identity everywhere in the registry.
func NormalizeEmail(email string) string {
	return emailFolder.String(strings.TrimSpace(email))
}

// User is an attendee identity. Identity is the folded email; name and age
// are descriptive only. Users are never mutated or deleted once registered.
type User struct {
	// Name is the display name.
	Name string `json:"name"`

	// Email is the unique identifier, stored already folded.
	Email string `json:"email"`

	// Age in years.
	Age int `json:"age"`
}

// Event is a registered happening with a set of confirmed participants.
type Event struct {
	// ID is a numeric-looking string assigned by the registry. Unique and
	// immutable once assigned.
	ID string `json:"id"`

	// Name is the event title.
	Name string `json:"name"`

	// Address is where the event takes place.
	Address string `json:"address,omitempty"`

	// Category is a free-form label (show, sport, culture, ...).
	Category string `json:"category,omitempty"`

	// StartsAt is the scheduled start, minute precision.
	StartsAt time.Time `json:"starts_at"`

	// Description is free text.
	Description string `json:"description,omitempty"`

	// Participants holds folded emails, each at most once, in join order.
	Participants []string `json:"participants,omitempty"`
}

// HasParticipant reports whether the email is in the participant set.
func (e *Event) HasParticipant(email string) bool {
	email = NormalizeEmail(email)
	for _, p := range e.Participants {
		if p == email {
			return true
		}
	}
	return false
}

// AddParticipant adds the email to the participant set. Returns false if the
// email was already a participant (the set is unchanged).
func (e *Event) AddParticipant(email string) bool {
	email = NormalizeEmail(email)
	if e.HasParticipant(email) {
		return false
	}
	e.Participants = append(e.Participants, email)
	return true
}

// RemoveParticipant removes the email from the participant set. Returns
// false if the email was not a participant.
func (e *Event) RemoveParticipant(email string) bool {
	email = NormalizeEmail(email)
	for i, p := range e.Participants {
		if p == email {
			e.Participants = append(e.Participants[:i], e.Participants[i+1:]...)
			return true
		}
	}
	return false
}

// ParticipantCount returns the size of the participant set.
func (e *Event) ParticipantCount() int {
	return len(e.Participants)
}

// Status describes where an event sits relative to a point in time.
type Status int

const (
	// StatusUpcoming means the event has not started yet.
	StatusUpcoming Status = iota

	// StatusOngoing means the current time falls within the event window,
	// inclusive of the start and exclusive of the end.
	StatusOngoing

	// StatusPast means the event window has ended.
	StatusPast
)

// String returns the display label for the status.
func (s Status) String() string {
	switch s {
	case StatusUpcoming:
		return "upcoming"
	case StatusOngoing:
		return "ongoing"
	case StatusPast:
		return "past"
	default:
		return "unknown"
	}
}

// StatusAt computes the event's status at the given instant, assuming the
// event runs for DefaultEventDuration from its start. Pure function of its
// inputs; callers supply the clock.
func (e *Event) StatusAt(now time.Time) Status {
	return e.StatusWithin(now, DefaultEventDuration)
}

// StatusWithin is StatusAt with an explicit event duration.
func (e *Event) StatusWithin(now time.Time, duration time.Duration) Status {
	if now.Before(e.StartsAt) {
		return StatusUpcoming
	}
	if now.Before(e.StartsAt.Add(duration)) {
		return StatusOngoing
	}
	return StatusPast
}
