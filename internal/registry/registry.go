package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrDuplicateEmail indicates a user with that email is already registered.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrInvalidEmail indicates the email is empty or unusable as an identity.
	ErrInvalidEmail = errors.New("invalid email")

	// ErrInvalidAge indicates a negative age.
	ErrInvalidAge = errors.New("age cannot be negative")

	// ErrIncompatibleFile indicates a persisted registry of an unsupported
	// schema version.
	ErrIncompatibleFile = errors.New("incompatible registry file")
)

// CurrentFileVersion is the schema version written to persisted registries.
const CurrentFileVersion = 1

// Registry owns every user and event and is the single source of truth for
// the session. It is not safe for concurrent use; one CLI invocation is
// single-threaded and the store serializes access across processes.
type Registry struct {
	id          string
	users       []User
	events      []*Event
	nextEventID uint64

	userIdx  map[string]int    // folded email -> index into users
	eventIdx map[string]*Event // id -> event
}

// New returns an empty registry with a freshly stamped identity.
func New() *Registry {
	return &Registry{
		id:          uuid.NewString(),
		nextEventID: 1,
		userIdx:     make(map[string]int),
		eventIdx:    make(map[string]*Event),
	}
}

// ID returns the registry's stable identity stamp, assigned at first
// creation and preserved across save/load.
func (r *Registry) ID() string {
	return r.id
}

// RegisterUser adds a new user. The email is folded before it is stored or
// compared; registering a second user whose email folds to the same string
// fails with ErrDuplicateEmail.
func (r *Registry) RegisterUser(name, email string, age int) (User, error) {
	folded := NormalizeEmail(email)
	if folded == "" {
		return User{}, ErrInvalidEmail
	}
	if age < 0 {
		return User{}, ErrInvalidAge
	}
	if _, exists := r.userIdx[folded]; exists {
		return User{}, fmt.Errorf("%w: %s", ErrDuplicateEmail, folded)
	}

	u := User{Name: name, Email: folded, Age: age}
	r.users = append(r.users, u)
	r.userIdx[folded] = len(r.users) - 1
	return u, nil
}

// FindUserByEmail looks up a user by email, case-insensitively.
func (r *Registry) FindUserByEmail(email string) (User, bool) {
	i, ok := r.userIdx[NormalizeEmail(email)]
	if !ok {
		return User{}, false
	}
	return r.users[i], true
}

// Users returns all registered users in registration order.
func (r *Registry) Users() []User {
	return r.users
}

// CreateEvent creates a new event with the next sequential ID and an empty
// participant set. IDs are never reused.
func (r *Registry) CreateEvent(name, address, category string, startsAt time.Time, description string) *Event {
	e := &Event{
		ID:          strconv.FormatUint(r.nextEventID, 10),
		Name:        name,
		Address:     address,
		Category:    category,
		StartsAt:    startsAt,
		Description: description,
	}
	r.nextEventID++
	r.events = append(r.events, e)
	r.eventIdx[e.ID] = e
	return e
}

// PeekNextEventID returns the ID the next created event would receive,
// without issuing it.
func (r *Registry) PeekNextEventID() uint64 {
	return r.nextEventID
}

// FindEventByID looks up an event by its exact ID.
func (r *Registry) FindEventByID(id string) (*Event, bool) {
	e, ok := r.eventIdx[id]
	return e, ok
}

// Events returns the live event sequence in its current order: creation
// order by default, date order after SortEventsByDate.
func (r *Registry) Events() []*Event {
	return r.events
}

// JoinEvent adds the email to the event's participant set. Returns false if
// the event does not exist or the email was already a participant; both are
// quiet no-ops, not errors. The email does not need to belong to a
// registered user.
func (r *Registry) JoinEvent(email, eventID string) bool {
	e, ok := r.eventIdx[eventID]
	if !ok {
		return false
	}
	return e.AddParticipant(email)
}

// LeaveEvent removes the email from the event's participant set. Returns
// false if the event does not exist or the email was not a participant.
func (r *Registry) LeaveEvent(email, eventID string) bool {
	e, ok := r.eventIdx[eventID]
	if !ok {
		return false
	}
	return e.RemoveParticipant(email)
}

// EventsForUser returns every event, in the registry's current order, whose
// participant set contains the email.
func (r *Registry) EventsForUser(email string) []*Event {
	var out []*Event
	for _, e := range r.events {
		if e.HasParticipant(email) {
			out = append(out, e)
		}
	}
	return out
}

// SortEventsByDate reorders the canonical event sequence ascending by start
// time. The sort is stable: events with equal start times keep their
// relative order. Subsequent listings and persistence see the new order.
func (r *Registry) SortEventsByDate() {
	sort.SliceStable(r.events, func(i, j int) bool {
		return r.events[i].StartsAt.Before(r.events[j].StartsAt)
	})
}

// registryFile is the persisted shape of a Registry.
type registryFile struct {
	Version     int      `json:"version"`
	ID          string   `json:"id"`
	Users       []User   `json:"users"`
	Events      []*Event `json:"events"`
	NextEventID uint64   `json:"next_event_id"`
}

// MarshalJSON serializes the full registry state: users, events with their
// participant sets, and the next-ID counter.
func (r *Registry) MarshalJSON() ([]byte, error) {
	return json.Marshal(registryFile{
		Version:     CurrentFileVersion,
		ID:          r.id,
		Users:       r.users,
		Events:      r.events,
		NextEventID: r.nextEventID,
	})
}

// UnmarshalJSON reconstructs a registry from its persisted shape, rebuilding
// the lookup indexes. The next-ID counter is clamped so it stays strictly
// greater than every assigned event ID, even if the file was hand-edited.
func (r *Registry) UnmarshalJSON(data []byte) error {
	var f registryFile
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	if f.Version != CurrentFileVersion {
		return fmt.Errorf("%w: version %d", ErrIncompatibleFile, f.Version)
	}

	r.id = f.ID
	if r.id == "" {
		r.id = uuid.NewString()
	}
	r.users = f.Users
	r.events = f.Events
	r.nextEventID = f.NextEventID
	if r.nextEventID == 0 {
		r.nextEventID = 1
	}

	r.userIdx = make(map[string]int, len(r.users))
	for i := range r.users {
		folded := NormalizeEmail(r.users[i].Email)
		r.users[i].Email = folded
		// First occurrence wins; a duplicate in a hand-edited file is
		// surfaced by doctor, not silently dropped here.
		if _, exists := r.userIdx[folded]; !exists {
			r.userIdx[folded] = i
		}
	}

	r.eventIdx = make(map[string]*Event, len(r.events))
	for _, e := range r.events {
		if e == nil {
			return fmt.Errorf("%w: null event entry", ErrIncompatibleFile)
		}
		r.eventIdx[e.ID] = e
		if n, err := strconv.ParseUint(e.ID, 10, 64); err == nil && n >= r.nextEventID {
			r.nextEventID = n + 1
		}
	}
	return nil
}
