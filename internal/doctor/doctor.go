// Package doctor inspects the persisted registry for invariant violations:
// an unparsable data file, a lagging ID counter, duplicate user emails, and
// unfolded participant entries. Checks only read; fixes are left to the user.
package doctor

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/ksoares/evreg/internal/registry"
	"github.com/ksoares/evreg/internal/store"
)

// Status is the outcome class of a single check.
type Status int

const (
	// StatusOK means the check passed.
	StatusOK Status = iota

	// StatusWarning means something is off but the registry still works.
	StatusWarning

	// StatusError means an invariant is violated.
	StatusError
)

// Result is the outcome of one check.
type Result struct {
	// Name identifies the check.
	Name string

	// Status classifies the outcome.
	Status Status

	// Message states what was found.
	Message string

	// FixHint suggests a remedy when Status is not OK.
	FixHint string
}

// Context carries what checks need to run.
type Context struct {
	// Store reads the data file under inspection.
	Store *store.Store

	// Registry is the strictly loaded registry, nil when loading failed.
	Registry *registry.Registry
}

// Check is a single registry health inspection.
type Check interface {
	// Name identifies the check in output.
	Name() string

	// Run performs the inspection.
	Run(ctx *Context) Result
}

// Run executes every check against the data file at the store's path and
// returns the results in order.
func Run(st *store.Store) []Result {
	ctx := &Context{Store: st}
	if reg, err := st.LoadStrict(); err == nil {
		ctx.Registry = reg
	}

	checks := []Check{
		&DataFileCheck{},
		&CounterCheck{},
		&DuplicateEmailCheck{},
		&ParticipantCaseCheck{},
	}

	results := make([]Result, 0, len(checks))
	for _, c := range checks {
		results = append(results, c.Run(ctx))
	}
	return results
}

// DataFileCheck verifies the data file is present and parseable.
type DataFileCheck struct{}

// Name identifies the check.
func (c *DataFileCheck) Name() string { return "data-file" }

// Run inspects the data file itself.
func (c *DataFileCheck) Run(ctx *Context) Result {
	_, err := ctx.Store.LoadStrict()
	switch {
	case err == nil:
		reg := ctx.Registry
		return Result{
			Name:   c.Name(),
			Status: StatusOK,
			Message: fmt.Sprintf("registry %s: %d users, %d events",
				reg.ID(), len(reg.Users()), len(reg.Events())),
		}
	case errors.Is(err, store.ErrStoreNotFound):
		// No file yet is a normal state for a new installation.
		return Result{
			Name:    c.Name(),
			Status:  StatusOK,
			Message: "no data file yet; one is created on the first save",
		}
	default:
		return Result{
			Name:    c.Name(),
			Status:  StatusWarning,
			Message: fmt.Sprintf("data file unusable: %v", err),
			FixHint: fmt.Sprintf("the next run starts empty; remove %s to silence this", ctx.Store.Path()),
		}
	}
}

// CounterCheck verifies the next event ID is strictly greater than every
// assigned event ID.
type CounterCheck struct{}

// Name identifies the check.
func (c *CounterCheck) Name() string { return "id-counter" }

// Run inspects the ID counter invariant.
func (c *CounterCheck) Run(ctx *Context) Result {
	if ctx.Registry == nil {
		return Result{Name: c.Name(), Status: StatusOK, Message: "skipped: no registry loaded"}
	}

	// Loading already clamps the counter; verify the invariant held by
	// issuing nothing and comparing against the max assigned ID.
	var max uint64
	for _, e := range ctx.Registry.Events() {
		if n, err := strconv.ParseUint(e.ID, 10, 64); err == nil && n > max {
			max = n
		}
	}
	next := ctx.Registry.PeekNextEventID()
	if next <= max {
		return Result{
			Name:    c.Name(),
			Status:  StatusError,
			Message: fmt.Sprintf("next event id %d is not greater than assigned id %d", next, max),
			FixHint: "remove the data file or fix next_event_id by hand",
		}
	}
	return Result{
		Name:    c.Name(),
		Status:  StatusOK,
		Message: fmt.Sprintf("next event id %d is ahead of %d assigned events", next, len(ctx.Registry.Events())),
	}
}

// DuplicateEmailCheck verifies at most one user per folded email.
type DuplicateEmailCheck struct{}

// Name identifies the check.
func (c *DuplicateEmailCheck) Name() string { return "unique-emails" }

// Run inspects the user uniqueness invariant.
func (c *DuplicateEmailCheck) Run(ctx *Context) Result {
	if ctx.Registry == nil {
		return Result{Name: c.Name(), Status: StatusOK, Message: "skipped: no registry loaded"}
	}

	seen := make(map[string]bool)
	for _, u := range ctx.Registry.Users() {
		folded := registry.NormalizeEmail(u.Email)
		if seen[folded] {
			return Result{
				Name:    c.Name(),
				Status:  StatusError,
				Message: fmt.Sprintf("email %s appears more than once", folded),
				FixHint: "remove the duplicate entry from the data file",
			}
		}
		seen[folded] = true
	}
	return Result{
		Name:    c.Name(),
		Status:  StatusOK,
		Message: fmt.Sprintf("%d users, all emails unique", len(ctx.Registry.Users())),
	}
}

// ParticipantCaseCheck verifies participant entries are stored folded, as
// every code path writes them. An unfolded entry means the file was edited
// by hand and membership checks may miss it.
type ParticipantCaseCheck struct{}

// Name identifies the check.
func (c *ParticipantCaseCheck) Name() string { return "participant-case" }

// Run inspects participant sets for unfolded entries.
func (c *ParticipantCaseCheck) Run(ctx *Context) Result {
	if ctx.Registry == nil {
		return Result{Name: c.Name(), Status: StatusOK, Message: "skipped: no registry loaded"}
	}

	for _, e := range ctx.Registry.Events() {
		for _, p := range e.Participants {
			if p != registry.NormalizeEmail(p) {
				return Result{
					Name:    c.Name(),
					Status:  StatusWarning,
					Message: fmt.Sprintf("event %s has unfolded participant %q", e.ID, p),
					FixHint: "lower-case the entry in the data file",
				}
			}
		}
	}
	return Result{Name: c.Name(), Status: StatusOK, Message: "participant sets are normalized"}
}
