package doctor

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ksoares/evreg/internal/registry"
	"github.com/ksoares/evreg/internal/store"
)

func resultByName(t *testing.T, results []Result, name string) Result {
	t.Helper()
	for _, r := range results {
		if r.Name == name {
			return r
		}
	}
	t.Fatalf("no result named %q", name)
	return Result{}
}

func TestRun_HealthyFile(t *testing.T) {
	st := store.New(filepath.Join(t.TempDir(), "registry.json"))

	reg := registry.New()
	reg.RegisterUser("Alice", "alice@example.com", 30)
	e := reg.CreateEvent("Show", "", "", time.Now(), "")
	reg.JoinEvent("alice@example.com", e.ID)
	if err := st.Save(reg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	for _, r := range Run(st) {
		if r.Status != StatusOK {
			t.Errorf("%s: status = %v, message = %q", r.Name, r.Status, r.Message)
		}
	}
}

func TestRun_MissingFile(t *testing.T) {
	st := store.New(filepath.Join(t.TempDir(), "registry.json"))

	r := resultByName(t, Run(st), "data-file")
	if r.Status != StatusOK {
		t.Errorf("a missing file is a normal state, got status %v: %s", r.Status, r.Message)
	}
}

func TestRun_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "registry.json")
	if err := os.WriteFile(path, []byte("{broken"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	r := resultByName(t, Run(store.New(path)), "data-file")
	if r.Status != StatusWarning {
		t.Errorf("corrupt file should warn, got %v", r.Status)
	}
	if r.FixHint == "" {
		t.Error("corrupt file warning should carry a fix hint")
	}
}

func TestRun_DuplicateEmails(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "registry.json")
	// Two users folding to the same email can only come from a hand-edited
	// file; RegisterUser refuses to create this state.
	data := `{
		"version": 1,
		"id": "abc",
		"users": [
			{"name": "A", "email": "dup@example.com", "age": 30},
			{"name": "B", "email": "DUP@example.com", "age": 31}
		],
		"events": [],
		"next_event_id": 1
	}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	r := resultByName(t, Run(store.New(path)), "unique-emails")
	if r.Status != StatusError {
		t.Errorf("duplicate emails should be an error, got %v: %s", r.Status, r.Message)
	}
}

func TestRun_UnfoldedParticipant(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "registry.json")
	data := `{
		"version": 1,
		"id": "abc",
		"users": [],
		"events": [
			{"id": "1", "name": "X", "starts_at": "2025-06-01T19:00:00Z",
			 "participants": ["Mixed@Example.com"]}
		],
		"next_event_id": 2
	}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	r := resultByName(t, Run(store.New(path)), "participant-case")
	if r.Status != StatusWarning {
		t.Errorf("unfolded participant should warn, got %v: %s", r.Status, r.Message)
	}
}
