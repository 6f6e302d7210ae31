package registry

import (
	"testing"
	"time"
)

func TestNormalizeEmail(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Alice@Example.COM", "alice@example.com"},
		{"  bob@example.com  ", "bob@example.com"},
		{"carol@example.com", "carol@example.com"},
	}
	for _, c := range cases {
		if got := NormalizeEmail(c.in); got != c.want {
			t.Errorf("NormalizeEmail(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestStatusAt(t *testing.T) {
	e := &Event{StartsAt: mustTime(t, "2025-01-01 10:00")}

	cases := []struct {
		now  string
		want Status
	}{
		{"2025-01-01 09:59", StatusUpcoming},
		{"2025-01-01 10:00", StatusOngoing}, // start is inclusive
		{"2025-01-01 11:59", StatusOngoing},
		{"2025-01-01 12:00", StatusPast}, // end is exclusive
		{"2025-01-02 10:00", StatusPast},
	}
	for _, c := range cases {
		if got := e.StatusAt(mustTime(t, c.now)); got != c.want {
			t.Errorf("StatusAt(%s) = %v, want %v", c.now, got, c.want)
		}
	}
}

func TestStatusWithin(t *testing.T) {
	e := &Event{StartsAt: mustTime(t, "2025-01-01 10:00")}
	now := mustTime(t, "2025-01-01 10:30")

	if got := e.StatusWithin(now, 15*time.Minute); got != StatusPast {
		t.Errorf("StatusWithin 15m = %v, want past", got)
	}
	if got := e.StatusWithin(now, time.Hour); got != StatusOngoing {
		t.Errorf("StatusWithin 1h = %v, want ongoing", got)
	}
}

func TestStatusString(t *testing.T) {
	if StatusUpcoming.String() != "upcoming" {
		t.Errorf("upcoming label = %q", StatusUpcoming.String())
	}
	if StatusOngoing.String() != "ongoing" {
		t.Errorf("ongoing label = %q", StatusOngoing.String())
	}
	if StatusPast.String() != "past" {
		t.Errorf("past label = %q", StatusPast.String())
	}
}

func TestParticipantSet(t *testing.T) {
	e := &Event{}

	if !e.AddParticipant("Dana@Example.com") {
		t.Fatal("first add should succeed")
	}
	if e.AddParticipant("dana@example.com") {
		t.Error("duplicate add should return false")
	}
	if !e.HasParticipant("DANA@EXAMPLE.COM") {
		t.Error("membership check should be case-insensitive")
	}
	if !e.RemoveParticipant("dana@example.com") {
		t.Error("remove of member should succeed")
	}
	if e.RemoveParticipant("dana@example.com") {
		t.Error("remove of non-member should return false")
	}
}
