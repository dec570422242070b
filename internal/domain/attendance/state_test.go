package attendance

import (
	"testing"
	"time"
)

func TestStateOf(t *testing.T) {
	in := time.Date(2024, 1, 15, 8, 4, 0, 0, time.UTC)
	out := in.Add(8 * time.Hour)

	cases := []struct {
		name string
		rec  *Record
		want State
	}{
		{"nil record", nil, StateNone},
		{"checked in", &Record{CheckIn: &in}, StateCheckedIn},
		{"checked out", &Record{CheckIn: &in, CheckOut: &out}, StateCheckedOut},
		{"check-out undone", &Record{CheckIn: &in, CheckOutUndone: true}, StateCheckOutUndone},
	}
	for _, c := range cases {
		if got := StateOf(c.rec); got != c.want {
			t.Errorf("%s: StateOf = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestTransitionTable(t *testing.T) {
	allowed := []struct {
		s State
		a Action
	}{
		{StateNone, ActionCheckIn},
		{StateCheckedIn, ActionUndoCheckIn},
		{StateCheckedIn, ActionCheckOut},
		{StateCheckedOut, ActionUndoCheckOut},
		{StateCheckOutUndone, ActionUndoCheckIn},
	}
	for _, c := range allowed {
		if !Allowed(c.s, c.a) {
			t.Errorf("Allowed(%v, %v) = false, want true", c.s, c.a)
		}
	}

	forbidden := []struct {
		s State
		a Action
	}{
		{StateNone, ActionCheckOut},
		{StateNone, ActionUndoCheckIn},
		{StateNone, ActionUndoCheckOut},
		{StateCheckedIn, ActionCheckIn},
		{StateCheckedIn, ActionUndoCheckOut},
		{StateCheckedOut, ActionCheckIn},
		{StateCheckedOut, ActionCheckOut},
		{StateCheckedOut, ActionUndoCheckIn},
		// The undo flag is spent: checking out again is never allowed.
		{StateCheckOutUndone, ActionCheckOut},
		{StateCheckOutUndone, ActionUndoCheckOut},
		{StateCheckOutUndone, ActionCheckIn},
	}
	for _, c := range forbidden {
		if Allowed(c.s, c.a) {
			t.Errorf("Allowed(%v, %v) = true, want false", c.s, c.a)
		}
	}
}
