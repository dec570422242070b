package attendance

// State is the derived position of a Record in the daily check-in/check-out
// machine. The one-shot undo rules live in the transition table below instead
// of being re-checked ad hoc at every call site.
type State int

const (
	// StateNone means no record exists for the employee and day.
	StateNone State = iota
	// StateCheckedIn means check-in is set and check-out is not.
	StateCheckedIn
	// StateCheckedOut means both check-in and check-out are set.
	StateCheckedOut
	// StateCheckOutUndone means the check-out was reverted; the undo flag is
	// spent, so a second check-out is never allowed again.
	StateCheckOutUndone
)

func (s State) String() string {
	switch s {
	case StateNone:
		return "none"
	case StateCheckedIn:
		return "checked_in"
	case StateCheckedOut:
		return "checked_out"
	case StateCheckOutUndone:
		return "check_out_undone"
	}
	return "unknown"
}

type Action int

const (
	ActionCheckIn Action = iota
	ActionUndoCheckIn
	ActionCheckOut
	ActionUndoCheckOut
)

func (a Action) String() string {
	switch a {
	case ActionCheckIn:
		return "check_in"
	case ActionUndoCheckIn:
		return "undo_check_in"
	case ActionCheckOut:
		return "check_out"
	case ActionUndoCheckOut:
		return "undo_check_out"
	}
	return "unknown"
}

// transitions is the full set of legal (state, action) pairs. Undoing a
// check-in deletes the row, which is why StateNone is reachable again and
// check-in can be retried without a cap; undoing a check-out spends a
// permanent flag instead.
var transitions = map[State]map[Action]State{
	StateNone: {
		ActionCheckIn: StateCheckedIn,
	},
	StateCheckedIn: {
		ActionUndoCheckIn: StateNone,
		ActionCheckOut:    StateCheckedOut,
	},
	StateCheckedOut: {
		ActionUndoCheckOut: StateCheckOutUndone,
	},
	StateCheckOutUndone: {
		ActionUndoCheckIn: StateNone,
	},
}

// StateOf derives the machine state from a record. A nil record is StateNone.
func StateOf(rec *Record) State {
	switch {
	case rec == nil:
		return StateNone
	case rec.CheckOutUndone:
		return StateCheckOutUndone
	case rec.CheckOut != nil:
		return StateCheckedOut
	case rec.CheckIn != nil:
		return StateCheckedIn
	}
	return StateNone
}

// Allowed reports whether action a is legal from state s.
func Allowed(s State, a Action) bool {
	_, ok := transitions[s][a]
	return ok
}
