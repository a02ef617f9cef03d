package model

// AppointmentStatus is the lifecycle state of an appointment.
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// transitions holds the forward-only state machine. Completed and cancelled
// are terminal; cancellation is the only sideways move.
var transitions = map[AppointmentStatus][]AppointmentStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
	StatusCompleted: nil,
	StatusCancelled: nil,
}

// ValidStatus reports whether s is a known appointment status.
func ValidStatus(s AppointmentStatus) bool {
	_, ok := transitions[s]
	return ok
}

// Terminal reports whether no further transition is permitted from s.
func Terminal(s AppointmentStatus) bool {
	next, ok := transitions[s]
	return ok && len(next) == 0
}

// CanTransition reports whether an appointment may move from one status to
// another. The server is the final arbiter; the client uses this to decide
// which actions to offer.
func CanTransition(from, to AppointmentStatus) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// NextStatuses returns the statuses reachable from the given one.
func NextStatuses(from AppointmentStatus) []AppointmentStatus {
	next := transitions[from]
	out := make([]AppointmentStatus, len(next))
	copy(out, next)
	return out
}
