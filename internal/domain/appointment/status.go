package appointment

import "github.com/BruksfildServices01/salon-scheduler/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
	StatusNoShow     Status = "no_show"
)

var allStatuses = []Status{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
	StatusCompleted,
	StatusCancelled,
	StatusNoShow,
}

// transitions is the complete lifecycle table. Anything absent is rejected.
var transitions = map[Status][]Status{
	StatusPending:    {StatusConfirmed, StatusCancelled, StatusNoShow},
	StatusConfirmed:  {StatusInProgress, StatusCancelled, StatusNoShow},
	StatusInProgress: {StatusCompleted},
}

func Statuses() []Status {
	out := make([]Status, len(allStatuses))
	copy(out, allStatuses)
	return out
}

func ParseStatus(s string) (Status, error) {
	for _, st := range allStatuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", httperr.ErrBusiness("invalid_status")
}

func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusNoShow
}

// HoldsSlot reports whether an appointment in this status blocks its slot.
func (s Status) HoldsSlot() bool {
	return s != StatusCancelled
}

// ===============================
// Validations
// ===============================

// CanTransition checks the lifecycle table. Leaving a terminal state and
// any move not listed in the table are conflicts: the request was well
// formed but the appointment is no longer in a state that allows it.
func CanTransition(from, to Status) error {
	if from.IsTerminal() {
		return httperr.ErrConflict("appointment_terminal")
	}
	for _, next := range transitions[from] {
		if next == to {
			return nil
		}
	}
	return httperr.ErrConflict("invalid_transition")
}

func CanReschedule(current Status) error {
	if current.IsTerminal() {
		return httperr.ErrConflict("appointment_terminal")
	}
	if current != StatusPending && current != StatusConfirmed {
		return httperr.ErrConflict("invalid_transition")
	}
	return nil
}

// InitialStatus is confirmed when the booking came with an approved
// payment, pending otherwise.
func InitialStatus(paid bool) Status {
	if paid {
		return StatusConfirmed
	}
	return StatusPending
}
