package appointment

import "github.com/BruksfildServices01/tattoo-scheduler/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending    Status = "PENDING"
	StatusConfirmed  Status = "CONFIRMED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusCancelled  Status = "CANCELLED"
	StatusNoShow     Status = "NO_SHOW"
)

// BlockingStatuses are the statuses that occupy an artist's calendar.
var BlockingStatuses = []Status{StatusPending, StatusConfirmed, StatusInProgress}

var transitions = map[Status][]Status{
	StatusPending:    {StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusInProgress, StatusCancelled, StatusNoShow},
	StatusInProgress: {StatusCompleted},
}

func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusPending, StatusConfirmed, StatusInProgress,
		StatusCompleted, StatusCancelled, StatusNoShow:
		return st, nil
	}
	return "", httperr.ErrBusiness("invalid_status")
}

func (s Status) IsBlocking() bool {
	for _, b := range BlockingStatuses {
		if s == b {
			return true
		}
	}
	return false
}

func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusNoShow
}

// CanTransition reports invalid_state unless from -> to is an allowed move.
func CanTransition(from, to Status) error {
	for _, next := range transitions[from] {
		if next == to {
			return nil
		}
	}
	return httperr.ErrBusiness("invalid_state")
}

func InitialStatus() Status {
	return StatusPending
}

// BlockingStatusStrings is BlockingStatuses in the form stored by the database.
func BlockingStatusStrings() []string {
	return statusStrings(BlockingStatuses)
}

// DepositPayableStatuses are the statuses in which a deposit checkout may be
// attached.
var DepositPayableStatuses = []Status{StatusPending, StatusConfirmed}

func (s Status) IsDepositPayable() bool {
	for _, d := range DepositPayableStatuses {
		if s == d {
			return true
		}
	}
	return false
}

func statusStrings(in []Status) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = string(s)
	}
	return out
}

func DepositPayableStatusStrings() []string {
	return statusStrings(DepositPayableStatuses)
}
