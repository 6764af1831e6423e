package reservation

type Status string

const (
	// StatusRequest is the initial state while the async workflow is
	// still in flight.
	StatusRequest Status = "REQUEST"
	StatusApprove Status = "APPROVE"
	StatusCancel  Status = "CANCEL"
	StatusDone    Status = "DONE"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusRequest, StatusApprove, StatusCancel, StatusDone:
		return true
	default:
		return false
	}
}

// Active statuses count against an item's capacity. A failed async
// reservation is deleted outright rather than moved to a status, so
// only CANCEL is excluded here.
func (s Status) Active() bool {
	return s != StatusCancel
}

func (s Status) Terminal() bool {
	return s == StatusCancel || s == StatusDone
}
