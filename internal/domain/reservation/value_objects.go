package reservation

import (
	"errors"
	"time"
)

const dayLength = 24 * time.Hour

// Window is the half-open-in-spirit but closed-in-practice booking
// interval. Overlap and containment are evaluated inclusively on both
// ends, matching how day-granularity bookings are recorded.
type Window struct {
	start time.Time
	end   time.Time
}

func NewWindow(start, end time.Time) (Window, error) {
	if !start.Before(end) {
		return Window{}, errors.New("window start must be before window end")
	}
	return Window{start: start, end: end}, nil
}

func (w Window) Start() time.Time {
	return w.start
}

func (w Window) End() time.Time {
	return w.end
}

// Days returns the number of whole days the window spans. A window
// shorter than one day spans zero days.
func (w Window) Days() int {
	return int(w.end.Sub(w.start) / dayLength)
}

func (w Window) Contains(instant time.Time) bool {
	return !instant.Before(w.start) && !instant.After(w.end)
}

func (w Window) Overlaps(start, end time.Time) bool {
	return !w.start.After(end) && !w.end.Before(start)
}

// Note carries the free-form purpose text attached to a reservation.
type Note struct {
	value string
}

func NewNote(value string) Note {
	return Note{value: value}
}

func (n Note) String() string {
	return n.value
}

func (n Note) IsEmpty() bool {
	return n.value == ""
}

// Requester identifies the citizen making the reservation. Identity is
// established by the portal gateway; this service only records it.
type Requester struct {
	ID      string
	Contact string
	Email   string
}

func (r Requester) Validate() error {
	if r.ID == "" {
		return errors.New("requester id must not be empty")
	}
	return nil
}
