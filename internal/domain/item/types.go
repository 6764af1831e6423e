package item

// Means selects which of the item's two windows bounds a candidate
// reservation and whether intake settles synchronously.
type Means string

const (
	// MeansRealtime items settle through the async inventory workflow.
	MeansRealtime Means = "realtime"
	// MeansDeferred items are validated and approved inline at intake.
	MeansDeferred Means = "deferred"
)

func (m Means) String() string {
	return string(m)
}

func (m Means) IsValid() bool {
	switch m {
	case MeansRealtime, MeansDeferred:
		return true
	default:
		return false
	}
}

// Category determines the capacity model: spaces are single-occupancy,
// equipment shares a finite quantity pool.
type Category string

const (
	CategorySpace     Category = "space"
	CategoryEquipment Category = "equipment"
)

func (c Category) String() string {
	return string(c)
}

func (c Category) IsValid() bool {
	switch c {
	case CategorySpace, CategoryEquipment:
		return true
	default:
		return false
	}
}

// Exclusive reports whether at most one active reservation may hold the
// item at any instant.
func (c Category) Exclusive() bool {
	return c == CategorySpace
}
