package item

import (
	"errors"
	"time"
)

var (
	ErrInvalidName      = errors.New("item name must not be empty")
	ErrInvalidCategory  = errors.New("invalid item category")
	ErrInvalidMeans     = errors.New("invalid reservation means")
	ErrInvalidCapacity  = errors.New("total quantity must be positive")
	ErrInvalidInventory = errors.New("inventory must be between zero and total quantity")
	ErrInvalidWindow    = errors.New("window start must precede window end")
	ErrInvalidPeriodMax = errors.New("period max count must be positive when period booking is allowed")
)

// Item is a reservable resource with a capacity ceiling and a live
// inventory counter. The counter is mutated only by the inventory
// coordinator; the aggregate itself never changes it.
type Item struct {
	id             int64
	name           string
	locationRef    string
	category       Category
	totalQty       int
	inventoryQty   int
	operationStart time.Time
	operationEnd   time.Time
	requestStart   time.Time
	requestEnd     time.Time
	means          Means
	isPeriod       bool
	periodMaxCount int
	paid           bool
	createdAt      time.Time
	updatedAt      time.Time
}

func NewItem(
	name, locationRef string,
	category Category,
	totalQty, inventoryQty int,
	operationStart, operationEnd time.Time,
	requestStart, requestEnd time.Time,
	means Means,
	isPeriod bool,
	periodMaxCount int,
	paid bool,
) (*Item, error) {
	if name == "" {
		return nil, ErrInvalidName
	}
	if !category.IsValid() {
		return nil, ErrInvalidCategory
	}
	if !means.IsValid() {
		return nil, ErrInvalidMeans
	}
	if totalQty <= 0 {
		return nil, ErrInvalidCapacity
	}
	if inventoryQty < 0 || inventoryQty > totalQty {
		return nil, ErrInvalidInventory
	}
	if !operationStart.Before(operationEnd) || !requestStart.Before(requestEnd) {
		return nil, ErrInvalidWindow
	}
	if isPeriod && periodMaxCount <= 0 {
		return nil, ErrInvalidPeriodMax
	}

	return &Item{
		name:           name,
		locationRef:    locationRef,
		category:       category,
		totalQty:       totalQty,
		inventoryQty:   inventoryQty,
		operationStart: operationStart,
		operationEnd:   operationEnd,
		requestStart:   requestStart,
		requestEnd:     requestEnd,
		means:          means,
		isPeriod:       isPeriod,
		periodMaxCount: periodMaxCount,
		paid:           paid,
	}, nil
}

func ReconstructItem(
	id int64,
	name, locationRef string,
	category Category,
	totalQty, inventoryQty int,
	operationStart, operationEnd time.Time,
	requestStart, requestEnd time.Time,
	means Means,
	isPeriod bool,
	periodMaxCount int,
	paid bool,
	createdAt, updatedAt time.Time,
) *Item {
	return &Item{
		id:             id,
		name:           name,
		locationRef:    locationRef,
		category:       category,
		totalQty:       totalQty,
		inventoryQty:   inventoryQty,
		operationStart: operationStart,
		operationEnd:   operationEnd,
		requestStart:   requestStart,
		requestEnd:     requestEnd,
		means:          means,
		isPeriod:       isPeriod,
		periodMaxCount: periodMaxCount,
		paid:           paid,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

// ReferenceWindow returns the window a candidate reservation is checked
// against: the operative window for deferred items, the request window
// for realtime ones.
func (i *Item) ReferenceWindow() (time.Time, time.Time) {
	if i.means == MeansDeferred {
		return i.operationStart, i.operationEnd
	}
	return i.requestStart, i.requestEnd
}

// SettlesSynchronously reports whether intake validates and approves the
// reservation inline instead of going through the async workflow.
// Exclusive items never race on a shared counter and deferred items are
// approved by an operator later, so only shared realtime items take the
// async path.
func (i *Item) SettlesSynchronously() bool {
	return i.category.Exclusive() || i.means == MeansDeferred
}

func (i *Item) ID() int64                 { return i.id }
func (i *Item) Name() string              { return i.name }
func (i *Item) LocationRef() string       { return i.locationRef }
func (i *Item) Category() Category        { return i.category }
func (i *Item) TotalQty() int             { return i.totalQty }
func (i *Item) InventoryQty() int         { return i.inventoryQty }
func (i *Item) OperationStart() time.Time { return i.operationStart }
func (i *Item) OperationEnd() time.Time   { return i.operationEnd }
func (i *Item) RequestStart() time.Time   { return i.requestStart }
func (i *Item) RequestEnd() time.Time     { return i.requestEnd }
func (i *Item) Means() Means              { return i.means }
func (i *Item) IsPeriod() bool            { return i.isPeriod }
func (i *Item) PeriodMaxCount() int       { return i.periodMaxCount }
func (i *Item) Paid() bool                { return i.paid }
func (i *Item) CreatedAt() time.Time      { return i.createdAt }
func (i *Item) UpdatedAt() time.Time      { return i.updatedAt }
