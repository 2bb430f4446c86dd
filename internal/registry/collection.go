package registry

import (
	"sync"
	"time"

	"inventory/pkg/apperrors"
)

// Guard is the process-wide lock around a full validate-persist-repair-cascade
// unit. Services take the write lock at their public entry points; cascade
// callbacks run synchronously underneath it. Collections themselves do not
// lock, so cascades never re-enter the guard.
type Guard struct {
	sync.RWMutex
}

func NewGuard() *Guard {
	return &Guard{}
}

// Record is the contract every stored entity satisfies. The UpdatedAt
// timestamp doubles as the optimistic-concurrency token.
type Record[PT any] interface {
	GetID() int64
	SetID(id int64)
	GetCreatedAt() time.Time
	GetUpdatedAt() time.Time
	SetTimestamps(created, updated time.Time)
	Clone() PT
}

// Collection is a type-homogeneous in-memory set of records keyed by a
// numeric identifier. Callers receive and hand in copies; the collection is
// the sole owner of the stored records. It is not safe for concurrent use
// on its own: all access goes through a service holding the shared Guard.
type Collection[PT Record[PT]] struct {
	name    string
	records map[int64]PT
	order   []int64
	nextID  int64
	nowFn   func() time.Time

	updateListeners []func(before, after PT)
	deleteListeners []func(deleted []PT)
}

func NewCollection[PT Record[PT]](name string) *Collection[PT] {
	return &Collection[PT]{
		name:    name,
		records: make(map[int64]PT),
		nextID:  1,
		nowFn:   func() time.Time { return time.Now().UTC() },
	}
}

// Name returns the collection's resource name as used in errors and logs.
func (c *Collection[PT]) Name() string {
	return c.name
}

// OnUpdated registers a callback invoked synchronously after each committed
// update, with copies of the pre- and post-update record.
func (c *Collection[PT]) OnUpdated(fn func(before, after PT)) {
	c.updateListeners = append(c.updateListeners, fn)
}

// OnDeleted registers a callback invoked synchronously after each committed
// delete with copies of the removed records.
func (c *Collection[PT]) OnDeleted(fn func(deleted []PT)) {
	c.deleteListeners = append(c.deleteListeners, fn)
}

// Create assigns an identifier and timestamps and stores the record,
// returning the stored copy.
func (c *Collection[PT]) Create(record PT) PT {
	now := c.nowFn()
	record.SetID(c.nextID)
	record.SetTimestamps(now, now)
	c.records[c.nextID] = record.Clone()
	c.order = append(c.order, c.nextID)
	c.nextID++
	return record.Clone()
}

// Get returns a copy of the record with the given identifier.
func (c *Collection[PT]) Get(id int64) (PT, bool) {
	record, ok := c.records[id]
	if !ok {
		var zero PT
		return zero, false
	}
	return record.Clone(), true
}

// GetMatching returns copies of all records satisfying the predicate, in
// insertion order. A nil predicate matches everything.
func (c *Collection[PT]) GetMatching(predicate func(PT) bool) []PT {
	out := make([]PT, 0)
	for _, id := range c.order {
		record := c.records[id]
		if predicate == nil || predicate(record) {
			out = append(out, record.Clone())
		}
	}
	return out
}

// ExistsMatching reports whether any record satisfies the predicate.
func (c *Collection[PT]) ExistsMatching(predicate func(PT) bool) bool {
	for _, id := range c.order {
		if predicate(c.records[id]) {
			return true
		}
	}
	return false
}

// Count returns the number of records satisfying the predicate. A nil
// predicate counts everything.
func (c *Collection[PT]) Count(predicate func(PT) bool) int {
	if predicate == nil {
		return len(c.records)
	}
	count := 0
	for _, id := range c.order {
		if predicate(c.records[id]) {
			count++
		}
	}
	return count
}

// Update replaces the stored record after checking the caller-supplied
// last-modified token against the stored one. The committed record carries
// a last-modified timestamp strictly greater than the previous one.
// Registered update listeners fire after the commit.
func (c *Collection[PT]) Update(record PT) (PT, error) {
	var zero PT

	stored, ok := c.records[record.GetID()]
	if !ok {
		return zero, apperrors.NewNotFoundError(c.name, record.GetID())
	}
	if !record.GetUpdatedAt().Equal(stored.GetUpdatedAt()) {
		return zero, apperrors.NewConcurrencyConflictError(c.name, record.GetID())
	}

	now := c.nowFn()
	if !now.After(stored.GetUpdatedAt()) {
		now = stored.GetUpdatedAt().Add(time.Microsecond)
	}

	before := stored.Clone()
	record.SetTimestamps(stored.GetCreatedAt(), now)
	c.records[record.GetID()] = record.Clone()

	after := record.Clone()
	for _, fn := range c.updateListeners {
		fn(before.Clone(), after.Clone())
	}
	return after, nil
}

// Delete removes the given records as a batch. Every identifier must exist;
// otherwise nothing is removed. Delete listeners fire once with the whole
// batch after the commit.
func (c *Collection[PT]) Delete(records []PT) error {
	if len(records) == 0 {
		return nil
	}

	deleted := make([]PT, 0, len(records))
	for _, record := range records {
		stored, ok := c.records[record.GetID()]
		if !ok {
			return apperrors.NewNotFoundError(c.name, record.GetID())
		}
		deleted = append(deleted, stored.Clone())
	}

	for _, record := range deleted {
		delete(c.records, record.GetID())
	}
	c.order = c.compactOrder()

	for _, fn := range c.deleteListeners {
		batch := make([]PT, len(deleted))
		for i, record := range deleted {
			batch[i] = record.Clone()
		}
		fn(batch)
	}
	return nil
}

// Restore replaces the collection contents without firing listeners or
// reassigning identifiers. Used when loading an archive snapshot at boot.
func (c *Collection[PT]) Restore(records []PT) {
	c.records = make(map[int64]PT, len(records))
	c.order = c.order[:0]
	c.nextID = 1
	for _, record := range records {
		c.records[record.GetID()] = record.Clone()
		c.order = append(c.order, record.GetID())
		if record.GetID() >= c.nextID {
			c.nextID = record.GetID() + 1
		}
	}
}

func (c *Collection[PT]) compactOrder() []int64 {
	out := c.order[:0]
	for _, id := range c.order {
		if _, ok := c.records[id]; ok {
			out = append(out, id)
		}
	}
	return out
}
