// Package dedupe tracks assignment keys so a scout is never booked
// twice for the same subject in one cycle.
package dedupe

import (
	"context"
	"sync"
	"sync/atomic"
)

const defaultMaxSize = 4096

// Deduper records assignment keys for at-most-once planning.
// Implementations must be safe for concurrent use.
type Deduper interface {
	// SeenAndRecord atomically checks whether key was seen and records
	// it if not. True means the key was already present.
	SeenAndRecord(ctx context.Context, key string) bool

	// Unrecord forgets a key so it can be planned again. Used when an
	// assignment was recorded but could not be enqueued.
	Unrecord(ctx context.Context, key string)

	Size() int64
}

// entry is one key in the recency list.
type entry struct {
	key  string
	next *entry
}

func (e *entry) reset() {
	e.key = ""
	e.next = nil
}

// memoryDeduper keeps keys in a map backed by a singly linked recency
// list. Bounded mode (maxSize > 0) evicts the oldest key once full and
// recycles entries through a sync.Pool; maxSize <= 0 keeps everything.
type memoryDeduper struct {
	mu      sync.Mutex
	seen    map[string]*entry // nil values in unbounded mode
	head    *entry            // most recently recorded
	maxSize int
	size    atomic.Int64
	pool    sync.Pool
}

// NewInMemory creates an in-memory Deduper.
func NewInMemory(opts ...Option) Deduper {
	d := &memoryDeduper{maxSize: defaultMaxSize}
	for _, opt := range opts {
		opt(d)
	}
	d.seen = make(map[string]*entry)
	if d.maxSize > 0 {
		d.pool = sync.Pool{New: func() interface{} { return &entry{} }}
	}
	return d
}

func (d *memoryDeduper) SeenAndRecord(ctx context.Context, key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.seen[key]; exists {
		return true
	}

	if d.maxSize > 0 {
		if len(d.seen) >= d.maxSize {
			d.evictOldest()
		}
		e := d.pool.Get().(*entry)
		e.key = key
		e.next = d.head
		d.head = e
		d.seen[key] = e
	} else {
		d.seen[key] = nil
	}
	d.size.Add(1)
	return false
}

func (d *memoryDeduper) Unrecord(ctx context.Context, key string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	e, exists := d.seen[key]
	if !exists {
		return
	}
	delete(d.seen, key)

	if d.maxSize > 0 {
		if d.head == e {
			d.head = e.next
		} else {
			cur := d.head
			for cur != nil && cur.next != e {
				cur = cur.next
			}
			if cur != nil {
				cur.next = e.next
			}
		}
		e.reset()
		d.pool.Put(e)
	}
	d.size.Add(-1)
}

// evictOldest drops the tail of the recency list. Caller holds d.mu.
func (d *memoryDeduper) evictOldest() {
	if d.head == nil {
		return
	}

	if d.head.next == nil {
		delete(d.seen, d.head.key)
		d.head.reset()
		d.pool.Put(d.head)
		d.head = nil
		d.size.Add(-1)
		return
	}

	prev := d.head
	cur := d.head.next
	for cur.next != nil {
		prev = cur
		cur = cur.next
	}
	prev.next = nil
	delete(d.seen, cur.key)
	cur.reset()
	d.pool.Put(cur)
	d.size.Add(-1)
}

func (d *memoryDeduper) Size() int64 {
	return d.size.Load()
}
