// Package crablist implements a sorted map as a concurrent doubly-linked
// list with hand-over-hand locking.
//
// Every node carries its own fair read/may-write/write lock
// (rmwlock.Mutex). Operations walk the chain forward from a sentinel,
// transferring locks as they go, so mutations on disjoint regions of the key
// space run in parallel while operations on the same neighborhood serialize
// through the per-node locks. Observable behavior on each key is
// linearizable: a mutation takes effect at the moment it holds write locks
// on both endpoints of the affected link, a lookup at the moment it reads
// the candidate under its read lock.
//
// Unlinked nodes are handed to the garbage collector; a walker that crossed
// the unlink gap still sees a coherent node whose active flag is false.
package crablist

// Less is a function that returns true if a is less than b. It must describe
// a strict total order consistent with ==.
type Less[K comparable] func(a, b K) bool

// List is a concurrent sorted doubly-linked list acting as a map. All
// methods are safe for concurrent use on the same instance.
type List[K comparable, V any] struct {
	less    Less[K]
	head    *node[K, V]
	tail    *node[K, V]
	metrics *Metrics
}

// New returns an empty list ordered by less.
func New[K comparable, V any](less Less[K]) *List[K, V] {
	head, tail := newSentinels[K, V]()
	return &List[K, V]{
		less:    less,
		head:    head,
		tail:    tail,
		metrics: newMetrics(newRNG()),
	}
}

// Len returns the number of live entries.
func (l *List[K, V]) Len() int64 {
	return l.metrics.Len()
}

// Stats reports cumulative operation counters for contention analysis in
// benchmarks.
func (l *List[K, V]) Stats() Stats {
	return l.metrics.Snapshot()
}

// Get returns the value stored under key.
// The boolean is true if the key exists, false otherwise.
func (l *List[K, V]) Get(key K) (V, bool) {
	prev := l.head
	prev.lock.RLock()
	cand := l.findKey(&prev, key, true)

	// Reading active under the candidate's read lock is enough: unlinking
	// needs the write lock on the candidate, which our read excludes.
	ok := cand != l.tail && cand.key == key && cand.active
	var v V
	if ok {
		v = cand.value
	}
	cand.lock.RUnlock()
	return v, ok
}

// Contains returns true if the key exists in the list.
func (l *List[K, V]) Contains(key K) bool {
	_, ok := l.Get(key)
	return ok
}
