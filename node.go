package crablist

import "github.com/metailurini/crablist/rmwlock"

// node holds one key/value binding plus its synchronization state. key and
// value are never written after construction; prev, next and active are
// guarded by lock and only mutated under write mode on both endpoints of the
// affected link.
type node[K comparable, V any] struct {
	key   K
	value V
	prev  *node[K, V]
	next  *node[K, V]

	// active is false once the node has been unlinked from the chain. A
	// walker can legitimately hold a reference to an unlinked node; the flag
	// lets it detect that and recover. It never returns to true.
	active bool

	lock rmwlock.Mutex
}

func newNode[K comparable, V any](key K, value V, prev, next *node[K, V]) *node[K, V] {
	return &node[K, V]{key: key, value: value, prev: prev, next: next, active: true}
}

// newSentinels allocates the permanent head and tail. Their key and value
// are zero values no caller ever observes, and they stay active forever.
func newSentinels[K comparable, V any]() (head, tail *node[K, V]) {
	head = &node[K, V]{active: true}
	tail = &node[K, V]{active: true}
	head.next = tail
	tail.prev = head
	return head, tail
}
