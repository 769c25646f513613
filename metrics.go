package crablist

import (
	"math/bits"
	"runtime"
	"sync/atomic"
)

type metricShard struct {
	length  atomic.Int64
	inserts atomic.Int64
	deletes atomic.Int64
	steps   atomic.Int64
	// Pad to cache line size to prevent false sharing.
	_ [32]byte
}

// Stats is a point-in-time aggregate of the list's operation counters.
type Stats struct {
	// Inserts and Deletes count successful mutations.
	Inserts int64
	Deletes int64
	// Steps counts hand-over-hand lock transfers across all walks; together
	// with the mutation counts it gives the average traversal length.
	Steps int64
}

// Metrics accumulates operation counters across a set of shards so that
// concurrent updates from many goroutines do not contend on one cache line.
type Metrics struct {
	shards []metricShard
	mask   uint32
	rng    *RNG
}

func newMetrics(rng *RNG) *Metrics {
	shardCount := 1
	if rng != nil {
		shardCount = runtime.GOMAXPROCS(0)
		if shardCount < 1 {
			shardCount = 1
		}
		shardCount = nextPowerOfTwo(shardCount)
	}
	return &Metrics{
		shards: make([]metricShard, shardCount),
		mask:   uint32(shardCount - 1),
		rng:    rng,
	}
}

func nextPowerOfTwo(v int) int {
	if v <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(v-1))
}

func (m *Metrics) shard() *metricShard {
	if len(m.shards) == 1 || m.rng == nil {
		return &m.shards[0]
	}
	idx := uint32(m.rng.nextRandom64()) & m.mask
	return &m.shards[idx]
}

func (m *Metrics) IncInsert() {
	m.shard().inserts.Add(1)
}

func (m *Metrics) IncDelete() {
	m.shard().deletes.Add(1)
}

func (m *Metrics) IncStep() {
	m.shard().steps.Add(1)
}

func (m *Metrics) AddLen(d int64) {
	m.shard().length.Add(d)
}

func (m *Metrics) Len() int64 {
	var total int64
	for i := range m.shards {
		total += m.shards[i].length.Load()
	}
	return total
}

func (m *Metrics) Snapshot() Stats {
	var s Stats
	for i := range m.shards {
		s.Inserts += m.shards[i].inserts.Load()
		s.Deletes += m.shards[i].deletes.Load()
		s.Steps += m.shards[i].steps.Load()
	}
	return s
}
