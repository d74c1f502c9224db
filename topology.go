package main

import "math/bits"

// Topology is one way to split n ordered items into two non-empty groups.
// Index lists are ascending positions into the ordered items.
type Topology struct {
	Left  []int
	Right []int
}

// TopologyTable lists, per item count, every bipartition exactly once.
// Left is the smaller side; on an even split position 0 is on the left.
// Counts 1 and 2 have no entries: they are base cases of the enumerator.
type TopologyTable struct {
	byCount [][]Topology
}

var topologies = buildTopologyTable(MaxItems)

func buildTopologyTable(maxItems int) *TopologyTable {
	t := &TopologyTable{byCount: make([][]Topology, maxItems+1)}
	for n := 3; n <= maxItems; n++ {
		t.byCount[n] = bipartitions(n)
	}
	return t
}

// bipartitions walks masks by left-side size, then ascending, so smaller
// left groups come first.
func bipartitions(n int) []Topology {
	full := uint(1)<<n - 1
	out := make([]Topology, 0, 1<<(n-1)-1)
	for size := 1; 2*size <= n; size++ {
		for mask := uint(1); mask < full; mask++ {
			if bits.OnesCount(mask) != size {
				continue
			}
			if 2*size == n && mask&1 == 0 {
				continue // mirror of a split already emitted
			}
			out = append(out, Topology{
				Left:  maskIndices(mask, n),
				Right: maskIndices(full&^mask, n),
			})
		}
	}
	return out
}

func maskIndices(mask uint, n int) []int {
	idx := make([]int, 0, bits.OnesCount(mask))
	for i := 0; i < n; i++ {
		if mask&(1<<i) != 0 {
			idx = append(idx, i)
		}
	}
	return idx
}

// For returns the splits of n items, or nil when n has no table entry.
func (t *TopologyTable) For(n int) []Topology {
	if n < 0 || n >= len(t.byCount) {
		return nil
	}
	return t.byCount[n]
}

// MaxItems is the largest item count the table covers.
func (t *TopologyTable) MaxItems() int {
	return len(t.byCount) - 1
}
