// SPDX-License-Identifier: MIT

package energy

// Population is a per-node member count of one group, indexed in the same
// node order as the adjacency it is scored against.
type Population []int64

// Total returns the sum of all counts.
func (p Population) Total() int64 {
	var s int64
	for _, v := range p {
		s += v
	}

	return s
}

// Clone returns an independent copy. Clone of nil is nil.
func (p Population) Clone() Population {
	if p == nil {
		return nil
	}
	out := make(Population, len(p))
	copy(out, p)

	return out
}

// Float64s converts the counts to the float vector MatVec expects.
func (p Population) Float64s() []float64 {
	out := make([]float64, len(p))
	for i, v := range p {
		out[i] = float64(v)
	}

	return out
}
