// Package cycles enumerates simple debt cycles in a network. A debt cycle is
// a closed chain of obligations (A owes B, B owes C, C owes A) that can in
// principle be settled with no net cash movement, which is what makes cycle
// participants interesting to a clearing bank.
package cycles

import (
	"sort"

	"github.com/dd0wney/liquigraph/pkg/network"
)

// Cycle is a simple cycle in canonical form: the smallest company ID first,
// followed by the remaining members in traversal order. The closing edge back
// to the first member is implicit.
type Cycle []uint64

// Pairs returns the ordered (debtor, creditor) pairs along the cycle,
// including the closing pair back to the first member.
func (c Cycle) Pairs() [][2]uint64 {
	pairs := make([][2]uint64, 0, len(c))
	for i := range c {
		pairs = append(pairs, [2]uint64{c[i], c[(i+1)%len(c)]})
	}
	return pairs
}

// Contains reports whether id is a member of the cycle.
func (c Cycle) Contains(id uint64) bool {
	for _, m := range c {
		if m == id {
			return true
		}
	}
	return false
}

// Options configures cycle enumeration.
type Options struct {
	MinLength int // Minimum cycle length to report
	MaxLength int // Maximum cycle length to explore
	MaxCycles int // Stop after this many cycles (0 = unlimited)
}

// DefaultOptions returns the bounds used for debt network analysis. Networks
// reject self-obligations at build time, so length-1 cycles cannot occur and
// the minimum starts at 2.
func DefaultOptions() Options {
	return Options{MinLength: 2, MaxLength: 20, MaxCycles: 10000}
}

// Enumerate finds every simple cycle in the network using DefaultOptions.
func Enumerate(n *network.Network) (*Set, error) {
	return EnumerateWithOptions(n, DefaultOptions())
}

// EnumerateWithOptions finds all simple cycles within the given bounds.
//
// Algorithm: rooted depth-first search in ascending company order. The search
// from root r only descends into companies with IDs greater than r, so every
// cycle is discovered exactly once and arrives already rotated to start at its
// smallest member. Parallel obligations between the same pair collapse to one
// successor and therefore to one cycle.
//
// If opts.MaxCycles is exceeded the partial set is still returned, alongside a
// LimitError; callers decide whether truncation is tolerable.
func EnumerateWithOptions(n *network.Network, opts Options) (*Set, error) {
	if opts.MinLength < 2 {
		opts.MinLength = 2
	}
	if opts.MaxLength <= 0 {
		opts.MaxLength = DefaultOptions().MaxLength
	}

	e := &enumerator{
		net:    n,
		opts:   opts,
		onPath: make(map[uint64]bool, n.CompanyCount()),
	}

	for _, root := range n.CompanyIDs() {
		if e.truncated {
			break
		}
		e.root = root
		e.visit(root)
	}

	set := newSet(e.found)
	if e.truncated {
		return set, &LimitError{Limit: opts.MaxCycles, Found: len(e.found)}
	}
	return set, nil
}

type enumerator struct {
	net       *network.Network
	opts      Options
	root      uint64
	path      []uint64
	onPath    map[uint64]bool
	found     []Cycle
	truncated bool
}

func (e *enumerator) visit(id uint64) {
	e.path = append(e.path, id)
	e.onPath[id] = true

	for _, next := range e.net.Successors(id) {
		if e.truncated {
			break
		}
		if next == e.root {
			if len(e.path) >= e.opts.MinLength {
				e.record()
			}
			continue
		}
		if next < e.root || e.onPath[next] {
			continue
		}
		if len(e.path) >= e.opts.MaxLength {
			continue
		}
		e.visit(next)
	}

	e.onPath[id] = false
	e.path = e.path[:len(e.path)-1]
}

func (e *enumerator) record() {
	cycle := make(Cycle, len(e.path))
	copy(cycle, e.path)
	e.found = append(e.found, cycle)
	if e.opts.MaxCycles > 0 && len(e.found) >= e.opts.MaxCycles {
		e.truncated = true
	}
}

// sortCycles orders cycles by length, then lexicographically by members.
// Canonical rotation makes this ordering total and deterministic.
func sortCycles(cs []Cycle) {
	sort.Slice(cs, func(i, j int) bool {
		a, b := cs[i], cs[j]
		if len(a) != len(b) {
			return len(a) < len(b)
		}
		for k := range a {
			if a[k] != b[k] {
				return a[k] < b[k]
			}
		}
		return false
	})
}

// HasCycle reports whether the network contains any cycle at all. It is far
// cheaper than enumeration and is not subject to length or count bounds.
//
// Uses depth-first search with three-color marking:
//   - WHITE (0): unvisited
//   - GRAY (1): currently visiting (on the recursion stack)
//   - BLACK (2): finished visiting
//
// Encountering a GRAY successor means a back edge, which closes a cycle.
func HasCycle(n *network.Network) bool {
	const (
		WHITE = 0
		GRAY  = 1
		BLACK = 2
	)

	color := make(map[uint64]int, n.CompanyCount())

	var dfs func(id uint64) bool
	dfs = func(id uint64) bool {
		color[id] = GRAY
		for _, next := range n.Successors(id) {
			switch color[next] {
			case WHITE:
				if dfs(next) {
					return true
				}
			case GRAY:
				return true
			}
		}
		color[id] = BLACK
		return false
	}

	for _, id := range n.CompanyIDs() {
		if color[id] == WHITE && dfs(id) {
			return true
		}
	}
	return false
}
