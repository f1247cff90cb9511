package cellsheet

import "github.com/arborsoft/cellsheet/position"

// detectCycle implements the Cycle Detector (spec.md §4.6): a DFS
// starting from the candidate down-dependencies of self, following each
// visited cell's *current* downDeps. Cells with no entry in the sheet
// contribute no outgoing edges. Runs in O(V+E) over the reachable
// subgraph and is invoked only at assignment time.
func (s *Sheet) detectCycle(self position.Position, candidates []position.Position) bool {
	visited := make(map[position.Position]struct{})

	var visit func(p position.Position) bool
	visit = func(p position.Position) bool {
		if p == self {
			return true
		}
		if _, ok := visited[p]; ok {
			return false
		}
		visited[p] = struct{}{}

		cell, ok := s.cells[p]
		if !ok {
			return false
		}
		for _, down := range cell.downDeps {
			if visit(down) {
				return true
			}
		}
		return false
	}

	for _, c := range candidates {
		if visit(c) {
			return true
		}
	}
	return false
}

// invalidateUp implements the Cache Invalidator (spec.md §4.7): starting
// from the mutated cell, it walks upDeps, clearing cachedValue on every
// cell it reaches and recursing into that cell's own upDeps. The visited
// set is a safety net against duplicated work, not a correctness
// requirement: invariant 2 (acyclicity) already precludes infinite
// recursion.
func (s *Sheet) invalidateUp(start position.Position) {
	visited := map[position.Position]struct{}{start: {}}

	var walk func(p position.Position)
	walk = func(p position.Position) {
		cell, ok := s.cells[p]
		if !ok {
			return
		}
		for up := range cell.upDeps {
			if _, seen := visited[up]; seen {
				continue
			}
			visited[up] = struct{}{}
			if upCell, ok := s.cells[up]; ok {
				upCell.hasCached = false
			}
			walk(up)
		}
	}
	walk(start)
}

// registerDown adds self to the upDeps of every position in downs,
// auto-creating an Empty cell at any position that doesn't exist yet so
// invariant 1 (back-edges mirror forward-edges) and invariant 5
// (referenced-but-absent positions still exist) both hold.
func (s *Sheet) registerDown(self position.Position, downs []position.Position) {
	for _, p := range downs {
		cell := s.getOrCreate(p)
		cell.upDeps[self] = struct{}{}
	}
}

// unregisterDown removes self from the upDeps of every position in
// downs. Positions with no cell are skipped; this is only reached while
// replacing or clearing self's own previous downDeps, which by
// invariant 1 always have a live cell.
func (s *Sheet) unregisterDown(self position.Position, downs []position.Position) {
	for _, p := range downs {
		if cell, ok := s.cells[p]; ok {
			delete(cell.upDeps, self)
		}
	}
}
