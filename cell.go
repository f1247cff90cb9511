package cellsheet

import (
	"github.com/arborsoft/cellsheet/formula"
	"github.com/arborsoft/cellsheet/position"
	"golang.org/x/exp/maps"
)

// contentKind tags the three shapes a Cell's content can take. It plays
// the role the teacher's class hierarchy (Empty/Text/Formula) plays, but
// as a closed enum with one dispatch point per query, per spec.md §9
// ("Polymorphic cell content").
type contentKind int

const (
	contentEmpty contentKind = iota
	contentText
	contentFormula
)

// Cell is one spreadsheet cell: a tagged content variant, a memoized
// value, and the bidirectional dependency sets spec.md §3 describes.
// Positions, not pointers, are stored in downDeps/upDeps so the graph
// stays serializable and free of ownership cycles (spec.md §5, §9).
type Cell struct {
	sheet *Sheet
	pos   position.Position

	kind     contentKind
	text     string       // raw text, contentText only
	ast      formula.Node // non-nil iff kind == contentFormula
	downDeps []position.Position
	upDeps   map[position.Position]struct{}

	cached    formula.Result
	hasCached bool
}

func newCell(sheet *Sheet, pos position.Position) *Cell {
	return &Cell{
		sheet:  sheet,
		pos:    pos,
		upDeps: make(map[position.Position]struct{}),
	}
}

// GetText returns the cell's raw text: the empty string for an Empty
// cell, the literal text (including a leading apostrophe, if any) for
// Text, or "=" plus the canonical pretty-print of the AST for Formula.
func (c *Cell) GetText() string {
	switch c.kind {
	case contentText:
		return c.text
	case contentFormula:
		return "=" + formula.ToString(c.ast)
	default:
		return ""
	}
}

// GetValue returns the cell's cached displayed value, computing and
// memoizing it first if the cache was invalidated (or never
// populated). Formula evaluation errors are caught here and returned as
// part of the Result, never as a Go error.
func (c *Cell) GetValue() formula.Result {
	if c.hasCached {
		return c.cached
	}
	c.cached = c.compute()
	c.hasCached = true
	return c.cached
}

func (c *Cell) compute() formula.Result {
	switch c.kind {
	case contentEmpty:
		return formula.TextResult("")
	case contentText:
		if len(c.text) > 0 && c.text[0] == '\'' {
			return formula.TextResult(c.text[1:])
		}
		return formula.TextResult(c.text)
	case contentFormula:
		n, ferr := c.ast.Eval(c.sheet.lookup)
		if ferr != nil {
			return formula.ErrorResult(ferr)
		}
		return formula.NumberResult(n)
	default:
		return formula.TextResult("")
	}
}

// GetReferencedCells returns the positions this cell's formula reads, in
// ascending de-duplicated order. It is empty for non-formula cells.
func (c *Cell) GetReferencedCells() []position.Position {
	return c.downDeps
}

// IsReferenced reports whether any other cell's formula reads this one.
func (c *Cell) IsReferenced() bool {
	return len(c.upDeps) != 0
}

// isEmpty reports whether the cell currently holds no content, i.e. it
// does not count toward the sheet's printable size.
func (c *Cell) isEmpty() bool {
	return c.kind == contentEmpty
}

// set installs new content on c, following the ordering spec.md §4.3
// requires: validate before mutating, so a failing set leaves c (and the
// sheet) exactly as it was.
func (c *Cell) set(text string) error {
	if text == c.GetText() {
		return nil
	}

	if len(text) >= 2 && text[0] == '=' {
		node, err := formula.Parse(text[1:])
		if err != nil {
			return err
		}
		newDown := node.RefPositions()

		if c.sheet.detectCycle(c.pos, newDown) {
			return &CircularDependencyError{Pos: c.pos}
		}

		c.sheet.invalidateUp(c.pos)
		c.sheet.unregisterDown(c.pos, c.downDeps)

		c.kind = contentFormula
		c.text = ""
		c.ast = node
		c.downDeps = newDown
		c.hasCached = false

		c.sheet.registerDown(c.pos, c.downDeps)
		return nil
	}

	c.sheet.invalidateUp(c.pos)
	c.sheet.unregisterDown(c.pos, c.downDeps)

	c.downDeps = nil
	c.ast = nil
	c.hasCached = false
	if text == "" {
		c.kind = contentEmpty
		c.text = ""
	} else {
		c.kind = contentText
		c.text = text
	}
	return nil
}

// clear resets the cell to Empty, preserving upDeps so it survives as a
// sink for cells that still reference it.
func (c *Cell) clear() {
	c.sheet.invalidateUp(c.pos)
	c.sheet.unregisterDown(c.pos, c.downDeps)
	c.kind = contentEmpty
	c.text = ""
	c.ast = nil
	c.downDeps = nil
	c.hasCached = false
}

// cloneUpDeps returns a snapshot copy of upDeps as a slice, safe to range
// over while the original is mutated. The cycle detector and invalidator
// do not use it: they walk downDeps and upDeps directly.
func (c *Cell) cloneUpDeps() []position.Position {
	return maps.Keys(c.upDeps)
}
