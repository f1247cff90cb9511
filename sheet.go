// Package cellsheet implements the cell graph and evaluation engine: a
// sparse, position-addressed grid of cells holding literal text or
// formulas, evaluated lazily and cached until an input changes, with
// cycle rejection on assignment and transitive cache invalidation.
package cellsheet

import (
	"fmt"
	"io"

	"github.com/arborsoft/cellsheet/position"
	"github.com/sirupsen/logrus"
)

// Sheet is a sparse grid of Cells plus the bounding rectangle of its
// non-empty cells (printableSize). It is single-threaded and
// non-reentrant: callers must serialize access, including calls to
// GetCell's Cell.GetValue, which writes the cache (spec.md §5).
type Sheet struct {
	cells        map[position.Position]*Cell
	printableSize position.Size

	// log, when non-nil, receives a structured debug entry after every
	// successful mutation. A nil log means "no logging"; see
	// SPEC_FULL.md §4.4 and sammcj-mcp-devtools for the *logrus.Logger
	// parameter-passing convention this follows.
	log *logrus.Logger
}

// NewSheet creates an empty sheet. log may be nil.
func NewSheet(log *logrus.Logger) *Sheet {
	return &Sheet{
		cells: make(map[position.Position]*Cell),
		log:   log,
	}
}

func (s *Sheet) getOrCreate(pos position.Position) *Cell {
	if cell, ok := s.cells[pos]; ok {
		return cell
	}
	cell := newCell(s, pos)
	s.cells[pos] = cell
	return cell
}

// SetCell installs text as the content of the cell at pos, classifying
// it as Empty, Text, or Formula per spec.md §4.3. Failures
// (InvalidPositionError, a *formula.SyntaxError, or
// *CircularDependencyError) leave the sheet exactly as it was.
func (s *Sheet) SetCell(pos position.Position, text string) error {
	if !pos.IsValid() {
		return &InvalidPositionError{Pos: pos}
	}

	cell := s.getOrCreate(pos)
	if err := cell.set(text); err != nil {
		return err
	}

	s.recomputeSize()
	s.logMutation("set_cell", pos)
	return nil
}

// GetCell returns the cell at pos, or nil if pos holds no content. A
// position kept alive only because another formula references it
// (Empty, with upDeps) is observably absent, per spec.md §9.
func (s *Sheet) GetCell(pos position.Position) (*Cell, error) {
	if !pos.IsValid() {
		return nil, &InvalidPositionError{Pos: pos}
	}
	cell, ok := s.cells[pos]
	if !ok || cell.isEmpty() {
		return nil, nil
	}
	return cell, nil
}

// ClearCell resets the cell at pos to Empty. It is a no-op if pos holds
// no cell at all. The cell itself is never removed from the sheet, so
// back-edges from cells that still reference it stay valid (spec.md §3
// invariant 1).
func (s *Sheet) ClearCell(pos position.Position) error {
	if !pos.IsValid() {
		return &InvalidPositionError{Pos: pos}
	}
	cell, ok := s.cells[pos]
	if !ok {
		return nil
	}
	cell.clear()
	s.recomputeSize()
	s.logMutation("clear_cell", pos)
	return nil
}

// GetPrintableSize returns the cached bounding rectangle of non-empty
// cells; O(1).
func (s *Sheet) GetPrintableSize() position.Size {
	return s.printableSize
}

// recomputeSize is the Squeeze operation (spec.md §4.4): it scans the
// sparse cell map for occupied cells (content != Empty) and recomputes
// the tightest bounding rectangle. Cells kept alive solely as sinks for
// another formula's reference do not extend it. Run after every
// mutation (not only ClearCell) since spec.md §4.3 can also drive a
// cell back to Empty via SetCell(pos, "").
func (s *Sheet) recomputeSize() {
	var sz position.Size
	for pos, cell := range s.cells {
		if !cell.isEmpty() {
			sz = sz.Grow(pos)
		}
	}
	s.printableSize = sz
}

func (s *Sheet) logMutation(op string, pos position.Position) {
	if s.log == nil {
		return
	}
	s.log.WithFields(logrus.Fields{
		"op":       op,
		"position": pos.String(),
		"size":     s.printableSize.String(),
	}).Debug("cellsheet: mutation applied")
}

// PrintValues writes the rectangle [0,rows) x [0,cols) of
// GetPrintableSize, row-major, tab-separated, one row per line, each
// cell rendered via GetValue. Empty cells render as the empty string.
func (s *Sheet) PrintValues(w io.Writer) error {
	return s.printRect(w, func(c *Cell) string {
		if c == nil {
			return ""
		}
		return c.GetValue().String()
	})
}

// PrintTexts writes the same rectangle as PrintValues, but rendering
// each cell via GetText.
func (s *Sheet) PrintTexts(w io.Writer) error {
	return s.printRect(w, func(c *Cell) string {
		if c == nil {
			return ""
		}
		return c.GetText()
	})
}

func (s *Sheet) printRect(w io.Writer, render func(*Cell) string) error {
	for row := 0; row < s.printableSize.Rows; row++ {
		for col := 0; col < s.printableSize.Cols; col++ {
			if col > 0 {
				if _, err := io.WriteString(w, "\t"); err != nil {
					return err
				}
			}
			cell := s.cells[position.New(row, col)]
			if _, err := fmt.Fprint(w, render(cell)); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}
