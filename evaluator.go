package cellsheet

import (
	"strconv"
	"strings"

	"github.com/arborsoft/cellsheet/formula"
	"github.com/arborsoft/cellsheet/position"
)

// lookup is the Evaluator (spec.md §4.5): the closure a formula's AST
// calls to resolve a referenced position. It is a method on *Sheet so it
// captures no state beyond the sheet itself and matches the
// formula.Lookup signature consumed by formula.Node.Eval.
func (s *Sheet) lookup(p position.Position) (float64, *formula.Error) {
	if !p.IsValid() {
		// formula.Parse already rejects out-of-range references at parse
		// time; this only guards against one reaching Eval some other way.
		return 0, formula.NewError(formula.Ref)
	}

	cell, ok := s.cells[p]
	if !ok || cell.isEmpty() {
		return 0, nil
	}

	v := cell.GetValue()
	switch v.Kind {
	case formula.ResultNumber:
		return v.Number, nil
	case formula.ResultError:
		return 0, v.Err
	default:
		// Only a Text-content cell can reach here (Empty was handled
		// above, Formula cells only ever produce Number or Error). The
		// apostrophe-escape check reads the cell's raw text, not its
		// already-unescaped displayed value, mirroring the original
		// evaluator checking GetText() rather than GetValue().
		if strings.HasPrefix(cell.GetText(), "'") {
			return 0, formula.NewError(formula.Value)
		}
		f, err := strconv.ParseFloat(v.Text, 64)
		if err != nil {
			return 0, formula.NewError(formula.Value)
		}
		return f, nil
	}
}
