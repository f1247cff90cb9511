package formula

import (
	"strconv"

	"github.com/arborsoft/cellsheet/position"
)

// Kind enumerates the value-level spreadsheet errors a formula can raise
// during evaluation. Eval returns them as *Error; Cell.GetValue converts
// them into an error Result and stores it as the displayed value, so they
// never reach the caller of GetValue as a Go error.
type Kind int

const (
	// Ref marks a reference to a structurally invalid position.
	Ref Kind = iota
	// Value marks a referenced cell whose text cannot be interpreted as
	// a number.
	Value
	// Div0 marks division by zero.
	Div0
)

// Error is a value-level FormulaError: a typed error produced during
// formula evaluation and stored as a cell's displayed value rather than
// thrown to the caller of GetValue.
type Error struct {
	Kind Kind
}

// NewError constructs a value-level error of the given kind.
func NewError(k Kind) *Error {
	return &Error{Kind: k}
}

func (e *Error) Error() string {
	return e.String()
}

// String renders the error in its literal spreadsheet form.
func (e *Error) String() string {
	switch e.Kind {
	case Ref:
		return "#REF!"
	case Value:
		return "#VALUE!"
	case Div0:
		return "#DIV0!"
	default:
		return "#ERROR!"
	}
}

// Lookup resolves a referenced position to a number, or raises a
// value-level Error. It is the lookup closure described by spec.md §4.5
// and §4.2, supplied by the cellsheet package and driven by AST.Eval.
type Lookup func(p position.Position) (float64, *Error)

// ResultKind tags the three shapes a displayed cell value can take.
type ResultKind int

const (
	ResultNumber ResultKind = iota
	ResultText
	ResultError
)

// Result is the tagged { number | string | FormulaError } variant spec.md
// calls Value; named Result here to avoid a name collision with the Kind
// constant Value above.
type Result struct {
	Kind   ResultKind
	Number float64
	Text   string
	Err    *Error
}

func NumberResult(f float64) Result { return Result{Kind: ResultNumber, Number: f} }
func TextResult(s string) Result    { return Result{Kind: ResultText, Text: s} }
func ErrorResult(e *Error) Result   { return Result{Kind: ResultError, Err: e} }

// String renders the result the way it would be printed in a cell: plain
// text for text, the formula error literal for errors, and the integer
// form for whole-valued numbers (no trailing ".0"), matching the
// open-question resolution recorded in DESIGN.md.
func (r Result) String() string {
	switch r.Kind {
	case ResultText:
		return r.Text
	case ResultError:
		return r.Err.String()
	default:
		return FormatNumber(r.Number)
	}
}

// FormatNumber renders a float64 the way printValues expects: no
// trailing ".0" for integral values, otherwise the shortest round-trip
// decimal form.
func FormatNumber(f float64) string {
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
