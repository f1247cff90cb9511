package cellsheet

import (
	"fmt"

	"github.com/arborsoft/cellsheet/position"
)

// InvalidPositionError is returned by every Sheet operation when the
// supplied Position fails position.Position.IsValid.
type InvalidPositionError struct {
	Pos position.Position
}

func (e *InvalidPositionError) Error() string {
	return fmt.Sprintf("invalid position: %v", e.Pos)
}

// CircularDependencyError is returned by Sheet.SetCell when the proposed
// formula would create a cycle in the down-dependency graph. The sheet is
// left unchanged.
type CircularDependencyError struct {
	Pos position.Position
}

func (e *CircularDependencyError) Error() string {
	return fmt.Sprintf("circular dependency through %v", e.Pos)
}
