package game

import "fmt"

// GridSize is the side length of the square battle grid.
const GridSize = 3

// GridPosition is a position on the 3x3 battle grid. x is the column
// (0-2, left to right), y the row (0-2, top to bottom). The zero value
// is the top-left cell. Comparable; equality is by components.
type GridPosition struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// NewGridPosition validates coordinates and builds a position.
func NewGridPosition(x, y int) (GridPosition, error) {
	p := GridPosition{X: x, Y: y}
	if !p.IsValid() {
		return GridPosition{}, fmt.Errorf("grid position out of bounds: (%d,%d)", x, y)
	}
	return p, nil
}

// IsValid reports whether the position lies within the grid.
func (p GridPosition) IsValid() bool {
	return p.X >= 0 && p.X < GridSize && p.Y >= 0 && p.Y < GridSize
}

// DistanceTo returns the Manhattan distance to other.
func (p GridPosition) DistanceTo(other GridPosition) int {
	return abs(p.X-other.X) + abs(p.Y-other.Y)
}

// IsAdjacent reports whether other touches p (diagonals included).
// A position is never adjacent to itself.
func (p GridPosition) IsAdjacent(other GridPosition) bool {
	if p == other {
		return false
	}
	return abs(p.X-other.X) <= 1 && abs(p.Y-other.Y) <= 1
}

// Neighbors returns all valid adjacent positions.
func (p GridPosition) Neighbors() []GridPosition {
	var out []GridPosition
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			n := GridPosition{X: p.X + dx, Y: p.Y + dy}
			if n.IsValid() {
				out = append(out, n)
			}
		}
	}
	return out
}

// AllPositions returns the 9 cells of the grid in row-major order.
func AllPositions() []GridPosition {
	out := make([]GridPosition, 0, GridSize*GridSize)
	for y := 0; y < GridSize; y++ {
		for x := 0; x < GridSize; x++ {
			out = append(out, GridPosition{X: x, Y: y})
		}
	}
	return out
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
