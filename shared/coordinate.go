package shared

// Coord represents the result of projecting a domain value onto the chart
// surface. A coordinate is unresolved when the value falls outside the
// currently projectable range.
type Coord struct {
	value    float64
	resolved bool
}

// ResolvedCoord initializes a resolved coordinate.
func ResolvedCoord(value float64) Coord {
	return Coord{value: value, resolved: true}
}

// UnresolvedCoord initializes an unresolved coordinate.
func UnresolvedCoord() Coord {
	return Coord{}
}

// Resolved checks whether the coordinate resolved.
func (c Coord) Resolved() bool {
	return c.resolved
}

// Value returns the pixel value of the coordinate. It is only meaningful
// for resolved coordinates.
func (c Coord) Value() float64 {
	return c.value
}
