package shared

const (
	// Marker colors keyed by fractal priority.
	priorityZeroColor = "#00bcd4"
	priorityOneColor  = "#2196f3"
	priorityTwoColor  = "#9c27b0"

	// SupportColor is the color used for bullish elements.
	SupportColor = "#26a69a"
	// ResistanceColor is the color used for bearish elements.
	ResistanceColor = "#ef5350"
)

// FractalKind represents the polarity of a fractal.
type FractalKind int

const (
	FractalHigh FractalKind = iota
	FractalLow
)

// String stringifies the provided fractal kind.
func (k FractalKind) String() string {
	switch k {
	case FractalHigh:
		return "high"
	case FractalLow:
		return "low"
	default:
		return "unknown"
	}
}

// ParseFractalKind parses a fractal kind from its wire representation.
func ParseFractalKind(kind string) FractalKind {
	switch kind {
	case "high":
		return FractalHigh
	default:
		return FractalLow
	}
}

// MarkerPosition represents the placement of a marker relative to its candle.
type MarkerPosition int

const (
	AboveBar MarkerPosition = iota
	BelowBar
	InBar
)

// MarkerShape represents the glyph drawn for a marker.
type MarkerShape int

const (
	ArrowUp MarkerShape = iota
	ArrowDown
	Circle
)

// Marker represents a discrete event marker pinned to a candle.
type Marker struct {
	Time     int64
	Position MarkerPosition
	Shape    MarkerShape
	Color    string
	Size     float64
	Text     string
}

// NewFractalMarker initializes a marker for the provided fractal event.
// Marker color encodes the fractal priority, falling back to polarity
// colors for unranked fractals.
func NewFractalMarker(time int64, kind FractalKind, priority int64) Marker {
	var color string
	switch priority {
	case 0:
		color = priorityZeroColor
	case 1:
		color = priorityOneColor
	case 2:
		color = priorityTwoColor
	default:
		switch kind {
		case FractalHigh:
			color = ResistanceColor
		default:
			color = SupportColor
		}
	}

	marker := Marker{
		Time:  time,
		Color: color,
		Size:  0.8,
	}

	switch kind {
	case FractalHigh:
		marker.Position = AboveBar
		marker.Shape = ArrowDown
	default:
		marker.Position = BelowBar
		marker.Shape = ArrowUp
	}

	if priority == 0 {
		marker.Size = 2
	}

	return marker
}

// NewInteractionMarker initializes a marker for a price interaction with a
// zone of the provided kind.
func NewInteractionMarker(time int64, kind ZoneKind) Marker {
	color := SupportColor
	if kind == Resistance {
		color = ResistanceColor
	}

	return Marker{
		Time:     time,
		Position: InBar,
		Color:    color,
		Shape:    Circle,
		Size:     0.5,
	}
}
