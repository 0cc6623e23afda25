package shared

import (
	"fmt"
	"strings"
)

// SignalEntry represents a trade signal reported by the upstream engine.
type SignalEntry struct {
	// Time is the candle time the signal fired on.
	Time int64
	// SignalType is the upstream signal classification, eg. "LONG".
	SignalType string
	// OrderID references the order opened for the signal, zero when the
	// signal carries no order.
	OrderID int64
	// Price is the price the signal fired at.
	Price float64
}

// Key returns the composite identity of the signal used for duplicate
// suppression.
func (s *SignalEntry) Key() string {
	return fmt.Sprintf("%d-%s", s.Time, s.SignalType)
}

// Label returns the display label of the signal.
func (s *SignalEntry) Label() string {
	if s.OrderID == 0 {
		return s.SignalType
	}

	return fmt.Sprintf("%s (ID:%d)", s.SignalType, s.OrderID)
}

// Bullish checks whether the signal is a bullish one.
func (s *SignalEntry) Bullish() bool {
	return strings.Contains(s.SignalType, "LONG") || s.SignalType == "R_L"
}

// NewSignalMarker initializes a marker for the provided signal.
func NewSignalMarker(signal *SignalEntry) Marker {
	marker := Marker{
		Time: signal.Time,
		Text: signal.Label(),
		Size: 2,
	}

	switch {
	case signal.Bullish():
		marker.Position = BelowBar
		marker.Color = SupportColor
		marker.Shape = ArrowUp
	default:
		marker.Position = AboveBar
		marker.Color = ResistanceColor
		marker.Shape = ArrowDown
	}

	return marker
}
