package shared

import (
	"testing"

	"github.com/peterldowns/testy/assert"
)

func TestNewFractalMarker(t *testing.T) {
	tests := []struct {
		name      string
		kind      FractalKind
		priority  int64
		wantColor string
		wantShape MarkerShape
		wantPos   MarkerPosition
		wantSize  float64
	}{
		{
			"top priority high fractal",
			FractalHigh,
			0,
			priorityZeroColor,
			ArrowDown,
			AboveBar,
			2,
		},
		{
			"first priority low fractal",
			FractalLow,
			1,
			priorityOneColor,
			ArrowUp,
			BelowBar,
			0.8,
		},
		{
			"second priority high fractal",
			FractalHigh,
			2,
			priorityTwoColor,
			ArrowDown,
			AboveBar,
			0.8,
		},
		{
			"unranked high fractal",
			FractalHigh,
			UnrankedPriority,
			ResistanceColor,
			ArrowDown,
			AboveBar,
			0.8,
		},
		{
			"unranked low fractal",
			FractalLow,
			UnrankedPriority,
			SupportColor,
			ArrowUp,
			BelowBar,
			0.8,
		},
	}

	for _, test := range tests {
		marker := NewFractalMarker(100, test.kind, test.priority)
		if marker.Color != test.wantColor {
			t.Errorf("%s: expected color %v, got %v", test.name, test.wantColor, marker.Color)
		}
		if marker.Shape != test.wantShape {
			t.Errorf("%s: expected shape %v, got %v", test.name, test.wantShape, marker.Shape)
		}
		if marker.Position != test.wantPos {
			t.Errorf("%s: expected position %v, got %v", test.name, test.wantPos, marker.Position)
		}
		if marker.Size != test.wantSize {
			t.Errorf("%s: expected size %v, got %v", test.name, test.wantSize, marker.Size)
		}
	}
}

func TestNewSignalMarker(t *testing.T) {
	// Ensure a bullish signal renders below the bar with an up arrow.
	long := SignalEntry{
		Time:       100,
		SignalType: "LONG",
		OrderID:    15,
		Price:      42.5,
	}
	assert.True(t, long.Bullish())

	marker := NewSignalMarker(&long)
	assert.Equal(t, marker.Position, BelowBar)
	assert.Equal(t, marker.Shape, ArrowUp)
	assert.Equal(t, marker.Color, SupportColor)
	assert.Equal(t, marker.Text, "LONG (ID:15)")

	// Ensure a reversal long signal is treated as bullish.
	reversal := SignalEntry{
		Time:       100,
		SignalType: "R_L",
		Price:      42.5,
	}
	assert.True(t, reversal.Bullish())
	assert.Equal(t, reversal.Label(), "R_L")

	// Ensure a bearish signal renders above the bar with a down arrow.
	short := SignalEntry{
		Time:       100,
		SignalType: "SHORT",
		Price:      42.5,
	}
	assert.False(t, short.Bullish())

	marker = NewSignalMarker(&short)
	assert.Equal(t, marker.Position, AboveBar)
	assert.Equal(t, marker.Shape, ArrowDown)
	assert.Equal(t, marker.Color, ResistanceColor)
}

func TestNewInteractionMarker(t *testing.T) {
	// Ensure interaction markers render as in-bar dots colored by zone
	// kind.
	marker := NewInteractionMarker(100, Support)
	assert.Equal(t, marker.Position, InBar)
	assert.Equal(t, marker.Shape, Circle)
	assert.Equal(t, marker.Color, SupportColor)
	assert.Equal(t, marker.Size, 0.5)

	marker = NewInteractionMarker(100, Resistance)
	assert.Equal(t, marker.Color, ResistanceColor)
}
