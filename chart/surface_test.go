package chart

import (
	"github.com/dnldd/overlay/shared"
)

// mockSurface is a chart surface with linear mappings over fixed ranges.
// Prices map directly to y coordinates and times map half scale to x
// coordinates, so projections are easy to assert on.
type mockSurface struct {
	scope      shared.BitmapScope
	visible    *shared.LogicalRange
	minPrice   float64
	maxPrice   float64
	minTime    int64
	maxTime    int64
	logicalOff bool
}

// newMockSurface initializes a mock surface covering prices [0, 800] and
// times [0, 1000] on a 1000x800 bitmap.
func newMockSurface() *mockSurface {
	return &mockSurface{
		scope: shared.BitmapScope{
			Width:                1000,
			Height:               800,
			HorizontalPixelRatio: 1,
			VerticalPixelRatio:   1,
		},
		visible:  &shared.LogicalRange{From: 0, To: 90},
		minPrice: 0,
		maxPrice: 800,
		minTime:  0,
		maxTime:  1000,
	}
}

func (m *mockSurface) PriceToCoordinate(price float64) shared.Coord {
	if price < m.minPrice || price > m.maxPrice {
		return shared.UnresolvedCoord()
	}
	return shared.ResolvedCoord(m.maxPrice - price)
}

func (m *mockSurface) TimeToCoordinate(time int64) shared.Coord {
	if time < m.minTime || time > m.maxTime {
		return shared.UnresolvedCoord()
	}
	return shared.ResolvedCoord(float64(time) / 2)
}

func (m *mockSurface) LogicalToCoordinate(logical float64) shared.Coord {
	if m.logicalOff {
		return shared.UnresolvedCoord()
	}
	return shared.ResolvedCoord(logical * 10)
}

func (m *mockSurface) VisibleLogicalRange() (shared.LogicalRange, bool) {
	if m.visible == nil {
		return shared.LogicalRange{}, false
	}
	return *m.visible, true
}

func (m *mockSurface) Scope() shared.BitmapScope {
	return m.scope
}

func (m *mockSurface) MeasureText(text string, fontPx float64, bold bool) float64 {
	return float64(len(text)) * fontPx * 0.5
}
