package main

import (
	"sync"

	"github.com/dnldd/overlay/chart"
	"github.com/dnldd/overlay/service"
	"github.com/dnldd/overlay/shared"
	"github.com/dnldd/overlay/sidebar"
	"github.com/rs/zerolog"
)

const (
	// headlessWidth and headlessHeight are the fixed bitmap dimensions of
	// the headless surface.
	headlessWidth  = 1280
	headlessHeight = 720
	// frameLogInterval is the number of drawn frames between summary
	// logs.
	frameLogInterval = 600
	// approxGlyphWidth approximates rendered glyph width as a fraction of
	// the font size.
	approxGlyphWidth = 0.6
)

// headlessHost is a chart surface used when running the overlay engine
// without an attached chart, eg. soak testing against a live stream. It
// projects onto a fixed bitmap with linear time and price scales derived
// from the observed candle series and periodically logs frame summaries.
type headlessHost struct {
	logger *zerolog.Logger

	mtx       sync.RWMutex
	minPrice  float64
	maxPrice  float64
	startTime int64
	endTime   int64
	barCount  int
	frames    uint64
}

// Ensure the headless host implements the service host interface.
var _ service.Host = (*headlessHost)(nil)

// newHeadlessHost initializes a new headless host.
func newHeadlessHost(logger *zerolog.Logger) *headlessHost {
	return &headlessHost{
		logger: logger,
	}
}

// observe widens the tracked time and price bounds with the provided
// candle.
func (h *headlessHost) observe(candle *shared.Candlestick) {
	if h.barCount == 0 || candle.Low < h.minPrice {
		h.minPrice = candle.Low
	}
	if h.barCount == 0 || candle.High > h.maxPrice {
		h.maxPrice = candle.High
	}
	if h.barCount == 0 || candle.Time < h.startTime {
		h.startTime = candle.Time
	}
	if h.barCount == 0 || candle.Time > h.endTime {
		h.endTime = candle.Time
	}
	h.barCount++
}

// PriceToCoordinate projects the provided price to a y coordinate.
func (h *headlessHost) PriceToCoordinate(price float64) shared.Coord {
	h.mtx.RLock()
	defer h.mtx.RUnlock()

	if h.barCount == 0 || h.maxPrice == h.minPrice {
		return shared.UnresolvedCoord()
	}
	if price < h.minPrice || price > h.maxPrice {
		return shared.UnresolvedCoord()
	}

	y := (h.maxPrice - price) / (h.maxPrice - h.minPrice) * headlessHeight
	return shared.ResolvedCoord(y)
}

// TimeToCoordinate projects the provided time to an x coordinate.
func (h *headlessHost) TimeToCoordinate(time int64) shared.Coord {
	h.mtx.RLock()
	defer h.mtx.RUnlock()

	if h.barCount == 0 || h.endTime == h.startTime {
		return shared.UnresolvedCoord()
	}
	if time < h.startTime || time > h.endTime {
		return shared.UnresolvedCoord()
	}

	x := float64(time-h.startTime) / float64(h.endTime-h.startTime) * headlessWidth
	return shared.ResolvedCoord(x)
}

// LogicalToCoordinate projects the provided logical bar index to an x
// coordinate.
func (h *headlessHost) LogicalToCoordinate(logical float64) shared.Coord {
	h.mtx.RLock()
	defer h.mtx.RUnlock()

	if h.barCount == 0 {
		return shared.UnresolvedCoord()
	}

	x := logical / float64(h.barCount) * headlessWidth
	return shared.ResolvedCoord(x)
}

// VisibleLogicalRange returns the visible logical range of the surface.
func (h *headlessHost) VisibleLogicalRange() (shared.LogicalRange, bool) {
	h.mtx.RLock()
	defer h.mtx.RUnlock()

	if h.barCount == 0 {
		return shared.LogicalRange{}, false
	}

	return shared.LogicalRange{From: 0, To: float64(h.barCount)}, true
}

// Scope returns the bitmap dimensions and pixel ratios of the surface.
func (h *headlessHost) Scope() shared.BitmapScope {
	return shared.BitmapScope{
		Width:                headlessWidth,
		Height:               headlessHeight,
		HorizontalPixelRatio: 1,
		VerticalPixelRatio:   1,
	}
}

// MeasureText approximates the rendered width of the provided text.
func (h *headlessHost) MeasureText(text string, fontPx float64, bold bool) float64 {
	return float64(len(text)) * fontPx * approxGlyphWidth
}

// Draw logs a summary of the provided frame periodically.
func (h *headlessHost) Draw(frame chart.Frame) {
	h.mtx.Lock()
	h.frames++
	frames := h.frames
	h.mtx.Unlock()

	if frames%frameLogInterval == 0 {
		h.logger.Info().Msgf("frame %d: %d rects, %d lines, %d labels",
			frames, len(frame.Rects), len(frame.Lines), len(frame.Labels))
	}
}

// UpdateSeries appends a candle and its volume bar to the surface series.
func (h *headlessHost) UpdateSeries(candle shared.Candlestick, bar shared.VolumeBar) {
	h.mtx.Lock()
	defer h.mtx.Unlock()

	h.observe(&candle)
}

// ResetSeries replaces the surface series after a trim.
func (h *headlessHost) ResetSeries(candles []shared.Candlestick, volume []shared.VolumeBar) {
	h.mtx.Lock()
	defer h.mtx.Unlock()

	h.barCount = 0
	for idx := range candles {
		h.observe(&candles[idx])
	}
}

// SetMarkers replaces the marker set of the surface series.
func (h *headlessHost) SetMarkers(markers []shared.Marker) {
	h.logger.Debug().Msgf("marker set updated: %d markers", len(markers))
}

// UpdateZoneList presents the provided zone list.
func (h *headlessHost) UpdateZoneList(items []sidebar.ZoneItem) {
	h.logger.Debug().Msgf("zone list updated: %d zones", len(items))
}

// UpdateSignalList presents the provided signal list.
func (h *headlessHost) UpdateSignalList(items []sidebar.SignalItem) {
	h.logger.Debug().Msgf("signal list updated: %d signals", len(items))
}

// UpdateMetricsPanel presents the provided metrics panel.
func (h *headlessHost) UpdateMetricsPanel(panel sidebar.MetricsPanel) {
	h.logger.Debug().Msgf("metrics updated: trades %s, win rate %s, pnl %s, roi %s",
		panel.TotalTrades, panel.WinRate, panel.TotalPNL, panel.ROI)
}

// UpdateConnectionStatus presents the stream connection status.
func (h *headlessHost) UpdateConnectionStatus(connected bool) {
	switch {
	case connected:
		h.logger.Info().Msg("stream connected")
	default:
		h.logger.Info().Msg("stream disconnected")
	}
}
