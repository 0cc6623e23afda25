package history

import (
	"sync"

	"github.com/dnldd/overlay/shared"
	"github.com/rs/zerolog"
)

const (
	// maxSignalEntries is the maximum number of retained signal entries.
	maxSignalEntries = 50
)

// Config represents the history configuration.
type Config struct {
	// Logger represents the application logger.
	Logger *zerolog.Logger
}

// History owns the time ordered series state of the chart: candles,
// volume bars, event markers and the recent signal list. Series items are
// retained within a trim window; zones and trade lines are not tracked
// here and are never pruned by time.
type History struct {
	cfg *Config

	mtx      sync.RWMutex
	candles  []shared.Candlestick
	volume   []shared.VolumeBar
	markers  []shared.Marker
	signals  []shared.SignalEntry
	earliest int64
	latest   int64
}

// New initializes a new history.
func New(cfg *Config) *History {
	return &History{
		cfg: cfg,
	}
}

// AddCandle appends the provided candle and its derived volume bar,
// advancing the known time bounds.
func (h *History) AddCandle(candle shared.Candlestick) {
	h.mtx.Lock()
	defer h.mtx.Unlock()

	h.candles = append(h.candles, candle)
	h.volume = append(h.volume, shared.NewVolumeBar(&candle))

	if h.earliest == 0 || candle.Time < h.earliest {
		h.earliest = candle.Time
	}
	if h.latest == 0 || candle.Time > h.latest {
		h.latest = candle.Time
	}
}

// AddFractal adds a marker for the provided fractal event. A fractal
// sharing its time and derived shape with an existing marker is
// suppressed as a duplicate. Returns whether a marker was added.
func (h *History) AddFractal(time int64, kind shared.FractalKind, priority int64) bool {
	marker := shared.NewFractalMarker(time, kind, priority)

	h.mtx.Lock()
	defer h.mtx.Unlock()

	for idx := range h.markers {
		if h.markers[idx].Time == time && h.markers[idx].Shape == marker.Shape {
			return false
		}
	}

	h.markers = append(h.markers, marker)
	return true
}

// AddSignal adds the provided signal entry and its marker. A signal
// sharing its time and type with an existing entry is suppressed as a
// duplicate. Returns whether an entry was added.
func (h *History) AddSignal(signal shared.SignalEntry) bool {
	key := signal.Key()

	h.mtx.Lock()
	defer h.mtx.Unlock()

	for idx := range h.signals {
		if h.signals[idx].Key() == key {
			return false
		}
	}

	h.markers = append(h.markers, shared.NewSignalMarker(&signal))

	// Newest entries lead the signal list, capped to keep it manageable.
	h.signals = append([]shared.SignalEntry{signal}, h.signals...)
	if len(h.signals) > maxSignalEntries {
		h.signals = h.signals[:maxSignalEntries]
	}

	return true
}

// AddInteraction adds a marker for a price interaction with a zone of the
// provided kind.
func (h *History) AddInteraction(time int64, kind shared.ZoneKind) {
	marker := shared.NewInteractionMarker(time, kind)

	h.mtx.Lock()
	defer h.mtx.Unlock()

	h.markers = append(h.markers, marker)
}

// Candles returns a snapshot of the retained candles.
func (h *History) Candles() []shared.Candlestick {
	h.mtx.RLock()
	defer h.mtx.RUnlock()

	set := make([]shared.Candlestick, len(h.candles))
	copy(set, h.candles)
	return set
}

// VolumeBars returns a snapshot of the retained volume bars.
func (h *History) VolumeBars() []shared.VolumeBar {
	h.mtx.RLock()
	defer h.mtx.RUnlock()

	set := make([]shared.VolumeBar, len(h.volume))
	copy(set, h.volume)
	return set
}

// Markers returns a snapshot of the retained markers.
func (h *History) Markers() []shared.Marker {
	h.mtx.RLock()
	defer h.mtx.RUnlock()

	set := make([]shared.Marker, len(h.markers))
	copy(set, h.markers)
	return set
}

// Signals returns a snapshot of the retained signal entries, newest
// first.
func (h *History) Signals() []shared.SignalEntry {
	h.mtx.RLock()
	defer h.mtx.RUnlock()

	set := make([]shared.SignalEntry, len(h.signals))
	copy(set, h.signals)
	return set
}

// EarliestTime returns the earliest known candle time, zero before any
// candle arrives.
func (h *History) EarliestTime() int64 {
	h.mtx.RLock()
	defer h.mtx.RUnlock()

	return h.earliest
}

// LatestTime returns the latest known candle time, zero before any candle
// arrives.
func (h *History) LatestTime() int64 {
	h.mtx.RLock()
	defer h.mtx.RUnlock()

	return h.latest
}

// TrimStats summarizes the series items removed by a trim.
type TrimStats struct {
	Candles int
	Volume  int
	Markers int
	Signals int
}

// Trim removes every series item with a time strictly before the provided
// window start, preserving relative order, and recomputes the earliest
// known time from the retained candles.
func (h *History) Trim(windowStart int64) TrimStats {
	h.mtx.Lock()
	defer h.mtx.Unlock()

	var stats TrimStats
	stats.Candles = len(h.candles)
	h.candles = trimCandles(h.candles, windowStart)
	stats.Candles -= len(h.candles)

	stats.Volume = len(h.volume)
	h.volume = trimVolume(h.volume, windowStart)
	stats.Volume -= len(h.volume)

	stats.Markers = len(h.markers)
	h.markers = trimMarkers(h.markers, windowStart)
	stats.Markers -= len(h.markers)

	stats.Signals = len(h.signals)
	h.signals = trimSignals(h.signals, windowStart)
	stats.Signals -= len(h.signals)

	switch {
	case len(h.candles) > 0:
		h.earliest = h.candles[0].Time
	default:
		h.earliest = 0
	}

	return stats
}

// trimCandles filters the provided candles to those within the window.
func trimCandles(set []shared.Candlestick, windowStart int64) []shared.Candlestick {
	kept := set[:0]
	for idx := range set {
		if set[idx].Time >= windowStart {
			kept = append(kept, set[idx])
		}
	}
	return kept
}

// trimVolume filters the provided volume bars to those within the window.
func trimVolume(set []shared.VolumeBar, windowStart int64) []shared.VolumeBar {
	kept := set[:0]
	for idx := range set {
		if set[idx].Time >= windowStart {
			kept = append(kept, set[idx])
		}
	}
	return kept
}

// trimMarkers filters the provided markers to those within the window.
func trimMarkers(set []shared.Marker, windowStart int64) []shared.Marker {
	kept := set[:0]
	for idx := range set {
		if set[idx].Time >= windowStart {
			kept = append(kept, set[idx])
		}
	}
	return kept
}

// trimSignals filters the provided signal entries to those within the
// window.
func trimSignals(set []shared.SignalEntry, windowStart int64) []shared.SignalEntry {
	kept := set[:0]
	for idx := range set {
		if set[idx].Time >= windowStart {
			kept = append(kept, set[idx])
		}
	}
	return kept
}
