package stream

import (
	"context"
	"errors"
	"fmt"

	"github.com/dnldd/overlay/history"
	"github.com/dnldd/overlay/overlay"
	"github.com/dnldd/overlay/shared"
	"github.com/rs/zerolog"
)

const (
	// bufferSize is the default buffer size for channels.
	bufferSize = 64
)

// DispatcherConfig represents the event dispatcher configuration.
type DispatcherConfig struct {
	// Store is the canonical overlay entity store.
	Store *overlay.Store
	// History is the time series state of the chart.
	History *history.History
	// RequestRedraw schedules a re-projection of the overlay.
	RequestRedraw func()
	// UpdateSeries forwards a candle and its volume bar to the host
	// chart series.
	UpdateSeries func(candle shared.Candlestick, bar shared.VolumeBar)
	// ResetSeries replaces the host chart series after a trim.
	ResetSeries func(candles []shared.Candlestick, volume []shared.VolumeBar)
	// SetMarkers replaces the marker set of the host chart series.
	SetMarkers func(markers []shared.Marker)
	// RefreshZoneList refreshes the zone list presentation.
	RefreshZoneList func()
	// RefreshSignalList refreshes the signal list presentation.
	RefreshSignalList func()
	// RefreshMetrics refreshes the metrics panel presentation.
	RefreshMetrics func()
	// PersistClosedZone persists a removed zone, nil when persistence is
	// disabled.
	PersistClosedZone func(zone shared.Zone) error
	// Logger represents the application logger.
	Logger *zerolog.Logger
}

// Validate asserts the config has sane inputs.
func (cfg *DispatcherConfig) Validate() error {
	var errs error

	if cfg.Store == nil {
		errs = errors.Join(errs, fmt.Errorf("overlay store cannot be nil"))
	}
	if cfg.History == nil {
		errs = errors.Join(errs, fmt.Errorf("history cannot be nil"))
	}
	if cfg.RequestRedraw == nil {
		errs = errors.Join(errs, fmt.Errorf("request redraw function cannot be nil"))
	}
	if cfg.UpdateSeries == nil {
		errs = errors.Join(errs, fmt.Errorf("update series function cannot be nil"))
	}
	if cfg.ResetSeries == nil {
		errs = errors.Join(errs, fmt.Errorf("reset series function cannot be nil"))
	}
	if cfg.SetMarkers == nil {
		errs = errors.Join(errs, fmt.Errorf("set markers function cannot be nil"))
	}
	if cfg.RefreshZoneList == nil {
		errs = errors.Join(errs, fmt.Errorf("refresh zone list function cannot be nil"))
	}
	if cfg.RefreshSignalList == nil {
		errs = errors.Join(errs, fmt.Errorf("refresh signal list function cannot be nil"))
	}
	if cfg.RefreshMetrics == nil {
		errs = errors.Join(errs, fmt.Errorf("refresh metrics function cannot be nil"))
	}

	return errs
}

// Dispatcher decodes inbound stream messages and routes each to the
// overlay store or the history as a state mutation, then requests a
// render pass. Messages are processed one at a time, so every mutation
// runs to completion before the next is dispatched.
type Dispatcher struct {
	cfg      *DispatcherConfig
	messages chan []byte
}

// NewDispatcher initializes a new event dispatcher.
func NewDispatcher(cfg *DispatcherConfig) (*Dispatcher, error) {
	err := cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("validating dispatcher config: %w", err)
	}

	return &Dispatcher{
		cfg:      cfg,
		messages: make(chan []byte, bufferSize),
	}, nil
}

// SendMessage relays the provided raw message payload for processing.
func (d *Dispatcher) SendMessage(message []byte) {
	select {
	case d.messages <- message:
		// do nothing.
	default:
		d.cfg.Logger.Error().Msgf("message channel at capacity: %d/%d",
			len(d.messages), bufferSize)
	}
}

// handleCandle processes the provided candle message.
func (d *Dispatcher) handleCandle(msg *shared.CandleMessage) {
	d.cfg.History.AddCandle(msg.Candle)
	d.cfg.UpdateSeries(msg.Candle, shared.NewVolumeBar(&msg.Candle))
	d.cfg.RequestRedraw()
}

// handleFractal processes the provided fractal message.
func (d *Dispatcher) handleFractal(msg *shared.FractalMessage) {
	added := d.cfg.History.AddFractal(msg.Time, msg.Kind, msg.Priority)
	if added {
		d.cfg.SetMarkers(d.cfg.History.Markers())
	}
}

// handleZone processes the provided zone delta message.
func (d *Dispatcher) handleZone(msg *shared.ZoneMessage) {
	switch msg.Action {
	case shared.ActionAdd, shared.ActionUpdate:
		d.cfg.Store.UpsertZone(msg.Zone)
	case shared.ActionRemove:
		zone, ok := d.cfg.Store.RemoveZone(msg.Zone.ID)
		if ok && d.cfg.PersistClosedZone != nil {
			err := d.cfg.PersistClosedZone(zone)
			if err != nil {
				d.cfg.Logger.Error().Msgf("persisting closed zone %s: %v", zone.ID, err)
			}
		}
	default:
		d.cfg.Logger.Warn().Msgf("unknown zone action: %s", msg.Action)
		return
	}

	d.cfg.RequestRedraw()
	d.cfg.RefreshZoneList()
}

// handleSignal processes the provided signal message.
func (d *Dispatcher) handleSignal(msg *shared.SignalMessage) {
	added := d.cfg.History.AddSignal(msg.Signal)
	if added {
		d.cfg.SetMarkers(d.cfg.History.Markers())
		d.cfg.RefreshSignalList()
	}
}

// handleInteraction processes the provided interaction message.
func (d *Dispatcher) handleInteraction(msg *shared.InteractionMessage) {
	d.cfg.History.AddInteraction(msg.Time, msg.Kind)
	d.cfg.SetMarkers(d.cfg.History.Markers())
}

// handleTradeLine processes the provided trade line delta message.
func (d *Dispatcher) handleTradeLine(msg *shared.TradeLineMessage) {
	switch msg.Action {
	case shared.ActionAdd:
		d.cfg.Store.UpsertTradeLine(msg.Line)
	case shared.ActionUpdateTakeProfit:
		d.cfg.Store.UpdateTakeProfit(msg.Line.OrderID, msg.Line.TakeProfit)
	case shared.ActionRemove:
		d.cfg.Store.RemoveTradeLine(msg.Line.OrderID)
	default:
		d.cfg.Logger.Warn().Msgf("unknown trade line action: %s", msg.Action)
		return
	}

	d.cfg.RequestRedraw()
}

// handleTrim processes the provided trim command.
func (d *Dispatcher) handleTrim(msg *shared.TrimMessage) {
	stats := d.cfg.History.Trim(msg.WindowStart)
	d.cfg.Logger.Info().Msgf("trimmed series state before %d: %d candles, %d volume bars, "+
		"%d markers, %d signals", msg.WindowStart, stats.Candles, stats.Volume, stats.Markers,
		stats.Signals)

	d.cfg.ResetSeries(d.cfg.History.Candles(), d.cfg.History.VolumeBars())
	d.cfg.SetMarkers(d.cfg.History.Markers())
	d.cfg.RefreshSignalList()
	d.cfg.RequestRedraw()
}

// handleMessage decodes and routes the provided raw message payload.
func (d *Dispatcher) handleMessage(raw []byte) {
	msg, err := shared.ParseMessage(raw)
	if err != nil {
		// A malformed payload is surfaced and dropped, it cannot
		// corrupt canonical state.
		d.cfg.Logger.Error().Msgf("parsing stream message: %v", err)
		return
	}

	switch msg := msg.(type) {
	case *shared.CandleMessage:
		d.handleCandle(msg)
	case *shared.FractalMessage:
		d.handleFractal(msg)
	case *shared.ZoneMessage:
		d.handleZone(msg)
	case *shared.SignalMessage:
		d.handleSignal(msg)
	case *shared.IndicatorMessage:
		// Indicator updates are not displayed.
	case *shared.InteractionMessage:
		d.handleInteraction(msg)
	case *shared.MetricsMessage:
		d.cfg.Store.SetMetrics(msg.Metrics)
		d.cfg.RefreshMetrics()
	case *shared.TradeLineMessage:
		d.handleTradeLine(msg)
	case *shared.TrimMessage:
		d.handleTrim(msg)
	default:
		// Unknown message types are ignored.
	}
}

// Run processes inbound messages until the provided context is cancelled.
func (d *Dispatcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case message := <-d.messages:
			d.handleMessage(message)
		}
	}
}
