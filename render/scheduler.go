package render

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dnldd/overlay/chart"
	"github.com/dnldd/overlay/history"
	"github.com/dnldd/overlay/overlay"
	"github.com/dnldd/overlay/shared"
	"github.com/rs/zerolog"
)

const (
	// defaultFrameInterval approximates a display refresh tick.
	defaultFrameInterval = time.Second / 60
)

// SchedulerConfig represents the render scheduler configuration.
type SchedulerConfig struct {
	// Surface is the hosting chart surface.
	Surface shared.ChartSurface
	// Draw hands a projected frame to the host canvas.
	Draw func(frame chart.Frame)
	// Store is the canonical overlay entity store.
	Store *overlay.Store
	// History is the time series state of the chart.
	History *history.History
	// FrameInterval overrides the frame tick interval, zero for the
	// default.
	FrameInterval time.Duration
	// Logger represents the application logger.
	Logger *zerolog.Logger
}

// Validate asserts the config has sane inputs.
func (cfg *SchedulerConfig) Validate() error {
	var errs error

	if cfg.Surface == nil {
		errs = errors.Join(errs, fmt.Errorf("chart surface cannot be nil"))
	}
	if cfg.Draw == nil {
		errs = errors.Join(errs, fmt.Errorf("draw function cannot be nil"))
	}
	if cfg.Store == nil {
		errs = errors.Join(errs, fmt.Errorf("overlay store cannot be nil"))
	}
	if cfg.History == nil {
		errs = errors.Join(errs, fmt.Errorf("history cannot be nil"))
	}

	return errs
}

// Scheduler drives overlay re-projection. Two triggers converge on one
// idempotent recompute: a continuous frame tick keeps active zones and
// trade lines tracking the latest time, and redraw requests cover
// viewport changes and state mutations. Recomputation is a pure function
// of current canonical state, so redundant triggers are harmless.
type Scheduler struct {
	cfg     *SchedulerConfig
	redraws chan struct{}
}

// NewScheduler initializes a new render scheduler.
func NewScheduler(cfg *SchedulerConfig) (*Scheduler, error) {
	err := cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("validating scheduler config: %w", err)
	}

	if cfg.FrameInterval == 0 {
		cfg.FrameInterval = defaultFrameInterval
	}

	return &Scheduler{
		cfg:     cfg,
		redraws: make(chan struct{}, 1),
	}, nil
}

// RequestRedraw schedules a re-projection of the overlay. Pending
// requests coalesce.
func (s *Scheduler) RequestRedraw() {
	select {
	case s.redraws <- struct{}{}:
		// do nothing.
	default:
		// A redraw is already pending.
	}
}

// NotifyViewportChange schedules a re-projection after a pan or zoom of
// the hosting chart.
func (s *Scheduler) NotifyViewportChange() {
	s.RequestRedraw()
}

// renderFrame recomputes the visible primitives from current canonical
// state and hands them to the host canvas. It is a cheap no-op while no
// zones or trade lines exist.
func (s *Scheduler) renderFrame() {
	if s.cfg.Store.Empty() {
		return
	}

	frame := chart.ZonePrimitives(s.cfg.Store.Zones(), s.cfg.History.LatestTime(), s.cfg.Surface)
	tradeFrame := chart.TradeLinePrimitives(s.cfg.Store.TradeLines(), s.cfg.Surface)
	frame.Merge(&tradeFrame)

	s.cfg.Draw(frame)
}

// Run drives the render loop of the scheduler. The loop stops cleanly
// when the provided context is cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.FrameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.renderFrame()
		case <-s.redraws:
			s.renderFrame()
		}
	}
}
