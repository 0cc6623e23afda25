package render

import (
	"context"
	"testing"
	"time"

	"github.com/dnldd/overlay/chart"
	"github.com/dnldd/overlay/history"
	"github.com/dnldd/overlay/overlay"
	"github.com/dnldd/overlay/shared"
	"github.com/peterldowns/testy/assert"
	"github.com/rs/zerolog/log"
)

// testSurface is a fixed linear chart surface for scheduler tests.
type testSurface struct{}

func (s *testSurface) PriceToCoordinate(price float64) shared.Coord {
	return shared.ResolvedCoord(800 - price)
}

func (s *testSurface) TimeToCoordinate(time int64) shared.Coord {
	return shared.ResolvedCoord(float64(time) / 2)
}

func (s *testSurface) LogicalToCoordinate(logical float64) shared.Coord {
	return shared.ResolvedCoord(logical * 10)
}

func (s *testSurface) VisibleLogicalRange() (shared.LogicalRange, bool) {
	return shared.LogicalRange{From: 0, To: 90}, true
}

func (s *testSurface) Scope() shared.BitmapScope {
	return shared.BitmapScope{
		Width:                1000,
		Height:               800,
		HorizontalPixelRatio: 1,
		VerticalPixelRatio:   1,
	}
}

func (s *testSurface) MeasureText(text string, fontPx float64, bold bool) float64 {
	return float64(len(text)) * fontPx * 0.5
}

func setupScheduler(t *testing.T) (*Scheduler, *overlay.Store, *history.History, chan chart.Frame) {
	store := overlay.NewStore(&overlay.StoreConfig{
		Logger: &log.Logger,
	})
	hist := history.New(&history.Config{
		Logger: &log.Logger,
	})
	frames := make(chan chart.Frame, 10)

	cfg := &SchedulerConfig{
		Surface: &testSurface{},
		Draw: func(frame chart.Frame) {
			frames <- frame
		},
		Store:   store,
		History: hist,
		// A long tick isolates redraw requests from the frame timer.
		FrameInterval: time.Hour,
		Logger:        &log.Logger,
	}

	scheduler, err := NewScheduler(cfg)
	assert.NoError(t, err)

	return scheduler, store, hist, frames
}

func TestScheduler(t *testing.T) {
	scheduler, store, hist, frames := setupScheduler(t)

	// Ensure a render pass with no overlay entities produces no frame.
	scheduler.renderFrame()
	assert.Equal(t, len(frames), 0)

	store.UpsertZone(shared.Zone{
		ID:        "z1",
		Kind:      shared.Support,
		Low:       100,
		High:      200,
		StartTime: 100,
		Active:    true,
		Score:     1.5,
	})
	hist.AddCandle(shared.Candlestick{Time: 500, Open: 5, High: 9, Low: 3, Close: 8, Volume: 2})

	// Ensure the scheduler can be started.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		scheduler.Run(ctx)
		close(done)
	}()

	// Ensure a redraw request projects the current overlay state.
	scheduler.RequestRedraw()
	frame := <-frames
	assert.Equal(t, len(frame.Rects), 1)

	// Ensure trade line guides merge into the projected frame.
	store.UpsertTradeLine(shared.TradeLine{
		OrderID:    15,
		OrderType:  "BUY",
		EntryPrice: 42.5,
		StopLoss:   40,
		TakeProfit: 48,
	})

	scheduler.NotifyViewportChange()
	frame = <-frames
	assert.Equal(t, len(frame.Rects), 1)
	assert.GreaterThan(t, len(frame.Lines), 2)

	// Ensure the scheduler can be gracefully shutdown.
	cancel()
	<-done
}

func TestFillSchedulerRedraws(t *testing.T) {
	scheduler, _, _, _ := setupScheduler(t)

	// Ensure pending redraw requests coalesce instead of accumulating.
	for range 5 {
		scheduler.RequestRedraw()
	}

	assert.Equal(t, len(scheduler.redraws), 1)
}
