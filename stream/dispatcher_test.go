package stream

import (
	"context"
	"testing"

	"github.com/dnldd/overlay/history"
	"github.com/dnldd/overlay/overlay"
	"github.com/dnldd/overlay/shared"
	"github.com/peterldowns/testy/assert"
	"github.com/rs/zerolog/log"
)

type dispatcherMocks struct {
	redraws     chan struct{}
	series      chan shared.Candlestick
	resets      chan struct{}
	markers     chan []shared.Marker
	zoneLists   chan struct{}
	signalLists chan struct{}
	metrics     chan struct{}
	persisted   chan shared.Zone
}

func setupDispatcher(t *testing.T) (*Dispatcher, *overlay.Store, *history.History, *dispatcherMocks) {
	store := overlay.NewStore(&overlay.StoreConfig{
		Logger: &log.Logger,
	})
	hist := history.New(&history.Config{
		Logger: &log.Logger,
	})

	mocks := &dispatcherMocks{
		redraws:     make(chan struct{}, 10),
		series:      make(chan shared.Candlestick, 10),
		resets:      make(chan struct{}, 10),
		markers:     make(chan []shared.Marker, 10),
		zoneLists:   make(chan struct{}, 10),
		signalLists: make(chan struct{}, 10),
		metrics:     make(chan struct{}, 10),
		persisted:   make(chan shared.Zone, 10),
	}

	cfg := &DispatcherConfig{
		Store:   store,
		History: hist,
		RequestRedraw: func() {
			mocks.redraws <- struct{}{}
		},
		UpdateSeries: func(candle shared.Candlestick, bar shared.VolumeBar) {
			mocks.series <- candle
		},
		ResetSeries: func(candles []shared.Candlestick, volume []shared.VolumeBar) {
			mocks.resets <- struct{}{}
		},
		SetMarkers: func(markers []shared.Marker) {
			mocks.markers <- markers
		},
		RefreshZoneList: func() {
			mocks.zoneLists <- struct{}{}
		},
		RefreshSignalList: func() {
			mocks.signalLists <- struct{}{}
		},
		RefreshMetrics: func() {
			mocks.metrics <- struct{}{}
		},
		PersistClosedZone: func(zone shared.Zone) error {
			mocks.persisted <- zone
			return nil
		},
		Logger: &log.Logger,
	}

	dispatcher, err := NewDispatcher(cfg)
	assert.NoError(t, err)

	return dispatcher, store, hist, mocks
}

func TestDispatcher(t *testing.T) {
	dispatcher, store, hist, mocks := setupDispatcher(t)

	// Ensure the dispatcher can be started.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		dispatcher.Run(ctx)
		close(done)
	}()

	// Ensure a candle message updates the series state and requests a
	// redraw.
	dispatcher.SendMessage([]byte(`{"type":"candle","data":{"time":100,"open":5,"high":9,` +
		`"low":3,"close":8,"volume":2}}`))
	candle := <-mocks.series
	<-mocks.redraws
	assert.Equal(t, candle.Time, int64(100))
	assert.Equal(t, hist.LatestTime(), int64(100))

	// Ensure a fractal message adds a marker, and a duplicate is
	// suppressed without replacing the marker set.
	dispatcher.SendMessage([]byte(`{"type":"fractal","data":{"time":100,"fractal_type":"high",` +
		`"priority":0}}`))
	markers := <-mocks.markers
	assert.Equal(t, len(markers), 1)

	dispatcher.SendMessage([]byte(`{"type":"fractal","data":{"time":100,"fractal_type":"high",` +
		`"priority":1}}`))

	// Ensure a zone add lands in the store and refreshes the zone list.
	dispatcher.SendMessage([]byte(`{"type":"zone","action":"add","data":{"id":"z1",` +
		`"zone_type":"support","low":10,"high":20,"start_time":100,"active":true,` +
		`"interactions":0,"score":1.5}}`))
	<-mocks.redraws
	<-mocks.zoneLists
	assert.Equal(t, store.ZoneCount(), 1)

	// Ensure a zone removal persists the closed zone.
	dispatcher.SendMessage([]byte(`{"type":"zone","action":"remove","data":{"id":"z1"}}`))
	persisted := <-mocks.persisted
	<-mocks.redraws
	<-mocks.zoneLists
	assert.Equal(t, persisted.ID, "z1")
	assert.Equal(t, store.ZoneCount(), 0)

	// Ensure a signal message adds an entry and refreshes the signal
	// list.
	dispatcher.SendMessage([]byte(`{"type":"signal","data":{"time":100,"signal_type":"LONG",` +
		`"order_id":15,"price":42.5}}`))
	<-mocks.markers
	<-mocks.signalLists
	assert.Equal(t, len(hist.Signals()), 1)

	// Ensure an interaction message adds a marker.
	dispatcher.SendMessage([]byte(`{"type":"interaction","data":{"time":120,"zone_type":"support"}}`))
	markers = <-mocks.markers
	assert.Equal(t, len(markers), 3)

	// Ensure trade line deltas mutate the store.
	dispatcher.SendMessage([]byte(`{"type":"trade_lines","action":"add","data":{"order_id":15,` +
		`"order_type":"BUY","entry_price":42.5,"stop_loss":40,"take_profit":48}}`))
	<-mocks.redraws
	assert.Equal(t, store.TradeLineCount(), 1)

	dispatcher.SendMessage([]byte(`{"type":"trade_lines","action":"update_tp","data":{"order_id":15,` +
		`"take_profit":50}}`))
	<-mocks.redraws
	lines := store.TradeLines()
	assert.Equal(t, lines[0].TakeProfit, float64(50))

	// Ensure a metrics message lands in the store and refreshes the
	// panel.
	dispatcher.SendMessage([]byte(`{"type":"metrics","data":{"total_trades":12,"win_rate":58.3,` +
		`"total_pnl":1250.5,"roi":12.5}}`))
	<-mocks.metrics
	assert.Equal(t, store.Metrics().TotalTrades, int64(12))

	// Ensure a trim command prunes the series state, replaces the host
	// series and leaves zones and trade lines untouched.
	dispatcher.SendMessage([]byte(`{"type":"zone","action":"add","data":{"id":"z2",` +
		`"zone_type":"resistance","low":60,"high":70,"start_time":80,"active":true,` +
		`"interactions":0,"score":0.5}}`))
	<-mocks.redraws
	<-mocks.zoneLists

	dispatcher.SendMessage([]byte(`{"type":"trim_data","data":{"window_start_time":110,` +
		`"window_end_time":900}}`))
	<-mocks.resets
	<-mocks.markers
	<-mocks.signalLists
	<-mocks.redraws
	assert.Equal(t, len(hist.Candles()), 0)
	assert.Equal(t, len(hist.Markers()), 1)
	assert.Equal(t, store.ZoneCount(), 1)
	assert.Equal(t, store.TradeLineCount(), 1)

	// Ensure malformed payloads and unknown message types are dropped
	// without mutating state.
	dispatcher.SendMessage([]byte(`{"type":"zone","action":"add"`))
	dispatcher.SendMessage([]byte(`{"type":"heartbeat","data":{}}`))

	dispatcher.SendMessage([]byte(`{"type":"candle","data":{"time":200,"open":5,"high":9,` +
		`"low":3,"close":8,"volume":2}}`))
	<-mocks.series
	<-mocks.redraws
	assert.Equal(t, store.ZoneCount(), 1)
	assert.Equal(t, len(hist.Candles()), 1)

	// Ensure the dispatcher can be gracefully shutdown.
	cancel()
	<-done
}

func TestFillDispatcherChannel(t *testing.T) {
	dispatcher, _, _, _ := setupDispatcher(t)

	// Fill the message channel used by the dispatcher.
	for range bufferSize + 1 {
		dispatcher.SendMessage([]byte(`{"type":"heartbeat"}`))
	}

	// Ensure sends on a filled channel do not block.
	assert.Equal(t, len(dispatcher.messages), bufferSize)
}
