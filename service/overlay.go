package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dnldd/overlay/chart"
	"github.com/dnldd/overlay/database"
	"github.com/dnldd/overlay/history"
	"github.com/dnldd/overlay/overlay"
	"github.com/dnldd/overlay/render"
	"github.com/dnldd/overlay/shared"
	"github.com/dnldd/overlay/sidebar"
	"github.com/dnldd/overlay/stream"
	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
)

const (
	// metricsFlushInterval is the interval between metrics snapshot
	// persistence jobs.
	metricsFlushInterval = time.Minute
)

// Host defines the requirements of the surface hosting the overlay.
type Host interface {
	shared.ChartSurface

	// Draw renders the provided frame on the host canvas.
	Draw(frame chart.Frame)
	// UpdateSeries appends a candle and its volume bar to the host
	// chart series.
	UpdateSeries(candle shared.Candlestick, bar shared.VolumeBar)
	// ResetSeries replaces the host chart series after a trim.
	ResetSeries(candles []shared.Candlestick, volume []shared.VolumeBar)
	// SetMarkers replaces the marker set of the host chart series.
	SetMarkers(markers []shared.Marker)
	// UpdateZoneList presents the provided zone list.
	UpdateZoneList(items []sidebar.ZoneItem)
	// UpdateSignalList presents the provided signal list.
	UpdateSignalList(items []sidebar.SignalItem)
	// UpdateMetricsPanel presents the provided metrics panel.
	UpdateMetricsPanel(panel sidebar.MetricsPanel)
	// UpdateConnectionStatus presents the stream connection status.
	UpdateConnectionStatus(connected bool)
}

// OverlayConfig represents the configuration struct for the overlay
// service.
type OverlayConfig struct {
	// StreamURL is the websocket endpoint of the upstream event stream.
	StreamURL string
	// Host is the surface hosting the overlay.
	Host Host
	// FrameInterval overrides the render frame interval, zero for the
	// default.
	FrameInterval time.Duration
	// DatabaseEndpoint is the persistence endpoint, empty to disable
	// persistence.
	DatabaseEndpoint string
	// DatabaseUser is the database user.
	DatabaseUser string
	// DatabasePass is the database user pass.
	DatabasePass string
	// Cancel is the context cancellation function.
	Cancel context.CancelFunc
}

// Validate asserts the config has sane inputs.
func (cfg *OverlayConfig) Validate() error {
	var errs error

	if cfg.StreamURL == "" {
		errs = errors.Join(errs, fmt.Errorf("stream url cannot be an empty string"))
	}
	if cfg.Host == nil {
		errs = errors.Join(errs, fmt.Errorf("host cannot be nil"))
	}
	if cfg.Cancel == nil {
		errs = errors.Join(errs, fmt.Errorf("context cancellation function cannot be nil"))
	}

	return errs
}

// Overlay represents the chart overlay service.
type Overlay struct {
	cfg          *OverlayConfig
	store        *overlay.Store
	history      *history.History
	scheduler    *render.Scheduler
	dispatcher   *stream.Dispatcher
	client       *stream.Client
	db           *database.Database
	jobScheduler gocron.Scheduler
	logger       *zerolog.Logger
	wg           sync.WaitGroup
}

// NewOverlay initializes a new overlay service.
func NewOverlay(ctx context.Context, cfg *OverlayConfig) (*Overlay, error) {
	err := cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("validating overlay config: %w", err)
	}

	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	logger := log.With().Str("service", "overlay").Logger()

	storeLogger := logger.With().Str("component", "store").Logger()
	store := overlay.NewStore(&overlay.StoreConfig{
		Logger: &storeLogger,
	})

	historyLogger := logger.With().Str("component", "history").Logger()
	hist := history.New(&history.Config{
		Logger: &historyLogger,
	})

	var db *database.Database
	if cfg.DatabaseEndpoint != "" {
		dbLogger := logger.With().Str("component", "database").Logger()
		db, err = database.NewDatabase(ctx, &database.DatabaseConfig{
			Endpoint: cfg.DatabaseEndpoint,
			User:     cfg.DatabaseUser,
			Pass:     cfg.DatabasePass,
			Logger:   &dbLogger,
		})
		if err != nil {
			return nil, fmt.Errorf("creating database: %v", err)
		}
	}

	schedulerLogger := logger.With().Str("component", "renderscheduler").Logger()
	scheduler, err := render.NewScheduler(&render.SchedulerConfig{
		Surface:       cfg.Host,
		Draw:          cfg.Host.Draw,
		Store:         store,
		History:       hist,
		FrameInterval: cfg.FrameInterval,
		Logger:        &schedulerLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating render scheduler: %v", err)
	}

	var persistClosedZoneFunc func(zone shared.Zone) error
	if db != nil {
		persistClosedZoneFunc = func(zone shared.Zone) error {
			return db.PersistClosedZone(ctx, &zone)
		}
	}

	dispatcherLogger := logger.With().Str("component", "dispatcher").Logger()
	dispatcher, err := stream.NewDispatcher(&stream.DispatcherConfig{
		Store:         store,
		History:       hist,
		RequestRedraw: scheduler.RequestRedraw,
		UpdateSeries:  cfg.Host.UpdateSeries,
		ResetSeries:   cfg.Host.ResetSeries,
		SetMarkers:    cfg.Host.SetMarkers,
		RefreshZoneList: func() {
			cfg.Host.UpdateZoneList(sidebar.ZoneList(store.Zones()))
		},
		RefreshSignalList: func() {
			cfg.Host.UpdateSignalList(sidebar.SignalList(hist.Signals()))
		},
		RefreshMetrics: func() {
			cfg.Host.UpdateMetricsPanel(sidebar.FormatMetrics(store.Metrics()))
		},
		PersistClosedZone: persistClosedZoneFunc,
		Logger:            &dispatcherLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating dispatcher: %v", err)
	}

	clientLogger := logger.With().Str("component", "streamclient").Logger()
	client, err := stream.NewClient(&stream.ClientConfig{
		URL:          cfg.StreamURL,
		Relay:        dispatcher.SendMessage,
		NotifyStatus: cfg.Host.UpdateConnectionStatus,
		Logger:       &clientLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating stream client: %v", err)
	}

	jobScheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("creating job scheduler: %v", err)
	}

	service := &Overlay{
		cfg:          cfg,
		store:        store,
		history:      hist,
		scheduler:    scheduler,
		dispatcher:   dispatcher,
		client:       client,
		db:           db,
		jobScheduler: jobScheduler,
		logger:       &logger,
	}

	if db != nil {
		_, err = jobScheduler.NewJob(gocron.DurationJob(metricsFlushInterval),
			gocron.NewTask(func() {
				metrics := store.Metrics()
				err := db.PersistMetrics(ctx, &metrics)
				if err != nil {
					logger.Error().Msgf("persisting metrics: %v", err)
				}
			}))
		if err != nil {
			return nil, fmt.Errorf("creating metrics persistence job: %v", err)
		}
	}

	return service, nil
}

// Run handles the lifecycle processes of the overlay service.
func (o *Overlay) Run(ctx context.Context) {
	o.wg.Add(3)

	go func() {
		o.dispatcher.Run(ctx)
		o.wg.Done()
	}()

	go func() {
		o.scheduler.Run(ctx)
		o.wg.Done()
	}()

	go func() {
		o.client.Run(ctx)
		o.wg.Done()
	}()

	if o.db != nil {
		o.jobScheduler.Start()
	}

	o.wg.Wait()

	err := o.jobScheduler.Shutdown()
	if err != nil {
		o.logger.Error().Msgf("shutting down job scheduler: %v", err)
	}
}

// NotifyViewportChange schedules a re-projection after a pan or zoom of
// the hosting chart.
func (o *Overlay) NotifyViewportChange() {
	o.scheduler.NotifyViewportChange()
}
