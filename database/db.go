package database

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/dnldd/overlay/shared"
	"github.com/google/uuid"
	rqlitehttp "github.com/rqlite/rqlite-go-http"
	"github.com/rs/zerolog"
)

const (
	// SQL statements.
	createZoneTableSQL    = "CREATE TABLE IF NOT EXISTS zone (id TEXT PRIMARY KEY, kind TEXT, low REAL, high REAL, starttime INTEGER, endtime INTEGER, interactions INTEGER, score REAL, flipped INTEGER, removedon INTEGER)"
	createMetricsTableSQL = "CREATE TABLE IF NOT EXISTS metrics (id TEXT PRIMARY KEY, totaltrades INTEGER, winrate REAL, totalpnl REAL, roi REAL, createdon INTEGER)"
	persistClosedZoneSQL  = "INSERT OR REPLACE INTO zone(id, kind, low, high, starttime, endtime, interactions, score, flipped, removedon) VALUES(?,?,?,?,?,?,?,?,?,?)"
	persistMetricsSQL     = "INSERT INTO metrics(id, totaltrades, winrate, totalpnl, roi, createdon) VALUES(?,?,?,?,?,?)"
)

// OverlayStorer defines the requirements for persisting overlay state.
type OverlayStorer interface {
	// PersistClosedZone stores the provided removed zone to the database.
	PersistClosedZone(ctx context.Context, zone *shared.Zone) error
	// PersistMetrics stores the provided metrics snapshot to the database.
	PersistMetrics(ctx context.Context, metrics *shared.Metrics) error
}

// DatabaseConfig is the configuration for the database.
type DatabaseConfig struct {
	// Endpoint represents the database connection endpoint.
	Endpoint string
	// User is the database user.
	User string
	// Pass is the database user pass.
	Pass string
	// Logger is the database logger.
	Logger *zerolog.Logger
}

// Database represents the database connection.
type Database struct {
	cfg    *DatabaseConfig
	client *rqlitehttp.Client
}

// Ensure the database implements the OverlayStorer interface.
var _ OverlayStorer = (*Database)(nil)

// NewDatabase initializes a new database connection.
func NewDatabase(ctx context.Context, cfg *DatabaseConfig) (*Database, error) {
	httpc := &http.Client{Timeout: time.Second * 5}
	client, err := rqlitehttp.NewClient(cfg.Endpoint, httpc)
	if err != nil {
		return nil, fmt.Errorf("creating database client: %w", err)
	}

	client.SetBasicAuth(cfg.User, cfg.Pass)

	db := &Database{
		cfg:    cfg,
		client: client,
	}

	err = db.bootstrap(ctx)
	if err != nil {
		return nil, fmt.Errorf("bootstrapping database: %w", err)
	}

	return db, nil
}

// bootstrap initializes the database.
func (db *Database) bootstrap(ctx context.Context) error {
	_, err := db.client.Execute(ctx, rqlitehttp.SQLStatements{
		{SQL: createZoneTableSQL},
		{SQL: createMetricsTableSQL},
	}, &rqlitehttp.ExecuteOptions{
		Transaction: true,
		Timings:     true,
	})
	if err != nil {
		return err
	}

	return nil
}

// PersistClosedZone stores the provided removed zone to the database.
func (db *Database) PersistClosedZone(ctx context.Context, zone *shared.Zone) error {
	resp, err := db.client.Execute(ctx, rqlitehttp.SQLStatements{
		{
			SQL: persistClosedZoneSQL,
			PositionalParams: []any{zone.ID, zone.Kind.String(), zone.Low, zone.High,
				zone.StartTime, zone.EndTime, zone.Interactions, zone.Score, zone.Flipped,
				time.Now().Unix()},
		},
	}, &rqlitehttp.ExecuteOptions{Transaction: true, Timings: true})
	if err != nil {
		return err
	}

	has, idx, errStr := resp.HasError()
	if has {
		db.cfg.Logger.Error().Msgf("unexpected closed zone state: %s", spew.Sdump(zone))
		return fmt.Errorf("persisting closed zone %s: %d -> %s", zone.ID, idx, errStr)
	}

	return nil
}

// PersistMetrics stores the provided metrics snapshot to the database.
func (db *Database) PersistMetrics(ctx context.Context, metrics *shared.Metrics) error {
	id := uuid.New().String()
	resp, err := db.client.Execute(ctx, rqlitehttp.SQLStatements{
		{
			SQL: persistMetricsSQL,
			PositionalParams: []any{id, metrics.TotalTrades, metrics.WinRate,
				metrics.TotalPNL, metrics.ROI, time.Now().Unix()},
		},
	}, &rqlitehttp.ExecuteOptions{Transaction: true, Timings: true})
	if err != nil {
		return err
	}

	has, idx, errStr := resp.HasError()
	if has {
		db.cfg.Logger.Error().Msgf("unexpected metrics state: %s", spew.Sdump(metrics))
		return fmt.Errorf("persisting metrics %s: %d -> %s", id, idx, errStr)
	}

	return nil
}
