package overlay

import (
	"sort"
	"sync"

	"github.com/dnldd/overlay/shared"
	"github.com/rs/zerolog"
)

// StoreConfig represents the overlay store configuration.
type StoreConfig struct {
	// Logger represents the application logger.
	Logger *zerolog.Logger
}

// Store owns the canonical zone and trade line collections for the
// overlay. All mutations are atomic with respect to a single event;
// readers receive snapshot copies.
type Store struct {
	cfg *StoreConfig

	zonesMtx sync.RWMutex
	zones    map[string]*shared.Zone

	tradeLinesMtx sync.RWMutex
	tradeLines    map[int64]*shared.TradeLine

	metricsMtx sync.RWMutex
	metrics    shared.Metrics
}

// NewStore initializes a new overlay store.
func NewStore(cfg *StoreConfig) *Store {
	return &Store{
		cfg:        cfg,
		zones:      make(map[string]*shared.Zone),
		tradeLines: make(map[int64]*shared.TradeLine),
	}
}

// UpsertZone creates or fully replaces the zone with the provided
// identity. An update overwrites every mutable field since upstream may
// flip kind, score and interactions together.
func (s *Store) UpsertZone(zone shared.Zone) {
	if zone.Active {
		// An active zone has no end time.
		zone.EndTime = 0
	}

	s.zonesMtx.Lock()
	defer s.zonesMtx.Unlock()

	s.zones[zone.ID] = &zone
}

// RemoveZone removes the zone with the provided id, returning the removed
// zone. Removing an absent zone is a no-op.
func (s *Store) RemoveZone(id string) (shared.Zone, bool) {
	s.zonesMtx.Lock()
	defer s.zonesMtx.Unlock()

	zone, ok := s.zones[id]
	if !ok {
		return shared.Zone{}, false
	}

	delete(s.zones, id)
	return *zone, true
}

// Zones returns a snapshot of all zones ordered by start time then id.
func (s *Store) Zones() []shared.Zone {
	s.zonesMtx.RLock()
	defer s.zonesMtx.RUnlock()

	set := make([]shared.Zone, 0, len(s.zones))
	for _, zone := range s.zones {
		set = append(set, *zone)
	}

	sort.Slice(set, func(i, j int) bool {
		if set[i].StartTime != set[j].StartTime {
			return set[i].StartTime < set[j].StartTime
		}
		return set[i].ID < set[j].ID
	})

	return set
}

// ZoneCount returns the number of tracked zones.
func (s *Store) ZoneCount() int {
	s.zonesMtx.RLock()
	defer s.zonesMtx.RUnlock()

	return len(s.zones)
}

// UpsertTradeLine creates or replaces the trade line for the provided
// order.
func (s *Store) UpsertTradeLine(line shared.TradeLine) {
	s.tradeLinesMtx.Lock()
	defer s.tradeLinesMtx.Unlock()

	s.tradeLines[line.OrderID] = &line
}

// UpdateTakeProfit moves the take profit of the trade line for the
// provided order. Updating an absent order is a no-op; upstream may race
// a removal against the update.
func (s *Store) UpdateTakeProfit(orderID int64, takeProfit float64) {
	s.tradeLinesMtx.Lock()
	defer s.tradeLinesMtx.Unlock()

	line, ok := s.tradeLines[orderID]
	if !ok {
		s.cfg.Logger.Warn().Msgf("no trade line found for order %d on take profit update", orderID)
		return
	}

	line.TakeProfit = takeProfit
}

// RemoveTradeLine removes the trade line for the provided order. Removing
// an absent order is a no-op.
func (s *Store) RemoveTradeLine(orderID int64) {
	s.tradeLinesMtx.Lock()
	defer s.tradeLinesMtx.Unlock()

	delete(s.tradeLines, orderID)
}

// TradeLines returns a snapshot of all trade lines ordered by order id.
func (s *Store) TradeLines() []shared.TradeLine {
	s.tradeLinesMtx.RLock()
	defer s.tradeLinesMtx.RUnlock()

	set := make([]shared.TradeLine, 0, len(s.tradeLines))
	for _, line := range s.tradeLines {
		set = append(set, *line)
	}

	sort.Slice(set, func(i, j int) bool {
		return set[i].OrderID < set[j].OrderID
	})

	return set
}

// TradeLineCount returns the number of tracked trade lines.
func (s *Store) TradeLineCount() int {
	s.tradeLinesMtx.RLock()
	defer s.tradeLinesMtx.RUnlock()

	return len(s.tradeLines)
}

// Empty checks whether the store tracks no zones and no trade lines.
func (s *Store) Empty() bool {
	return s.ZoneCount() == 0 && s.TradeLineCount() == 0
}

// SetMetrics replaces the tracked performance metrics.
func (s *Store) SetMetrics(metrics shared.Metrics) {
	s.metricsMtx.Lock()
	defer s.metricsMtx.Unlock()

	s.metrics = metrics
}

// Metrics returns the tracked performance metrics.
func (s *Store) Metrics() shared.Metrics {
	s.metricsMtx.RLock()
	defer s.metricsMtx.RUnlock()

	return s.metrics
}
