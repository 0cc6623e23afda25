package sidebar

import (
	"fmt"
	"sort"
	"time"

	"github.com/dnldd/overlay/shared"
)

// ZoneItem represents a formatted zone list entry.
type ZoneItem struct {
	Kind         string
	Score        string
	PriceBand    string
	Interactions string
	Active       bool
}

// newZoneItem formats the provided zone.
func newZoneItem(zone *shared.Zone) ZoneItem {
	return ZoneItem{
		Kind:         zone.Kind.String(),
		Score:        fmt.Sprintf("Score: %.2f", zone.Score),
		PriceBand:    fmt.Sprintf("%.2f - %.2f", zone.Low, zone.High),
		Interactions: fmt.Sprintf("Interactions: %d", zone.Interactions),
		Active:       zone.Active,
	}
}

// ZoneList formats the provided zones for list presentation, active zones
// first, each group ordered by descending score.
func ZoneList(zones []shared.Zone) []ZoneItem {
	active := make([]shared.Zone, 0, len(zones))
	inactive := make([]shared.Zone, 0, len(zones))
	for idx := range zones {
		switch {
		case zones[idx].Active:
			active = append(active, zones[idx])
		default:
			inactive = append(inactive, zones[idx])
		}
	}

	byScore := func(set []shared.Zone) func(i, j int) bool {
		return func(i, j int) bool {
			return set[i].Score > set[j].Score
		}
	}
	sort.SliceStable(active, byScore(active))
	sort.SliceStable(inactive, byScore(inactive))

	items := make([]ZoneItem, 0, len(zones))
	for idx := range active {
		items = append(items, newZoneItem(&active[idx]))
	}
	for idx := range inactive {
		items = append(items, newZoneItem(&inactive[idx]))
	}

	return items
}

// SignalItem represents a formatted signal list entry.
type SignalItem struct {
	SignalType string
	Label      string
	Price      string
	Time       string
}

// SignalList formats the provided signal entries for list presentation,
// preserving their newest first order.
func SignalList(signals []shared.SignalEntry) []SignalItem {
	items := make([]SignalItem, 0, len(signals))
	for idx := range signals {
		signal := &signals[idx]
		items = append(items, SignalItem{
			SignalType: signal.SignalType,
			Label:      signal.Label(),
			Price:      fmt.Sprintf("%.2f", signal.Price),
			Time:       time.Unix(signal.Time, 0).Format("15:04:05"),
		})
	}

	return items
}

// MetricsPanel represents formatted performance metrics.
type MetricsPanel struct {
	TotalTrades string
	WinRate     string
	TotalPNL    string
	PNLPositive bool
	ROI         string
	ROIPositive bool
}

// FormatMetrics formats the provided metrics for panel presentation.
func FormatMetrics(metrics shared.Metrics) MetricsPanel {
	return MetricsPanel{
		TotalTrades: fmt.Sprintf("%d", metrics.TotalTrades),
		WinRate:     fmt.Sprintf("%.1f%%", metrics.WinRate),
		TotalPNL:    fmt.Sprintf("$%.2f", metrics.TotalPNL),
		PNLPositive: metrics.TotalPNL >= 0,
		ROI:         fmt.Sprintf("%.2f%%", metrics.ROI),
		ROIPositive: metrics.ROI >= 0,
	}
}
