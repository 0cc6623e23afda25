package shared

// ZoneKind represents the kind of a supply or demand zone.
type ZoneKind int

const (
	Support ZoneKind = iota
	Resistance
)

// String stringifies the provided zone kind.
func (k ZoneKind) String() string {
	switch k {
	case Support:
		return "support"
	case Resistance:
		return "resistance"
	default:
		return "unknown"
	}
}

// ParseZoneKind parses a zone kind from its wire representation.
func ParseZoneKind(kind string) ZoneKind {
	switch kind {
	case "resistance":
		return Resistance
	default:
		return Support
	}
}

// Zone represents a supply or demand price zone tracked on the chart.
type Zone struct {
	// ID uniquely identifies the zone.
	ID string
	// Kind is the kind of the zone.
	Kind ZoneKind
	// Low and High bound the price band of the zone.
	Low  float64
	High float64
	// StartTime is the time the zone formed.
	StartTime int64
	// EndTime is the time the zone was deactivated, zero while the zone
	// is active.
	EndTime int64
	// Active indicates whether the zone is still being tracked forward.
	Active bool
	// Interactions counts price interactions with the zone.
	Interactions uint32
	// Score is the strength score of the zone.
	Score float64
	// Flipped indicates the zone changed kind after being breached.
	Flipped bool
}

// HasEndTime indicates whether the zone has a recorded end time.
func (z *Zone) HasEndTime() bool {
	return z.EndTime != 0
}
