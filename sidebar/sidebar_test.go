package sidebar

import (
	"testing"
	"time"

	"github.com/dnldd/overlay/shared"
	"github.com/google/go-cmp/cmp"
	"github.com/peterldowns/testy/assert"
)

func TestZoneList(t *testing.T) {
	zones := []shared.Zone{
		{ID: "a", Kind: shared.Support, Low: 10, High: 20, Score: 0.5, Active: false},
		{ID: "b", Kind: shared.Resistance, Low: 60, High: 70, Score: 1.2, Active: true, Interactions: 3},
		{ID: "c", Kind: shared.Support, Low: 30, High: 40, Score: 2.5, Active: false},
		{ID: "d", Kind: shared.Support, Low: 80, High: 90, Score: 0.8, Active: true},
	}

	items := ZoneList(zones)
	assert.Equal(t, len(items), 4)

	// Ensure active zones lead the list, each group ordered by descending
	// score.
	scores := make([]string, 0, len(items))
	for idx := range items {
		scores = append(scores, items[idx].Score)
	}

	want := []string{"Score: 1.20", "Score: 0.80", "Score: 2.50", "Score: 0.50"}
	if !cmp.Equal(scores, want) {
		t.Errorf("mismatching zone list order: %v", cmp.Diff(scores, want))
	}

	// Ensure zone entries format their price band and interaction count.
	assert.Equal(t, items[0].Kind, "resistance")
	assert.Equal(t, items[0].PriceBand, "60.00 - 70.00")
	assert.Equal(t, items[0].Interactions, "Interactions: 3")
	assert.True(t, items[0].Active)
	assert.False(t, items[2].Active)

	// Ensure an empty zone set formats to an empty list.
	assert.Equal(t, len(ZoneList(nil)), 0)
}

func TestSignalList(t *testing.T) {
	signals := []shared.SignalEntry{
		{Time: 120, SignalType: "SHORT", OrderID: 16, Price: 43},
		{Time: 60, SignalType: "LONG", OrderID: 15, Price: 42.5},
	}

	items := SignalList(signals)
	assert.Equal(t, len(items), 2)

	// Ensure signal entries keep their newest first order and format
	// their label, price and time of day.
	assert.Equal(t, items[0].SignalType, "SHORT")
	assert.Equal(t, items[0].Label, "SHORT (ID:16)")
	assert.Equal(t, items[0].Price, "43.00")
	assert.Equal(t, items[1].Label, "LONG (ID:15)")
	assert.Equal(t, items[1].Time, time.Unix(60, 0).Format("15:04:05"))
}

func TestFormatMetrics(t *testing.T) {
	// Ensure positive metrics format with their positivity flags set.
	panel := FormatMetrics(shared.Metrics{
		TotalTrades: 12,
		WinRate:     58.33,
		TotalPNL:    1250.5,
		ROI:         12.5,
	})

	assert.Equal(t, panel.TotalTrades, "12")
	assert.Equal(t, panel.WinRate, "58.3%")
	assert.Equal(t, panel.TotalPNL, "$1250.50")
	assert.True(t, panel.PNLPositive)
	assert.Equal(t, panel.ROI, "12.50%")
	assert.True(t, panel.ROIPositive)

	// Ensure losses clear the positivity flags.
	panel = FormatMetrics(shared.Metrics{
		TotalTrades: 3,
		WinRate:     33.3,
		TotalPNL:    -420.25,
		ROI:         -4.2,
	})

	assert.Equal(t, panel.TotalPNL, "$-420.25")
	assert.False(t, panel.PNLPositive)
	assert.Equal(t, panel.ROI, "-4.20%")
	assert.False(t, panel.ROIPositive)
}
