package shared

import (
	"testing"

	"github.com/peterldowns/testy/assert"
)

func TestZoneKindString(t *testing.T) {
	tests := []struct {
		name string
		kind ZoneKind
		want string
	}{
		{
			"support zone",
			Support,
			"support",
		},
		{
			"resistance zone",
			Resistance,
			"resistance",
		},
		{
			"unknown zone kind",
			ZoneKind(999),
			"unknown",
		},
	}

	for _, test := range tests {
		str := test.kind.String()
		if str != test.want {
			t.Errorf("%s: expected %v, got %v", test.name, test.want, str)
		}
	}
}

func TestParseZoneKind(t *testing.T) {
	// Ensure zone kinds parse from their wire representations.
	assert.Equal(t, ParseZoneKind("support"), Support)
	assert.Equal(t, ParseZoneKind("resistance"), Resistance)

	// Ensure unexpected wire representations default to support.
	assert.Equal(t, ParseZoneKind(""), Support)
}

func TestZoneHasEndTime(t *testing.T) {
	// Ensure an active zone has no end time.
	zone := Zone{
		ID:        "1",
		Kind:      Support,
		Low:       10,
		High:      12,
		StartTime: 100,
		Active:    true,
	}
	assert.False(t, zone.HasEndTime())

	// Ensure a deactivated zone with a recorded end time reports it.
	zone.Active = false
	zone.EndTime = 500
	assert.True(t, zone.HasEndTime())
}
