package chart

import (
	"fmt"
	"math"
	"strings"

	"github.com/dnldd/overlay/shared"
)

const (
	// activeZoneAlpha and inactiveZoneAlpha set the fill opacity of a
	// zone by lifecycle state.
	activeZoneAlpha   = 0.2
	inactiveZoneAlpha = 0.08
	// activeZoneBorderWidth and inactiveZoneBorderWidth set the border
	// stroke width of a zone by lifecycle state.
	activeZoneBorderWidth   = 2
	inactiveZoneBorderWidth = 1
	// inactiveZoneStubWidth is the width drawn for an inactive zone with
	// no recorded end time, in media pixels.
	inactiveZoneStubWidth = 50
	// zoneFontPx is the caption font size in media pixels.
	zoneFontPx = 11
	// zoneLabelPadding is the caption plate padding in media pixels.
	zoneLabelPadding = 8
	// zoneLabelHeight is the caption plate height in media pixels.
	zoneLabelHeight = 16
	// zoneLabelPlateFill is the caption plate background.
	zoneLabelPlateFill = "rgba(19, 23, 34, 0.9)"
)

// inactiveZoneDash is the border dash pattern for inactive zones.
var inactiveZoneDash = []float64{5, 5}

// zoneColor returns the base color for the provided zone kind.
func zoneColor(kind shared.ZoneKind) string {
	if kind == shared.Resistance {
		return shared.ResistanceColor
	}

	return shared.SupportColor
}

// fillColor returns the provided hex color with the provided opacity
// appended as an alpha channel.
func fillColor(color string, alpha float64) string {
	return fmt.Sprintf("%s%02x", color, int(math.Round(alpha*255)))
}

// zoneRightEdge resolves the right edge of an active zone in media
// coordinates. The latest known time takes precedence, then the right
// bound of the visible logical range, then the edge of the drawable area.
func zoneRightEdge(latestTime int64, surface shared.ChartSurface, scope shared.BitmapScope) shared.Coord {
	if latestTime != 0 {
		x := surface.TimeToCoordinate(latestTime)
		if x.Resolved() {
			return x
		}
	}

	visible, ok := surface.VisibleLogicalRange()
	if ok {
		x := surface.LogicalToCoordinate(visible.To)
		if x.Resolved() {
			return x
		}
	}

	return shared.ResolvedCoord(scope.Width / scope.HorizontalPixelRatio)
}

// ZonePrimitives projects the provided zones into drawing primitives for
// the current surface state. Active zones extend to the latest known time
// and carry a caption; inactive zones render dimmed with dashed borders.
// Zones that do not resolve to coordinates or fall entirely outside the
// bitmap are skipped for the frame.
func ZonePrimitives(zones []shared.Zone, latestTime int64, surface shared.ChartSurface) Frame {
	var frame Frame
	if len(zones) == 0 {
		return frame
	}

	scope := surface.Scope()

	for idx := range zones {
		zone := &zones[idx]

		yHigh := surface.PriceToCoordinate(zone.High)
		yLow := surface.PriceToCoordinate(zone.Low)
		if !yHigh.Resolved() || !yLow.Resolved() {
			continue
		}

		xStart := surface.TimeToCoordinate(zone.StartTime)
		if !xStart.Resolved() {
			continue
		}

		var xEnd shared.Coord
		switch {
		case zone.Active:
			xEnd = zoneRightEdge(latestTime, surface, scope)
		case zone.HasEndTime():
			xEnd = surface.TimeToCoordinate(zone.EndTime)
		default:
			// A just closed zone with no end time renders as a
			// minimal stub so it remains visible.
			xEnd = shared.ResolvedCoord(xStart.Value() + inactiveZoneStubWidth)
		}
		if !xEnd.Resolved() {
			continue
		}

		xStartPx := xStart.Value() * scope.HorizontalPixelRatio
		xEndPx := xEnd.Value() * scope.HorizontalPixelRatio
		if xEndPx < 0 || xStartPx > scope.Width {
			// Entirely outside the drawable area this frame.
			continue
		}

		yTop := yHigh.Value() * scope.VerticalPixelRatio
		yBottom := yLow.Value() * scope.VerticalPixelRatio
		height := yBottom - yTop
		width := xEndPx - xStartPx

		color := zoneColor(zone.Kind)
		alpha := inactiveZoneAlpha
		borderWidth := float64(inactiveZoneBorderWidth)
		var dash []float64 = inactiveZoneDash
		if zone.Active {
			alpha = activeZoneAlpha
			borderWidth = activeZoneBorderWidth
			dash = nil
		}

		frame.Rects = append(frame.Rects, Rect{
			X:      xStartPx,
			Y:      yTop,
			Width:  width,
			Height: height,
			Fill:   fillColor(color, alpha),
		})

		frame.Lines = append(frame.Lines,
			Line{
				X1:    xStartPx,
				Y1:    yTop,
				X2:    xEndPx,
				Y2:    yTop,
				Width: borderWidth,
				Color: color,
				Dash:  dash,
			},
			Line{
				X1:    xStartPx,
				Y1:    yBottom,
				X2:    xEndPx,
				Y2:    yBottom,
				Width: borderWidth,
				Color: color,
				Dash:  dash,
			},
		)

		if zone.Active {
			frame.Labels = append(frame.Labels, zoneLabel(zone, xEndPx, yTop, height, color, surface, scope))
		}
	}

	return frame
}

// ZoneCaption formats the caption of an active zone.
func ZoneCaption(zone *shared.Zone) string {
	return fmt.Sprintf("%s (%d) [%.2f]", strings.ToUpper(zone.Kind.String()), zone.Interactions, zone.Score)
}

// zoneLabel builds the caption label of an active zone, clamped to the
// surface bounds.
func zoneLabel(zone *shared.Zone, xEndPx float64, yTop float64, height float64, color string, surface shared.ChartSurface, scope shared.BitmapScope) Label {
	text := ZoneCaption(zone)
	fontPx := zoneFontPx * scope.VerticalPixelRatio
	textWidth := surface.MeasureText(text, fontPx, false)
	padding := zoneLabelPadding * scope.HorizontalPixelRatio

	labelX := math.Min(xEndPx-textWidth-padding*2, scope.Width-textWidth-padding*2)
	labelY := yTop + height/2 - (zoneLabelHeight/2)*scope.VerticalPixelRatio

	return Label{
		X:      labelX + padding/2,
		Y:      labelY + (zoneLabelHeight*0.75)*scope.VerticalPixelRatio,
		Text:   text,
		Color:  color,
		FontPx: fontPx,

		PlateX:      labelX,
		PlateY:      labelY,
		PlateWidth:  textWidth + padding,
		PlateHeight: zoneLabelHeight * scope.VerticalPixelRatio,
		PlateFill:   zoneLabelPlateFill,
	}
}
