package chart

import (
	"fmt"

	"github.com/dnldd/overlay/shared"
)

const (
	// tradeLineWidth is the guide line stroke width in media pixels.
	tradeLineWidth = 1.5
	// tradeLineFontPx is the caption font size in media pixels.
	tradeLineFontPx = 12
	// tradeLabelPadding is the caption plate padding in media pixels.
	tradeLabelPadding = 6
	// tradeLabelHeight is the caption plate height in media pixels.
	tradeLabelHeight = 16
	// tradeLabelInset is the caption inset from the right edge in media
	// pixels.
	tradeLabelInset = 10
	// tradeLabelPlateFill is the caption plate background.
	tradeLabelPlateFill = "rgba(19, 23, 34, 0.95)"

	// stopLossTag and takeProfitTag prefix guide captions.
	stopLossTag   = "SL"
	takeProfitTag = "TP"
)

// tradeLineDash is the guide line dash pattern.
var tradeLineDash = []float64{5, 5}

// TradeLinePrimitives projects the provided trade lines into drawing
// primitives for the current surface state. Each trade line contributes a
// stop loss and a take profit guide spanning the visible width, captioned
// with the owning order id. Guides whose price does not currently resolve
// to a coordinate are skipped individually.
func TradeLinePrimitives(lines []shared.TradeLine, surface shared.ChartSurface) Frame {
	var frame Frame
	if len(lines) == 0 {
		return frame
	}

	if _, ok := surface.VisibleLogicalRange(); !ok {
		return frame
	}

	for idx := range lines {
		line := &lines[idx]
		projectGuide(&frame, surface, line.StopLoss, shared.ResistanceColor, stopLossTag, line.OrderID)
		projectGuide(&frame, surface, line.TakeProfit, shared.SupportColor, takeProfitTag, line.OrderID)
	}

	return frame
}

// projectGuide appends the primitives for a single horizontal price guide
// to the provided frame.
func projectGuide(frame *Frame, surface shared.ChartSurface, price float64, color string, tag string, orderID int64) {
	y := surface.PriceToCoordinate(price)
	if !y.Resolved() {
		return
	}

	scope := surface.Scope()
	yPx := y.Value() * scope.VerticalPixelRatio
	width := scope.Width

	frame.Lines = append(frame.Lines, Line{
		X1:    0,
		Y1:    yPx,
		X2:    width,
		Y2:    yPx,
		Width: tradeLineWidth * scope.VerticalPixelRatio,
		Color: color,
		Dash:  tradeLineDash,
	})

	text := fmt.Sprintf("%s (ID:%d)", tag, orderID)
	fontPx := tradeLineFontPx * scope.VerticalPixelRatio
	textWidth := surface.MeasureText(text, fontPx, true)
	padding := tradeLabelPadding * scope.HorizontalPixelRatio
	textHeight := tradeLabelHeight * scope.VerticalPixelRatio

	labelX := width - textWidth - padding*2 - tradeLabelInset*scope.HorizontalPixelRatio
	labelY := yPx - textHeight/2

	frame.Labels = append(frame.Labels, Label{
		X:      labelX + padding,
		Y:      labelY + textHeight/2,
		Text:   text,
		Color:  color,
		FontPx: fontPx,
		Bold:   true,

		PlateX:           labelX,
		PlateY:           labelY,
		PlateWidth:       textWidth + padding*2,
		PlateHeight:      textHeight,
		PlateFill:        tradeLabelPlateFill,
		PlateStroke:      color,
		PlateStrokeWidth: 1,
	})
}
