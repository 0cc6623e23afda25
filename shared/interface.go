package shared

// LogicalRange represents the visible logical bar range of the chart.
type LogicalRange struct {
	From float64
	To   float64
}

// BitmapScope represents the dimensions and pixel ratios of the drawable
// bitmap surface.
type BitmapScope struct {
	// Width and Height are the bitmap dimensions in device pixels.
	Width  float64
	Height float64
	// HorizontalPixelRatio and VerticalPixelRatio convert media
	// coordinates to device pixels.
	HorizontalPixelRatio float64
	VerticalPixelRatio   float64
}

// ChartSurface defines the requirements for the hosting chart surface.
type ChartSurface interface {
	// PriceToCoordinate projects the provided price to a y coordinate in
	// media space.
	PriceToCoordinate(price float64) Coord
	// TimeToCoordinate projects the provided time to an x coordinate in
	// media space.
	TimeToCoordinate(time int64) Coord
	// LogicalToCoordinate projects the provided logical bar index to an
	// x coordinate in media space.
	LogicalToCoordinate(logical float64) Coord
	// VisibleLogicalRange returns the visible logical range of the chart
	// if one is available.
	VisibleLogicalRange() (LogicalRange, bool)
	// Scope returns the current bitmap dimensions and pixel ratios.
	Scope() BitmapScope
	// MeasureText returns the rendered width of the provided text in
	// device pixels at the provided font size.
	MeasureText(text string, fontPx float64, bold bool) float64
}
