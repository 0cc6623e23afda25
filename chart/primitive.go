package chart

// Line represents a stroked line segment in device pixels.
type Line struct {
	X1    float64
	Y1    float64
	X2    float64
	Y2    float64
	Width float64
	Color string
	// Dash is the stroke dash pattern, nil for a solid stroke.
	Dash []float64
}

// Rect represents a filled rectangle in device pixels.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
	Fill   string
}

// Label represents a text caption with a background plate, in device
// pixels.
type Label struct {
	X      float64
	Y      float64
	Text   string
	Color  string
	FontPx float64
	Bold   bool

	PlateX      float64
	PlateY      float64
	PlateWidth  float64
	PlateHeight float64
	PlateFill   string
	// PlateStroke outlines the plate, empty for no outline.
	PlateStroke      string
	PlateStrokeWidth float64
}

// Frame represents the full set of drawing primitives for one render
// pass. The host draws rects first, then lines, then labels, so captions
// stay legible over filled regions.
type Frame struct {
	Rects  []Rect
	Lines  []Line
	Labels []Label
}

// Empty checks whether the frame holds no primitives.
func (f *Frame) Empty() bool {
	return len(f.Rects) == 0 && len(f.Lines) == 0 && len(f.Labels) == 0
}

// Merge appends all primitives of the provided frame.
func (f *Frame) Merge(other *Frame) {
	f.Rects = append(f.Rects, other.Rects...)
	f.Lines = append(f.Lines, other.Lines...)
	f.Labels = append(f.Labels, other.Labels...)
}
