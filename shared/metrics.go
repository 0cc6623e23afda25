package shared

// Metrics represents performance metrics reported by the upstream engine.
type Metrics struct {
	TotalTrades int64
	WinRate     float64
	TotalPNL    float64
	ROI         float64
}
