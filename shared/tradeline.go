package shared

// TradeLine represents the horizontal stop loss and take profit guides of
// an open trade.
type TradeLine struct {
	// OrderID uniquely identifies the trade.
	OrderID int64
	// OrderType is the direction of the trade.
	OrderType string
	// EntryPrice is the fill price of the trade.
	EntryPrice float64
	// StopLoss is the stop loss price, fixed for the life of the trade.
	StopLoss float64
	// TakeProfit is the take profit price, adjustable while the trade is
	// open.
	TakeProfit float64
}
