package shared

// Sentiment represents the candlestick sentiment.
type Sentiment int

const (
	Neutral Sentiment = iota
	Bullish
	Bearish
)

// Candlestick represents a unit candlestick for a market.
type Candlestick struct {
	Time   int64
	Open   float64
	Low    float64
	High   float64
	Close  float64
	Volume float64
}

// FetchSentiment returns the provided candlestick's sentiment.
func (c *Candlestick) FetchSentiment() Sentiment {
	sentiment := c.Close - c.Open
	switch {
	case sentiment < 0:
		return Bearish
	case sentiment > 0:
		return Bullish
	default:
		return Neutral
	}
}

// VolumeBar represents a unit volume histogram bar for a market.
type VolumeBar struct {
	Time      int64
	Value     float64
	Sentiment Sentiment
}

// NewVolumeBar initializes a volume bar from the provided candlestick.
func NewVolumeBar(candle *Candlestick) VolumeBar {
	return VolumeBar{
		Time:      candle.Time,
		Value:     candle.Volume,
		Sentiment: candle.FetchSentiment(),
	}
}
