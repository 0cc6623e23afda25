package shared

import (
	"fmt"

	"github.com/tidwall/gjson"
)

const (
	// UnrankedPriority marks a fractal with no priority ranking.
	UnrankedPriority = int64(-1)
)

// Action represents a mutation action on an entity collection.
type Action int

const (
	ActionAdd Action = iota
	ActionUpdate
	ActionUpdateTakeProfit
	ActionRemove
	ActionUnknown
)

// String stringifies the provided action.
func (a Action) String() string {
	switch a {
	case ActionAdd:
		return "add"
	case ActionUpdate:
		return "update"
	case ActionUpdateTakeProfit:
		return "update_tp"
	case ActionRemove:
		return "remove"
	default:
		return "unknown"
	}
}

// ParseAction parses an action from its wire representation.
func ParseAction(action string) Action {
	switch action {
	case "add":
		return ActionAdd
	case "update":
		return ActionUpdate
	case "update_tp":
		return ActionUpdateTakeProfit
	case "remove":
		return ActionRemove
	default:
		return ActionUnknown
	}
}

// Message represents a decoded inbound stream message.
type Message interface {
	message()
}

// CandleMessage represents a candle update message.
type CandleMessage struct {
	Candle Candlestick
}

// FractalMessage represents a fractal marker message.
type FractalMessage struct {
	Time     int64
	Kind     FractalKind
	Priority int64
}

// ZoneMessage represents a zone collection delta message.
type ZoneMessage struct {
	Action Action
	Zone   Zone
}

// SignalMessage represents a trade signal message.
type SignalMessage struct {
	Signal SignalEntry
}

// IndicatorMessage represents an indicator update message. Indicator
// updates are decoded but not displayed.
type IndicatorMessage struct{}

// InteractionMessage represents a zone interaction message.
type InteractionMessage struct {
	Time int64
	Kind ZoneKind
}

// MetricsMessage represents a performance metrics message.
type MetricsMessage struct {
	Metrics Metrics
}

// TradeLineMessage represents a trade line collection delta message.
type TradeLineMessage struct {
	Action Action
	Line   TradeLine
}

// TrimMessage represents a retention window trim command.
type TrimMessage struct {
	WindowStart int64
	WindowEnd   int64
}

func (m *CandleMessage) message()      {}
func (m *FractalMessage) message()     {}
func (m *ZoneMessage) message()        {}
func (m *SignalMessage) message()      {}
func (m *IndicatorMessage) message()   {}
func (m *InteractionMessage) message() {}
func (m *MetricsMessage) message()     {}
func (m *TradeLineMessage) message()   {}
func (m *TrimMessage) message()        {}

// ParseMessage decodes an inbound stream message from the provided json
// payload. Messages of unknown type decode to nil without error for
// forward compatibility.
func ParseMessage(raw []byte) (Message, error) {
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("malformed message payload: %s", string(raw))
	}

	msg := gjson.ParseBytes(raw)
	data := msg.Get("data")

	switch msg.Get("type").String() {
	case "candle":
		return &CandleMessage{
			Candle: Candlestick{
				Time:   data.Get("time").Int(),
				Open:   data.Get("open").Float(),
				High:   data.Get("high").Float(),
				Low:    data.Get("low").Float(),
				Close:  data.Get("close").Float(),
				Volume: data.Get("volume").Float(),
			},
		}, nil
	case "fractal":
		priority := UnrankedPriority
		if data.Get("priority").Exists() {
			priority = data.Get("priority").Int()
		}

		return &FractalMessage{
			Time:     data.Get("time").Int(),
			Kind:     ParseFractalKind(data.Get("fractal_type").String()),
			Priority: priority,
		}, nil
	case "zone":
		return &ZoneMessage{
			Action: ParseAction(msg.Get("action").String()),
			Zone: Zone{
				ID:           data.Get("id").String(),
				Kind:         ParseZoneKind(data.Get("zone_type").String()),
				Low:          data.Get("low").Float(),
				High:         data.Get("high").Float(),
				StartTime:    data.Get("start_time").Int(),
				EndTime:      data.Get("end_time").Int(),
				Active:       data.Get("active").Bool(),
				Interactions: uint32(data.Get("interactions").Uint()),
				Score:        data.Get("score").Float(),
				Flipped:      data.Get("flipped").Bool(),
			},
		}, nil
	case "signal":
		return &SignalMessage{
			Signal: SignalEntry{
				Time:       data.Get("time").Int(),
				SignalType: data.Get("signal_type").String(),
				OrderID:    data.Get("order_id").Int(),
				Price:      data.Get("price").Float(),
			},
		}, nil
	case "indicator":
		return &IndicatorMessage{}, nil
	case "interaction":
		return &InteractionMessage{
			Time: data.Get("time").Int(),
			Kind: ParseZoneKind(data.Get("zone_type").String()),
		}, nil
	case "metrics":
		return &MetricsMessage{
			Metrics: Metrics{
				TotalTrades: data.Get("total_trades").Int(),
				WinRate:     data.Get("win_rate").Float(),
				TotalPNL:    data.Get("total_pnl").Float(),
				ROI:         data.Get("roi").Float(),
			},
		}, nil
	case "trade_lines":
		return &TradeLineMessage{
			Action: ParseAction(msg.Get("action").String()),
			Line: TradeLine{
				OrderID:    data.Get("order_id").Int(),
				OrderType:  data.Get("order_type").String(),
				EntryPrice: data.Get("entry_price").Float(),
				StopLoss:   data.Get("stop_loss").Float(),
				TakeProfit: data.Get("take_profit").Float(),
			},
		}, nil
	case "trim_data":
		return &TrimMessage{
			WindowStart: data.Get("window_start_time").Int(),
			WindowEnd:   data.Get("window_end_time").Int(),
		}, nil
	default:
		// Unknown message types are ignored.
		return nil, nil
	}
}
