package painter

import (
	"encoding/json"
	"errors"
	"image/color"
)

const (
	opReset = iota + 1
	opClear
	opCircle
	opLine
	opStreak
	opGlow
	opText
)

// ErrUnknownOP is returned for an op code or payload type with no handler.
var ErrUnknownOP = errors.New("unknown operation")

// Message wraps one draw op for JSON as {"OP": code, "Payload": {...}}.
type Message struct {
	Payload interface{}
}

// UnmarshalJSON implements json.Unmarshaler.
func (m *Message) UnmarshalJSON(raw []byte) error {
	v := struct {
		OP      uint
		Payload json.RawMessage
	}{}
	err := json.Unmarshal(raw, &v)
	if err != nil {
		return err
	}
	switch v.OP {
	case opReset:
		payload := ResetOP{}
		err = json.Unmarshal(v.Payload, &payload)
		m.Payload = payload
	case opClear:
		m.Payload = ClearOP{}
	case opCircle:
		payload := CircleOP{}
		err = json.Unmarshal(v.Payload, &payload)
		m.Payload = payload
	case opLine:
		payload := LineOP{}
		err = json.Unmarshal(v.Payload, &payload)
		m.Payload = payload
	case opStreak:
		payload := StreakOP{}
		err = json.Unmarshal(v.Payload, &payload)
		m.Payload = payload
	case opGlow:
		payload := GlowOP{}
		err = json.Unmarshal(v.Payload, &payload)
		m.Payload = payload
	case opText:
		payload := TextOP{}
		err = json.Unmarshal(v.Payload, &payload)
		m.Payload = payload
	default:
		return ErrUnknownOP
	}
	return err
}

// MarshalJSON implements json.Marshaler.
func (m Message) MarshalJSON() ([]byte, error) {
	v := struct {
		OP      uint
		Payload interface{}
	}{
		Payload: m.Payload,
	}
	switch m.Payload.(type) {
	case ResetOP:
		v.OP = opReset
	case ClearOP:
		v.OP = opClear
	case CircleOP:
		v.OP = opCircle
	case LineOP:
		v.OP = opLine
	case StreakOP:
		v.OP = opStreak
	case GlowOP:
		v.OP = opGlow
	case TextOP:
		v.OP = opText
	default:
		return nil, ErrUnknownOP
	}
	return json.Marshal(v)
}

// ResetOP resizes the target, sizes are logical pixels.
type ResetOP struct {
	Width, Height float64
	DPR           float64
}

// ClearOP wipes the target.
type ClearOP struct{}

type CircleOP struct {
	Color color.NRGBA
	X, Y  float64
	R     float64
}

type LineOP struct {
	Color  color.NRGBA
	Width  float64
	X1, Y1 float64
	X2, Y2 float64
}

type StopOP struct {
	Offset float64
	Color  color.NRGBA
}

type StreakOP struct {
	Width  float64
	X1, Y1 float64
	X2, Y2 float64
	Stops  []StopOP
}

type GlowOP struct {
	X, Y         float64
	R            float64
	Inner, Outer color.NRGBA
}

type TextOP struct {
	Color color.NRGBA
	Size  float64
	X, Y  float64
	Text  string
}
