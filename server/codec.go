package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"
)

// ErrUnknownCodec 不支持的编码
var ErrUnknownCodec = errors.New("unknown codec")

// Envelope 解码后的信封：类型 + 原始载荷
type Envelope struct {
	T string
	P []byte
}

// Codec 信封编解码：{"t": 类型, "p": 载荷}
type Codec interface {
	Name() string
	FrameType() int
	Encode(t string, payload any) ([]byte, error)
	Decode(b []byte) (Envelope, error)
	Unmarshal(raw []byte, v any) error
}

var (
	JSONCodec    Codec = jsonCodec{}
	MsgpackCodec Codec = msgpackCodec{}
)

// CodecByName 根据查询参数选择编码，空字符串为 JSON
func CodecByName(name string) (Codec, error) {
	switch strings.ToLower(name) {
	case "", "json":
		return JSONCodec, nil
	case "msgpack":
		return MsgpackCodec, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, name)
}

type jsonEnvelope struct {
	T string          `json:"t"`
	P json.RawMessage `json:"p"`
}

type jsonCodec struct{}

func (jsonCodec) Name() string   { return "json" }
func (jsonCodec) FrameType() int { return websocket.TextMessage }

func (jsonCodec) Encode(t string, payload any) ([]byte, error) {
	if t == "" {
		return nil, errors.New("encode: empty message type")
	}
	pb, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", t, err)
	}
	return json.Marshal(jsonEnvelope{T: t, P: pb})
}

func (jsonCodec) Decode(b []byte) (Envelope, error) {
	if len(b) == 0 {
		return Envelope{}, errors.New("decode: empty frame")
	}
	var e jsonEnvelope
	if err := json.Unmarshal(b, &e); err != nil {
		return Envelope{}, fmt.Errorf("decode: %w", err)
	}
	return Envelope{T: e.T, P: e.P}, nil
}

func (jsonCodec) Unmarshal(raw []byte, v any) error {
	if len(raw) == 0 {
		return errors.New("decode: empty payload")
	}
	return json.Unmarshal(raw, v)
}

type msgpackEnvelopeOut struct {
	T string `msgpack:"t"`
	P any    `msgpack:"p"`
}

type msgpackEnvelopeIn struct {
	T string             `msgpack:"t"`
	P msgpack.RawMessage `msgpack:"p"`
}

type msgpackCodec struct{}

func (msgpackCodec) Name() string   { return "msgpack" }
func (msgpackCodec) FrameType() int { return websocket.BinaryMessage }

func (msgpackCodec) Encode(t string, payload any) ([]byte, error) {
	if t == "" {
		return nil, errors.New("encode: empty message type")
	}
	b, err := msgpack.Marshal(&msgpackEnvelopeOut{T: t, P: payload})
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", t, err)
	}
	return b, nil
}

func (msgpackCodec) Decode(b []byte) (Envelope, error) {
	if len(b) == 0 {
		return Envelope{}, errors.New("decode: empty frame")
	}
	var e msgpackEnvelopeIn
	if err := msgpack.Unmarshal(b, &e); err != nil {
		return Envelope{}, fmt.Errorf("decode: %w", err)
	}
	return Envelope{T: e.T, P: e.P}, nil
}

func (msgpackCodec) Unmarshal(raw []byte, v any) error {
	if len(raw) == 0 {
		return errors.New("decode: empty payload")
	}
	return msgpack.Unmarshal(raw, v)
}
