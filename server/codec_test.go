package server

import (
	"errors"
	"testing"

	"github.com/gorilla/websocket"
)

func TestCodecByName(t *testing.T) {
	tests := []struct {
		name    string
		want    Codec
		wantErr bool
	}{
		{"", JSONCodec, false},
		{"json", JSONCodec, false},
		{"MsgPack", MsgpackCodec, false},
		{"xml", nil, true},
	}
	for _, tt := range tests {
		got, err := CodecByName(tt.name)
		if tt.wantErr {
			if !errors.Is(err, ErrUnknownCodec) {
				t.Errorf("CodecByName(%q) err = %v", tt.name, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("CodecByName(%q) = %v, %v", tt.name, got, err)
		}
	}
}

func TestEnvelopeShape(t *testing.T) {
	b, err := JSONCodec.Encode(MsgDisconnection, Disconnection{ID: "x"})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if string(b) != `{"t":"disconnection","p":{"id":"x"}}` {
		t.Errorf("json envelope = %s", b)
	}
	if JSONCodec.FrameType() != websocket.TextMessage || MsgpackCodec.FrameType() != websocket.BinaryMessage {
		t.Errorf("unexpected frame types")
	}
}

func TestCodecRoundTrip(t *testing.T) {
	for _, c := range []Codec{JSONCodec, MsgpackCodec} {
		b, err := c.Encode(MsgWelcome, Welcome{ID: "p1", Room: "r", TickHz: 60})
		if err != nil {
			t.Fatalf("%s encode: %v", c.Name(), err)
		}
		env, err := c.Decode(b)
		if err != nil || env.T != MsgWelcome {
			t.Fatalf("%s decode: %v %q", c.Name(), err, env.T)
		}
		var w Welcome
		if err := c.Unmarshal(env.P, &w); err != nil {
			t.Fatalf("%s unmarshal: %v", c.Name(), err)
		}
		if w.ID != "p1" || w.TickHz != 60 {
			t.Errorf("%s welcome = %+v", c.Name(), w)
		}
	}
}

func TestCodecRejectsEmpty(t *testing.T) {
	for _, c := range []Codec{JSONCodec, MsgpackCodec} {
		if _, err := c.Decode(nil); err == nil {
			t.Errorf("%s: empty frame accepted", c.Name())
		}
		if _, err := c.Encode("", nil); err == nil {
			t.Errorf("%s: empty type accepted", c.Name())
		}
		var im InputMessage
		if err := c.Unmarshal(nil, &im); err == nil {
			t.Errorf("%s: empty payload accepted", c.Name())
		}
	}
}
