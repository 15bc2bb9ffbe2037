package server

import (
	"encoding/json"
	"testing"
	"time"

	"arenacore/assets"
	"arenacore/game"
)

const tickDT = 16 * time.Millisecond

// fakeConn 记录所有入队的帧；只在测试 goroutine 中使用
type fakeConn struct {
	codec  Codec
	frames [][]byte
	full   bool
	closed bool
}

func newFakeConn(c Codec) *fakeConn { return &fakeConn{codec: c} }

func (f *fakeConn) Codec() Codec { return f.codec }

func (f *fakeConn) Enqueue(b []byte) bool {
	if f.full || f.closed {
		return false
	}
	f.frames = append(f.frames, b)
	return true
}

func (f *fakeConn) Close() { f.closed = true }

// types 按顺序返回收到的消息类型
func (f *fakeConn) types(t *testing.T) []string {
	t.Helper()
	out := make([]string, 0, len(f.frames))
	for _, b := range f.frames {
		env, err := f.codec.Decode(b)
		if err != nil {
			t.Fatalf("decode frame: %v", err)
		}
		out = append(out, env.T)
	}
	return out
}

// last 返回最后一条指定类型的载荷
func (f *fakeConn) last(t *testing.T, typ string, v any) bool {
	t.Helper()
	for i := len(f.frames) - 1; i >= 0; i-- {
		env, err := f.codec.Decode(f.frames[i])
		if err != nil {
			t.Fatalf("decode frame: %v", err)
		}
		if env.T != typ {
			continue
		}
		if err := f.codec.Unmarshal(env.P, v); err != nil {
			t.Fatalf("unmarshal %s: %v", typ, err)
		}
		return true
	}
	return false
}

func (f *fakeConn) reset() { f.frames = nil }

func testOptions(t *testing.T) RoomOptions {
	t.Helper()
	grid, err := assets.LoadGrid("")
	if err != nil {
		t.Fatalf("load grid: %v", err)
	}
	spawns, err := assets.LoadSpawns("")
	if err != nil {
		t.Fatalf("load spawns: %v", err)
	}
	return RoomOptions{
		Grid:        grid,
		Spawns:      spawns,
		Tuning:      game.DefaultTuning(),
		TickHz:      DefaultTickHz,
		Seed:        7,
		DefaultRoom: "room-1",
	}
}

// newTestRoom 不启动 Ticker，由测试调用 Advance 推进
func newTestRoom(t *testing.T) *Room {
	t.Helper()
	r, err := NewRoom("test", testOptions(t), 7)
	if err != nil {
		t.Fatalf("new room: %v", err)
	}
	return r
}

// newTestManager 注册一个不启动 Ticker 的房间
func newTestManager(t *testing.T) (*RoomManager, *Room) {
	t.Helper()
	m := NewRoomManager(testOptions(t))
	r := newTestRoom(t)
	m.rooms[r.ID] = r
	return m, r
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return b
}
