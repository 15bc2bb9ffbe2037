package server

import (
	"sync/atomic"
)

// RoomMetrics 记录房间运行期的关键指标（用于监控与调试）
type RoomMetrics struct {
	TickCount      int64 // 统计的 Tick 次数
	Joins          int64 // 加入的玩家数
	Leaves         int64 // 离开的玩家数
	InputsAccepted int64 // 写入输入槽的次数
	InputsInvalid  int64 // 无法解析、按全 false 处理的输入数
	NamesDropped   int64 // 因命令通道满被丢弃的改名
	FramesDropped  int64 // 因发送队列满被丢弃的出站消息
	EncodeErrors   int64 // 序列化失败次数
	TotalTickNs    int64 // Tick 累计耗时（纳秒）
}

func (m *RoomMetrics) IncJoins()         { atomic.AddInt64(&m.Joins, 1) }
func (m *RoomMetrics) IncLeaves()        { atomic.AddInt64(&m.Leaves, 1) }
func (m *RoomMetrics) IncAccepted()      { atomic.AddInt64(&m.InputsAccepted, 1) }
func (m *RoomMetrics) IncInvalid()       { atomic.AddInt64(&m.InputsInvalid, 1) }
func (m *RoomMetrics) IncNamesDropped()  { atomic.AddInt64(&m.NamesDropped, 1) }
func (m *RoomMetrics) IncFramesDropped() { atomic.AddInt64(&m.FramesDropped, 1) }
func (m *RoomMetrics) IncEncodeErrors()  { atomic.AddInt64(&m.EncodeErrors, 1) }
func (m *RoomMetrics) AddTick(ns int64) {
	atomic.AddInt64(&m.TickCount, 1)
	atomic.AddInt64(&m.TotalTickNs, ns)
}

// Snapshot 返回只读副本，便于 HTTP 输出
func (m *RoomMetrics) Snapshot() map[string]any {
	tick := atomic.LoadInt64(&m.TickCount)
	total := atomic.LoadInt64(&m.TotalTickNs)
	var avgMs float64
	if tick > 0 {
		avgMs = float64(total) / float64(tick) / 1e6
	}
	return map[string]any{
		"tick_count":      tick,
		"joins":           atomic.LoadInt64(&m.Joins),
		"leaves":          atomic.LoadInt64(&m.Leaves),
		"inputs_accepted": atomic.LoadInt64(&m.InputsAccepted),
		"inputs_invalid":  atomic.LoadInt64(&m.InputsInvalid),
		"names_dropped":   atomic.LoadInt64(&m.NamesDropped),
		"frames_dropped":  atomic.LoadInt64(&m.FramesDropped),
		"encode_errors":   atomic.LoadInt64(&m.EncodeErrors),
		"avg_tick_ms":     avgMs,
	}
}
