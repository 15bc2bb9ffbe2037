package server

import "time"

const (
	// DefaultTickHz 世界推进频率（60 TPS）
	DefaultTickHz = 60
	// MaxStep 单帧最大步长，避免卡顿后实体穿墙
	MaxStep = 250 * time.Millisecond
)

// StartTicker 启动房间的 Tick 循环（单线程推进世界）
func (r *Room) StartTicker() {
	if r.tickerStarted {
		return
	}
	r.tickerStarted = true
	go func() {
		ticker := time.NewTicker(r.tickInterval)
		defer ticker.Stop()
		last := time.Now()
		for {
			select {
			case <-r.quit:
				return
			case now := <-ticker.C:
				// 核心循环：处理命令与输入 → 更新世界 → 广播结果
				r.Advance(clampStep(now.Sub(last)))
				last = now
				if r.idle(now) {
					r.onIdle(r)
					return
				}
			}
		}
	}()
}

// idle 房间无人且超过空闲时长
func (r *Room) idle(now time.Time) bool {
	if r.onIdle == nil || r.idleTimeout <= 0 {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.members) == 0 && now.Sub(r.lastActive) >= r.idleTimeout
}

// Stop 停止 Tick 并关闭所有连接，包括尚未处理的加入请求
func (r *Room) Stop() {
	r.stopOnce.Do(func() { close(r.quit) })
	// 等待进行中的 send 结束；之后的 send 都会看到 quit 已关闭
	r.sendMu.Lock()
	r.sendMu.Unlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	for id, m := range r.members {
		m.Conn.Close()
		delete(r.members, id)
	}
drain:
	for {
		select {
		case cmd := <-r.cmds:
			if c, ok := cmd.(joinCmd); ok {
				c.conn.Close()
			}
		default:
			break drain
		}
	}
	if !r.stopped {
		r.stopped = true
		r.log.Infow("room stopped", "tick", r.sim.Tick())
	}
}

func clampStep(dt time.Duration) time.Duration {
	if dt < 0 {
		return 0
	}
	if dt > MaxStep {
		return MaxStep
	}
	return dt
}
