package server

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/sasha-s/go-deadlock"
	"go.uber.org/zap"

	"arenacore/game"
	"arenacore/logger"
)

// 房间命令：在 Tick 线程中串行处理
type joinCmd struct {
	id   PlayerID
	name string
	conn Sender
}

type leaveCmd struct{ id PlayerID }

type nameCmd struct {
	id   PlayerID
	name string
}

type tuningCmd struct{ tuning game.Tuning }

// Room 房间世界：权威状态维护在 game.Simulation，单线程 Tick 推进
type Room struct {
	ID string

	mu      deadlock.Mutex // 保护 sim 与 members；Tick 与 HTTP 读取串行
	sim     *game.Simulation
	members map[PlayerID]*member

	inputMu deadlock.Mutex // 保护 inputs；由读泵写入
	inputs  map[PlayerID]game.Input

	cmds chan any

	sendMu   deadlock.RWMutex // send 持读锁；Stop 持写锁等待进行中的 send
	quit     chan struct{}
	stopOnce sync.Once
	stopped  bool

	tickInterval  time.Duration
	tickHz        int
	tickerStarted bool
	lastActive    time.Time // 最近一次有玩家或命令的 Tick
	idleTimeout   time.Duration
	onIdle        func(*Room)

	metrics *RoomMetrics
	log     *zap.SugaredLogger
}

// NewRoom 创建房间并生成怪物与药水
func NewRoom(id string, opts RoomOptions, seed int64) (*Room, error) {
	sim, err := game.New(game.Config{
		Tuning: opts.Tuning,
		Grid:   opts.Grid,
		Spawns: opts.Spawns,
		Rand:   rand.New(rand.NewSource(seed)),
	})
	if err != nil {
		return nil, fmt.Errorf("room %s: %w", id, err)
	}
	hz := opts.TickHz
	if hz <= 0 {
		hz = DefaultTickHz
	}
	return &Room{
		ID:           id,
		sim:          sim,
		members:      make(map[PlayerID]*member),
		inputs:       make(map[PlayerID]game.Input),
		cmds:         make(chan any, 256), // 足够缓冲，避免网络读阻塞影响 Tick
		tickInterval: time.Second / time.Duration(hz),
		tickHz:       hz,
		quit:         make(chan struct{}),
		lastActive:   time.Now(),
		metrics:      &RoomMetrics{},
		log:          logger.Named("room").With("room", id),
	}, nil
}

// Metrics 房间指标
func (r *Room) Metrics() *RoomMetrics { return r.metrics }

// RequestJoin 请求在下一次 Tick 中加入玩家（阻塞写入，保证不丢）
// 房间已停止时返回 false
func (r *Room) RequestJoin(id PlayerID, name string, conn Sender) bool {
	return r.send(joinCmd{id: id, name: sanitizeName(name), conn: conn})
}

// RequestLeave 请求在 Tick 线程中移除玩家，避免并发改动房间状态
func (r *Room) RequestLeave(id PlayerID) {
	r.send(leaveCmd{id: id})
}

// UpdateTuning 数值热更新，在下一次 Tick 生效
func (r *Room) UpdateTuning(t game.Tuning) {
	r.send(tuningCmd{tuning: t})
}

// SetName 改名（非阻塞，拥塞时丢弃）
func (r *Room) SetName(id PlayerID, name string) {
	select {
	case r.cmds <- nameCmd{id: id, name: sanitizeName(name)}:
	default:
		r.metrics.IncNamesDropped()
	}
}

// OnInput 覆盖玩家的输入槽，最后一次写入生效
func (r *Room) OnInput(id PlayerID, in game.Input) {
	r.inputMu.Lock()
	r.inputs[id] = in
	r.inputMu.Unlock()
	r.metrics.IncAccepted()
}

func (r *Room) send(cmd any) bool {
	r.sendMu.RLock()
	defer r.sendMu.RUnlock()
	select {
	case <-r.quit:
		return false
	default:
	}
	select {
	case r.cmds <- cmd:
		return true
	case <-r.quit:
		return false
	}
}

// Advance 推进一帧：命令 → 输入 → 模拟 → 广播
func (r *Room) Advance(dt time.Duration) {
	start := time.Now()
	r.mu.Lock()
	if r.processCommands() > 0 || len(r.members) > 0 {
		r.lastActive = start
	}
	r.applyInputs()
	r.sim.Step(dt)
	r.broadcastUpdates()
	r.mu.Unlock()
	r.metrics.AddTick(time.Since(start).Nanoseconds())
}

// processCommands 非阻塞 drain 命令队列，返回处理的命令数
func (r *Room) processCommands() int {
	n := 0
	for {
		select {
		case cmd := <-r.cmds:
			n++
			switch c := cmd.(type) {
			case joinCmd:
				r.handleJoin(c)
			case leaveCmd:
				r.handleLeave(c.id)
			case nameCmd:
				r.sim.SetName(string(c.id), c.name)
			case tuningCmd:
				r.sim.SetTuning(c.tuning)
				r.log.Infow("tuning applied", "tuning", c.tuning)
			}
		default:
			return n
		}
	}
}

func (r *Room) handleJoin(c joinCmd) {
	if _, ok := r.members[c.id]; ok {
		return
	}
	r.members[c.id] = &member{ID: c.id, Conn: c.conn}
	r.sim.AddPlayer(string(c.id), c.name)
	r.metrics.IncJoins()
	r.log.Infow("player joined", "player", c.id, "name", c.name, "codec", c.conn.Codec().Name())

	snap := r.sim.Snapshot()
	r.sendTo(c.conn, MsgWelcome, Welcome{ID: string(c.id), Room: r.ID, TickHz: r.tickHz})
	r.sendTo(c.conn, MsgCurrentPlayers, snap.Players)
	r.sendTo(c.conn, MsgCurrentMonsters, snap.Monsters)
	r.sendTo(c.conn, MsgCurrentPotions, snap.Potions)

	rec, _ := r.sim.PlayerRecord(string(c.id))
	frames := newFrameCache()
	for id, m := range r.members {
		if id == c.id {
			continue
		}
		r.deliver(m.Conn, frames, MsgNewPlayer, rec)
	}
}

func (r *Room) handleLeave(id PlayerID) {
	m, ok := r.members[id]
	if !ok {
		return
	}
	delete(r.members, id)
	m.Conn.Close()
	r.sim.RemovePlayer(string(id))
	r.inputMu.Lock()
	delete(r.inputs, id)
	r.inputMu.Unlock()
	r.metrics.IncLeaves()
	r.log.Infow("player left", "player", id)

	frames := newFrameCache()
	for _, other := range r.members {
		r.deliver(other.Conn, frames, MsgDisconnection, Disconnection{ID: string(id)})
	}
}

// applyInputs 将输入槽复制到玩家
func (r *Room) applyInputs() {
	r.inputMu.Lock()
	defer r.inputMu.Unlock()
	for id, in := range r.inputs {
		r.sim.SetInput(string(id), in)
	}
}

// broadcastUpdates 每种消息按编码只序列化一次，再分发给所有连接
func (r *Room) broadcastUpdates() {
	if len(r.members) == 0 {
		return
	}
	snap := r.sim.Snapshot()
	updates := []struct {
		t       string
		payload any
	}{
		{MsgPlayerUpdates, snap.Players},
		{MsgMonsterUpdates, snap.Monsters},
		{MsgPotionUpdates, snap.Potions},
	}
	for _, u := range updates {
		frames := newFrameCache()
		for _, m := range r.members {
			r.deliver(m.Conn, frames, u.t, u.payload)
		}
	}
}

func (r *Room) sendTo(conn Sender, t string, payload any) {
	r.deliver(conn, newFrameCache(), t, payload)
}

func (r *Room) deliver(conn Sender, frames frameCache, t string, payload any) {
	b, err := frames.get(conn.Codec(), t, payload)
	if err != nil {
		r.metrics.IncEncodeErrors()
		r.log.Warnw("encode failed", "type", t, "err", err)
		return
	}
	if !conn.Enqueue(b) {
		r.metrics.IncFramesDropped()
	}
}

// frameCache 同一条消息按编码缓存序列化结果
type frameCache map[string][]byte

func newFrameCache() frameCache { return make(frameCache, 2) }

func (f frameCache) get(c Codec, t string, payload any) ([]byte, error) {
	if b, ok := f[c.Name()]; ok {
		return b, nil
	}
	b, err := c.Encode(t, payload)
	if err != nil {
		return nil, err
	}
	f[c.Name()] = b
	return b, nil
}

// RoomStats 供 HTTP 输出的房间概况
type RoomStats struct {
	Tick     uint64
	Players  int
	Monsters int
	Potions  int
}

// Stats 读取房间概况（与 Tick 串行）
func (r *Room) Stats() RoomStats {
	r.mu.Lock()
	defer r.mu.Unlock()
	st := r.sim.Store()
	return RoomStats{
		Tick:     r.sim.Tick(),
		Players:  len(st.Players),
		Monsters: len(st.Monsters),
		Potions:  len(st.Potions),
	}
}

// Tuning 当前生效的数值
func (r *Room) Tuning() game.Tuning {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sim.Tuning()
}

// Snapshot 当前快照（与 Tick 串行）
func (r *Room) Snapshot() game.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sim.Snapshot()
}
