package server

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/sasha-s/go-deadlock"

	"arenacore/game"
	"arenacore/logger"
)

var (
	// ErrStopped 管理器已关闭
	ErrStopped = errors.New("room manager stopped")
	// ErrTooManyRooms 房间数已达上限
	ErrTooManyRooms = errors.New("too many rooms")
	// ErrInvalidRoomID 房间名不合法
	ErrInvalidRoomID = errors.New("invalid room id")
)

const (
	maxRoomIDLen    = 32
	defaultMaxRooms = 16
)

// RoomOptions 所有房间共享的静态数据
type RoomOptions struct {
	Grid        *game.Grid
	Spawns      game.SpawnTables
	Tuning      game.Tuning
	TickHz      int
	Seed        int64
	DefaultRoom string
	MaxRooms    int           // 同时存在的房间上限，<=0 使用默认值
	IdleTimeout time.Duration // 空房间保留时长，0 表示不回收；默认房间永不回收
}

// RoomManager 管理多个房间的生命周期
type RoomManager struct {
	mu      deadlock.RWMutex
	rooms   map[string]*Room
	opts    RoomOptions
	created int64
	stopped bool
}

// NewRoomManager 创建房间管理器
func NewRoomManager(opts RoomOptions) *RoomManager {
	if opts.DefaultRoom == "" {
		opts.DefaultRoom = "room-1"
	}
	if opts.MaxRooms <= 0 {
		opts.MaxRooms = defaultMaxRooms
	}
	return &RoomManager{rooms: make(map[string]*Room), opts: opts}
}

// ValidRoomID 房间名：1~32 个字母、数字、'-' 或 '_'
func ValidRoomID(id string) bool {
	if id == "" || len(id) > maxRoomIDLen {
		return false
	}
	for _, c := range id {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_':
		default:
			return false
		}
	}
	return true
}

// GetOrCreateRoom 获取或创建房间，并确保开始 Tick
func (m *RoomManager) GetOrCreateRoom(id string) (*Room, error) {
	if id == "" {
		id = m.opts.DefaultRoom
	}
	if !ValidRoomID(id) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRoomID, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stopped {
		return nil, ErrStopped
	}
	r, ok := m.rooms[id]
	if ok {
		return r, nil
	}
	if len(m.rooms) >= m.opts.MaxRooms {
		return nil, fmt.Errorf("%w (limit %d)", ErrTooManyRooms, m.opts.MaxRooms)
	}
	// 每个房间独立随机源
	r, err := NewRoom(id, m.opts, m.opts.Seed+m.created)
	if err != nil {
		return nil, err
	}
	if id != m.opts.DefaultRoom {
		r.idleTimeout = m.opts.IdleTimeout
		r.onIdle = m.reap
	}
	m.created++
	m.rooms[id] = r
	r.StartTicker()
	return r, nil
}

// reap 由房间的 Tick 协程在空闲超时后调用
func (m *RoomManager) reap(r *Room) {
	m.mu.Lock()
	if cur, ok := m.rooms[r.ID]; ok && cur == r {
		delete(m.rooms, r.ID)
	}
	m.mu.Unlock()
	r.Stop()
	logger.Log.Infof("room %s removed after %s idle", r.ID, r.idleTimeout)
}

// Room 查找已存在的房间
func (m *RoomManager) Room(id string) (*Room, bool) {
	if id == "" {
		id = m.opts.DefaultRoom
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.rooms[id]
	return r, ok
}

// RoomIDs 已创建房间的 ID（有序）
func (m *RoomManager) RoomIDs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.rooms))
	for id := range m.rooms {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// StopAll 停止所有房间，之后不再创建新房间
func (m *RoomManager) StopAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopped = true
	for _, r := range m.rooms {
		r.Stop()
	}
}
