package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"arenacore/game"
	"arenacore/logger"
)

// tuningConfig 管理接口的数值视图；时长以毫秒表示，字段为空表示不修改
type tuningConfig struct {
	MoveSpeed          *float64 `json:"moveSpeed,omitempty"`
	MonsterSpeed       *float64 `json:"monsterSpeed,omitempty"`
	PlayerMaxHealth    *int     `json:"playerMaxHealth,omitempty"`
	MonsterMaxHealth   *int     `json:"monsterMaxHealth,omitempty"`
	PlayerAttack       *int     `json:"playerAttack,omitempty"`
	MonsterAttack      *int     `json:"monsterAttack,omitempty"`
	PlayerKillReward   *int     `json:"playerKillReward,omitempty"`
	MonsterKillReward  *int     `json:"monsterKillReward,omitempty"`
	AttackDurationMs   *int64   `json:"attackDurationMs,omitempty"`
	InvulnerabilityMs  *int64   `json:"invulnerabilityMs,omitempty"`
	RespawnDelayMs     *int64   `json:"respawnDelayMs,omitempty"`
	PotionRespawnMinMs *int64   `json:"potionRespawnMinMs,omitempty"`
	PotionRespawnMaxMs *int64   `json:"potionRespawnMaxMs,omitempty"`
	MonsterMinSteps    *int     `json:"monsterMinSteps,omitempty"`
	MonsterMaxSteps    *int     `json:"monsterMaxSteps,omitempty"`
}

func toConfig(t game.Tuning) tuningConfig {
	ms := func(d time.Duration) *int64 { v := d.Milliseconds(); return &v }
	return tuningConfig{
		MoveSpeed:          &t.MoveSpeed,
		MonsterSpeed:       &t.MonsterSpeed,
		PlayerMaxHealth:    &t.PlayerMaxHealth,
		MonsterMaxHealth:   &t.MonsterMaxHealth,
		PlayerAttack:       &t.PlayerAttack,
		MonsterAttack:      &t.MonsterAttack,
		PlayerKillReward:   &t.PlayerKillReward,
		MonsterKillReward:  &t.MonsterKillReward,
		AttackDurationMs:   ms(t.AttackDuration),
		InvulnerabilityMs:  ms(t.Invulnerability),
		RespawnDelayMs:     ms(t.RespawnDelay),
		PotionRespawnMinMs: ms(t.PotionRespawnMin),
		PotionRespawnMaxMs: ms(t.PotionRespawnMax),
		MonsterMinSteps:    &t.MonsterMinSteps,
		MonsterMaxSteps:    &t.MonsterMaxSteps,
	}
}

// apply 合并非空字段
func (c tuningConfig) apply(t game.Tuning) game.Tuning {
	ms := func(v int64) time.Duration { return time.Duration(v) * time.Millisecond }
	if c.MoveSpeed != nil {
		t.MoveSpeed = *c.MoveSpeed
	}
	if c.MonsterSpeed != nil {
		t.MonsterSpeed = *c.MonsterSpeed
	}
	if c.PlayerMaxHealth != nil {
		t.PlayerMaxHealth = *c.PlayerMaxHealth
	}
	if c.MonsterMaxHealth != nil {
		t.MonsterMaxHealth = *c.MonsterMaxHealth
	}
	if c.PlayerAttack != nil {
		t.PlayerAttack = *c.PlayerAttack
	}
	if c.MonsterAttack != nil {
		t.MonsterAttack = *c.MonsterAttack
	}
	if c.PlayerKillReward != nil {
		t.PlayerKillReward = *c.PlayerKillReward
	}
	if c.MonsterKillReward != nil {
		t.MonsterKillReward = *c.MonsterKillReward
	}
	if c.AttackDurationMs != nil {
		t.AttackDuration = ms(*c.AttackDurationMs)
	}
	if c.InvulnerabilityMs != nil {
		t.Invulnerability = ms(*c.InvulnerabilityMs)
	}
	if c.RespawnDelayMs != nil {
		t.RespawnDelay = ms(*c.RespawnDelayMs)
	}
	if c.PotionRespawnMinMs != nil {
		t.PotionRespawnMin = ms(*c.PotionRespawnMinMs)
	}
	if c.PotionRespawnMaxMs != nil {
		t.PotionRespawnMax = ms(*c.PotionRespawnMaxMs)
	}
	if c.MonsterMinSteps != nil {
		t.MonsterMinSteps = *c.MonsterMinSteps
	}
	if c.MonsterMaxSteps != nil {
		t.MonsterMaxSteps = *c.MonsterMaxSteps
	}
	return t
}

// validate 拒绝越界的字段，避免依赖 Normalize 静默改写
func (c tuningConfig) validate() error {
	speed := func(name string, v *float64) error {
		if v != nil && !(*v >= 0 && *v <= game.MaxSpeed) {
			return fmt.Errorf("%s must be within [0,%v]", name, game.MaxSpeed)
		}
		return nil
	}
	ints := func(name string, v *int, lo, hi int) error {
		if v != nil && (*v < lo || *v > hi) {
			return fmt.Errorf("%s must be within [%d,%d]", name, lo, hi)
		}
		return nil
	}
	maxMs := game.MaxTimer.Milliseconds()
	ms := func(name string, v *int64) error {
		if v != nil && (*v < 0 || *v > maxMs) {
			return fmt.Errorf("%s must be within [0,%d]", name, maxMs)
		}
		return nil
	}
	const maxStat = 1000
	checks := []error{
		speed("moveSpeed", c.MoveSpeed),
		speed("monsterSpeed", c.MonsterSpeed),
		ints("playerMaxHealth", c.PlayerMaxHealth, 1, maxStat),
		ints("monsterMaxHealth", c.MonsterMaxHealth, 1, maxStat),
		ints("playerAttack", c.PlayerAttack, 0, maxStat),
		ints("monsterAttack", c.MonsterAttack, 0, maxStat),
		ints("playerKillReward", c.PlayerKillReward, 0, maxStat),
		ints("monsterKillReward", c.MonsterKillReward, 0, maxStat),
		ms("attackDurationMs", c.AttackDurationMs),
		ms("invulnerabilityMs", c.InvulnerabilityMs),
		ms("respawnDelayMs", c.RespawnDelayMs),
		ms("potionRespawnMinMs", c.PotionRespawnMinMs),
		ms("potionRespawnMaxMs", c.PotionRespawnMaxMs),
		ints("monsterMinSteps", c.MonsterMinSteps, 0, game.MaxMonsterSteps),
		ints("monsterMaxSteps", c.MonsterMaxSteps, 0, game.MaxMonsterSteps),
	}
	return errors.Join(checks...)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// HandleAdminConfig 提供房间数值的读取与更新（热更新，下一 Tick 生效）
// GET /admin/config?room=room-1  返回当前数值
// POST /admin/config?room=room-1 以 JSON 载荷更新部分字段
func (m *RoomManager) HandleAdminConfig(w http.ResponseWriter, r *http.Request) {
	room, ok := m.Room(r.URL.Query().Get("room"))
	if !ok {
		http.Error(w, "room not found", http.StatusNotFound)
		return
	}

	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, toConfig(room.Tuning()))
	case http.MethodPost:
		var body tuningConfig
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := body.validate(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		next := body.apply(room.Tuning()).Normalize()
		room.UpdateTuning(next)
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "config": toConfig(next)})
		logger.Log.Infof("config updated: room=%s moveSpeed=%.1f monsterSpeed=%.1f respawn=%s invuln=%s",
			room.ID, next.MoveSpeed, next.MonsterSpeed, next.RespawnDelay, next.Invulnerability)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleMetrics 输出指定房间的运行指标
// GET /metrics?room=room-1
func (m *RoomManager) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	room, ok := m.Room(r.URL.Query().Get("room"))
	if !ok {
		http.Error(w, "room not found", http.StatusNotFound)
		return
	}
	st := room.Stats()
	writeJSON(w, http.StatusOK, map[string]any{
		"room":     room.ID,
		"tick":     st.Tick,
		"players":  st.Players,
		"monsters": st.Monsters,
		"potions":  st.Potions,
		"metrics":  room.metrics.Snapshot(),
	})
}

// HandleRooms 列出已创建的房间
// GET /rooms
func (m *RoomManager) HandleRooms(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"rooms": m.RoomIDs()})
}
