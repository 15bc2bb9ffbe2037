package game

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"arenacore/logger"
)

var monsterNames = []string{
	"Bot1", "Bot2", "Bot3", "Bot4", "Bot5", "Bot6", "Bot7", "Bot8",
	"Bot9", "Bot10", "Bot11", "Bot12", "Bot13", "Bot14", "Bot15", "Bot16",
}

// Config 创建模拟所需的静态数据
type Config struct {
	Tuning Tuning
	Grid   *Grid
	Spawns SpawnTables
	Rand   *rand.Rand
}

// Simulation 权威模拟：独占实体存储，按 Tick 推进
type Simulation struct {
	tuning Tuning
	grid   *Grid
	spawns SpawnTables
	rng    *rand.Rand
	store  *Store
	sched  *Scheduler
	now    time.Duration
	tick   uint64
	log    *zap.SugaredLogger
}

// New 创建模拟并生成初始怪物与药水
func New(cfg Config) (*Simulation, error) {
	if cfg.Grid == nil {
		return nil, errors.New("simulation: nil grid")
	}
	if len(cfg.Spawns.Players) == 0 || len(cfg.Spawns.Monsters) == 0 || len(cfg.Spawns.Potions) == 0 {
		return nil, fmt.Errorf("simulation: %w", ErrInvalidSpawns)
	}
	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	s := &Simulation{
		tuning: cfg.Tuning.Normalize(),
		grid:   cfg.Grid,
		spawns: cfg.Spawns,
		rng:    rng,
		store:  NewStore(),
		sched:  NewScheduler(),
		log:    logger.Named("sim"),
	}

	for i := 0; i < s.tuning.MonsterCount; i++ {
		name := fmt.Sprintf("Bot%d", i+1)
		if i < len(monsterNames) {
			name = monsterNames[i]
		}
		s.AddMonster(fmt.Sprintf("m%d", i), name)
	}
	for i := 0; i < s.tuning.PotionCount; i++ {
		s.AddPotion(fmt.Sprintf("p%d", i))
	}
	return s, nil
}

// Store 暴露实体存储（只应在模拟线程内使用）
func (s *Simulation) Store() *Store { return s.store }

// Now 模拟时钟
func (s *Simulation) Now() time.Duration { return s.now }

// Tick 已推进的 Tick 数
func (s *Simulation) Tick() uint64 { return s.tick }

// Tuning 当前数值
func (s *Simulation) Tuning() Tuning { return s.tuning }

// PendingTasks 某实体某类待执行任务数
func (s *Simulation) PendingTasks(kind TaskKind, ref EntityRef) int {
	return s.sched.Count(kind, ref)
}

// SetTuning 替换数值；最大生命值变化时截断当前生命
func (s *Simulation) SetTuning(t Tuning) {
	s.tuning = t.Normalize()
	for _, p := range s.store.Players {
		p.MaxHealth = s.tuning.PlayerMaxHealth
		p.Health = clampHealth(p.Health, p.MaxHealth)
		p.AttackValue = s.tuning.PlayerAttack
	}
	for _, m := range s.store.Monsters {
		m.MaxHealth = s.tuning.MonsterMaxHealth
		m.Health = clampHealth(m.Health, m.MaxHealth)
		m.AttackValue = s.tuning.MonsterAttack
	}
}

// AddPlayer 在随机出生点创建玩家；ID 已存在时返回原玩家
func (s *Simulation) AddPlayer(id, name string) *Player {
	if p, ok := s.store.Players[id]; ok {
		return p
	}
	p := &Player{
		Entity: Entity{
			ID:            id,
			Pos:           pick(s.rng, s.spawns.Players),
			Dir:           DirDown,
			CanBeAttacked: true,
			Health:        s.tuning.PlayerMaxHealth,
			MaxHealth:     s.tuning.PlayerMaxHealth,
		},
		Name:        name,
		AttackValue: s.tuning.PlayerAttack,
	}
	s.store.Players[id] = p
	s.log.Infow("player added", "id", id, "name", name, "x", p.Pos.X, "y", p.Pos.Y)
	return p
}

// AddMonster 在随机出生点创建怪物
func (s *Simulation) AddMonster(id, name string) *Monster {
	m := &Monster{
		Entity: Entity{
			ID:            id,
			Pos:           pick(s.rng, s.spawns.Monsters),
			Dir:           DirDown,
			CanBeAttacked: true,
			Health:        s.tuning.MonsterMaxHealth,
			MaxHealth:     s.tuning.MonsterMaxHealth,
		},
		Name:        name,
		Option:      OptionStand,
		AttackValue: s.tuning.MonsterAttack,
	}
	s.store.Monsters[id] = m
	return m
}

// AddPotion 在随机药水点创建激活的药水
func (s *Simulation) AddPotion(id string) *Potion {
	pot := &Potion{ID: id, Pos: pick(s.rng, s.spawns.Potions), Active: true}
	s.store.Potions[id] = pot
	return pot
}

// RemovePlayer 立即移除玩家；其未触发的任务届时空转
func (s *Simulation) RemovePlayer(id string) bool {
	if _, ok := s.store.Players[id]; !ok {
		return false
	}
	delete(s.store.Players, id)
	s.log.Infow("player removed", "id", id)
	return true
}

// SetInput 整体覆盖玩家输入
func (s *Simulation) SetInput(id string, in Input) {
	if p, ok := s.store.Players[id]; ok {
		p.Input = in
	}
}

// SetName 设置显示名
func (s *Simulation) SetName(id, name string) {
	if p, ok := s.store.Players[id]; ok {
		p.Name = name
	}
}

// Step 推进一个 Tick：先执行到期任务，再依次处理玩家、怪物
func (s *Simulation) Step(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	s.tick++
	s.now += dt
	s.runDueTasks()

	for _, id := range s.store.PlayerIDs() {
		p := s.store.Players[id]
		s.movePlayer(p, dt)
		s.playerCombat(p)
		s.pickupPotions(p)
		s.playerLifecycle(p)
	}
	for _, id := range s.store.MonsterIDs() {
		m := s.store.Monsters[id]
		s.think(m)
		s.moveMonster(m, dt)
		s.monsterCombat(m)
		s.checkDeath(&m.Entity, KindMonster)
	}
	// 药水状态完全由定时任务驱动，这里无需处理
}
