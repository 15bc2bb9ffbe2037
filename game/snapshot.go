package game

// PlayerRecord 下发给客户端的玩家状态
type PlayerRecord struct {
	ID          string  `json:"id" msgpack:"id"`
	Name        string  `json:"name" msgpack:"name"`
	X           float64 `json:"x" msgpack:"x"`
	Y           float64 `json:"y" msgpack:"y"`
	Direction   string  `json:"direction" msgpack:"direction"`
	IsMoving    bool    `json:"isMoving" msgpack:"isMoving"`
	IsAttacking bool    `json:"isAttacking" msgpack:"isAttacking"`
	IsDead      bool    `json:"isDead" msgpack:"isDead"`
	Health      int     `json:"health" msgpack:"health"`
	MaxHealth   int     `json:"maxHealth" msgpack:"maxHealth"`
	Kills       int     `json:"kills" msgpack:"kills"`
	Deaths      int     `json:"deaths" msgpack:"deaths"`
}

// MonsterRecord 下发给客户端的怪物状态
type MonsterRecord struct {
	ID          string  `json:"id" msgpack:"id"`
	Name        string  `json:"name" msgpack:"name"`
	X           float64 `json:"x" msgpack:"x"`
	Y           float64 `json:"y" msgpack:"y"`
	Direction   string  `json:"direction" msgpack:"direction"`
	IsMoving    bool    `json:"isMoving" msgpack:"isMoving"`
	IsAttacking bool    `json:"isAttacking" msgpack:"isAttacking"`
	IsDead      bool    `json:"isDead" msgpack:"isDead"`
	Health      int     `json:"health" msgpack:"health"`
	MaxHealth   int     `json:"maxHealth" msgpack:"maxHealth"`
}

// PotionRecord 下发给客户端的药水状态
type PotionRecord struct {
	ID       string  `json:"id" msgpack:"id"`
	X        float64 `json:"x" msgpack:"x"`
	Y        float64 `json:"y" msgpack:"y"`
	IsActive bool    `json:"isActive" msgpack:"isActive"`
}

// Snapshot 全量快照
type Snapshot struct {
	Tick     uint64
	Players  map[string]PlayerRecord
	Monsters map[string]MonsterRecord
	Potions  map[string]PotionRecord
}

// Snapshot 组装快照；只读，不修改任何实体
func (s *Simulation) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:     s.tick,
		Players:  make(map[string]PlayerRecord, len(s.store.Players)),
		Monsters: make(map[string]MonsterRecord, len(s.store.Monsters)),
		Potions:  make(map[string]PotionRecord, len(s.store.Potions)),
	}
	for id, p := range s.store.Players {
		snap.Players[id] = playerRecord(p)
	}
	for id, m := range s.store.Monsters {
		snap.Monsters[id] = MonsterRecord{
			ID:          m.ID,
			Name:        m.Name,
			X:           m.Pos.X,
			Y:           m.Pos.Y,
			Direction:   m.Dir.String(),
			IsMoving:    m.Moving,
			IsAttacking: m.Attacking,
			IsDead:      m.Dead,
			Health:      clampHealth(m.Health, m.MaxHealth),
			MaxHealth:   m.MaxHealth,
		}
	}
	for id, pot := range s.store.Potions {
		snap.Potions[id] = PotionRecord{ID: pot.ID, X: pot.Pos.X, Y: pot.Pos.Y, IsActive: pot.Active}
	}
	return snap
}

// PlayerRecord 单个玩家的记录
func (s *Simulation) PlayerRecord(id string) (PlayerRecord, bool) {
	p, ok := s.store.Players[id]
	if !ok {
		return PlayerRecord{}, false
	}
	return playerRecord(p), true
}

func playerRecord(p *Player) PlayerRecord {
	return PlayerRecord{
		ID:          p.ID,
		Name:        p.Name,
		X:           p.Pos.X,
		Y:           p.Pos.Y,
		Direction:   p.Dir.String(),
		IsMoving:    p.Moving,
		IsAttacking: p.Attacking,
		IsDead:      p.Dead,
		Health:      clampHealth(p.Health, p.MaxHealth),
		MaxHealth:   p.MaxHealth,
		Kills:       p.Kills,
		Deaths:      p.Deaths,
	}
}
