package game

// Kind 实体类别
type Kind int

const (
	KindPlayer Kind = iota
	KindMonster
	KindPotion
)

func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindMonster:
		return "monster"
	case KindPotion:
		return "potion"
	}
	return "unknown"
}

// EntityRef 通过类别+ID 引用实体，延迟任务只持有引用
type EntityRef struct {
	Kind Kind
	ID   string
}

// Entity 玩家与怪物共有的状态
type Entity struct {
	ID            string
	Pos           Vec
	Vel           Vec
	Dir           Direction
	Moving        bool
	Dead          bool
	Attacking     bool
	CanBeAttacked bool
	Health        int
	MaxHealth     int

	respawnPending bool
	attackGen      uint64
}

// Alive 存活且未进入死亡流程
func (e *Entity) Alive() bool {
	return !e.Dead && e.Health > 0
}

// Targetable 可被攻击
func (e *Entity) Targetable() bool {
	return e.Alive() && e.CanBeAttacked
}

// RespawnPending 是否已安排复活
func (e *Entity) RespawnPending() bool { return e.respawnPending }

func (e *Entity) stop() {
	e.Vel = Vec{}
	e.Moving = false
}

// heal 加血并截断到 [0, MaxHealth]
func (e *Entity) heal(n int) {
	e.Health = clampHealth(e.Health+n, e.MaxHealth)
}

func clampHealth(h, max int) int {
	if h < 0 {
		return 0
	}
	if h > max {
		return max
	}
	return h
}

// Input 玩家最近一次输入，整体覆盖
type Input struct {
	Left   bool
	Right  bool
	Up     bool
	Down   bool
	Attack bool
}

// Hitbox 玩家攻击判定框
type Hitbox struct {
	Pos    Vec
	Active bool
}

// Player 与连接绑定的玩家
type Player struct {
	Entity
	Name        string
	Input       Input
	Hitbox      Hitbox
	AttackValue int
	Kills       int
	Deaths      int
}

// MonsterOption AI 可选动作
type MonsterOption int

const (
	OptionLeft MonsterOption = iota
	OptionRight
	OptionUp
	OptionDown
	OptionStand
	numMonsterOptions
)

// Monster 服务端控制的怪物
type Monster struct {
	Entity
	Name        string
	Option      MonsterOption
	Steps       int
	AttackValue int
}

// Potion 回血药水
type Potion struct {
	ID     string
	Pos    Vec
	Active bool

	reactivatePending bool
}

// ReactivatePending 是否已安排重新激活
func (p *Potion) ReactivatePending() bool { return p.reactivatePending }
