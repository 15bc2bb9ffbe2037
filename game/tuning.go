package game

import "time"

// Tuning 玩法数值；均可通过管理接口热更新
type Tuning struct {
	MoveSpeed    float64 `json:"moveSpeed"`    // 玩家速度 px/s
	MonsterSpeed float64 `json:"monsterSpeed"` // 怪物速度 px/s

	PlayerMaxHealth  int `json:"playerMaxHealth"`
	MonsterMaxHealth int `json:"monsterMaxHealth"`
	PlayerAttack     int `json:"playerAttack"`
	MonsterAttack    int `json:"monsterAttack"`

	PlayerKillReward  int `json:"playerKillReward"`
	MonsterKillReward int `json:"monsterKillReward"`

	AttackDuration   time.Duration `json:"attackDuration"`
	Invulnerability  time.Duration `json:"invulnerability"`
	RespawnDelay     time.Duration `json:"respawnDelay"`
	PotionRespawnMin time.Duration `json:"potionRespawnMin"`
	PotionRespawnMax time.Duration `json:"potionRespawnMax"`

	MonsterCount    int `json:"monsterCount"`
	PotionCount     int `json:"potionCount"`
	MonsterMinSteps int `json:"monsterMinSteps"` // AI 决策保持的最少 Tick 数
	MonsterMaxSteps int `json:"monsterMaxSteps"`
}

// 数值上限
const (
	MaxSpeed        = 10000.0 // px/s
	MaxMonsterSteps = 3600    // 60 TPS 下约一分钟
	MaxTimer        = time.Hour
)

// DefaultTuning 默认数值
func DefaultTuning() Tuning {
	return Tuning{
		MoveSpeed:         180,
		MonsterSpeed:      160,
		PlayerMaxHealth:   4,
		MonsterMaxHealth:  3,
		PlayerAttack:      1,
		MonsterAttack:     1,
		PlayerKillReward:  2,
		MonsterKillReward: 1,
		AttackDuration:    300 * time.Millisecond,
		Invulnerability:   600 * time.Millisecond,
		RespawnDelay:      5000 * time.Millisecond,
		PotionRespawnMin:  10 * time.Second,
		PotionRespawnMax:  30 * time.Second,
		MonsterCount:      7,
		PotionCount:       4,
		MonsterMinSteps:   16,
		MonsterMaxSteps:   64,
	}
}

// Normalize 修正越界的数值
func (t Tuning) Normalize() Tuning {
	d := DefaultTuning()
	if t.MoveSpeed < 0 || t.MoveSpeed > MaxSpeed || t.MoveSpeed != t.MoveSpeed {
		t.MoveSpeed = d.MoveSpeed
	}
	if t.MonsterSpeed < 0 || t.MonsterSpeed > MaxSpeed || t.MonsterSpeed != t.MonsterSpeed {
		t.MonsterSpeed = d.MonsterSpeed
	}
	if t.PlayerMaxHealth <= 0 {
		t.PlayerMaxHealth = d.PlayerMaxHealth
	}
	if t.MonsterMaxHealth <= 0 {
		t.MonsterMaxHealth = d.MonsterMaxHealth
	}
	// 负攻击力会变成治疗
	t.PlayerAttack = max(t.PlayerAttack, 0)
	t.MonsterAttack = max(t.MonsterAttack, 0)
	t.PlayerKillReward = max(t.PlayerKillReward, 0)
	t.MonsterKillReward = max(t.MonsterKillReward, 0)

	t.AttackDuration = clampDuration(t.AttackDuration)
	t.Invulnerability = clampDuration(t.Invulnerability)
	t.RespawnDelay = clampDuration(t.RespawnDelay)
	t.PotionRespawnMin = clampDuration(t.PotionRespawnMin)
	t.PotionRespawnMax = clampDuration(t.PotionRespawnMax)
	if t.PotionRespawnMax <= t.PotionRespawnMin {
		t.PotionRespawnMax = t.PotionRespawnMin + time.Millisecond
	}

	t.MonsterMinSteps = clampInt(t.MonsterMinSteps, 0, MaxMonsterSteps)
	t.MonsterMaxSteps = clampInt(t.MonsterMaxSteps, t.MonsterMinSteps, MaxMonsterSteps)
	return t
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampDuration(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	if d > MaxTimer {
		return MaxTimer
	}
	return d
}
