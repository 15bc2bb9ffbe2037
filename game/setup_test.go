package game

import (
	"math/rand"
	"testing"
	"time"
)

const tickDT = 16 * time.Millisecond

// borderGrid 四周一圈阻挡的开放场地
func borderGrid(cols, rows int) *Grid {
	g := NewGrid(cols, rows, 32)
	for x := 0; x < cols; x++ {
		g.SetBlocked(x, 0, true)
		g.SetBlocked(x, rows-1, true)
	}
	for y := 0; y < rows; y++ {
		g.SetBlocked(0, y, true)
		g.SetBlocked(cols-1, y, true)
	}
	return g
}

func testSpawns() SpawnTables {
	return SpawnTables{
		Players:  []Vec{{X: 200, Y: 200}, {X: 600, Y: 600}},
		Monsters: []Vec{{X: 900, Y: 900}, {X: 1000, Y: 300}},
		Potions:  []Vec{{X: 300, Y: 800}, {X: 800, Y: 300}},
	}
}

// newTestSim 不带怪物和药水的模拟，测试按需添加
func newTestSim(t *testing.T, mod func(*Tuning)) *Simulation {
	t.Helper()
	tun := DefaultTuning()
	tun.MonsterCount = 0
	tun.PotionCount = 0
	if mod != nil {
		mod(&tun)
	}
	s, err := New(Config{Tuning: tun, Grid: borderGrid(40, 40), Spawns: testSpawns(), Rand: rand.New(rand.NewSource(1))})
	if err != nil {
		t.Fatalf("new simulation: %v", err)
	}
	return s
}

// frozenMonster 放置一个不会自行移动的怪物
func frozenMonster(s *Simulation, id string, pos Vec) *Monster {
	m := s.AddMonster(id, id)
	m.Pos = pos
	m.Option = OptionStand
	m.Steps = 1 << 30
	return m
}

// runFor 以固定 Tick 推进至少 d
func runFor(s *Simulation, d time.Duration) {
	end := s.Now() + d
	for s.Now() < end {
		s.Step(tickDT)
	}
}

func inTable(p Vec, table []Vec) bool {
	for _, v := range table {
		if v == p {
			return true
		}
	}
	return false
}
