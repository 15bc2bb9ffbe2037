package game

import (
	"math/rand"
	"testing"
	"time"
)

func TestSingleRespawnPerDeath(t *testing.T) {
	s := newTestSim(t, nil)
	p := s.AddPlayer("a", "alice")
	p.Health = 0
	ref := EntityRef{Kind: KindPlayer, ID: "a"}

	s.Step(tickDT)
	for i := 0; i < 10; i++ {
		s.checkDeath(&p.Entity, KindPlayer)
		s.Step(tickDT)
	}
	if got := s.PendingTasks(TaskRespawn, ref); got != 1 {
		t.Fatalf("pending respawns = %d, want 1", got)
	}
	if !p.Dead || !p.RespawnPending() || p.Deaths != 1 {
		t.Fatalf("dead=%v pending=%v deaths=%d", p.Dead, p.RespawnPending(), p.Deaths)
	}

	runFor(s, 5*time.Second)
	if p.Dead || p.Health != p.MaxHealth || !p.CanBeAttacked || p.RespawnPending() {
		t.Fatalf("player not respawned: dead=%v health=%d", p.Dead, p.Health)
	}
	if !inTable(p.Pos, s.spawns.Players) {
		t.Fatalf("respawn position %+v not in player table", p.Pos)
	}
	if got := s.PendingTasks(TaskRespawn, ref); got != 0 {
		t.Fatalf("pending respawns after respawn = %d", got)
	}
}

func TestDeathStopsEntity(t *testing.T) {
	s := newTestSim(t, nil)
	p := s.AddPlayer("a", "alice")
	p.Pos = Vec{X: 400, Y: 400}
	s.SetInput("a", Input{Right: true})
	s.Step(tickDT)
	p.Health = 0
	s.Step(tickDT)

	if !p.Dead || p.Moving || p.Vel != (Vec{}) || p.CanBeAttacked {
		t.Fatalf("dead=%v moving=%v vel=%+v canBeAttacked=%v", p.Dead, p.Moving, p.Vel, p.CanBeAttacked)
	}
	x := p.Pos.X
	runFor(s, time.Second)
	if p.Pos.X != x {
		t.Fatalf("dead player kept moving")
	}
}

func TestRemovedPlayerTasksAreNoOps(t *testing.T) {
	s := newTestSim(t, nil)
	a := s.AddPlayer("a", "attacker")
	b := s.AddPlayer("b", "victim")
	a.Pos = Vec{X: 400, Y: 400}
	a.Dir = DirRight
	b.Pos = Vec{X: 430, Y: 400}
	b.Health = 1

	s.SetInput("a", Input{Attack: true})
	s.Step(tickDT)
	if !b.Dead {
		t.Fatalf("victim should be dead")
	}

	// 攻击结束、无敌结束、复活任务都在移除后触发
	s.RemovePlayer("a")
	s.RemovePlayer("b")
	runFor(s, 6*time.Second)

	if len(s.Store().Players) != 0 {
		t.Fatalf("removed players reappeared: %d", len(s.Store().Players))
	}
	if s.RemovePlayer("b") {
		t.Fatalf("second removal should report false")
	}
}

func TestInvariantsUnderRandomPlay(t *testing.T) {
	s := newTestSim(t, func(tun *Tuning) {
		tun.MonsterCount = 3
		tun.PotionCount = 1
	})
	// 聚在一起，保证频繁交战
	for _, m := range s.Store().Monsters {
		m.Pos = Vec{X: 500, Y: 500}
	}
	ids := []string{"a", "b", "c", "d"}
	for i, id := range ids {
		p := s.AddPlayer(id, id)
		p.Pos = Vec{X: 480 + float64(i)*12, Y: 500}
	}

	rng := rand.New(rand.NewSource(42))
	for tick := 0; tick < 3000; tick++ {
		for _, id := range ids {
			s.SetInput(id, Input{
				Left:   rng.Intn(4) == 0,
				Right:  rng.Intn(4) == 0,
				Up:     rng.Intn(4) == 0,
				Down:   rng.Intn(4) == 0,
				Attack: rng.Intn(3) == 0,
			})
		}
		s.Step(tickDT)

		for _, p := range s.Store().Players {
			checkEntity(t, tick, &p.Entity)
		}
		for _, m := range s.Store().Monsters {
			checkEntity(t, tick, &m.Entity)
		}
	}
}

func checkEntity(t *testing.T, tick int, e *Entity) {
	t.Helper()
	if e.Health < 0 || e.Health > e.MaxHealth {
		t.Fatalf("tick %d: %s health %d out of [0,%d]", tick, e.ID, e.Health, e.MaxHealth)
	}
	if e.Dead && e.CanBeAttacked {
		t.Fatalf("tick %d: %s is dead but attackable", tick, e.ID)
	}
	if e.Dead && e.Health > 0 {
		t.Fatalf("tick %d: %s dead with health %d", tick, e.ID, e.Health)
	}
}
