package game

func (s *Simulation) playerLifecycle(p *Player) {
	if s.checkDeath(&p.Entity, KindPlayer) {
		p.Hitbox.Active = false
		p.Deaths++
		s.log.Infow("player died", "id", p.ID, "deaths", p.Deaths)
	}
}

// checkDeath Alive -> Dead 转换，并保证每次死亡只安排一次复活。
// 返回本次调用是否发生了死亡转换。
func (s *Simulation) checkDeath(e *Entity, kind Kind) bool {
	died := false
	if e.Health <= 0 && !e.Dead {
		e.Dead = true
		e.stop()
		e.CanBeAttacked = false
		e.Attacking = false
		died = true
	}
	if e.Dead && !e.respawnPending {
		s.sched.Schedule(s.now, s.tuning.RespawnDelay, TaskRespawn, EntityRef{Kind: kind, ID: e.ID}, 0)
		e.respawnPending = true
	}
	return died
}

func (s *Simulation) runDueTasks() {
	for _, t := range s.sched.PopDue(s.now) {
		s.runTask(t)
	}
}

// runTask 执行到期任务；目标已不存在或已过期时不做任何事
func (s *Simulation) runTask(t Task) {
	switch t.Kind {
	case TaskPlayerAttackEnd:
		p, ok := s.store.Players[t.Target.ID]
		if !ok || p.attackGen != t.Gen {
			return
		}
		p.Hitbox.Active = false
		p.Attacking = false
	case TaskMonsterAttackEnd:
		m, ok := s.store.Monsters[t.Target.ID]
		if !ok || m.attackGen != t.Gen {
			return
		}
		m.Attacking = false
	case TaskRestoreAttackable:
		e := s.store.Entity(t.Target)
		if e == nil || !e.Alive() {
			return
		}
		e.CanBeAttacked = true
	case TaskRespawn:
		s.respawn(t.Target)
	case TaskPotionReactivate:
		pot, ok := s.store.Potions[t.Target.ID]
		if !ok {
			return
		}
		pot.Pos = pick(s.rng, s.spawns.Potions)
		pot.Active = true
		pot.reactivatePending = false
	}
}

func (s *Simulation) respawn(ref EntityRef) {
	e := s.store.Entity(ref)
	if e == nil || !e.respawnPending {
		return
	}
	switch ref.Kind {
	case KindPlayer:
		e.Pos = pick(s.rng, s.spawns.Players)
		s.store.Players[ref.ID].Hitbox.Active = false
	case KindMonster:
		e.Pos = pick(s.rng, s.spawns.Monsters)
		m := s.store.Monsters[ref.ID]
		m.Steps = 0
		m.Option = OptionStand
	case KindPotion:
		return
	}
	e.Health = e.MaxHealth
	e.Dead = false
	e.Attacking = false
	e.CanBeAttacked = true
	e.respawnPending = false
	e.stop()
	s.log.Debugw("respawned", "kind", ref.Kind, "id", ref.ID, "x", e.Pos.X, "y", e.Pos.Y)
}
