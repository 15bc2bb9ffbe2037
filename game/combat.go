package game

func (s *Simulation) startPlayerAttack(p *Player) {
	p.stop()
	p.Attacking = true
	p.attackGen++
	off := p.Dir.HitboxOffset()
	p.Hitbox = Hitbox{
		Pos:    Vec{X: p.Pos.X + off.X, Y: p.Pos.Y + off.Y},
		Active: true,
	}
	s.sched.Schedule(s.now, s.tuning.AttackDuration, TaskPlayerAttackEnd, EntityRef{Kind: KindPlayer, ID: p.ID}, p.attackGen)
}

// playerCombat 发起攻击并用判定框检测其他玩家与怪物。
// 每个目标在一次攻击中最多受伤一次：命中即置 CanBeAttacked=false。
func (s *Simulation) playerCombat(p *Player) {
	if !p.Alive() {
		return
	}
	if p.Input.Attack && !p.Attacking {
		s.startPlayerAttack(p)
	}
	if !p.Hitbox.Active {
		return
	}

	box := HitboxFootprint.At(p.Hitbox.Pos)
	for _, id := range s.store.PlayerIDs() {
		if id == p.ID {
			continue
		}
		t := s.store.Players[id]
		if !t.Targetable() || !box.Overlaps(PlayerFootprint.At(t.Pos)) {
			continue
		}
		if s.strike(&t.Entity, KindPlayer, p.AttackValue) {
			p.heal(s.tuning.PlayerKillReward)
			p.Kills++
			s.log.Infow("player killed player", "attacker", p.ID, "target", t.ID)
		}
	}
	for _, id := range s.store.MonsterIDs() {
		m := s.store.Monsters[id]
		if !m.Targetable() || !box.Overlaps(MonsterFootprint.At(m.Pos)) {
			continue
		}
		if s.strike(&m.Entity, KindMonster, p.AttackValue) {
			p.heal(s.tuning.MonsterKillReward)
			p.Kills++
			s.log.Infow("player killed monster", "attacker", p.ID, "target", m.ID)
		}
	}
}

// monsterCombat 怪物碰到可攻击的玩家时攻击一次并短暂停下
func (s *Simulation) monsterCombat(m *Monster) {
	if !m.Alive() || m.Attacking {
		return
	}
	body := MonsterFootprint.At(m.Pos)
	for _, id := range s.store.PlayerIDs() {
		t := s.store.Players[id]
		if !t.Targetable() || !body.Overlaps(PlayerFootprint.At(t.Pos)) {
			continue
		}
		m.stop()
		m.Attacking = true
		m.attackGen++
		m.Dir = facing(m.Pos, t.Pos)
		s.strike(&t.Entity, KindPlayer, m.AttackValue)
		s.sched.Schedule(s.now, s.tuning.AttackDuration, TaskMonsterAttackEnd, EntityRef{Kind: KindMonster, ID: m.ID}, m.attackGen)
		return
	}
}

// strike 对目标造成伤害并安排无敌结束；返回本次是否致死
func (s *Simulation) strike(target *Entity, kind Kind, damage int) bool {
	target.CanBeAttacked = false
	before := target.Health
	raw := before - damage
	target.Health = clampHealth(raw, target.MaxHealth)
	s.sched.Schedule(s.now, s.tuning.Invulnerability, TaskRestoreAttackable, EntityRef{Kind: kind, ID: target.ID}, 0)
	s.log.Debugw("damage applied", "kind", kind, "target", target.ID, "before", before, "raw", raw, "after", target.Health)
	return before > 0 && target.Health <= 0
}
