package game

import "time"

// playerIntent 输入优先级：左 > 右 > 上 > 下
func playerIntent(in Input) (Direction, bool) {
	switch {
	case in.Left:
		return DirLeft, true
	case in.Right:
		return DirRight, true
	case in.Up:
		return DirUp, true
	case in.Down:
		return DirDown, true
	}
	return DirDown, false
}

func monsterIntent(o MonsterOption) (Direction, bool) {
	switch o {
	case OptionLeft:
		return DirLeft, true
	case OptionRight:
		return DirRight, true
	case OptionUp:
		return DirUp, true
	case OptionDown:
		return DirDown, true
	case OptionStand:
		return DirDown, false
	}
	return DirDown, false
}

func (s *Simulation) movePlayer(p *Player, dt time.Duration) {
	if !p.Alive() || p.Attacking {
		p.stop()
		return
	}
	dir, ok := playerIntent(p.Input)
	resolveMove(s.grid, &p.Entity, PlayerFootprint, dir, ok, s.tuning.MoveSpeed, dt)
}

func (s *Simulation) moveMonster(m *Monster, dt time.Duration) {
	if !m.Alive() || m.Attacking {
		m.stop()
		return
	}
	dir, ok := monsterIntent(m.Option)
	resolveMove(s.grid, &m.Entity, MonsterFootprint, dir, ok, s.tuning.MonsterSpeed, dt)
}

// resolveMove 沿单轴移动；碰到阻挡时该轴速度清零、位置不变。
// 没有意图时速度为零，Dir 保留最后一次移动的朝向。
func resolveMove(g *Grid, e *Entity, fp Footprint, dir Direction, ok bool, speed float64, dt time.Duration) {
	if !ok {
		e.stop()
		return
	}
	e.Dir = dir
	e.Moving = true
	u := dir.Unit()
	e.Vel = Vec{X: u.X * speed, Y: u.Y * speed}

	sec := dt.Seconds()
	if e.Vel.X != 0 {
		next := Vec{X: e.Pos.X + e.Vel.X*sec, Y: e.Pos.Y}
		if g.Collides(fp.At(next)) {
			e.Vel.X = 0
		} else {
			e.Pos = next
		}
	}
	if e.Vel.Y != 0 {
		next := Vec{X: e.Pos.X, Y: e.Pos.Y + e.Vel.Y*sec}
		if g.Collides(fp.At(next)) {
			e.Vel.Y = 0
		} else {
			e.Pos = next
		}
	}
}
