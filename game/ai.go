package game

// think 随机游走：决策保持 Steps 个 Tick，避免每 Tick 抖动
func (s *Simulation) think(m *Monster) {
	if !m.Alive() || m.Attacking {
		return
	}
	if m.Steps > 0 {
		m.Steps--
		return
	}
	m.Option = MonsterOption(s.rng.Intn(int(numMonsterOptions)))
	m.Steps = s.tuning.MonsterMinSteps + s.rng.Intn(s.tuning.MonsterMaxSteps-s.tuning.MonsterMinSteps+1)
}
