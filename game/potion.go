package game

import "time"

// pickupPotions 存活玩家碰到激活的药水：回满血，药水失效并安排一次重新激活
func (s *Simulation) pickupPotions(p *Player) {
	if !p.Alive() {
		return
	}
	body := PlayerFootprint.At(p.Pos)
	for _, id := range s.store.PotionIDs() {
		pot := s.store.Potions[id]
		if !pot.Active || !body.Overlaps(PotionFootprint.At(pot.Pos)) {
			continue
		}
		pot.Active = false
		p.Health = p.MaxHealth
		s.log.Debugw("potion used", "player", p.ID, "potion", pot.ID)
		if !pot.reactivatePending {
			s.sched.Schedule(s.now, s.potionDelay(), TaskPotionReactivate, EntityRef{Kind: KindPotion, ID: pot.ID}, 0)
			pot.reactivatePending = true
		}
	}
}

// potionDelay 在 [PotionRespawnMin, PotionRespawnMax) 内均匀取值
func (s *Simulation) potionDelay() time.Duration {
	span := s.tuning.PotionRespawnMax - s.tuning.PotionRespawnMin
	return s.tuning.PotionRespawnMin + time.Duration(s.rng.Int63n(int64(span)))
}
