package game

import "sort"

// Store 实体存储，只由模拟线程读写
type Store struct {
	Players  map[string]*Player
	Monsters map[string]*Monster
	Potions  map[string]*Potion
}

// NewStore 创建空存储
func NewStore() *Store {
	return &Store{
		Players:  make(map[string]*Player),
		Monsters: make(map[string]*Monster),
		Potions:  make(map[string]*Potion),
	}
}

// Entity 按引用查找玩家或怪物的公共状态；找不到返回 nil
func (s *Store) Entity(ref EntityRef) *Entity {
	switch ref.Kind {
	case KindPlayer:
		if p, ok := s.Players[ref.ID]; ok {
			return &p.Entity
		}
	case KindMonster:
		if m, ok := s.Monsters[ref.ID]; ok {
			return &m.Entity
		}
	}
	return nil
}

// PlayerIDs 有序 ID，保证每 Tick 处理顺序确定
func (s *Store) PlayerIDs() []string {
	ids := make([]string, 0, len(s.Players))
	for id := range s.Players {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// MonsterIDs 有序 ID
func (s *Store) MonsterIDs() []string {
	ids := make([]string, 0, len(s.Monsters))
	for id := range s.Monsters {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// PotionIDs 有序 ID
func (s *Store) PotionIDs() []string {
	ids := make([]string, 0, len(s.Potions))
	for id := range s.Potions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
