package game

import (
	"testing"
	"time"
)

func TestSchedulerOrder(t *testing.T) {
	s := NewScheduler()
	a := EntityRef{Kind: KindPlayer, ID: "a"}
	b := EntityRef{Kind: KindMonster, ID: "b"}

	s.Schedule(0, 600*time.Millisecond, TaskRestoreAttackable, a, 0)
	s.Schedule(0, 300*time.Millisecond, TaskPlayerAttackEnd, a, 1)
	s.Schedule(0, 300*time.Millisecond, TaskMonsterAttackEnd, b, 1)
	s.Schedule(0, 5*time.Second, TaskRespawn, b, 0)

	if s.Len() != 4 {
		t.Fatalf("Len = %d, want 4", s.Len())
	}
	if due := s.PopDue(299 * time.Millisecond); len(due) != 0 {
		t.Fatalf("nothing should be due yet, got %d", len(due))
	}

	due := s.PopDue(600 * time.Millisecond)
	if len(due) != 3 {
		t.Fatalf("due = %d, want 3", len(due))
	}
	// 同一时间按安排顺序触发
	if due[0].Kind != TaskPlayerAttackEnd || due[1].Kind != TaskMonsterAttackEnd || due[2].Kind != TaskRestoreAttackable {
		t.Fatalf("unexpected order: %v %v %v", due[0].Kind, due[1].Kind, due[2].Kind)
	}
	if got := s.Count(TaskRespawn, b); got != 1 {
		t.Fatalf("Count(respawn) = %d, want 1", got)
	}
	if got := s.Count(TaskRespawn, a); got != 0 {
		t.Fatalf("Count(respawn, a) = %d, want 0", got)
	}
}
