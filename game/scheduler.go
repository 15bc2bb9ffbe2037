package game

import (
	"container/heap"
	"time"
)

// TaskKind 延迟任务类型
type TaskKind int

const (
	TaskPlayerAttackEnd TaskKind = iota
	TaskMonsterAttackEnd
	TaskRestoreAttackable
	TaskRespawn
	TaskPotionReactivate
)

func (k TaskKind) String() string {
	switch k {
	case TaskPlayerAttackEnd:
		return "player_attack_end"
	case TaskMonsterAttackEnd:
		return "monster_attack_end"
	case TaskRestoreAttackable:
		return "restore_attackable"
	case TaskRespawn:
		return "respawn"
	case TaskPotionReactivate:
		return "potion_reactivate"
	}
	return "unknown"
}

// Task 延迟任务：只记录目标引用，不持有实体指针
type Task struct {
	FireAt time.Duration
	Seq    uint64
	Kind   TaskKind
	Target EntityRef
	Gen    uint64 // 攻击代数，用于丢弃过期的攻击结束任务

	index int
}

type taskQueue []*Task

func (q taskQueue) Len() int { return len(q) }

func (q taskQueue) Less(i, j int) bool {
	if q[i].FireAt == q[j].FireAt {
		return q[i].Seq < q[j].Seq
	}
	return q[i].FireAt < q[j].FireAt
}

func (q taskQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *taskQueue) Push(x interface{}) {
	t := x.(*Task)
	t.index = len(*q)
	*q = append(*q, t)
}

func (q *taskQueue) Pop() interface{} {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*q = old[:n-1]
	return t
}

// Scheduler 按模拟时间排序的延迟任务队列
type Scheduler struct {
	queue taskQueue
	seq   uint64
}

// NewScheduler 创建调度器
func NewScheduler() *Scheduler {
	s := &Scheduler{}
	heap.Init(&s.queue)
	return s
}

// Schedule 在 now+delay 触发
func (s *Scheduler) Schedule(now, delay time.Duration, kind TaskKind, target EntityRef, gen uint64) {
	s.seq++
	heap.Push(&s.queue, &Task{FireAt: now + delay, Seq: s.seq, Kind: kind, Target: target, Gen: gen})
}

// PopDue 取出所有 FireAt <= now 的任务，按触发顺序
func (s *Scheduler) PopDue(now time.Duration) []Task {
	var due []Task
	for s.queue.Len() > 0 && s.queue[0].FireAt <= now {
		t := heap.Pop(&s.queue).(*Task)
		due = append(due, *t)
	}
	return due
}

// Len 待执行任务数
func (s *Scheduler) Len() int { return s.queue.Len() }

// Count 统计某实体某类待执行任务
func (s *Scheduler) Count(kind TaskKind, target EntityRef) int {
	n := 0
	for _, t := range s.queue {
		if t.Kind == kind && t.Target == target {
			n++
		}
	}
	return n
}
