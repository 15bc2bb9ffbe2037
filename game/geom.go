package game

// Vec 平面坐标/速度
type Vec struct {
	X float64
	Y float64
}

// Rect 轴对齐矩形，(X,Y) 为左上角
type Rect struct {
	X, Y, W, H float64
}

// Overlaps 两矩形是否相交（边相接不算）
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.X+o.W && o.X < r.X+r.W && r.Y < o.Y+o.H && o.Y < r.Y+r.H
}

// Contains o 是否完全位于 r 内
func (r Rect) Contains(o Rect) bool {
	return o.X >= r.X && o.Y >= r.Y && o.X+o.W <= r.X+r.W && o.Y+o.H <= r.Y+r.H
}

// Footprint 相对实体位置的碰撞体
type Footprint struct {
	OffsetX, OffsetY float64
	W, H             float64
}

// At 返回位于 pos 的碰撞矩形
func (f Footprint) At(pos Vec) Rect {
	return Rect{X: pos.X + f.OffsetX, Y: pos.Y + f.OffsetY, W: f.W, H: f.H}
}

var (
	PlayerFootprint  = Footprint{OffsetX: -16, OffsetY: -10, W: 32, H: 32}
	MonsterFootprint = Footprint{OffsetX: -24, OffsetY: -4, W: 32, H: 32}
	PotionFootprint  = Footprint{OffsetX: -16, OffsetY: -16, W: 32, H: 32}
	HitboxFootprint  = Footprint{OffsetX: -16, OffsetY: -16, W: 32, H: 32}
)
