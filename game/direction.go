package game

import "fmt"

// Direction 朝向（替代 1-4 数字约定）
type Direction int

const (
	DirDown Direction = iota
	DirUp
	DirLeft
	DirRight
)

func (d Direction) String() string {
	switch d {
	case DirDown:
		return "down"
	case DirUp:
		return "up"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// Unit 朝向的单位向量（屏幕坐标，y 向下）
func (d Direction) Unit() Vec {
	switch d {
	case DirDown:
		return Vec{Y: 1}
	case DirUp:
		return Vec{Y: -1}
	case DirLeft:
		return Vec{X: -1}
	case DirRight:
		return Vec{X: 1}
	}
	return Vec{}
}

// HitboxOffset 攻击判定框相对角色位置的偏移
func (d Direction) HitboxOffset() Vec {
	switch d {
	case DirDown:
		return Vec{X: 0, Y: 24}
	case DirUp:
		return Vec{X: 0, Y: -16}
	case DirLeft:
		return Vec{X: -16, Y: 6}
	case DirRight:
		return Vec{X: 16, Y: 6}
	}
	return Vec{}
}

// facing 返回从 from 指向 to 的主轴朝向
func facing(from, to Vec) Direction {
	dx, dy := to.X-from.X, to.Y-from.Y
	if abs(dx) >= abs(dy) {
		if dx < 0 {
			return DirLeft
		}
		return DirRight
	}
	if dy < 0 {
		return DirUp
	}
	return DirDown
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
