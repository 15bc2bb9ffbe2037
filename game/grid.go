package game

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
)

// ErrInvalidMap 地图数据非法
var ErrInvalidMap = errors.New("invalid map")

// DefaultBlockedLayer Tiled 中阻挡层的默认名称
const DefaultBlockedLayer = "Blocked"

// Grid 静态碰撞网格，加载后只读
type Grid struct {
	Cols     int
	Rows     int
	TileSize float64
	blocked  []bool
}

// NewGrid 创建空网格
func NewGrid(cols, rows int, tileSize float64) *Grid {
	return &Grid{Cols: cols, Rows: rows, TileSize: tileSize, blocked: make([]bool, cols*rows)}
}

// SetBlocked 仅在加载阶段使用
func (g *Grid) SetBlocked(tx, ty int, blocked bool) {
	if tx < 0 || ty < 0 || tx >= g.Cols || ty >= g.Rows {
		return
	}
	g.blocked[ty*g.Cols+tx] = blocked
}

// Blocked 瓦片是否阻挡；地图外视为阻挡
func (g *Grid) Blocked(tx, ty int) bool {
	if tx < 0 || ty < 0 || tx >= g.Cols || ty >= g.Rows {
		return true
	}
	return g.blocked[ty*g.Cols+tx]
}

// Collides 矩形覆盖的任一瓦片阻挡即为碰撞
func (g *Grid) Collides(r Rect) bool {
	// 右/下边界向内收一点，避免恰好贴边时算入下一格
	const eps = 1e-9
	x0 := int(math.Floor(r.X / g.TileSize))
	y0 := int(math.Floor(r.Y / g.TileSize))
	x1 := int(math.Floor((r.X + r.W - eps) / g.TileSize))
	y1 := int(math.Floor((r.Y + r.H - eps) / g.TileSize))
	for ty := y0; ty <= y1; ty++ {
		for tx := x0; tx <= x1; tx++ {
			if g.Blocked(tx, ty) {
				return true
			}
		}
	}
	return false
}

// Bounds 地图像素范围
func (g *Grid) Bounds() Rect {
	return Rect{W: float64(g.Cols) * g.TileSize, H: float64(g.Rows) * g.TileSize}
}

type tiledMap struct {
	Width      int          `json:"width"`
	Height     int          `json:"height"`
	TileWidth  int          `json:"tilewidth"`
	TileHeight int          `json:"tileheight"`
	Layers     []tiledLayer `json:"layers"`
}

type tiledLayer struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Encoding string `json:"encoding"`
	Data     []int  `json:"data"`
}

// LoadTiledMap 从 Tiled JSON 读取阻挡层；layer 为空时使用 "Blocked"
func LoadTiledMap(r io.Reader, layer string) (*Grid, error) {
	if layer == "" {
		layer = DefaultBlockedLayer
	}
	var m tiledMap
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrInvalidMap, err)
	}
	if m.Width <= 0 || m.Height <= 0 {
		return nil, fmt.Errorf("%w: size %dx%d", ErrInvalidMap, m.Width, m.Height)
	}
	if m.TileWidth <= 0 || m.TileWidth != m.TileHeight {
		return nil, fmt.Errorf("%w: tiles must be square, got %dx%d", ErrInvalidMap, m.TileWidth, m.TileHeight)
	}

	for _, l := range m.Layers {
		if l.Name != layer {
			continue
		}
		if l.Type != "" && l.Type != "tilelayer" {
			return nil, fmt.Errorf("%w: layer %q is a %s", ErrInvalidMap, layer, l.Type)
		}
		if l.Encoding != "" && l.Encoding != "csv" {
			return nil, fmt.Errorf("%w: layer %q uses unsupported encoding %q", ErrInvalidMap, layer, l.Encoding)
		}
		if l.Width != m.Width || l.Height != m.Height || len(l.Data) != m.Width*m.Height {
			return nil, fmt.Errorf("%w: layer %q size mismatch", ErrInvalidMap, layer)
		}
		g := NewGrid(m.Width, m.Height, float64(m.TileWidth))
		for i, gid := range l.Data {
			g.blocked[i] = gid != 0
		}
		return g, nil
	}
	return nil, fmt.Errorf("%w: layer %q not found", ErrInvalidMap, layer)
}
