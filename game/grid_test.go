package game

import (
	"errors"
	"strings"
	"testing"
)

const smallMap = `{
  "width": 4, "height": 3, "tilewidth": 32, "tileheight": 32,
  "layers": [
    {"name": "Ground", "type": "tilelayer", "width": 4, "height": 3, "data": [1,1,1,1,1,1,1,1,1,1,1,1]},
    {"name": "Blocked", "type": "tilelayer", "width": 4, "height": 3, "data": [0,0,0,0,0,0,7,0,0,0,0,0]}
  ]
}`

func TestLoadTiledMap(t *testing.T) {
	g, err := LoadTiledMap(strings.NewReader(smallMap), "")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if g.Cols != 4 || g.Rows != 3 || g.TileSize != 32 {
		t.Fatalf("unexpected grid %dx%d@%v", g.Cols, g.Rows, g.TileSize)
	}
	if !g.Blocked(2, 1) {
		t.Fatalf("tile (2,1) should be blocked")
	}
	if g.Blocked(1, 1) {
		t.Fatalf("tile (1,1) should be free")
	}
	if !g.Blocked(-1, 0) || !g.Blocked(4, 0) || !g.Blocked(0, 3) {
		t.Fatalf("tiles outside the map must be blocked")
	}
	if b := g.Bounds(); b.W != 128 || b.H != 96 {
		t.Fatalf("bounds = %+v", b)
	}
}

func TestLoadTiledMapErrors(t *testing.T) {
	cases := map[string]string{
		"not json":      `{`,
		"missing layer": `{"width":1,"height":1,"tilewidth":32,"tileheight":32,"layers":[]}`,
		"non square":    `{"width":1,"height":1,"tilewidth":32,"tileheight":16,"layers":[{"name":"Blocked","width":1,"height":1,"data":[0]}]}`,
		"size mismatch": `{"width":2,"height":1,"tilewidth":32,"tileheight":32,"layers":[{"name":"Blocked","width":2,"height":1,"data":[0]}]}`,
		"base64":        `{"width":1,"height":1,"tilewidth":32,"tileheight":32,"layers":[{"name":"Blocked","width":1,"height":1,"encoding":"base64","data":[0]}]}`,
		"object layer":  `{"width":1,"height":1,"tilewidth":32,"tileheight":32,"layers":[{"name":"Blocked","type":"objectgroup","width":1,"height":1,"data":[0]}]}`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadTiledMap(strings.NewReader(doc), "Blocked")
			if !errors.Is(err, ErrInvalidMap) {
				t.Fatalf("expected ErrInvalidMap, got %v", err)
			}
		})
	}
}

func TestCollides(t *testing.T) {
	g, err := LoadTiledMap(strings.NewReader(smallMap), "Blocked")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	// 阻挡瓦片 (2,1) 覆盖 x∈[64,96) y∈[32,64)
	if !g.Collides(Rect{X: 60, Y: 40, W: 10, H: 10}) {
		t.Fatalf("rect crossing into blocked tile should collide")
	}
	if g.Collides(Rect{X: 32, Y: 32, W: 32, H: 32}) {
		t.Fatalf("rect touching the blocked tile edge should not collide")
	}
	if !g.Collides(Rect{X: -1, Y: 0, W: 10, H: 10}) {
		t.Fatalf("rect leaving the map should collide")
	}
}
