package game

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
)

// ErrInvalidSpawns 出生点表非法
var ErrInvalidSpawns = errors.New("invalid spawn tables")

// SpawnTables 玩家、怪物、药水各自的出生点
type SpawnTables struct {
	Players  []Vec
	Monsters []Vec
	Potions  []Vec
}

type spawnFile struct {
	Players  [][2]float64 `json:"players"`
	Monsters [][2]float64 `json:"monsters"`
	Potions  [][2]float64 `json:"potions"`
}

// LoadSpawnTables 读取 {"players":[[x,y],...],"monsters":...,"potions":...}
func LoadSpawnTables(r io.Reader) (SpawnTables, error) {
	var f spawnFile
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return SpawnTables{}, fmt.Errorf("%w: decode: %v", ErrInvalidSpawns, err)
	}
	t := SpawnTables{
		Players:  toVecs(f.Players),
		Monsters: toVecs(f.Monsters),
		Potions:  toVecs(f.Potions),
	}
	if len(t.Players) == 0 || len(t.Monsters) == 0 || len(t.Potions) == 0 {
		return SpawnTables{}, fmt.Errorf("%w: players=%d monsters=%d potions=%d",
			ErrInvalidSpawns, len(t.Players), len(t.Monsters), len(t.Potions))
	}
	return t, nil
}

// Validate 检查出生点位于地图内且不与阻挡重叠
func (t SpawnTables) Validate(g *Grid) error {
	bounds := g.Bounds()
	check := func(kind string, pts []Vec, fp Footprint) error {
		for i, p := range pts {
			if !bounds.Contains(fp.At(p)) {
				return fmt.Errorf("%w: %s spawn #%d (%.0f,%.0f) is outside the map", ErrInvalidSpawns, kind, i, p.X, p.Y)
			}
			if g.Collides(fp.At(p)) {
				return fmt.Errorf("%w: %s spawn #%d (%.0f,%.0f) is blocked", ErrInvalidSpawns, kind, i, p.X, p.Y)
			}
		}
		return nil
	}
	if err := check("player", t.Players, PlayerFootprint); err != nil {
		return err
	}
	if err := check("monster", t.Monsters, MonsterFootprint); err != nil {
		return err
	}
	return check("potion", t.Potions, PotionFootprint)
}

func toVecs(in [][2]float64) []Vec {
	out := make([]Vec, 0, len(in))
	for _, p := range in {
		out = append(out, Vec{X: p[0], Y: p[1]})
	}
	return out
}

func pick(rng *rand.Rand, pts []Vec) Vec {
	return pts[rng.Intn(len(pts))]
}
