// Package assets 内置默认地图与出生点表
package assets

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"arenacore/game"
)

//go:embed arena.json
var arenaMap []byte

//go:embed spawns.json
var spawnTables []byte

// LoadGrid 读取地图；path 为空时使用内置地图
func LoadGrid(path string) (*game.Grid, error) {
	if path == "" {
		return game.LoadTiledMap(bytes.NewReader(arenaMap), game.DefaultBlockedLayer)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open map: %w", err)
	}
	defer f.Close()
	return game.LoadTiledMap(f, game.DefaultBlockedLayer)
}

// LoadSpawns 读取出生点表；path 为空时使用内置表
func LoadSpawns(path string) (game.SpawnTables, error) {
	if path == "" {
		return game.LoadSpawnTables(bytes.NewReader(spawnTables))
	}
	f, err := os.Open(path)
	if err != nil {
		return game.SpawnTables{}, fmt.Errorf("open spawns: %w", err)
	}
	defer f.Close()
	return game.LoadSpawnTables(f)
}
