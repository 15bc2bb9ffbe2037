package assets

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEmbeddedAssetsAreConsistent(t *testing.T) {
	g, err := LoadGrid("")
	if err != nil {
		t.Fatalf("load grid: %v", err)
	}
	spawns, err := LoadSpawns("")
	if err != nil {
		t.Fatalf("load spawns: %v", err)
	}
	if len(spawns.Players) != 10 || len(spawns.Monsters) != 9 || len(spawns.Potions) != 10 {
		t.Fatalf("unexpected table sizes %d/%d/%d", len(spawns.Players), len(spawns.Monsters), len(spawns.Potions))
	}
	if err := spawns.Validate(g); err != nil {
		t.Fatalf("embedded spawn points collide with map: %v", err)
	}
}

func TestLoadFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spawns.json")
	doc := `{"players":[[100,100]],"monsters":[[200,200]],"potions":[[300,300]]}`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	spawns, err := LoadSpawns(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(spawns.Players) != 1 || spawns.Potions[0].X != 300 {
		t.Fatalf("unexpected tables %+v", spawns)
	}
	if _, err := LoadGrid(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatalf("expected error for missing map")
	}
}
