package server

import (
	"net/http"
	"sync"

	"github.com/invopop/jsonschema"

	"arenacore/game"
)

// protocolDoc 汇总所有线上消息载荷，用于生成 JSON Schema
type protocolDoc struct {
	Join           JoinMessage                   `json:"join"`
	Input          InputMessage                  `json:"input"`
	Welcome        Welcome                       `json:"welcome"`
	NewPlayer      game.PlayerRecord             `json:"newPlayer"`
	Disconnection  Disconnection                 `json:"disconnection"`
	PlayerUpdates  map[string]game.PlayerRecord  `json:"playerUpdates"`
	MonsterUpdates map[string]game.MonsterRecord `json:"monsterUpdates"`
	PotionUpdates  map[string]game.PotionRecord  `json:"potionUpdates"`
}

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
)

// ProtocolSchema 反射生成协议的 JSON Schema（只生成一次）
func ProtocolSchema() *jsonschema.Schema {
	schemaOnce.Do(func() {
		r := jsonschema.Reflector{AllowAdditionalProperties: true}
		schema = r.Reflect(&protocolDoc{})
	})
	return schema
}

// HandleSchema GET /protocol/schema
func HandleSchema(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, ProtocolSchema())
}
