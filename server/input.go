package server

import (
	"strings"
	"unicode/utf8"

	"arenacore/game"
)

const maxNameLen = 16

// JoinMessage 入站：设置显示名
// 示例：{"t":"join","p":{"name":"alice"}}
type JoinMessage struct {
	Name string `json:"name" msgpack:"name"`
}

// InputMessage 入站：整体覆盖玩家输入
// 示例：{"t":"input","p":{"left":true,"attack":false}}
type InputMessage struct {
	Left   bool `json:"left" msgpack:"left"`
	Right  bool `json:"right" msgpack:"right"`
	Up     bool `json:"up" msgpack:"up"`
	Down   bool `json:"down" msgpack:"down"`
	Attack bool `json:"attack" msgpack:"attack"`
	Space  bool `json:"space,omitempty" msgpack:"space,omitempty"` // 旧客户端用 space 表示攻击
}

// ToInput 转换为模拟输入；缺省字段即为 false
func (m InputMessage) ToInput() game.Input {
	return game.Input{
		Left:   m.Left,
		Right:  m.Right,
		Up:     m.Up,
		Down:   m.Down,
		Attack: m.Attack || m.Space,
	}
}

// sanitizeName 去掉首尾空白并截断
func sanitizeName(name string) string {
	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) <= maxNameLen {
		return name
	}
	r := []rune(name)
	return string(r[:maxNameLen])
}
