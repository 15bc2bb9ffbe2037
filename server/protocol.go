package server

// 消息名称（与原客户端约定保持一致）
const (
	MsgJoin        = "join"
	MsgPlayerName  = "playerName" // join 的旧名称
	MsgInput       = "input"
	MsgPlayerInput = "playerInput" // input 的旧名称

	MsgWelcome         = "welcome"
	MsgCurrentPlayers  = "currentPlayers"
	MsgCurrentMonsters = "currentMonsters"
	MsgCurrentPotions  = "currentPotions"
	MsgNewPlayer       = "newPlayer"
	MsgDisconnection   = "disconnection"
	MsgPlayerUpdates   = "playerUpdates"
	MsgMonsterUpdates  = "monsterUpdates"
	MsgPotionUpdates   = "potionUpdates"
)

// Welcome 告知新连接自己的玩家 ID
type Welcome struct {
	ID     string `json:"id" msgpack:"id"`
	Room   string `json:"room" msgpack:"room"`
	TickHz int    `json:"tickHz" msgpack:"tickHz"`
}

// Disconnection 玩家离开广播
type Disconnection struct {
	ID string `json:"id" msgpack:"id"`
}
