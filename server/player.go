package server

// PlayerID 表示玩家唯一标识（连接建立时分配的 UUID）
type PlayerID string

// Sender 出站连接：房间只依赖这一接口，便于测试替换
type Sender interface {
	Codec() Codec
	// Enqueue 非阻塞入队，队列已满或已关闭时返回 false
	Enqueue(b []byte) bool
	Close()
}

// member 房间内的一个连接及其玩家
type member struct {
	ID   PlayerID
	Conn Sender
}
