package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"arenacore/logger"
)

const (
	writeWait  = 5 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 25 * time.Second
	sendQueue  = 64
	readLimit  = 1 << 16
)

// ClientConn 负责发送（写）数据到客户端的轻量包装
type ClientConn struct {
	ws    *websocket.Conn
	codec Codec
	send  chan []byte

	// closed 只在房间锁内读写（Enqueue 与 Close 都由 Tick 线程调用）
	closed    bool
	closeOnce sync.Once
}

func NewClientConn(ws *websocket.Conn, codec Codec) *ClientConn {
	return &ClientConn{
		ws:    ws,
		codec: codec,
		send:  make(chan []byte, sendQueue),
	}
}

// Codec 该连接协商的编码
func (c *ClientConn) Codec() Codec { return c.codec }

// Enqueue 将要发送的消息压入队列（非阻塞，满则丢弃）
func (c *ClientConn) Enqueue(b []byte) bool {
	if c.closed {
		return false
	}
	select {
	case c.send <- b:
		return true
	default:
		// 为了实时性，丢弃消息（防止阻塞 Tick）
		return false
	}
}

// Close 关闭发送队列；写协程发完剩余消息后关闭底层连接
func (c *ClientConn) Close() {
	c.closeOnce.Do(func() {
		c.closed = true
		close(c.send)
	})
}

// writePump 独立协程，负责从 send 队列写出到 WS，并定期发送 ping
func (c *ClientConn) writePump() {
	ping := time.NewTicker(pingPeriod)
	defer func() {
		ping.Stop()
		_ = c.ws.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.ws.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.ws.WriteMessage(c.codec.FrameType(), msg); err != nil {
				return
			}
		case <-ping.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump 读取客户端消息，转换为房间命令或输入
func (c *ClientConn) readPump(room *Room, playerID PlayerID) {
	defer c.ws.Close()
	// 读泵退出时，通知房间在 Tick 线程中移除该玩家
	defer room.RequestLeave(playerID)
	c.ws.SetReadLimit(readLimit)
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error { return c.ws.SetReadDeadline(time.Now().Add(pongWait)) })

	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			return
		}
		_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
		env, err := c.codec.Decode(data)
		if err != nil {
			room.metrics.IncInvalid()
			continue
		}
		dispatch(room, c.codec, playerID, env)
	}
}

// dispatch 处理一条入站消息；未知类型忽略
func dispatch(room *Room, codec Codec, id PlayerID, env Envelope) {
	switch env.T {
	case MsgJoin, MsgPlayerName:
		var jm JoinMessage
		if err := codec.Unmarshal(env.P, &jm); err != nil {
			return
		}
		room.SetName(id, jm.Name)
	case MsgInput, MsgPlayerInput:
		var im InputMessage
		if err := codec.Unmarshal(env.P, &im); err != nil {
			// 无法解析的输入视为全部松开
			room.metrics.IncInvalid()
			im = InputMessage{}
		}
		room.OnInput(id, im.ToInput())
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// 演示环境：允许所有来源（生产环境需严格限制）
		return true
	},
}

// HandleWS WebSocket 接入：?room=room-1&name=alice&codec=json|msgpack
// 房间在握手成功后才创建
func (m *RoomManager) HandleWS(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	codec, err := CodecByName(q.Get("codec"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	roomID := q.Get("room")
	if roomID != "" && !ValidRoomID(roomID) {
		http.Error(w, ErrInvalidRoomID.Error(), http.StatusBadRequest)
		return
	}

	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.Warnf("upgrade error: %v", err)
		return
	}

	room, err := m.GetOrCreateRoom(roomID)
	if err != nil {
		logger.Log.Warnf("reject connection: room=%q err=%v", roomID, err)
		_ = ws.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseTryAgainLater, err.Error()),
			time.Now().Add(writeWait))
		_ = ws.Close()
		return
	}

	playerID := PlayerID(uuid.NewString())
	client := NewClientConn(ws, codec)
	go client.writePump()
	if !room.RequestJoin(playerID, q.Get("name"), client) {
		client.Close()
		return
	}
	go client.readPump(room, playerID)
}
