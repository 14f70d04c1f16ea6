package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	// Периодичность ping-сообщений для проверки живости соединения.
	pingPeriod = 30 * time.Second
	// Сколько ждём pong, прежде чем считать соединение мёртвым.
	pongWait = 60 * time.Second
	// Таймаут на одну запись в сокет.
	writeWait = 10 * time.Second
)

// WSMessage — событие, рассылаемое всем подключённым клиентам.
// Data всегда содержит полную сущность, а не дифф.
type WSMessage struct {
	EventType string      `json:"event_type"`
	Data      interface{} `json:"data,omitempty"`
}

// SnapshotFunc строит снапшот для нового подключения (history.sync).
type SnapshotFunc func() (WSMessage, error)

// Hub хранит подключения клиентов общего плейлиста и рассылает им события.
// Создаётся один раз при старте процесса и останавливается при завершении.
type Hub struct {
	// Множество живых подключений.
	clients map[*Client]bool
	// Канал для регистрации нового клиента.
	register chan *Client
	// Канал для удаления клиента.
	unregister chan *Client
	// Канал исходящих событий; порядок отправки = порядок коммитов.
	broadcast chan []byte
	// Снапшот истории, отправляемый новому клиенту до любых живых событий.
	snapshot SnapshotFunc
	// Mutex для защиты карты клиентов.
	mu sync.RWMutex
	// Сигнал остановки цикла Run.
	done chan struct{}
}

// NewHub создает новый Hub.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 64),
		done:       make(chan struct{}),
	}
}

// SetSnapshotFunc задаёт построитель снапшота для новых подключений.
// Должен быть вызван до Run.
func (h *Hub) SetSnapshotFunc(fn SnapshotFunc) {
	h.snapshot = fn
}

// Run запускает цикл обработки каналов хаба.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			// Снапшот кладётся в буфер клиента до добавления в множество,
			// поэтому никакое живое событие не обгонит history.sync.
			if h.snapshot != nil {
				if msg, err := h.snapshot(); err != nil {
					log.Println("Ошибка построения снапшота для нового клиента:", err)
				} else if payload, err := json.Marshal(msg); err == nil {
					client.Send <- payload
				}
			}
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			h.mu.Unlock()
		case message := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.Send <- message:
				default:
					// Переполненный буфер — клиент не успевает читать.
					// Отключаем его, не задерживая остальных.
					close(client.Send)
					delete(h.clients, client)
				}
			}
			h.mu.Unlock()
		case <-h.done:
			h.mu.Lock()
			for client := range h.clients {
				close(client.Send)
				delete(h.clients, client)
			}
			h.mu.Unlock()
			return
		}
	}
}

// Stop завершает цикл Run и закрывает все подключения.
func (h *Hub) Stop() {
	close(h.done)
}

// Register добавляет подключение в реестр (хук onConnect транспорта).
// Клиент начнёт получать живые события только после снапшота.
func (h *Hub) Register(c *Client) {
	select {
	case h.register <- c:
	case <-h.done:
	}
}

// Unregister удаляет подключение из реестра (хук onDisconnect).
// Повторный вызов для уже удалённого клиента безопасен.
func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Broadcast сериализует событие и ставит его в очередь рассылки.
// Не блокируется на медленных клиентах — изоляция происходит в Run.
func (h *Hub) Broadcast(msg WSMessage) {
	payload, err := json.Marshal(msg)
	if err != nil {
		log.Println("Ошибка сериализации события:", err)
		return
	}
	select {
	case h.broadcast <- payload:
	case <-h.done:
	}
}

// ClientCount возвращает число живых подключений.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Client представляет одно подключение через WebSocket.
type Client struct {
	Hub  *Hub
	Conn *websocket.Conn
	Send chan []byte
}

// readPump читает сообщения из WebSocket-соединения.
// Входящие сообщения не обрабатываются — мы только отслеживаем разрыв
// соединения и pong-и для контроля живости.
func (c *Client) readPump() {
	defer func() {
		c.Hub.Unregister(c)
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(512)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			break
		}
	}
}

// writePump отправляет сообщения клиенту из канала Send.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Канал закрыт хабом.
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			// Ping для поддержания соединения; нет pong — readPump умрёт по дедлайну.
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Настраиваем апгрейдер для WebSocket с разрешением всех источников.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ServeWS обновляет соединение до WebSocket и регистрирует клиента в Hub.
// URL: /ws
func (h *Hub) ServeWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		http.Error(c.Writer, "Ошибка обновления до WebSocket", http.StatusInternalServerError)
		return
	}
	client := &Client{
		Hub:  h,
		Conn: conn,
		Send: make(chan []byte, 256),
	}
	h.Register(client)

	go client.writePump()
	client.readPump()
}
