// Package events distribui eventos do almoxarifado (solicitações e estoque baixo)
// para clientes conectados via WebSocket.
package events

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"estoqueti/internal/domain"
	"estoqueti/internal/pkg/logger"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 16
)

type client struct {
	conn  *websocket.Conn
	send  chan domain.Event
	actor domain.Actor
	known bool
}

// canSee aplica a mesma regra de visibilidade da consulta de solicitações.
func (c *client) canSee(evt domain.Event) bool {
	if evt.RequestID == "" {
		return true
	}
	if !c.known {
		return false
	}
	return c.actor.IsAdmin() || c.actor.UserID == evt.RequesterID
}

// ActorResolver extrai o usuário autenticado do contexto da requisição de upgrade.
type ActorResolver func(ctx context.Context) (domain.Actor, bool)

// Hub mantém os clientes conectados e entrega cada evento publicado a todos eles.
// Clientes que não consomem a fila a tempo são desconectados.
type Hub struct {
	mu       sync.RWMutex
	clients  map[*client]struct{}
	upgrader websocket.Upgrader
	resolve  ActorResolver
	logger   logger.Logger
}

// NewHub cria um Hub sem clientes.
func NewHub(log logger.Logger) *Hub {
	return &Hub{
		clients: make(map[*client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // O acesso já é controlado pelo middleware de autenticação
			},
		},
		logger: log,
	}
}

// SetActorResolver define como identificar o usuário de cada conexão.
// Sem resolver, as conexões recebem apenas eventos de estoque.
func (h *Hub) SetActorResolver(resolve ActorResolver) {
	h.resolve = resolve
}

// Publish entrega o evento sem bloquear o chamador.
func (h *Hub) Publish(evt domain.Event) {
	if evt.At.IsZero() {
		evt.At = time.Now()
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		if !c.canSee(evt) {
			continue
		}
		select {
		case c.send <- evt:
		default:
			h.logger.Warn("Cliente WebSocket lento, desconectando.", map[string]interface{}{"remote_addr": c.conn.RemoteAddr().String()})
			delete(h.clients, c)
			close(c.send)
		}
	}
	h.logger.Debug("Evento publicado.", map[string]interface{}{"type": evt.Type, "clients": len(h.clients)})
}

// ClientCount retorna o número de clientes conectados.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close desconecta todos os clientes. Usado no graceful shutdown.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
}

func (h *Hub) add(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = struct{}{}
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

// ServeWS lida com a requisição GET /v1/events/ws.
// @Summary Feed de eventos em tempo real
// @Description Abre um WebSocket que recebe eventos de solicitações e de estoque baixo.
// @Tags events
// @Success 101 "Switching Protocols"
// @Security ApiKeyAuth
// @Router /events/ws [get]
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("Falha ao atualizar conexão para WebSocket.", err)
		return
	}

	c := &client{conn: conn, send: make(chan domain.Event, sendBuffer)}
	if h.resolve != nil {
		c.actor, c.known = h.resolve(r.Context())
	}
	h.add(c)
	h.logger.Info("Conexão WebSocket estabelecida.", map[string]interface{}{"remote_addr": conn.RemoteAddr().String()})

	go h.writePump(c)
	h.readPump(c)
}

// readPump consome mensagens de controle (pong/close) até a conexão cair.
func (h *Hub) readPump(c *client) {
	defer func() {
		h.remove(c)
		c.conn.Close()
		h.logger.Info("Conexão WebSocket encerrada.", nil)
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// writePump é o único escritor da conexão: eventos e pings.
func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case evt, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(evt); err != nil {
				h.logger.Debug("Falha ao enviar evento por WebSocket.", map[string]interface{}{"error": err.Error()})
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
