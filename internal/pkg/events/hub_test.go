package events_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estoqueti/internal/domain"
	"estoqueti/internal/pkg/events"
	"estoqueti/internal/pkg/logger"
)

type actorKey struct{}

// serve identifica o cliente pelo parâmetro "as" (usuário 1 é administrador).
func serve(hub *events.Hub) *httptest.Server {
	hub.SetActorResolver(func(ctx context.Context) (domain.Actor, bool) {
		actor, ok := ctx.Value(actorKey{}).(domain.Actor)
		return actor, ok
	})
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := r.URL.Query().Get("as"); id != "" {
			role := domain.RoleSolicitante
			if id == "1" {
				role = domain.RoleAdmin
			}
			r = r.WithContext(context.WithValue(r.Context(), actorKey{}, domain.Actor{UserID: id, Role: role}))
		}
		hub.ServeWS(w, r)
	}))
}

func dial(t *testing.T, srv *httptest.Server, as string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "?as=" + as
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	return conn
}

func TestHub_PublishReachesClient(t *testing.T) {
	hub := events.NewHub(logger.NewLogger("debug"))
	srv := serve(hub)
	defer srv.Close()

	conn := dial(t, srv, "1")
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	hub.Publish(domain.Event{Type: domain.EventRequestCreated, RequestID: "ID_00003", Status: domain.StatusPendente})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got domain.Event
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, domain.EventRequestCreated, got.Type)
	assert.Equal(t, "ID_00003", got.RequestID)
	assert.Equal(t, domain.StatusPendente, got.Status)
	assert.False(t, got.At.IsZero())
}

func TestHub_ClientDisconnectIsRemoved(t *testing.T) {
	hub := events.NewHub(logger.NewLogger("debug"))
	srv := serve(hub)
	defer srv.Close()

	conn := dial(t, srv, "1")
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	conn.Close()

	assert.Eventually(t, func() bool { return hub.ClientCount() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestHub_PublishWithoutClients(t *testing.T) {
	hub := events.NewHub(logger.NewLogger("debug"))

	assert.NotPanics(t, func() {
		hub.Publish(domain.Event{Type: domain.EventStockLow, MaterialID: "m6"})
	})
	assert.Equal(t, 0, hub.ClientCount())
}

func TestHub_RequestEventsFollowVisibility(t *testing.T) {
	hub := events.NewHub(logger.NewLogger("debug"))
	srv := serve(hub)
	defer srv.Close()

	adminConn := dial(t, srv, "1")
	defer adminConn.Close()
	joaoConn := dial(t, srv, "2")
	defer joaoConn.Close()
	anonConn := dial(t, srv, "")
	defer anonConn.Close()
	require.Eventually(t, func() bool { return hub.ClientCount() == 3 }, 2*time.Second, 10*time.Millisecond)

	hub.Publish(domain.Event{Type: domain.EventRequestUpdated, RequestID: "ID_00002", RequesterID: "3", Status: domain.StatusConcluido})
	hub.Publish(domain.Event{Type: domain.EventRequestUpdated, RequestID: "ID_00001", RequesterID: "2", Status: domain.StatusEmAtendimento})
	hub.Publish(domain.Event{Type: domain.EventStockLow, MaterialID: "m6"})

	read := func(conn *websocket.Conn) domain.Event {
		t.Helper()
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		var evt domain.Event
		require.NoError(t, conn.ReadJSON(&evt))
		return evt
	}

	// Administrador recebe tudo, na ordem de publicação.
	assert.Equal(t, "ID_00002", read(adminConn).RequestID)
	assert.Equal(t, "ID_00001", read(adminConn).RequestID)
	assert.Equal(t, domain.EventStockLow, read(adminConn).Type)

	// Solicitante só recebe a própria solicitação e os eventos de estoque.
	assert.Equal(t, "ID_00001", read(joaoConn).RequestID)
	assert.Equal(t, domain.EventStockLow, read(joaoConn).Type)

	// Conexão sem usuário identificado recebe apenas eventos de estoque.
	assert.Equal(t, domain.EventStockLow, read(anonConn).Type)
}
