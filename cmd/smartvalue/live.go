package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/smartvalue/internal/demo"
)

// liveServer pushes counter snapshots to browsers over WebSocket after every
// re-render. Only reactive counters re-render, so silent counters never push.
type liveServer struct {
	clients  map[string]map[*websocket.Conn]bool
	mu       sync.RWMutex
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

func newLiveServer(logger *slog.Logger) *liveServer {
	return &liveServer{
		clients: make(map[string]map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger: logger,
	}
}

// attach forwards every render of counter to its connected clients.
func (l *liveServer) attach(counter *demo.Counter) {
	name := counter.Name()
	counter.Subscribe(func(s demo.Snapshot) {
		l.broadcast(name, s)
	})
}

// handle upgrades the request and keeps the connection until the client
// goes away. The current snapshot is sent first.
func (l *liveServer) handle(w http.ResponseWriter, r *http.Request, counter *demo.Counter) {
	conn, err := l.upgrader.Upgrade(w, r, nil)
	if err != nil {
		l.logger.Debug("websocket upgrade failed", "error", err)
		return
	}

	name := counter.Name()
	if err := conn.WriteJSON(counter.Snapshot()); err != nil {
		conn.Close()
		return
	}

	// Registered after the first write so broadcast is the only writer.
	l.mu.Lock()
	if l.clients[name] == nil {
		l.clients[name] = make(map[*websocket.Conn]bool)
	}
	l.clients[name][conn] = true
	l.mu.Unlock()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	l.remove(name, conn)
}

func (l *liveServer) broadcast(name string, s demo.Snapshot) {
	data, err := json.Marshal(s)
	if err != nil {
		return
	}

	l.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(l.clients[name]))
	for conn := range l.clients[name] {
		conns = append(conns, conn)
	}
	l.mu.RUnlock()

	for _, conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			l.remove(name, conn)
		}
	}
}

func (l *liveServer) remove(name string, conn *websocket.Conn) {
	l.mu.Lock()
	delete(l.clients[name], conn)
	l.mu.Unlock()
	conn.Close()
}

// clientCount returns the number of clients watching name.
func (l *liveServer) clientCount(name string) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.clients[name])
}

// close drops every connection.
func (l *liveServer) close() {
	l.mu.Lock()
	defer l.mu.Unlock()

	for name, conns := range l.clients {
		for conn := range conns {
			conn.Close()
		}
		delete(l.clients, name)
	}
}

// liveScript connects each counter section to its WebSocket and turns the
// buttons into fetch calls, so the page never reloads. The stored value is
// refreshed from the POST response; the rendered view only changes when the
// server pushes a re-render.
const liveScript = `
<script>
(function() {
    'use strict';

    var protocol = location.protocol === 'https:' ? 'wss:' : 'ws:';

    document.querySelectorAll('section[data-counter]').forEach(function(section) {
        var name = section.getAttribute('data-counter');
        var view = section.querySelector('.view');
        var stored = section.querySelector('.stored');

        var ws = new WebSocket(protocol + '//' + location.host + '/ws/' + name);
        ws.onmessage = function(e) {
            var snap;
            try {
                snap = JSON.parse(e.data);
            } catch (err) {
                return;
            }
            view.textContent = snap.view;
            stored.textContent = 'Stored value: ' + snap.current + ' · renders: ' + snap.renders;
        };

        section.querySelectorAll('form').forEach(function(form) {
            form.addEventListener('submit', function(e) {
                e.preventDefault();
                fetch(form.action, {method: 'POST', headers: {'Accept': 'application/json'}})
                    .then(function(res) { return res.json(); })
                    .then(function(snap) {
                        stored.textContent = 'Stored value: ' + snap.current + ' · renders: ' + snap.renders;
                    });
            });
        });
    });
})();
</script>
`
