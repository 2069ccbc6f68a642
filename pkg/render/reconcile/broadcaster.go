// broadcaster.go wires the reconciler's op stream out to live view
// connections over gorilla/websocket, pushing incremental reconcile ops
// instead of re-sending a whole descriptor list per tick.
package reconcile

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/chainlaunch/editcore/pkg/logger"
)

// Broadcaster fans reconcile ops out to every connected view. It is
// constructed before any connection exists, and connections register onto
// it as they arrive; the Reconciler only returns ops and never depends on
// transport.
type Broadcaster struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]bool
	log   *logger.Logger
}

// NewBroadcaster returns an empty Broadcaster.
func NewBroadcaster(log *logger.Logger) *Broadcaster {
	return &Broadcaster{conns: map[*websocket.Conn]bool{}, log: log}
}

// Register adds a connection to receive future Broadcast calls, and removes
// it automatically once a write to it fails.
func (b *Broadcaster) Register(c *websocket.Conn) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.conns[c] = true
}

// wireOp is the JSON shape pushed to the view for one Op.
type wireOp struct {
	Kind  string      `json:"kind"`
	ID    int64       `json:"id"`
	Index int         `json:"index"`
	Data  interface{} `json:"data,omitempty"`
}

// Broadcast sends ops to every registered connection; a send failure drops
// that connection rather than aborting the whole broadcast.
func (b *Broadcaster) Broadcast(ops []Op) {
	payload := make([]wireOp, len(ops))
	for i, op := range ops {
		payload[i] = wireOp{Kind: op.Kind.String(), ID: op.ID, Index: op.Index, Data: op.Descriptor}
	}
	data, err := json.Marshal(payload)
	if err != nil {
		if b.log != nil {
			b.log.Errorf("marshal reconcile ops: %v", err)
		}
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for c := range b.conns {
		if err := c.WriteMessage(websocket.TextMessage, data); err != nil {
			if b.log != nil {
				b.log.Warnf("broadcast write failed, dropping connection: %v", err)
			}
			_ = c.Close()
			delete(b.conns, c)
		}
	}
}
