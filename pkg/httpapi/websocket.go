package httpapi

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/lithammer/shortuuid/v4"

	"github.com/chainlaunch/editcore/pkg/render/component"
	"github.com/chainlaunch/editcore/pkg/render/reconcile"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	// Demo surface only; a real deployment should check r.Header.Get("Origin")
	// against an allowlist instead of accepting everything.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// RenderStream godoc
// @Summary      Stream incremental render operations
// @Description  Upgrades to a websocket. Each text frame sent by the client is treated as the latest full prefix of a streaming markdown document; the server re-parses it, reconciles against the previous prefix, and pushes the resulting CREATE/UPDATE/REMOVE/NO-OP operations back to every connected viewer as JSON.
// @Tags         render
// @Router       /v1/render/stream [get]
func (h *Handler) RenderStream(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		if h.Log != nil {
			h.Log.Errorf("websocket upgrade failed: %v", err)
		}
		return
	}
	defer conn.Close()

	// Short enough to log as a topic/session tag alongside the connection's
	// reconcile ticks, without the hyphenation of a full uuid.
	session := shortuuid.New()
	if h.Log != nil {
		h.Log.Infof("render session %s connected", session)
	}

	h.broadcaster.Register(conn)
	reconciler := reconcile.New()

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			return
		}

		elements, err := h.md.ParseElements(payload)
		if err != nil {
			// A parse failure never aborts rendering; skip this tick and
			// wait for the next, longer prefix.
			if h.Log != nil {
				h.Log.Warnf("markdown parse degraded, skipping tick: %v", err)
			}
			continue
		}

		descriptors := component.Parse(elements, h.idCounter)
		ops := reconciler.Diff(descriptors)
		h.broadcaster.Broadcast(ops)
	}
}
