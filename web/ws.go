// Websocket event feed
//
// Copyright (c) 2024, 2025  The go-ipd authors
//
// This file is part of go-ipd.
//
// go-ipd is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License,
// version 3, as published by the Free Software Foundation.
//
// go-ipd is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the GNU
// Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public
// License, version 3, along with go-ipd. If not, see
// <http://www.gnu.org/licenses/>

package web

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"go-ipd"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// An event is the JSON envelope pushed to every connected spectator.
type event struct {
	Type    string `json:"type"`
	Match   string `json:"match"`
	Round   uint   `json:"round"`
	Side    string `json:"side,omitempty"`
	Move    string `json:"move,omitempty"`
	Delta   uint   `json:"delta,omitempty"`
	PlayerA string `json:"player_a,omitempty"`
	PlayerB string `json:"player_b,omitempty"`
	Limit   uint   `json:"limit,omitempty"`
	ScoreA  uint   `json:"score_a,omitempty"`
	ScoreB  uint   `json:"score_b,omitempty"`
	Reason  string `json:"reason,omitempty"`
}

// The hub fans engine events out to all connected sockets.  A
// spectator that cannot keep up has its events dropped rather than
// stalling the engine.
type hub struct {
	lock sync.Mutex
	subs map[chan []byte]struct{}
}

func makeHub() *hub {
	return &hub{subs: make(map[chan []byte]struct{})}
}

func (h *hub) subscribe() chan []byte {
	c := make(chan []byte, 64)
	h.lock.Lock()
	h.subs[c] = struct{}{}
	h.lock.Unlock()
	return c
}

func (h *hub) unsubscribe(c chan []byte) {
	h.lock.Lock()
	delete(h.subs, c)
	h.lock.Unlock()
}

func (h *hub) broadcast(e event) {
	data, err := json.Marshal(e)
	if err != nil {
		log.Print(err)
		return
	}

	h.lock.Lock()
	defer h.lock.Unlock()
	for c := range h.subs {
		select {
		case c <- data:
		default: // too slow, drop the event
		}
	}
}

// Observer interface

func (h *hub) MatchStarted(id uuid.UUID, a, b *ipd.User, limit uint) {
	h.broadcast(event{
		Type:    "match-started",
		Match:   id.String(),
		PlayerA: a.String(),
		PlayerB: b.String(),
		Limit:   limit,
	})
}

func (h *hub) RoundStarted(id uuid.UUID, round uint) {
	h.broadcast(event{
		Type:  "round-started",
		Match: id.String(),
		Round: round,
	})
}

func (h *hub) MoveMade(id uuid.UUID, round uint, side ipd.Side, move ipd.Move, delta uint) {
	h.broadcast(event{
		Type:  "move-made",
		Match: id.String(),
		Round: round,
		Side:  side.String(),
		Move:  move.String(),
		Delta: delta,
	})
}

func (h *hub) Forfeited(id uuid.UUID, round uint, side ipd.Side, reason error) {
	h.broadcast(event{
		Type:   "forfeit",
		Match:  id.String(),
		Round:  round,
		Side:   side.String(),
		Reason: reason.Error(),
	})
}

func (h *hub) MatchEnded(id uuid.UUID, round uint, scoreA, scoreB uint) {
	h.broadcast(event{
		Type:   "match-ended",
		Match:  id.String(),
		Round:  round,
		ScoreA: scoreA,
		ScoreB: scoreB,
	})
}

// Upgrade a HTTP connection to a WebSocket and feed it events
func (h *hub) upgrader() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// upgrade to websocket or bail out
		conn, err := (&websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		}).Upgrade(w, r, nil)
		if err != nil {
			ipd.Debug.Printf("Unable to upgrade connection: %s", err)
			return
		}

		log.Printf("New spectator from %s", conn.RemoteAddr())
		c := h.subscribe()

		// Discard anything the spectator sends, noticing when
		// the connection dies
		closed := make(chan struct{})
		go func() {
			defer close(closed)
			for {
				if _, _, err := conn.NextReader(); err != nil {
					return
				}
			}
		}()

		defer conn.Close()
		defer h.unsubscribe(c)
		for {
			select {
			case data := <-c:
				err := conn.WriteMessage(websocket.TextMessage, data)
				if err != nil {
					return
				}
			case <-closed:
				return
			}
		}
	}
}
