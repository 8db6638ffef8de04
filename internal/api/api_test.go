package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/everforgeworks/galaxy-haulers/internal/catalog"
	"github.com/everforgeworks/galaxy-haulers/internal/config"
	"github.com/everforgeworks/galaxy-haulers/internal/ship"
)

type snapshotDoc struct {
	State   string `json:"state"`
	Players []struct {
		Nickname     string `json:"nickname"`
		Disconnected bool   `json:"disconnected"`
		Finished     bool   `json:"finished_building"`
	} `json:"players"`
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := config.Config{Hourglass: time.Hour}
	store, err := catalog.NewStore("")
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub(cfg.OriginAllowed)
	go hub.Run(ctx)

	ts := httptest.NewServer(NewServer(cfg, store, hub, nil).Routes())
	t.Cleanup(func() {
		ts.Close()
		cancel()
	})
	return ts
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func createMatch(t *testing.T, ts *httptest.Server) string {
	t.Helper()
	resp := postJSON(t, ts.URL+"/api/matches", CreateMatchRequest{Level: 2, Players: []string{"ann", "bob"}})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d", resp.StatusCode)
	}
	var out CreateMatchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if _, err := uuid.Parse(out.ID); err != nil {
		t.Fatalf("match id %q: %v", out.ID, err)
	}
	return out.ID
}

func getSnapshot(t *testing.T, ts *httptest.Server, id string) snapshotDoc {
	t.Helper()
	resp, err := http.Get(ts.URL + "/api/matches/" + id)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("snapshot status = %d", resp.StatusCode)
	}
	var doc snapshotDoc
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		t.Fatal(err)
	}
	return doc
}

// readUntil skips events until one of type typ arrives. Events of the match
// start may still be in flight when a socket connects.
func readUntil(t *testing.T, conn *websocket.Conn, typ string) Message {
	t.Helper()
	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("waiting for %s: %v", typ, err)
		}
		if msg.Type == typ {
			return msg
		}
	}
}

func TestCreateMatch(t *testing.T) {
	ts := newTestServer(t)
	id := createMatch(t, ts)

	doc := getSnapshot(t, ts, id)
	if doc.State != "BUILD_SHIPBOARD" || len(doc.Players) != 2 {
		t.Fatalf("snapshot = %+v", doc)
	}

	if resp := postJSON(t, ts.URL+"/api/matches", CreateMatchRequest{Level: 2, Players: []string{"solo"}}); resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("one player match status = %d", resp.StatusCode)
	}
	resp, err := http.Get(ts.URL + "/api/matches/nope")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown match status = %d", resp.StatusCode)
	}
}

func TestActions(t *testing.T) {
	ts := newTestServer(t)
	id := createMatch(t, ts)
	url := ts.URL + "/api/matches/" + id + "/actions"

	tests := []struct {
		name string
		req  ActionRequest
		want int
	}{
		{"unknown action", ActionRequest{Player: "ann", Action: "teleport"}, http.StatusBadRequest},
		{"unknown player", ActionRequest{Player: "zed", Action: "pick_hidden"}, http.StatusNotFound},
		{"pick", ActionRequest{Player: "ann", Action: "pick_hidden"}, http.StatusOK},
		{"occupied cell", ActionRequest{Player: "ann", Action: "place", At: ship.MainCabinPosition}, http.StatusUnprocessableEntity},
		{"bad alien", ActionRequest{Player: "ann", Action: "place_crew", Aliens: []AlienPlacement{{Color: "green"}}}, http.StatusUnprocessableEntity},
		{"out of phase", ActionRequest{Player: "ann", Action: "draw_card"}, http.StatusOK},
		{"finish", ActionRequest{Player: "bob", Action: "finish_building"}, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if resp := postJSON(t, url, tt.req); resp.StatusCode != tt.want {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.want)
			}
		})
	}

	for _, p := range getSnapshot(t, ts, id).Players {
		if p.Finished != (p.Nickname == "bob") {
			t.Fatalf("%s finished = %v", p.Nickname, p.Finished)
		}
	}
}

func TestLittleDeck(t *testing.T) {
	ts := newTestServer(t)
	id := createMatch(t, ts)

	resp, err := http.Get(ts.URL + "/api/matches/" + id + "/little-decks/1?player=bob")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var cards []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&cards); err != nil {
		t.Fatal(err)
	}
	if len(cards) != 3 {
		t.Fatalf("little deck has %d cards", len(cards))
	}
}

func TestWebsocketStreamsMatchEvents(t *testing.T) {
	ts := newTestServer(t)
	id := createMatch(t, ts)
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/" + id

	if _, resp, err := websocket.DefaultDialer.Dial(wsURL+"?player=zed", nil); err == nil || resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown player dial: %v", err)
	}

	conn, _, err := websocket.DefaultDialer.Dial(wsURL+"?player=ann", nil)
	if err != nil {
		t.Fatal(err)
	}
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	readUntil(t, conn, "snapshot")

	postJSON(t, ts.URL+"/api/matches/"+id+"/actions", ActionRequest{Player: "bob", Action: "pick_hidden"})
	if msg := readUntil(t, conn, "shipboard_updated"); msg.Sender != "bob" {
		t.Fatalf("ship update from %s", msg.Sender)
	}

	// Actions sent on the socket speak for the socket's player.
	if err := conn.WriteJSON(ActionRequest{Player: "bob", Action: "pick_hidden"}); err != nil {
		t.Fatal(err)
	}
	if msg := readUntil(t, conn, "shipboard_updated"); msg.Sender != "ann" {
		t.Fatalf("ship update from %s", msg.Sender)
	}

	conn.Close()
	deadline := time.Now().Add(2 * time.Second)
	for {
		doc := getSnapshot(t, ts, id)
		if doc.Players[0].Disconnected {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("closing the socket did not disconnect ann")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestNewSocketReplacesOldOne(t *testing.T) {
	ts := newTestServer(t)
	id := createMatch(t, ts)
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/" + id + "?player=ann"

	dial := func() *websocket.Conn {
		conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
		if err != nil {
			t.Fatal(err)
		}
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		readUntil(t, conn, "snapshot")
		return conn
	}
	first := dial()
	defer first.Close()
	second := dial()
	defer second.Close()

	// The replaced socket is closed by the server.
	for {
		if _, _, err := first.ReadMessage(); err != nil {
			break
		}
	}
	deadline := time.Now().Add(100 * time.Millisecond)
	for time.Now().Before(deadline) {
		if getSnapshot(t, ts, id).Players[0].Disconnected {
			t.Fatal("closing a replaced socket disconnected ann")
		}
		time.Sleep(5 * time.Millisecond)
	}

	// The current socket still carries ann's actions.
	if err := second.WriteJSON(ActionRequest{Action: "pick_hidden"}); err != nil {
		t.Fatal(err)
	}
	if msg := readUntil(t, second, "shipboard_updated"); msg.Sender != "ann" {
		t.Fatalf("ship update from %s", msg.Sender)
	}
}

func TestStoppedHubRefusesRequests(t *testing.T) {
	h := NewHub(func(string) bool { return true })
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	h.Run(ctx)

	if enqueue(h, h.register, &Client{}) {
		t.Fatal("register accepted after Run returned")
	}
	if enqueue(h, h.unregister, &Client{}) {
		t.Fatal("unregister accepted after Run returned")
	}
}
