package poseclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/portalbox/go-portal/pkg/parallax"
	"github.com/portalbox/go-portal/pkg/web"
)

// poseServer upgrades one connection and streams the given frames.
func poseServer(t *testing.T, frames []web.PoseFrame) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		defer conn.Close()

		for _, frame := range frames {
			data, _ := json.Marshal(frame)
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		}

		// Hold the connection open until the client goes away.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
}

func TestClient_ReceivesFrames(t *testing.T) {
	want := []web.PoseFrame{
		{
			Frustum:  parallax.Frustum{Left: -0.04, Right: 0.04, Bottom: -0.0225, Top: 0.0225, Near: 0.1, Far: 1000},
			Eye:      parallax.Eye{Z: 5},
			Tracking: false,
		},
		{
			Frustum:  parallax.Frustum{Left: -0.024, Right: 0.056, Bottom: -0.0225, Top: 0.0225, Near: 0.1, Far: 1000},
			Eye:      parallax.Eye{X: -0.8, Z: 5},
			Tracking: true,
		},
	}

	srv := poseServer(t, want)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	c, err := Dial(url)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	var got []web.PoseFrame
	go c.Listen(ctx, func(f web.PoseFrame) {
		got = append(got, f)
		if len(got) == len(want) {
			cancel()
		}
	})

	<-ctx.Done()

	if len(got) != len(want) {
		t.Fatalf("expected %d frames, got %d", len(want), len(got))
	}
	if got[0].Frustum != want[0].Frustum || got[1].Eye != want[1].Eye {
		t.Errorf("frames did not round-trip: %+v", got)
	}
	if !got[1].Tracking {
		t.Error("tracking flag lost in transit")
	}
}

func TestClient_DialFailure(t *testing.T) {
	if _, err := Dial("ws://127.0.0.1:1/ws/pose"); err == nil {
		t.Error("expected error dialing a closed port")
	}
}

func TestClient_SkipsMalformedMessages(t *testing.T) {
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		conn.WriteMessage(websocket.TextMessage, []byte("not json"))
		data, _ := json.Marshal(web.PoseFrame{Eye: parallax.Eye{Z: 5}})
		conn.WriteMessage(websocket.TextMessage, data)

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	c, err := Dial(url)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	var got []web.PoseFrame
	go c.Listen(ctx, func(f web.PoseFrame) {
		got = append(got, f)
		cancel()
	})

	<-ctx.Done()

	if len(got) != 1 {
		t.Fatalf("expected exactly the valid frame, got %d", len(got))
	}
	if got[0].Eye.Z != 5 {
		t.Errorf("unexpected frame: %+v", got[0])
	}
}
