package events

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestStateChanged_JSON(t *testing.T) {
	ev := StateChanged{Action: "place_order", CartLines: 0, Orders: 1, At: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}
	data, err := json.Marshal(ev)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"action":"place_order"`) || !strings.Contains(string(data), `"at":"2026-01-02T03:04:05Z"`) {
		t.Fatalf("unexpected payload %s", data)
	}
}

func TestNop(t *testing.T) {
	var p Publisher = Nop{}
	if err := p.Publish(context.Background(), StateChanged{Action: "login"}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}
