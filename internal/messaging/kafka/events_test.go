package kafka

import (
	"encoding/json"
	"testing"
)

func TestNewPaymentEvent(t *testing.T) {
	event := NewPaymentEvent(EventTypePaymentSucceeded, 1234, 110, map[string]interface{}{
		"status_code": "00",
	})

	if event.EventType != EventTypePaymentSucceeded {
		t.Fatalf("expected %s, got %s", EventTypePaymentSucceeded, event.EventType)
	}
	if event.OrderCode != 1234 || event.Amount != 110 {
		t.Fatalf("unexpected event payload: %+v", event)
	}
	if event.Timestamp.IsZero() {
		t.Fatal("expected timestamp to be set")
	}
}

func TestPaymentEvent_Key(t *testing.T) {
	event := NewPaymentEvent(EventTypePaymentFailed, 987, 50, nil)
	if event.Key() != "987" {
		t.Fatalf("expected key 987, got %s", event.Key())
	}
}

func TestPaymentEvent_JSON(t *testing.T) {
	event := NewPaymentEvent(EventTypePaymentSucceeded, 1234, 110, nil)

	data, err := json.Marshal(event)
	if err != nil {
		t.Fatalf("marshal event: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal event: %v", err)
	}
	if decoded["event_type"] != string(EventTypePaymentSucceeded) {
		t.Fatalf("unexpected event_type: %v", decoded["event_type"])
	}
	if _, ok := decoded["metadata"]; ok {
		t.Fatal("expected empty metadata to be omitted")
	}
}
