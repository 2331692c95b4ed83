package ws

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestMessageWireFormat(t *testing.T) {
	msg, err := NewMessage(MessageTypeSelect, SelectPayload{Square: "e2"})
	if err != nil {
		t.Fatalf("NewMessage: %v", err)
	}
	data, _ := json.Marshal(msg)
	if got, want := string(data), `{"type":"select","payload":{"square":"e2"}}`; got != want {
		t.Fatalf("wire = %s, want %s", got, want)
	}

	var undo Message
	if err := json.Unmarshal([]byte(`{"type":"undo"}`), &undo); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if undo.Type != MessageTypeUndo || len(undo.Payload) != 0 {
		t.Fatalf("undo = %+v", undo)
	}
}

func TestErrorMessage(t *testing.T) {
	msg := ErrorMessage(errors.New("promotion pending"))
	var p ErrorPayload
	if err := json.Unmarshal(msg.Payload, &p); err != nil {
		t.Fatalf("payload is not JSON: %v", err)
	}
	if msg.Type != MessageTypeError || p.Error != "promotion pending" {
		t.Fatalf("msg = %+v, payload = %+v", msg, p)
	}
}
