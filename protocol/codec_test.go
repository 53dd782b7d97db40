package protocol

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestEncodeProducesTypedEnvelope(t *testing.T) {
	b, err := Encode(MsgPlayerLeft, PlayerLeft{ID: "abc"})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		t.Fatalf("frame is not json: %v", err)
	}
	if string(raw["t"]) != `"playerLeft"` {
		t.Fatalf("t = %s", raw["t"])
	}
	if string(raw["p"]) != `{"id":"abc"}` {
		t.Fatalf("p = %s", raw["p"])
	}
}

func TestEncodeRejectsEmptyTypeAndNilPayload(t *testing.T) {
	if _, err := Encode("", Move{}); err == nil {
		t.Fatalf("expected error for empty type")
	}
	if _, err := Encode(MsgMove, nil); err == nil {
		t.Fatalf("expected error for nil payload")
	}
}

func TestDecodeClientMoveFrame(t *testing.T) {
	env, err := DecodeEnvelope([]byte(`{"t":"move","p":{"direction":"left","speed":15}}`))
	if err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if env.T != MsgMove {
		t.Fatalf("T = %q", env.T)
	}
	mv, err := DecodePayload[Move](env)
	if err != nil {
		t.Fatalf("decode move: %v", err)
	}
	if mv.Direction != "left" || mv.Speed != 15 {
		t.Fatalf("move = %+v", mv)
	}
}

func TestDecodeEnvelopeErrors(t *testing.T) {
	if _, err := DecodeEnvelope(nil); err == nil {
		t.Fatalf("expected error for empty frame")
	}
	if _, err := DecodeEnvelope([]byte(`{"p":{}}`)); err == nil {
		t.Fatalf("expected error for missing type")
	}
	if _, err := DecodeEnvelope([]byte(`not json`)); err == nil {
		t.Fatalf("expected error for garbage")
	}
	if _, err := DecodePayload[Move](Envelope{T: MsgMove}); err == nil || !strings.Contains(err.Error(), "empty payload") {
		t.Fatalf("expected empty payload error, got %v", err)
	}
}

func TestMsgpackCarriesCollectedEvent(t *testing.T) {
	in := CollectibleCollected{
		PlayerID:         "p1",
		CollectibleID:    4,
		NewCollectible:   Collectible{ID: 9, X: 12, Y: 30, Value: 6, Width: 30, Height: 30},
		CollectibleValue: 7,
	}
	b, err := EncodeWith(Msgpack, MsgCollectibleCollected, in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if json.Valid(b) {
		t.Fatalf("msgpack frame should not be json")
	}
	env, err := DecodeEnvelopeWith(Msgpack, b)
	if err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if env.T != MsgCollectibleCollected {
		t.Fatalf("T = %q", env.T)
	}
	out, err := DecodePayloadWith[CollectibleCollected](Msgpack, env)
	if err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if out != in {
		t.Fatalf("payload = %+v, want %+v", out, in)
	}
}

func TestMsgpackUsesJSONFieldNames(t *testing.T) {
	b, err := Msgpack.Marshal(PlayerLeft{ID: "xyz"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]any
	if err := Msgpack.Unmarshal(b, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if m["id"] != "xyz" {
		t.Fatalf("decoded map = %v, want key id", m)
	}
}

func TestCodecFor(t *testing.T) {
	if CodecFor(SubprotocolMsgpack) != Msgpack {
		t.Fatalf("msgpack subprotocol should select msgpack")
	}
	if CodecFor("") != JSON || CodecFor(SubprotocolJSON) != JSON {
		t.Fatalf("default codec should be json")
	}
}
